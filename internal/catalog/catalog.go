package catalog

import (
	"dataforge_backend/internal/model"
	"fmt"
	"math/rand"
)

var (
	topicIndex       map[string]*model.Topic
	moduleIndex      map[string]*model.LearningModule
	questionIndex    map[string]*model.Question
	flashcardIndex   map[string]*model.Flashcard
	achievementIndex map[string]*model.Achievement
)

func init() {
	topicIndex = make(map[string]*model.Topic, len(Topics))
	for i := range Topics {
		topicIndex[Topics[i].ID] = &Topics[i]
	}
	moduleIndex = make(map[string]*model.LearningModule, len(Modules))
	for i := range Modules {
		moduleIndex[Modules[i].ID] = &Modules[i]
	}
	questionIndex = make(map[string]*model.Question, len(Questions))
	for i := range Questions {
		questionIndex[Questions[i].ID] = &Questions[i]
	}
	flashcardIndex = make(map[string]*model.Flashcard, len(Flashcards))
	for i := range Flashcards {
		flashcardIndex[Flashcards[i].ID] = &Flashcards[i]
	}
	achievementIndex = make(map[string]*model.Achievement, len(Achievements))
	for i := range Achievements {
		achievementIndex[Achievements[i].ID] = &Achievements[i]
	}
}

func TopicByID(id string) (*model.Topic, bool) {
	t, ok := topicIndex[id]
	return t, ok
}

func ModuleByID(id string) (*model.LearningModule, bool) {
	m, ok := moduleIndex[id]
	return m, ok
}

func QuestionByID(id string) (*model.Question, bool) {
	q, ok := questionIndex[id]
	return q, ok
}

func AchievementByID(id string) (*model.Achievement, bool) {
	a, ok := achievementIndex[id]
	return a, ok
}

// FilterQuestions 按主题/难度过滤，空串表示不过滤
func FilterQuestions(topic string, difficulty model.Difficulty) []model.Question {
	var out []model.Question
	for _, q := range Questions {
		if topic != "" && q.Topic != topic {
			continue
		}
		if difficulty != "" && q.Difficulty != difficulty {
			continue
		}
		out = append(out, q)
	}
	return out
}

// FlashcardsByTopic 空串返回全部
func FlashcardsByTopic(topic string) []model.Flashcard {
	if topic == "" {
		return append([]model.Flashcard{}, Flashcards...)
	}
	var out []model.Flashcard
	for _, f := range Flashcards {
		if f.Topic == topic {
			out = append(out, f)
		}
	}
	return out
}

// SampleQuestions 在过滤后的题池中均匀无放回抽取 n 题；
// 题池不足 n 时返回整个题池（乱序）。
func SampleQuestions(topic string, difficulty model.Difficulty, n int) []model.Question {
	pool := FilterQuestions(topic, difficulty)
	rand.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})
	if n > 0 && n < len(pool) {
		pool = pool[:n]
	}
	return pool
}

// IsModuleLocked 任一前置模块未完成即锁定；每次渲染实时推导，不缓存
func IsModuleLocked(progress *model.UserProgress, m *model.LearningModule) bool {
	for _, prereq := range m.Prerequisites {
		if !progress.HasCompletedModule(prereq) {
			return true
		}
	}
	return false
}

// Validate 启动时校验目录自洽：ID唯一、主题与前置引用闭合、等级表连续。
// 任何一条不满足都直接拒绝启动。
func Validate() error {
	seen := make(map[string]bool)
	for _, t := range Topics {
		if seen["topic:"+t.ID] {
			return fmt.Errorf("duplicate topic id: %s", t.ID)
		}
		seen["topic:"+t.ID] = true
	}
	for _, m := range Modules {
		if seen["module:"+m.ID] {
			return fmt.Errorf("duplicate module id: %s", m.ID)
		}
		seen["module:"+m.ID] = true
		if _, ok := topicIndex[m.Topic]; !ok {
			return fmt.Errorf("module %s references unknown topic %s", m.ID, m.Topic)
		}
		for _, prereq := range m.Prerequisites {
			if _, ok := moduleIndex[prereq]; !ok {
				return fmt.Errorf("module %s references unknown prerequisite %s", m.ID, prereq)
			}
			if prereq == m.ID {
				return fmt.Errorf("module %s lists itself as prerequisite", m.ID)
			}
		}
	}
	for _, q := range Questions {
		if seen["question:"+q.ID] {
			return fmt.Errorf("duplicate question id: %s", q.ID)
		}
		seen["question:"+q.ID] = true
		if _, ok := topicIndex[q.Topic]; !ok {
			return fmt.Errorf("question %s references unknown topic %s", q.ID, q.Topic)
		}
		if q.Type == model.MultipleChoice && len(q.Options) < 2 {
			return fmt.Errorf("question %s is multiple choice but has %d options", q.ID, len(q.Options))
		}
	}
	for _, f := range Flashcards {
		if seen["flashcard:"+f.ID] {
			return fmt.Errorf("duplicate flashcard id: %s", f.ID)
		}
		seen["flashcard:"+f.ID] = true
		if _, ok := topicIndex[f.Topic]; !ok {
			return fmt.Errorf("flashcard %s references unknown topic %s", f.ID, f.Topic)
		}
	}
	for _, a := range Achievements {
		if seen["achievement:"+a.ID] {
			return fmt.Errorf("duplicate achievement id: %s", a.ID)
		}
		seen["achievement:"+a.ID] = true
		if a.Requirement <= 0 {
			return fmt.Errorf("achievement %s has non-positive requirement", a.ID)
		}
	}

	// 等级表必须从0开始、区间连续、最高档无上界
	thresholds := model.RankThresholds
	if thresholds[0].MinXP != 0 {
		return fmt.Errorf("rank table must start at 0, got %d", thresholds[0].MinXP)
	}
	for i := 0; i < len(thresholds)-1; i++ {
		if thresholds[i].MaxXP+1 != thresholds[i+1].MinXP {
			return fmt.Errorf("rank table gap between %s and %s", thresholds[i].Rank, thresholds[i+1].Rank)
		}
	}
	if thresholds[len(thresholds)-1].MaxXP != -1 {
		return fmt.Errorf("top rank must be unbounded")
	}

	return nil
}
