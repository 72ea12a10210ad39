package model

import "time"

// ProgressSchemaVersion 存档格式版本号，写入每个存档信封
const ProgressSchemaVersion = 1

// TopicScore 单个主题的练习统计，只增不减，仅整体重置时清零
type TopicScore struct {
	QuestionsAttempted int       `json:"questionsAttempted"`
	QuestionsCorrect   int       `json:"questionsCorrect"`
	LastPracticed      time.Time `json:"lastPracticed"`
}

// UserProgress 用户学习进度存档。TotalXP 是唯一事实来源，
// 等级和级内XP一律按需推导，不落盘，杜绝派生字段漂移。
type UserProgress struct {
	UserID           uint                   `json:"userId"`
	TotalXP          int                    `json:"totalXp"`
	Streak           int                    `json:"streak"`
	LongestStreak    int                    `json:"longestStreak"`
	LastActive       time.Time              `json:"lastActive"`
	CompletedModules []string               `json:"completedModules"`
	Achievements     []string               `json:"achievements"`
	TopicScores      map[string]*TopicScore `json:"topicScores"`
}

// NewUserProgress 零值存档
func NewUserProgress(userID uint) *UserProgress {
	return &UserProgress{
		UserID:           userID,
		CompletedModules: []string{},
		Achievements:     []string{},
		TopicScores:      map[string]*TopicScore{},
	}
}

// Normalize 补齐反序列化后可能为 nil 的集合字段。
// 本服务自己写出的存档不会缺字段，但键值槽允许带外修补。
func (p *UserProgress) Normalize() {
	if p.CompletedModules == nil {
		p.CompletedModules = []string{}
	}
	if p.Achievements == nil {
		p.Achievements = []string{}
	}
	if p.TopicScores == nil {
		p.TopicScores = map[string]*TopicScore{}
	}
}

// Rank 由 TotalXP 推导当前等级
func (p *UserProgress) Rank() RankThreshold {
	return RankForXP(p.TotalXP)
}

// XPInLevel 当前等级内已积累的XP
func (p *UserProgress) XPInLevel() int {
	return p.TotalXP - p.Rank().MinXP
}

func (p *UserProgress) HasCompletedModule(moduleID string) bool {
	for _, id := range p.CompletedModules {
		if id == moduleID {
			return true
		}
	}
	return false
}

func (p *UserProgress) HasAchievement(achievementID string) bool {
	for _, id := range p.Achievements {
		if id == achievementID {
			return true
		}
	}
	return false
}

// TotalQuestionsCorrect 所有主题累计答对题数
func (p *UserProgress) TotalQuestionsCorrect() int {
	total := 0
	for _, s := range p.TopicScores {
		total += s.QuestionsCorrect
	}
	return total
}

// Clone 深拷贝，交给观察者和HTTP层的都是副本
func (p *UserProgress) Clone() *UserProgress {
	cp := *p
	cp.CompletedModules = append([]string{}, p.CompletedModules...)
	cp.Achievements = append([]string{}, p.Achievements...)
	cp.TopicScores = make(map[string]*TopicScore, len(p.TopicScores))
	for topic, score := range p.TopicScores {
		s := *score
		cp.TopicScores[topic] = &s
	}
	return &cp
}

// ProgressEnvelope 持久化信封 {version, userProgress, theme}
type ProgressEnvelope struct {
	Version      int           `json:"version"`
	UserProgress *UserProgress `json:"userProgress"`
	Theme        string        `json:"theme"`
}

// ProgressExport 一次性导出格式，只写不读
type ProgressExport struct {
	UserProgress *UserProgress `json:"userProgress"`
	ExportedAt   time.Time     `json:"exportedAt"`
}
