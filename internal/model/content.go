package model

type Difficulty string

const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
)

type QuestionType string

const (
	MultipleChoice QuestionType = "multiple_choice"
	FreeForm       QuestionType = "free_form"
)

// Topic 知识主题，内容目录里所有标识符的闭集之一
type Topic struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Question 测验题目，编译期写死，运行期只读
type Question struct {
	ID           string       `json:"id"`
	Topic        string       `json:"topic"`
	Difficulty   Difficulty   `json:"difficulty"`
	Type         QuestionType `json:"type"`
	Prompt       string       `json:"prompt"`
	Options      []string     `json:"options,omitempty"` // 仅选择题
	Answer       string       `json:"answer"`
	Explanation  string       `json:"explanation"`
	Hints        []string     `json:"hints,omitempty"`
	XPReward     int          `json:"xpReward"`
	TimeLimitSec int          `json:"timeLimitSec,omitempty"` // 0 表示不限时
}

// ModuleSection 课程模块中的一节
type ModuleSection struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

// LearningModule 课程模块；是否锁定由前置模块与用户进度实时推导，不落库
type LearningModule struct {
	ID               string          `json:"id"`
	Topic            string          `json:"topic"`
	Difficulty       Difficulty      `json:"difficulty"`
	Title            string          `json:"title"`
	Description      string          `json:"description"`
	Sections         []ModuleSection `json:"sections"`
	Prerequisites    []string        `json:"prerequisites,omitempty"`
	XPReward         int             `json:"xpReward"`
	EstimatedMinutes int             `json:"estimatedMinutes"`
}

// Flashcard 闪卡
type Flashcard struct {
	ID    string `json:"id"`
	Topic string `json:"topic"`
	Front string `json:"front"`
	Back  string `json:"back"`
}

type AchievementCategory string

const (
	AchievementMastery   AchievementCategory = "mastery"
	AchievementStreak    AchievementCategory = "streak"
	AchievementSpeed     AchievementCategory = "speed"
	AchievementChallenge AchievementCategory = "challenge"
)

// Achievement 成就定义；是否已解锁只看进度存档里的成就集合
type Achievement struct {
	ID          string              `json:"id"`
	Category    AchievementCategory `json:"category"`
	Name        string              `json:"name"`
	Description string              `json:"description"`
	Icon        string              `json:"icon"`
	Requirement int                 `json:"requirement"` // 解锁门槛，语义随类别而定
	XPReward    int                 `json:"xpReward"`
}
