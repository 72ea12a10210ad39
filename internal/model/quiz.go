package model

import "time"

// QuizAnswer 一次作答记录，只存在于测验会话内
type QuizAnswer struct {
	QuestionID   string    `json:"questionId"`
	Correct      bool      `json:"correct"`
	TimeSpentSec int       `json:"timeSpentSec"`
	AnsweredAt   time.Time `json:"answeredAt"`
}

// QuizSession 进行中的测验；瞬态状态，不进持久化存档
type QuizSession struct {
	ID         string       `json:"id"`
	UserID     uint         `json:"userId"`
	Topic      string       `json:"topic,omitempty"`
	Difficulty Difficulty   `json:"difficulty,omitempty"`
	Questions  []Question   `json:"questions"`
	Answers    []QuizAnswer `json:"answers"`
	StartedAt  time.Time    `json:"startedAt"`
}

// Answered 判断某题在本会话中是否已作答
func (s *QuizSession) Answered(questionID string) bool {
	for _, a := range s.Answers {
		if a.QuestionID == questionID {
			return true
		}
	}
	return false
}

// Clone 深拷贝
func (s *QuizSession) Clone() *QuizSession {
	cp := *s
	cp.Questions = append([]Question{}, s.Questions...)
	cp.Answers = append([]QuizAnswer{}, s.Answers...)
	return &cp
}

// QuizSummary 测验结束后的汇总
type QuizSummary struct {
	SessionID   string        `json:"sessionId"`
	Topic       string        `json:"topic,omitempty"`
	Total       int           `json:"total"`
	Answered    int           `json:"answered"`
	Correct     int           `json:"correct"`
	FastCorrect int           `json:"fastCorrect"` // 快速答对题数（speed 成就用）
	XPEarned    int           `json:"xpEarned"`
	Duration    time.Duration `json:"-"`
	DurationSec int           `json:"durationSec"`
	CompletedAt time.Time     `json:"completedAt"`
}
