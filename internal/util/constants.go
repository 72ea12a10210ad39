package util

const (
	DateFormat = "2006-01-02"
	TimeFormat = "2006-01-02 15:04:05"
)

const (
	// DefaultTheme 存档信封里 theme 的默认值
	DefaultTheme = "dark"

	// FastAnswerSec 低于该用时答对记为快速答对（speed 成就）
	FastAnswerSec = 10
)
