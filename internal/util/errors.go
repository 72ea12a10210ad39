package util

import "errors"

var (
	ErrUserNotFound       = errors.New("用户不存在")
	ErrEmailRegistered    = errors.New("该邮箱已被注册")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnknownTopic       = errors.New("unknown topic id")
	ErrUnknownModule      = errors.New("unknown module id")
	ErrUnknownQuestion    = errors.New("unknown question id")
	ErrUnknownAchievement = errors.New("unknown achievement id")
	ErrNegativeXP         = errors.New("xp amount must be non-negative")
	ErrNoActiveQuiz       = errors.New("no active quiz session")
	ErrQuizAlreadyActive  = errors.New("a quiz session is already active")
	ErrNoQuestions        = errors.New("no questions match the requested filter")
)
