package controller

import (
	"dataforge_backend/internal/model"
	"dataforge_backend/internal/service"
	"dataforge_backend/internal/util"
	"errors"
	"time"

	"github.com/gin-gonic/gin"
)

type QuizController struct {
	ProgressService    *service.ProgressService
	AchievementService *service.AchievementService
}

func NewQuizController(progressService *service.ProgressService, achievementService *service.AchievementService) *QuizController {
	return &QuizController{
		ProgressService:    progressService,
		AchievementService: achievementService,
	}
}

// quizQuestionView 出题视图：不带答案与解析
type quizQuestionView struct {
	ID           string             `json:"id"`
	Topic        string             `json:"topic"`
	Difficulty   model.Difficulty   `json:"difficulty"`
	Type         model.QuestionType `json:"type"`
	Prompt       string             `json:"prompt"`
	Options      []string           `json:"options,omitempty"`
	Hints        []string           `json:"hints,omitempty"`
	XPReward     int                `json:"xpReward"`
	TimeLimitSec int                `json:"timeLimitSec,omitempty"`
}

type quizSessionView struct {
	ID         string             `json:"id"`
	Topic      string             `json:"topic,omitempty"`
	Difficulty model.Difficulty   `json:"difficulty,omitempty"`
	Questions  []quizQuestionView `json:"questions"`
	Answered   int                `json:"answered"`
	StartedAt  time.Time          `json:"startedAt"`
}

func newQuizSessionView(sess *model.QuizSession) quizSessionView {
	view := quizSessionView{
		ID:         sess.ID,
		Topic:      sess.Topic,
		Difficulty: sess.Difficulty,
		Questions:  make([]quizQuestionView, len(sess.Questions)),
		Answered:   len(sess.Answers),
		StartedAt:  sess.StartedAt,
	}
	for i, q := range sess.Questions {
		view.Questions[i] = quizQuestionView{
			ID:           q.ID,
			Topic:        q.Topic,
			Difficulty:   q.Difficulty,
			Type:         q.Type,
			Prompt:       q.Prompt,
			Options:      q.Options,
			Hints:        q.Hints,
			XPReward:     q.XPReward,
			TimeLimitSec: q.TimeLimitSec,
		}
	}
	return view
}

// StartQuizRequest 开始测验请求
type StartQuizRequest struct {
	Topic      string `json:"topic"`
	Difficulty string `json:"difficulty" binding:"omitempty,oneof=beginner intermediate advanced"`
	Count      int    `json:"count" binding:"omitempty,min=1,max=50"`
}

// StartQuiz godoc
// @Summary 开始测验
// @Description 按主题/难度抽题开启会话；题目不带答案下发
// @Tags 测验
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body StartQuizRequest true "抽题条件"
// @Success 201 {object} util.Response
// @Failure 400 {object} util.Response "未知主题、题池为空或已有进行中的会话"
// @Router /api/quiz/start [post]
func (c *QuizController) StartQuiz(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req StartQuizRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	if req.Count == 0 {
		req.Count = 5
	}

	sess, err := c.ProgressService.StartQuiz(ctx.Request.Context(), user.UserID, req.Topic, model.Difficulty(req.Difficulty), req.Count)
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	util.Created(ctx, newQuizSessionView(sess))
}

// GetSession godoc
// @Summary 查看当前测验会话
// @Tags 测验
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response "没有进行中的会话"
// @Router /api/quiz/session [get]
func (c *QuizController) GetSession(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	sess := c.ProgressService.ActiveSession(ctx.Request.Context(), user.UserID)
	if sess == nil {
		util.NotFound(ctx)
		return
	}

	util.Success(ctx, newQuizSessionView(sess))
}

// AnswerRequest 作答请求；超时提交也走这条路径（UI侧倒计时到点后提交当前选择）
type AnswerRequest struct {
	QuestionID   string `json:"questionId" binding:"required"`
	Answer       string `json:"answer"`
	TimeSpentSec int    `json:"timeSpentSec" binding:"omitempty,min=0"`
}

// SubmitAnswer godoc
// @Summary 提交答案
// @Description 对照题库判分并记录；没有进行中的会话时返回当前进度不做任何变更
// @Tags 测验
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body AnswerRequest true "答案"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response "参数错误或未知题目"
// @Router /api/quiz/answer [post]
func (c *QuizController) SubmitAnswer(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req AnswerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	question, correct, err := c.ProgressService.GradeAnswer(req.QuestionID, req.Answer)
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	snapshot, err := c.ProgressService.RecordQuizResult(ctx.Request.Context(), user.UserID, req.QuestionID, correct, req.TimeSpentSec)
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	util.Success(ctx, gin.H{
		"correct":     correct,
		"answer":      question.Answer,
		"explanation": question.Explanation,
		"progress":    snapshot,
	})
}

// FinishQuiz godoc
// @Summary 结束测验
// @Description 关闭会话、返回汇总并判定 speed 成就
// @Tags 测验
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response "没有进行中的会话"
// @Router /api/quiz/finish [post]
func (c *QuizController) FinishQuiz(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	summary, err := c.ProgressService.FinishQuiz(ctx.Request.Context(), user.UserID)
	if err != nil {
		if errors.Is(err, util.ErrNoActiveQuiz) {
			util.BadRequest(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	unlocked, err := c.AchievementService.EvaluateQuiz(ctx.Request.Context(), user.UserID, summary)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	more, err := c.AchievementService.EvaluateProgress(ctx.Request.Context(), user.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	unlocked = append(unlocked, more...)

	util.Success(ctx, gin.H{
		"summary":              summary,
		"unlockedAchievements": unlocked,
	})
}
