package controller

import (
	"dataforge_backend/internal/service"
	"dataforge_backend/internal/util"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

type ProgressController struct {
	ProgressService    *service.ProgressService
	AchievementService *service.AchievementService
}

func NewProgressController(progressService *service.ProgressService, achievementService *service.AchievementService) *ProgressController {
	return &ProgressController{
		ProgressService:    progressService,
		AchievementService: achievementService,
	}
}

// GetProgress godoc
// @Summary 获取学习进度
// @Description 当前用户的进度存档，等级与级内XP由总XP实时推导
// @Tags 学习进度
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /api/progress [get]
func (c *ProgressController) GetProgress(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	snapshot := c.ProgressService.Snapshot(ctx.Request.Context(), user.UserID)
	rank := snapshot.Rank()

	util.Success(ctx, gin.H{
		"progress":  snapshot,
		"rank":      rank,
		"xpInLevel": snapshot.XPInLevel(),
	})
}

// AddXPRequest 加XP请求
type AddXPRequest struct {
	Amount int    `json:"amount" binding:"min=0"`
	Topic  string `json:"topic"`
}

// AddXP godoc
// @Summary 增加XP
// @Description 给当前用户加XP；可选主题只刷新最近练习时间，不加答题计数
// @Tags 学习进度
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body AddXPRequest true "XP数量与可选主题"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response "参数错误或未知主题"
// @Router /api/progress/xp [post]
func (c *ProgressController) AddXP(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req AddXPRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	snapshot, err := c.ProgressService.AddXP(ctx.Request.Context(), user.UserID, req.Amount, req.Topic)
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	util.Success(ctx, snapshot)
}

// UpdateStreak godoc
// @Summary 打卡并推进连续学习天数
// @Description 同天不变，隔天+1，断档重置为1；返回本次发放的奖励XP
// @Tags 学习进度
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /api/progress/streak [post]
func (c *ProgressController) UpdateStreak(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	result, err := c.ProgressService.UpdateStreak(ctx.Request.Context(), user.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	unlocked, err := c.AchievementService.EvaluateProgress(ctx.Request.Context(), user.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{
		"progress":             result.Progress,
		"bonusXp":              result.BonusXP,
		"unlockedAchievements": unlocked,
	})
}

// CompleteModule godoc
// @Summary 标记课程模块完成
// @Description 幂等，重复完成不会重复发XP
// @Tags 学习进度
// @Produce json
// @Security ApiKeyAuth
// @Param moduleId path string true "模块ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response "模块不存在"
// @Router /api/progress/modules/{moduleId}/complete [post]
func (c *ProgressController) CompleteModule(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	snapshot, err := c.ProgressService.CompleteModule(ctx.Request.Context(), user.UserID, ctx.Param("moduleId"))
	if err != nil {
		if errors.Is(err, util.ErrUnknownModule) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	unlocked, err := c.AchievementService.EvaluateProgress(ctx.Request.Context(), user.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{
		"progress":             snapshot,
		"unlockedAchievements": unlocked,
	})
}

// ResetProgress godoc
// @Summary 重置学习进度
// @Description 清空存档、测验会话与持久化槽，不可撤销
// @Tags 学习进度
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /api/progress/reset [post]
func (c *ProgressController) ResetProgress(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	snapshot, err := c.ProgressService.ResetProgress(ctx.Request.Context(), user.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, snapshot)
}

// ExportProgress godoc
// @Summary 导出学习进度
// @Description 下载 {userProgress, exportedAt} JSON 文件，一次性导出
// @Tags 学习进度
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} model.ProgressExport
// @Router /api/progress/export [get]
func (c *ProgressController) ExportProgress(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	export := c.ProgressService.Export(ctx.Request.Context(), user.UserID)

	filename := fmt.Sprintf("dataforge-progress-%s.json", export.ExportedAt.Format(util.DateFormat))
	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	ctx.JSON(http.StatusOK, export)
}

// ThemeRequest 主题偏好
type ThemeRequest struct {
	Theme string `json:"theme" binding:"required,oneof=light dark system"`
}

// GetTheme godoc
// @Summary 获取主题偏好
// @Tags 设置
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /api/settings/theme [get]
func (c *ProgressController) GetTheme(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	util.Success(ctx, gin.H{"theme": c.ProgressService.Theme(ctx.Request.Context(), user.UserID)})
}

// SetTheme godoc
// @Summary 更新主题偏好
// @Tags 设置
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body ThemeRequest true "主题"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response "参数错误"
// @Router /api/settings/theme [put]
func (c *ProgressController) SetTheme(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req ThemeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	c.ProgressService.SetTheme(ctx.Request.Context(), user.UserID, req.Theme)
	util.Success(ctx, gin.H{"theme": req.Theme})
}
