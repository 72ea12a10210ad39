package controller

import (
	"dataforge_backend/internal/service"
	"dataforge_backend/internal/util"
	"errors"

	"github.com/gin-gonic/gin"
)

type AchievementController struct {
	AchievementService *service.AchievementService
}

func NewAchievementController(achievementService *service.AchievementService) *AchievementController {
	return &AchievementController{AchievementService: achievementService}
}

// GetAchievements godoc
// @Summary 获取成就列表
// @Description 成就目录及当前用户的解锁状态
// @Tags 成就系统
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /api/achievements [get]
func (c *AchievementController) GetAchievements(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	util.Success(ctx, c.AchievementService.Overview(ctx.Request.Context(), user.UserID))
}

// UnlockAchievement godoc
// @Summary 解锁成就
// @Description 幂等；首次解锁发放成就XP奖励
// @Tags 成就系统
// @Produce json
// @Security ApiKeyAuth
// @Param achievementId path string true "成就ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response "成就不存在"
// @Router /api/achievements/{achievementId}/unlock [post]
func (c *AchievementController) UnlockAchievement(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	snapshot, newly, err := c.AchievementService.Unlock(ctx.Request.Context(), user.UserID, ctx.Param("achievementId"))
	if err != nil {
		if errors.Is(err, util.ErrUnknownAchievement) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, gin.H{
		"progress": snapshot,
		"newly":    newly,
	})
}
