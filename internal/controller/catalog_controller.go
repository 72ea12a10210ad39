package controller

import (
	"dataforge_backend/internal/model"
	"dataforge_backend/internal/service"
	"dataforge_backend/internal/util"
	"errors"

	"github.com/gin-gonic/gin"
)

type CatalogController struct {
	CatalogService *service.CatalogService
}

func NewCatalogController(catalogService *service.CatalogService) *CatalogController {
	return &CatalogController{CatalogService: catalogService}
}

// ListTopics godoc
// @Summary 获取主题列表
// @Description 内容目录中的全部知识主题
// @Tags 内容目录
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /api/catalog/topics [get]
func (c *CatalogController) ListTopics(ctx *gin.Context) {
	util.Success(ctx, c.CatalogService.ListTopics())
}

// ListModules godoc
// @Summary 获取课程模块列表
// @Description 全部课程模块，附带当前用户视角的锁定与完成状态
// @Tags 内容目录
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /api/catalog/modules [get]
func (c *CatalogController) ListModules(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	util.Success(ctx, c.CatalogService.ListModules(ctx.Request.Context(), user.UserID))
}

// GetModule godoc
// @Summary 获取单个课程模块
// @Tags 内容目录
// @Produce json
// @Security ApiKeyAuth
// @Param moduleId path string true "模块ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response "模块不存在"
// @Router /api/catalog/modules/{moduleId} [get]
func (c *CatalogController) GetModule(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	view, err := c.CatalogService.GetModule(ctx.Request.Context(), user.UserID, ctx.Param("moduleId"))
	if err != nil {
		if errors.Is(err, util.ErrUnknownModule) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, view)
}

// ListQuestions godoc
// @Summary 浏览题库
// @Description 按主题和难度过滤题目（复习模式，含答案与解析）
// @Tags 内容目录
// @Produce json
// @Security ApiKeyAuth
// @Param topic query string false "主题ID"
// @Param difficulty query string false "难度" Enums(beginner, intermediate, advanced)
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response "未知主题"
// @Router /api/catalog/questions [get]
func (c *CatalogController) ListQuestions(ctx *gin.Context) {
	topic := ctx.Query("topic")
	difficulty := model.Difficulty(ctx.Query("difficulty"))

	questions, err := c.CatalogService.ListQuestions(topic, difficulty)
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	util.Success(ctx, questions)
}

// ListFlashcards godoc
// @Summary 获取闪卡
// @Tags 内容目录
// @Produce json
// @Security ApiKeyAuth
// @Param topic query string false "主题ID"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response "未知主题"
// @Router /api/catalog/flashcards [get]
func (c *CatalogController) ListFlashcards(ctx *gin.Context) {
	cards, err := c.CatalogService.ListFlashcards(ctx.Query("topic"))
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	util.Success(ctx, cards)
}
