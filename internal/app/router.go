package app

import (
	"dataforge_backend/internal/config"
	"dataforge_backend/internal/middleware"

	"dataforge_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"dataforge_backend/docs"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 1. 公共路由(无需登录)
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)
	}

	// 2. 需要授权的路由
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg), middleware.ActivityMiddleware(repos.user))
	{
		authGroup.GET("/profile", c.auth.GetProfile)

		// 内容目录
		catalogGroup := authGroup.Group("/catalog")
		{
			catalogGroup.GET("/topics", c.catalog.ListTopics)
			catalogGroup.GET("/modules", c.catalog.ListModules)
			catalogGroup.GET("/modules/:moduleId", c.catalog.GetModule)
			catalogGroup.GET("/questions", c.catalog.ListQuestions)
			catalogGroup.GET("/flashcards", c.catalog.ListFlashcards)
		}

		// 学习进度
		progress := authGroup.Group("/progress")
		{
			progress.GET("", c.progress.GetProgress)
			progress.POST("/xp", c.progress.AddXP)
			progress.POST("/streak", c.progress.UpdateStreak)
			progress.POST("/modules/:moduleId/complete", c.progress.CompleteModule)
			progress.POST("/reset", c.progress.ResetProgress)
			progress.GET("/export", c.progress.ExportProgress)
		}

		// 测验
		quiz := authGroup.Group("/quiz")
		{
			quiz.POST("/start", c.quiz.StartQuiz)
			quiz.GET("/session", c.quiz.GetSession)
			quiz.POST("/answer", c.quiz.SubmitAnswer)
			quiz.POST("/finish", c.quiz.FinishQuiz)
		}

		// 成就
		authGroup.GET("/achievements", c.achievement.GetAchievements)
		authGroup.POST("/achievements/:achievementId/unlock", c.achievement.UnlockAchievement)

		// 设置
		authGroup.GET("/settings/theme", c.progress.GetTheme)
		authGroup.PUT("/settings/theme", c.progress.SetTheme)
	}
}
