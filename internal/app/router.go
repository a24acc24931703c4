package app

import (
	"kvizmajstor_backend/docs"
	"kvizmajstor_backend/internal/config"
	"kvizmajstor_backend/internal/middleware"
	"kvizmajstor_backend/internal/util"
	"kvizmajstor_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())
	router.GET("/health", c.health.HealthCheck)
	router.GET("/sitemap.xml", c.sitemap.Sitemap)

	api := router.Group("/api")
	{
		api.GET("/", func(ctx *gin.Context) {
			util.Success(ctx, gin.H{"message": "KvizMajstor API"})
		})

		api.POST("/auth/signup", c.auth.Signup)
		api.POST("/auth/login", c.auth.Login)

		api.GET("/categories", c.category.List)

		api.GET("/quizzes", c.quiz.List)
		api.GET("/quizzes/:id", c.quiz.Get)
		api.GET("/quizzes/:id/questions", c.quiz.GetQuestions)

		// Anonymous play is allowed; a valid token upgrades the
		// submission to a persisted result.
		api.POST("/quizzes/:id/submit", middleware.TryAuthMiddleware(cfg), c.quiz.Submit)

		api.GET("/leaderboard", c.user.Leaderboard)
	}

	authorized := router.Group("/api")
	authorized.Use(middleware.AuthMiddleware(cfg))
	{
		authorized.GET("/auth/me", c.auth.Me)
		authorized.GET("/users/progress", c.user.Progress)

		authorized.GET("/quizzes/:id/edit", c.quiz.GetForEdit)
		authorized.POST("/quizzes", c.quiz.Create)
		authorized.PUT("/quizzes/:id", c.quiz.Update)
		authorized.DELETE("/quizzes/:id", c.quiz.Delete)
	}

	admin := router.Group("/api/admin")
	admin.Use(middleware.AuthMiddleware(cfg), middleware.AdminMiddleware(repos.user))
	{
		admin.GET("/users", c.admin.ListUsers)
		admin.PUT("/users/:id/creator", c.admin.ToggleCreator)
		admin.POST("/categories", c.admin.CreateCategory)
		admin.DELETE("/categories/:id", c.admin.DeleteCategory)
	}
}
