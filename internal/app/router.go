package app

import (
	"aprendo_backend/docs"
	"aprendo_backend/internal/config"
	"aprendo_backend/internal/middleware"
	"aprendo_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())
	router.GET("/health", c.health.Check)

	// 公共路由（无需登录）
	public := router.Group("/api")
	{
		public.POST("/auth/register", c.auth.Register)
		public.POST("/auth/login", c.auth.Login)
		public.GET("/courses", c.content.ListCourses)
		public.GET("/courses/:id", c.content.GetCourse)
		public.GET("/courses/:id/topics", c.content.ListTopics)
		public.GET("/topics/:id/theories", c.content.GetTheories)
	}

	// 需要授权的路由
	authGroup := router.Group("/api")
	authGroup.Use(middleware.JWTAuth(cfg.JWT.Secret))
	{
		authGroup.GET("/auth/profile", c.auth.Profile)
		authGroup.POST("/theories/media", c.content.UploadTheoryMedia)

		practiceGroup := authGroup.Group("/practice")
		{
			practiceGroup.POST("/sessions", c.practice.Start)
			practiceGroup.GET("/session", c.practice.State)
			practiceGroup.DELETE("/session", c.practice.Discard)
			practiceGroup.POST("/session/answer", c.practice.Answer)
			practiceGroup.POST("/session/next", c.practice.Next)
			practiceGroup.POST("/session/previous", c.practice.Previous)
			practiceGroup.POST("/session/select", c.practice.Select)
			practiceGroup.POST("/session/finish", c.practice.Finish)
			practiceGroup.GET("/result", c.practice.Result)
			practiceGroup.GET("/attempts", c.practice.History)
		}

		authGroup.GET("/progress", c.progress.Overview)
		authGroup.GET("/progress/badges", c.progress.Badges)
	}
}
