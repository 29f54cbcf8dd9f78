package app

import (
	"refcheck_backend/docs"
	"refcheck_backend/internal/config"
	"refcheck_backend/internal/middleware"
	"refcheck_backend/internal/model"

	"refcheck_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 1. 公共路由(无需登录)
	a.registerPublicRoutes(router, c)

	// 2. 需要授权的路由
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg), middleware.RoleMiddleware(model.HRStaff))
	{
		a.registerHRRoutes(authGroup, c)
	}
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)
	}

	router.GET("/health", c.health.HealthCheck)

	// 推荐人填表入口，token 即凭证
	form := router.Group("/form")
	{
		form.GET("/:token", c.form.ViewForm)
		form.POST("/:token/submit", c.form.SubmitForm)
	}
}

func (a *App) registerHRRoutes(rg *gin.RouterGroup, c *controllers) {
	rg.GET("/me", c.auth.Me)
	rg.GET("/dashboard", c.dashboard.Stats)

	// 问卷模板
	rg.POST("/templates", c.template.Create)
	rg.GET("/templates", c.template.List)
	rg.GET("/templates/:id", c.template.Get)
	rg.PUT("/templates/:id", c.template.Update)
	rg.DELETE("/templates/:id", c.template.Delete)
	rg.POST("/templates/:id/duplicate", c.template.Duplicate)
	rg.POST("/templates/:id/questions", c.template.AddQuestion)
	rg.PUT("/templates/:id/questions/:questionId", c.template.UpdateQuestion)
	rg.DELETE("/templates/:id/questions/:questionId", c.template.RemoveQuestion)
	rg.GET("/templates/:id/responses/export", c.response.ExportTemplateXLSX)

	// 推荐人
	rg.POST("/referees", c.referee.Create)
	rg.GET("/referees", c.referee.List)
	rg.GET("/referees/:id", c.referee.Get)
	rg.PUT("/referees/:id", c.referee.Update)
	rg.DELETE("/referees/:id", c.referee.Deactivate)

	// 表单分派
	rg.POST("/forms", c.form.Assign)
	rg.GET("/forms", c.form.List)
	rg.GET("/forms/:id", c.form.Get)
	rg.DELETE("/forms/:id", c.form.Delete)

	// 回复
	rg.GET("/responses", c.response.List)
	rg.GET("/responses/:id", c.response.Get)
	rg.GET("/responses/:id/pdf", c.response.DownloadPDF)
}
