package app

import (
	"skillswap_backend/docs"
	"skillswap_backend/internal/config"
	"skillswap_backend/internal/middleware"
	"skillswap_backend/internal/model"
	"skillswap_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	a.registerPublicRoutes(router, c)

	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg), middleware.ActivityMiddleware(repos.user, activityWriteInterval))
	{
		a.registerMemberRoutes(authGroup, c)
	}

	a.registerAdminRoutes(router, c, repos, cfg)
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)
	}
}

func (a *App) registerMemberRoutes(rg *gin.RouterGroup, c *controllers) {
	rg.GET("/me", c.auth.Me)
	rg.DELETE("/account", c.auth.DeleteAccount)

	// Profile
	rg.GET("/profile", c.profile.GetProfile)
	rg.PUT("/profile", c.profile.UpdateProfile)
	rg.POST("/profile/skills", c.profile.AddSkill)
	rg.DELETE("/profile/skills/:skillId", c.profile.RemoveSkill)
	rg.POST("/profile/photo", c.profile.UploadPhoto)

	// Other users
	rg.GET("/users", c.user.Browse)
	rg.GET("/users/:id", c.user.PublicProfile)

	// Skill catalog
	rg.GET("/skills", c.skill.ListSkills)
	rg.POST("/skills", c.skill.CreateSkill)
	rg.GET("/skills/suggest", c.skill.SuggestSkills)

	rg.GET("/dashboard", c.dashboard.GetDashboard)

	// Swaps and reviews
	swaps := rg.Group("/swaps")
	{
		swaps.POST("", c.swap.CreateSwap)
		swaps.GET("/:id", c.swap.GetSwap)
		swaps.POST("/:id/status", c.swap.UpdateStatus)
		swaps.POST("/:id/complete", c.swap.CompleteSwap)
		swaps.GET("/:id/review", c.swap.ReviewStatus)
		swaps.POST("/:id/review", c.swap.SubmitReview)
	}

	// Skill verification
	rg.POST("/quiz/submit", c.quiz.SubmitQuiz)
	rg.POST("/quiz/:skillId", c.quiz.GenerateQuiz)

	// AI helpers
	rg.GET("/ai/matches", c.ai.Matches)
	rg.POST("/ai/chat", c.ai.Chat)
}

func (a *App) registerAdminRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	admin := router.Group("/api/admin")
	admin.Use(middleware.AuthMiddleware(cfg), middleware.ActivityMiddleware(repos.user, activityWriteInterval))
	admin.Use(middleware.RoleMiddleware(model.Admin))
	{
		admin.POST("/swaps/:id/complete", c.swap.AdminComplete)
	}
}
