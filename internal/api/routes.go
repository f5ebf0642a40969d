package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"dancerfit/admin-dashboard/internal/logger"
	"dancerfit/admin-dashboard/internal/media"
	"dancerfit/admin-dashboard/internal/service"
	"dancerfit/admin-dashboard/internal/storage"
)

// Deps is everything the HTTP surface needs.
type Deps struct {
	AuthService    service.AuthService
	Workspaces     *service.Workspaces
	MediaURLs      storage.MediaURLResolver
	Prober         media.Prober
	MaxUploadBytes int64
	Log            *logger.Logger
}

func SetupRoutes(router *gin.Engine, deps Deps) {
	authHandler := NewAuthHandler(deps.AuthService, deps.Workspaces, deps.Log)
	exerciseHandler := NewExerciseHandler(deps.Workspaces, deps.MediaURLs, deps.Prober, deps.Log)
	planHandler := NewPlanHandler(deps.Workspaces, deps.MediaURLs, deps.Prober, deps.Log)

	authMiddleware := AuthMiddleware(deps.AuthService)
	uploadLimit := BodyLimit(deps.MaxUploadBytes)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiV1 := router.Group("/api/v1")
	{
		authGroup := apiV1.Group("/auth")
		{
			authGroup.POST("/login", authHandler.Login)
			authGroup.POST("/forgot-password", authHandler.ForgotPassword)
			authGroup.POST("/verify-otp", authHandler.VerifyOTP)
			authGroup.POST("/reset-password", authHandler.ResetPassword)
			authGroup.POST("/logout", authMiddleware, authHandler.Logout)
		}
	}

	protected := apiV1.Group("")
	protected.Use(authMiddleware)
	{
		protected.GET("/me", authHandler.Me)

		exerciseGroup := protected.Group("/exercises")
		{
			exerciseGroup.GET("", exerciseHandler.ListExercises)
			exerciseGroup.POST("", uploadLimit, exerciseHandler.CreateExercise)
			exerciseGroup.PUT("/:id", uploadLimit, exerciseHandler.UpdateExercise)
			exerciseGroup.DELETE("/:id", exerciseHandler.DeleteExercise)
		}

		planGroup := protected.Group("/training-plans")
		{
			planGroup.GET("", planHandler.ListPlans)
			planGroup.POST("", uploadLimit, planHandler.CreatePlan)
			planGroup.PUT("/:id", uploadLimit, planHandler.UpdatePlan)
			planGroup.DELETE("/:id", planHandler.DeletePlan)
			planGroup.POST("/:id/exercises", uploadLimit, planHandler.AddExercise)
		}
	}
}
