package http

import (
	"github.com/gin-gonic/gin"
	"github.com/sanjail3/fyndly-backend/internal/delivery/http/handler"
	"github.com/sanjail3/fyndly-backend/internal/delivery/http/middleware"
)

type Router struct {
	profileHandler   *handler.ProfileHandler
	recommendHandler *handler.RecommendHandler
	swipeHandler     *handler.SwipeHandler
	connectHandler   *handler.ConnectHandler
	authMiddleware   *middleware.AuthMiddleware
}

func NewRouter(
	profileHandler *handler.ProfileHandler,
	recommendHandler *handler.RecommendHandler,
	swipeHandler *handler.SwipeHandler,
	connectHandler *handler.ConnectHandler,
	authMiddleware *middleware.AuthMiddleware,
) *Router {
	return &Router{
		profileHandler:   profileHandler,
		recommendHandler: recommendHandler,
		swipeHandler:     swipeHandler,
		connectHandler:   connectHandler,
		authMiddleware:   authMiddleware,
	}
}

func (r *Router) Setup() *gin.Engine {
	router := gin.Default()

	// Health check (supports both GET and HEAD)
	healthHandler := func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	}
	router.GET("/health", healthHandler)
	router.HEAD("/health", healthHandler)

	// API v1
	v1 := router.Group("/api/v1")
	{
		protected := v1.Group("")
		protected.Use(r.authMiddleware.RequireAuth())
		{
			// Profile routes
			profile := protected.Group("/profile")
			{
				profile.GET("/me", r.profileHandler.GetMyProfile)
				profile.PUT("/me", r.profileHandler.UpdateMyProfile)
				profile.POST("/complete-onboarding", r.profileHandler.CompleteOnboarding)
				profile.GET("/:user_id", r.profileHandler.GetProfileByUserID)
			}

			// Recommendation queue routes
			recommendations := protected.Group("/recommendations")
			{
				recommendations.GET("", r.recommendHandler.GetQueue)
				recommendations.POST("/generate", r.recommendHandler.Generate)
			}

			// Swipe and match routes
			protected.POST("/swipe", r.swipeHandler.CreateSwipe)
			protected.GET("/matches", r.swipeHandler.ListMatches)

			// Connection request routes
			connections := protected.Group("/connections")
			{
				connections.GET("/requests", r.connectHandler.List)
				connections.POST("/requests", r.connectHandler.SendRequest)
				connections.POST("/requests/:id/respond", r.connectHandler.Respond)
			}
		}
	}

	return router
}
