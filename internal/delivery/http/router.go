package http

import (
	"github.com/gin-gonic/gin"
	"github.com/zawajapp/zawaj-backend/internal/delivery/http/handler"
	"github.com/zawajapp/zawaj-backend/internal/delivery/http/middleware"
)

type Router struct {
	feedHandler          *handler.FeedHandler
	compatibilityHandler *handler.CompatibilityHandler
	matchHandler         *handler.MatchHandler
	guardianHandler      *handler.GuardianHandler
	agentHandler         *handler.AgentHandler
	authMiddleware       *middleware.AuthMiddleware
}

func NewRouter(
	feedHandler *handler.FeedHandler,
	compatibilityHandler *handler.CompatibilityHandler,
	matchHandler *handler.MatchHandler,
	guardianHandler *handler.GuardianHandler,
	agentHandler *handler.AgentHandler,
	authMiddleware *middleware.AuthMiddleware,
) *Router {
	return &Router{
		feedHandler:          feedHandler,
		compatibilityHandler: compatibilityHandler,
		matchHandler:         matchHandler,
		guardianHandler:      guardianHandler,
		agentHandler:         agentHandler,
		authMiddleware:       authMiddleware,
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
			// Feed routes
			feed := protected.Group("/feed")
			{
				feed.GET("/candidates", r.feedHandler.GetCandidates)
				feed.GET("/preferences", r.feedHandler.GetPreferences)
				feed.PUT("/preferences", r.feedHandler.UpdatePreferences)
			}

			// Compatibility routes
			protected.POST("/compatibility/assess", r.compatibilityHandler.Assess)

			// Swipe and match routes
			protected.POST("/swipe", r.matchHandler.CreateSwipe)
			matches := protected.Group("/matches")
			{
				matches.GET("", r.matchHandler.ListMatches)
				matches.GET("/:id", r.matchHandler.GetMatch)
			}

			// Guardian routes
			protected.POST("/guardian/approvals", r.guardianHandler.RecordApproval)

			// Agent routes
			agents := protected.Group("/agents")
			{
				agents.GET("/status", r.agentHandler.Status)
				agents.POST("/moderate", r.agentHandler.Moderate)
				agents.POST("/verify", r.agentHandler.Verify)
			}
		}
	}

	return router
}
