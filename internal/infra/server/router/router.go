// Package router sets up the HTTP routing for the application.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/finance-assistant/backend/internal/integration/entrypoint/controller"
	"github.com/finance-assistant/backend/internal/integration/entrypoint/middleware"
)

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine                   *gin.Engine
	healthController         *controller.HealthController
	authController           *controller.AuthController
	chatController           *controller.ChatController
	categorizationController *controller.CategorizationController
	transactionController    *controller.TransactionController
	authMiddleware           *middleware.AuthMiddleware
}

// NewRouter creates a new router instance with all dependencies.
func NewRouter(
	healthController *controller.HealthController,
	authController *controller.AuthController,
	chatController *controller.ChatController,
	categorizationController *controller.CategorizationController,
	transactionController *controller.TransactionController,
	authMiddleware *middleware.AuthMiddleware,
) *Router {
	return &Router{
		healthController:         healthController,
		authController:           authController,
		chatController:           chatController,
		categorizationController: categorizationController,
		transactionController:    transactionController,
		authMiddleware:           authMiddleware,
	}
}

// Setup configures and returns the Gin engine with all routes.
func (r *Router) Setup(environment string) *gin.Engine {
	if environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else if environment == "test" {
		gin.SetMode(gin.TestMode)
	}

	r.engine = gin.Default()

	r.setupHealthRoutes()
	r.setupAPIRoutes()

	return r.engine
}

// setupHealthRoutes configures health check endpoints.
func (r *Router) setupHealthRoutes() {
	r.engine.GET("/health", r.healthController.Check)
}

// setupAPIRoutes configures the main API routes.
func (r *Router) setupAPIRoutes() {
	v1 := r.engine.Group("/api/v1")
	{
		// Auth routes (only setup if auth controller is available)
		if r.authController != nil {
			auth := v1.Group("/auth")
			{
				auth.POST("/register", r.authController.Register)
				auth.POST("/login", r.authController.Login)
			}
		}

		// Chat routes (require authentication)
		if r.chatController != nil && r.authMiddleware != nil {
			chat := v1.Group("/chat")
			chat.Use(r.authMiddleware.Authenticate())
			{
				chat.POST("/message", r.chatController.SendMessage)
				chat.GET("/suggestions", r.chatController.GetSuggestions)
				chat.GET("/conversations/:id", r.chatController.GetHistory)
				chat.DELETE("/conversations/:id", r.chatController.DeleteConversation)
			}
		}

		// Transaction reporting routes (require authentication)
		if r.transactionController != nil && r.authMiddleware != nil {
			transactions := v1.Group("/transactions")
			transactions.Use(r.authMiddleware.Authenticate())
			{
				transactions.GET("/summary/stats", r.transactionController.GetSummaryStats)
			}
		}

		// Categorization routes (require authentication)
		if r.categorizationController != nil && r.authMiddleware != nil {
			categorization := v1.Group("/categorization")
			categorization.Use(r.authMiddleware.Authenticate())
			{
				categorization.POST("/categorize", r.categorizationController.Categorize)
				categorization.POST("/retrain", r.categorizationController.Retrain)
			}
		}
	}
}

// Engine returns the underlying Gin engine.
func (r *Router) Engine() *gin.Engine {
	return r.engine
}
