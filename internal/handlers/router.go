package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/authuser-service/internal/services"
	"github.com/SAP-F-2025/authuser-service/internal/utils"
)

type HandlerManager struct {
	authHandler *AuthHandler
	userHandler *UserHandler
}

func NewHandlerManager(serviceManager services.ServiceManager, logger utils.Logger) *HandlerManager {
	return &HandlerManager{
		authHandler: NewAuthHandler(serviceManager.User(), logger),
		userHandler: NewUserHandler(serviceManager.User(), logger),
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	v1 := router.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/signup", hm.authHandler.RegisterUser)
		}

		users := v1.Group("/users")
		{
			users.GET("", hm.userHandler.ListUsers)
			users.GET("/export", hm.userHandler.ExportUsers)
			users.GET("/:userId", hm.userHandler.GetOneUser)
			users.DELETE("/:userId", hm.userHandler.DeleteUser)
			users.PUT("/:userId", hm.userHandler.UpdateUser)
			users.PUT("/:userId/password", hm.userHandler.UpdatePassword)
			users.PUT("/:userId/image", hm.userHandler.UpdateImage)
		}
	}

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"service": "authuser-service",
		})
	})
}
