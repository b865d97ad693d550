package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/quinbingo/quinbingo-backend/controllers"
)

func SetupRoutes(r *gin.Engine, api *controllers.API) {
	root := r.Group("/api")

	// ----------------------
	// Public routes
	// ----------------------
	root.GET("/state", api.GetState)          // Current game snapshot
	root.POST("/admin/login", api.Login)      // Shared-password login
	root.POST("/admin/logout", api.Logout)    // Drop the session

	// ----------------------
	// Admin routes
	// ----------------------
	admin := root.Group("/", api.RequireAdmin)
	admin.POST("/cards", api.RegisterCard)        // Register a player card
	admin.POST("/game/start", api.StartGame)      // Start the countdown
	admin.POST("/game/reset", api.ResetGame)      // Full reset
	admin.POST("/uploads/sound", api.UploadSound) // Replace a sound slot
	admin.POST("/uploads/image", api.UploadImage) // Sponsor/prize artwork
}
