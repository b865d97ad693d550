package main

import (
	"net/http"
	"time"

	"github.com/quinbingo/quinbingo-backend/config"
	"github.com/quinbingo/quinbingo-backend/controllers"
	"github.com/quinbingo/quinbingo-backend/game"
	"github.com/quinbingo/quinbingo-backend/routes"
	"github.com/quinbingo/quinbingo-backend/services"
	"github.com/quinbingo/quinbingo-backend/storage"
	"github.com/quinbingo/quinbingo-backend/utils/logger"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// setupRouter initializes Gin routes and middleware
func setupRouter(cfg *config.Config, api *controllers.API, hub *services.Hub) *gin.Engine {
	r := gin.Default()

	// Middleware
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Setup REST routes
	routes.SetupRoutes(r, api)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "timestamp": time.Now()})
	})

	// WebSocket viewer endpoint
	r.GET("/ws", hub.HandleWebSocket)

	// Static assets (sounds, sponsor and prize images, frontend)
	r.Static("/static", "./static")

	return r
}

func main() {
	// Load env variables
	cfg := config.Load()

	// Broadcast: websocket hub, plus a NATS mirror when configured
	hub := services.NewHub()
	broadcaster := services.MultiBroadcaster{hub}
	if cfg.NATSURL != "" {
		nc, err := services.NewNATSPublisher(cfg.NATSURL)
		if err != nil {
			logger.Fatalf("Failed to connect to NATS at %s: %v", cfg.NATSURL, err)
		}
		defer nc.Close()
		broadcaster = append(broadcaster, nc)
	}

	// Game core: snapshot store + injected collaborators
	store := storage.NewFileStore(cfg.DataFile)
	g := game.New(store, broadcaster, cfg.Countdown, cfg.DrawInterval)
	hub.SetSnapshot(g.Snapshot)

	api := controllers.NewAPI(g, cfg)
	router := setupRouter(cfg, api, hub)

	logger.Infof("🚀 QuinBingo server starting on port %s", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		logger.Fatalf("Failed to start server: %v", err)
	}
}
