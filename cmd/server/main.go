package main

import (
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/magnatehq/magnate-server/internal/api"
	"github.com/magnatehq/magnate-server/internal/database"
	"github.com/magnatehq/magnate-server/internal/logger"
	"github.com/magnatehq/magnate-server/internal/middleware"
	"github.com/magnatehq/magnate-server/pkg/config"
)

func main() {
	// Load environment variables
	envLoaded := godotenv.Load() == nil

	// Initialize configuration
	cfg := config.New()
	lg := logger.NewSimpleLogger(cfg.IsDevelopment())
	if !envLoaded {
		lg.Info("No .env file found")
	}

	// Initialize database
	db, err := database.New(cfg.DatabaseURL)
	if err != nil {
		lg.Fatal("Failed to connect to database", err)
	}
	defer db.Close()

	// Run migrations
	if err := database.RunMigrations(cfg.DatabaseURL); err != nil {
		lg.Fatal("Failed to run migrations", err)
	}

	// Set Gin mode based on environment
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize router
	r := gin.New()

	// Add security middleware
	r.Use(middleware.LoggingMiddleware())
	r.Use(middleware.SecurityHeadersMiddleware())
	r.Use(middleware.CORSMiddleware(cfg))
	r.Use(middleware.InputValidationMiddleware())

	// Add rate limiting in production
	if cfg.EnableRateLimit {
		r.Use(middleware.RateLimitingMiddleware())
	}

	// Add recovery middleware
	r.Use(gin.Recovery())

	// Setup API routes
	if err := api.SetupRoutes(r, db.DB, cfg); err != nil {
		lg.Fatal("Failed to setup API routes", err)
	}

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.Port
	}

	lg.Info("Server starting", "port", port)
	if err := r.Run(":" + port); err != nil {
		lg.Fatal("Failed to start server", err)
	}
}
