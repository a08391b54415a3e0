package main

import (
	"log"
	"os"
	"time"

	"pantrybook/internal/auth"
	"pantrybook/internal/config"
	"pantrybook/internal/database"
	"pantrybook/internal/email"
	"pantrybook/internal/handlers"
	"pantrybook/internal/logger"
	"pantrybook/internal/middleware"

	"github.com/gin-gonic/gin"
)

const tokenLifetime = 24 * time.Hour

func main() {
	cfg := config.Load()

	logger.Initialize(logger.ParseLevel(os.Getenv("LOG_LEVEL")), cfg.IsDevelopment())

	db, err := database.Initialize(cfg.DatabasePath)
	if err != nil {
		log.Fatal("Failed to initialize database:", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	tokens, err := auth.NewTokenService(cfg.SecretKey, tokenLifetime)
	if err != nil {
		log.Fatal("Failed to set up token service:", err)
	}

	emailService := email.NewService(cfg)
	if emailService.IsEnabled() {
		log.Println("Email service enabled with Mailgun")
	} else {
		log.Println("Email service disabled - Mailgun not configured")
	}

	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()

	r.Use(middleware.CORS(cfg.AllowedOrigins))
	r.Use(middleware.RateLimit(cfg))

	handlers.SetupRoutes(r, db, tokens, emailService, cfg)

	log.Printf("Server starting on port %s", cfg.Port)
	log.Fatal(r.Run(":" + cfg.Port))
}
