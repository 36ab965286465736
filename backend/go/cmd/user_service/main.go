package main

import (
	"log"

	"LoveAI/backend/go/internal/config"
	"LoveAI/backend/go/internal/database/mysql"
	"LoveAI/backend/go/internal/models"
	"LoveAI/backend/go/internal/user_service/api"
	"LoveAI/backend/go/internal/user_service/service"
	"LoveAI/backend/go/internal/user_service/store"
	"LoveAI/backend/go/pkg/logger"

	"github.com/sirupsen/logrus"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig("backend/go/internal/config/config.yaml")
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	// Initialize logger
	level, err := logrus.ParseLevel(cfg.Logger.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.Init(level)
	appLogger := logger.New("user_service", "", "")

	appLogger.Info("Logger initialized")

	// Initialize database connection
	db, err := mysql.GetDB(&cfg.Databases.MySQL)
	if err != nil {
		appLogger.Fatal(err.Error())
	}
	appLogger.Info("Database connection established")

	// Auto-migrate database schema
	if err := db.AutoMigrate(&models.User{}); err != nil {
		appLogger.Fatal(err.Error())
	}
	appLogger.Info("Database migration completed")

	// Initialize dependencies (Store -> Service -> Handler)
	userStore := store.NewStore(db)
	userService := service.NewService(userStore, cfg.Auth.JwtSecret, cfg.Auth.TokenTTL)
	apiHandler := api.NewHandler(userService)
	appLogger.Info("Dependencies injected")

	// Setup and start Gin router
	router := api.SetupRouter(apiHandler, cfg.Auth.JwtSecret)
	appLogger.Info("Router setup completed")

	appLogger.Info("Starting server on " + cfg.User.ServerAddress)
	if err := router.Run(cfg.User.ServerAddress); err != nil {
		appLogger.Fatal(err.Error())
	}
}
