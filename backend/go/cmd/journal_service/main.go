package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"LoveAI/backend/go/internal/config"
	"LoveAI/backend/go/internal/database/minio"
	"LoveAI/backend/go/internal/database/mongo"
	"LoveAI/backend/go/internal/journal_service/api"
	"LoveAI/backend/go/internal/journal_service/service"
	"LoveAI/backend/go/internal/journal_service/storage"
	"LoveAI/backend/go/internal/journal_service/store"
	"LoveAI/backend/go/internal/models"
	"LoveAI/backend/go/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig("backend/go/internal/config/config.yaml")
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logLevel, err := logrus.ParseLevel(cfg.Logger.Level)
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.Init(logLevel)
	serviceLogger := logger.New("journal_service", "", "")

	// Connect to MongoDB using the singleton GetDatabase
	db, err := mongo.GetDatabase(&cfg.Databases.MongoDB)
	if err != nil {
		serviceLogger.WithError(models.ErrorInfo{Message: err.Error()}).Fatal("Failed to connect to MongoDB")
	}
	serviceLogger.Info("Successfully connected to MongoDB")

	// Connect to MinIO for prospect photos
	minioClient, err := minio.GetClient(&cfg.Databases.MinIO)
	if err != nil {
		serviceLogger.WithError(models.ErrorInfo{Message: err.Error()}).Fatal("Failed to connect to MinIO")
	}
	serviceLogger.Info("Successfully connected to MinIO")

	// Create components with logger injection
	profileStore := store.NewMongoProfileStore(db)
	prospectStore := store.NewMongoProspectStore(db)
	noteStore := store.NewMongoNoteStore(db)
	dateStore := store.NewMongoDateStore(db)
	photoStore := storage.NewPhotoStore(minioClient, serviceLogger)
	journalService := service.NewService(profileStore, prospectStore, noteStore, dateStore, photoStore, serviceLogger)

	// Setup HTTP server
	gin.SetMode(gin.ReleaseMode)
	router := gin.Default()
	apiHandler := api.NewAPI(journalService, serviceLogger)
	api.RegisterRoutes(router, apiHandler, cfg.Auth.JwtSecret)

	srv := &http.Server{
		Addr:    cfg.Journal.ServerAddress,
		Handler: router,
	}

	// Start server
	go func() {
		serviceLogger.Info("Starting HTTP server on " + srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serviceLogger.WithError(models.ErrorInfo{Message: err.Error()}).Fatal("HTTP server failed to start")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	serviceLogger.Info("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		serviceLogger.WithError(models.ErrorInfo{Message: err.Error()}).Fatal("Server forced to shutdown")
	}

	if err := mongo.Close(context.Background()); err != nil {
		serviceLogger.WithError(models.ErrorInfo{Message: err.Error()}).Error("Error disconnecting from MongoDB")
	}

	serviceLogger.Info("Server gracefully stopped")
}
