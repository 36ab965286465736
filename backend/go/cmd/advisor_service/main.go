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

	advisorapi "LoveAI/backend/go/internal/advisor_service/api"
	"LoveAI/backend/go/internal/advisor_service/service"
	"LoveAI/backend/go/internal/config"
	"LoveAI/backend/go/internal/database/mongo"
	"LoveAI/backend/go/internal/database/redis"
	"LoveAI/backend/go/internal/journal_service/store"
	"LoveAI/backend/go/internal/llm"
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
	serviceLogger := logger.New("advisor_service", "", "")

	// The advisor reads the journal collections directly (read-only).
	db, err := mongo.GetDatabase(&cfg.Databases.MongoDB)
	if err != nil {
		serviceLogger.WithError(models.ErrorInfo{Message: err.Error()}).Fatal("Failed to connect to MongoDB")
	}
	serviceLogger.Info("Successfully connected to MongoDB")

	// Redis keeps per-user conversation history.
	redisClient, err := redis.GetClient(&cfg.Databases.Redis)
	if err != nil {
		serviceLogger.WithError(models.ErrorInfo{Message: err.Error()}).Fatal("Failed to connect to Redis")
	}
	serviceLogger.Info("Successfully connected to Redis")

	// LLM provider. The client is created even without credentials so the
	// service starts and reports its misconfiguration per request.
	ctx := context.Background()
	llmClient, err := llm.NewClient(ctx, cfg.LLM)
	if err != nil {
		serviceLogger.WithError(models.ErrorInfo{Message: err.Error()}).Fatal("Failed to create LLM client")
	}
	if !llm.Configured(cfg.LLM) {
		serviceLogger.Warn("LLM provider has no credentials configured; chat requests will fail until an API key is set")
	}

	// Create components with logger injection
	profileStore := store.NewMongoProfileStore(db)
	prospectStore := store.NewMongoProspectStore(db)
	noteStore := store.NewMongoNoteStore(db)
	dateStore := store.NewMongoDateStore(db)

	limiter, err := advisorapi.NewRateLimiter(cfg.Middleware.RateLimiter)
	if err != nil {
		serviceLogger.WithError(models.ErrorInfo{Message: err.Error()}).Fatal("Failed to create rate limiter")
	}
	breaker, err := advisorapi.NewCircuitBreaker(cfg.Middleware.CircuitBreaker)
	if err != nil {
		serviceLogger.WithError(models.ErrorInfo{Message: err.Error()}).Fatal("Failed to create circuit breaker")
	}

	builder := service.NewContextBuilder(profileStore, prospectStore, noteStore, dateStore, serviceLogger)
	historyStore := service.NewHistoryStore(redisClient,
		time.Duration(cfg.Advisor.HistoryTTL)*time.Second, cfg.Advisor.HistoryMaxTurns)
	advisor := service.NewAdvisor(llmClient, llm.Configured(cfg.LLM), breaker, builder, prospectStore, historyStore, serviceLogger)

	// Setup HTTP server
	gin.SetMode(gin.ReleaseMode)
	router := gin.Default()
	apiHandler := advisorapi.NewAPI(advisor, serviceLogger)
	advisorapi.RegisterRoutes(router, apiHandler, cfg.Auth.JwtSecret, limiter)

	srv := &http.Server{
		Addr:    cfg.Advisor.ServerAddress,
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

	if err := redis.Close(); err != nil {
		serviceLogger.WithError(models.ErrorInfo{Message: err.Error()}).Error("Error disconnecting from Redis")
	}
	if err := mongo.Close(context.Background()); err != nil {
		serviceLogger.WithError(models.ErrorInfo{Message: err.Error()}).Error("Error disconnecting from MongoDB")
	}

	serviceLogger.Info("Server gracefully stopped")
}
