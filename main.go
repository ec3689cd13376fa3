package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nutrilens/nutrilens-backend/internal/ai"
	"github.com/nutrilens/nutrilens-backend/internal/audit"
	"github.com/nutrilens/nutrilens-backend/internal/azure"
	"github.com/nutrilens/nutrilens-backend/internal/config"
	"github.com/nutrilens/nutrilens-backend/internal/handler"
	"github.com/nutrilens/nutrilens-backend/internal/middleware"
	"github.com/nutrilens/nutrilens-backend/internal/security"
	"github.com/nutrilens/nutrilens-backend/internal/service"
	"github.com/nutrilens/nutrilens-backend/internal/store"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize Zap logger
	var logger *zap.Logger
	if cfg.Server.Environment == "production" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	logger.Info("Configuration loaded successfully",
		zap.String("environment", cfg.Server.Environment),
		zap.String("port", cfg.Server.Port),
	)

	// Initialize database connection pool with pgx
	pool, err := pgxpool.New(context.Background(), cfg.Database.URL)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer pool.Close()

	if err := pool.Ping(context.Background()); err != nil {
		logger.Fatal("Failed to ping database", zap.Error(err))
	}
	logger.Info("Successfully connected to database")

	// Optional at-rest encryption for the document store
	var encryptor *security.Encryptor
	if cfg.Security.EncryptionKey != "" {
		encryptor, err = security.NewEncryptor([]byte(cfg.Security.EncryptionKey))
		if err != nil {
			logger.Fatal("Failed to initialize document encryption", zap.Error(err))
		}
		logger.Info("Document encryption enabled")
	}

	// Document store and audit trail
	documents := store.NewDocuments(pool, encryptor, logger)
	if err := documents.EnsureSchema(context.Background()); err != nil {
		logger.Fatal("Failed to create documents schema", zap.Error(err))
	}

	auditLogger := audit.NewLogger(pool, logger)
	if err := auditLogger.EnsureSchema(context.Background()); err != nil {
		logger.Fatal("Failed to create audit schema", zap.Error(err))
	}

	// OpenAI client and the gateway wrapping it
	aiClient, err := ai.NewClient(
		cfg.OpenAI.APIKey,
		cfg.OpenAI.Model,
		cfg.OpenAI.SearchModel,
		logger,
	)
	if err != nil {
		logger.Fatal("Failed to initialize OpenAI client", zap.Error(err))
	}
	gateway := ai.NewGateway(aiClient, logger)

	// Blob storage for meal photos
	blobClient, err := azure.NewBlobStorageClient(
		cfg.Storage.AccountName,
		cfg.Storage.AccountKey,
		cfg.Storage.ImageContainer,
		logger,
	)
	if err != nil {
		logger.Fatal("Failed to initialize blob storage client", zap.Error(err))
	}

	// Initialize services
	navigator := service.NewNavigator(logger)
	statsService := service.NewDailyStatsService(documents, logger)
	profileService := service.NewProfileService(documents, logger)
	sessionService := service.NewSessionService(documents, logger)
	dashboardService := service.NewDashboardService(statsService, profileService, gateway, logger)
	scannerService := service.NewScannerService(gateway, profileService, statsService, blobClient, navigator, logger)
	chatService := service.NewChatService(gateway, profileService, logger)
	plannerService := service.NewPlannerService(gateway, profileService, logger)

	// Initialize handlers
	dashboardHandler := handler.NewDashboardHandler(dashboardService, sessionService, logger)
	statsHandler := handler.NewStatsHandler(statsService, profileService, logger)
	scannerHandler := handler.NewScannerHandler(scannerService, logger)
	chatHandler := handler.NewChatHandler(chatService, logger)
	plannerHandler := handler.NewPlannerHandler(plannerService, logger)
	profileHandler := handler.NewProfileHandler(profileService, chatService, navigator, auditLogger, logger)
	navigationHandler := handler.NewNavigationHandler(navigator, logger)

	// Set Gin mode
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Recovery must be first
	r.Use(middleware.RecoveryMiddleware(logger))

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"}, // Configure appropriately for production
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.RequestLoggingMiddleware(logger))
	r.Use(middleware.ErrorLoggingMiddleware(logger))

	r.GET("/health", func(c *gin.Context) {
		if err := pool.Ping(c.Request.Context()); err != nil {
			logger.Error("health check failed: database unreachable", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"database": "disconnected",
				"error":    err.Error(),
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":   "healthy",
			"database": "connected",
			"service":  "nutrilens-backend",
			"version":  "1.0.0",
		})
	})

	v1 := r.Group("/api/v1")
	{
		v1.GET("/dashboard/summary", dashboardHandler.GetSummary)

		v1.POST("/stats/water/add", statsHandler.AddWater)
		v1.POST("/stats/water/remove", statsHandler.RemoveWater)
		v1.GET("/stats/items", statsHandler.GetItems)
		v1.POST("/stats/items", statsHandler.LogItem)

		v1.POST("/scan/recognize", scannerHandler.Recognize)
		v1.POST("/scan/recipe", scannerHandler.Recipe)
		v1.POST("/scan/log", scannerHandler.Log)

		v1.GET("/chat/messages", chatHandler.GetMessages)
		v1.POST("/chat/messages", chatHandler.SendMessage)

		v1.GET("/planner/daily", plannerHandler.GetDailyPlan)
		v1.GET("/planner/weekly", plannerHandler.GetWeeklyPlan)

		v1.GET("/profile", profileHandler.GetProfile)
		v1.PATCH("/profile", profileHandler.UpdateField)
		v1.POST("/profile/reset", profileHandler.Reset)

		v1.GET("/view", navigationHandler.GetView)
		v1.PUT("/view", navigationHandler.SetView)
	}

	// Start server with graceful shutdown
	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: r,
	}

	go func() {
		logger.Info("Starting server", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	pool.Close()

	logger.Info("Server exited")
}
