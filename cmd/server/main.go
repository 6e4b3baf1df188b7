package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Zfocc31/mern-url-shortener/internal/cache"
	"github.com/Zfocc31/mern-url-shortener/internal/config"
	"github.com/Zfocc31/mern-url-shortener/internal/domain"
	"github.com/Zfocc31/mern-url-shortener/internal/handler"
	postgresRepo "github.com/Zfocc31/mern-url-shortener/internal/repository/postgres"
	"github.com/Zfocc31/mern-url-shortener/internal/service"
	appLog "github.com/Zfocc31/mern-url-shortener/pkg/logger"
)

// gormWriter adapts our logger to gorm's logger.Writer interface
type gormWriter struct {
	logger *appLog.Logger
}

// Printf implements the logger.Writer interface
func (w *gormWriter) Printf(format string, args ...interface{}) {
	w.logger.Info(fmt.Sprintf(format, args...))
}

func main() {
	// Load environment variables from .env file (development only)
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	appLogger := appLog.NewLogger()
	defer appLogger.Sync()
	appLogger.Info("Starting URL shortener service")

	cfg, err := config.LoadConfig()
	if err != nil {
		appLogger.Fatal("Failed to load configuration", "error", err)
	}

	db, err := initDatabase(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize database", "error", err)
	}

	// Redis is a performance optimization for the redirect path, not a
	// dependency; the service runs without it
	redisCache, err := cache.NewRedisCache(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		appLogger.Warn("Redis unavailable, continuing without cache", "error", err)
		redisCache = nil
	}

	linkRepo := postgresRepo.NewLinkRepository(db)
	linkService := service.NewLinkService(linkRepo, redisCache, cfg, appLogger)
	linkHandler := handler.NewLinkHandler(linkService, appLogger)

	router := setupRouter(linkHandler, cfg, appLogger)

	srv := &http.Server{
		Addr:           fmt.Sprintf(":%s", cfg.ServerPort),
		Handler:        router,
		ReadTimeout:    15 * time.Second,
		WriteTimeout:   15 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 20, // 1 MB
	}

	// Start server in a goroutine for graceful shutdown
	go func() {
		appLogger.Info("Server starting", "port", cfg.ServerPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Fatal("Failed to start server", "error", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Error("Server forced to shutdown", "error", err)
	}

	if redisCache != nil {
		if err := redisCache.Close(); err != nil {
			appLogger.Error("Error closing Redis connection", "error", err)
		}
	}

	appLogger.Info("Server exited successfully")
}

// initDatabase initializes the PostgreSQL connection with retry logic,
// connection pooling and schema migration
func initDatabase(cfg *config.Config, log *appLog.Logger) (*gorm.DB, error) {
	gormLogger := logger.New(
		&gormWriter{logger: log},
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	var db *gorm.DB
	var err error

	maxRetries := 5
	for i := 0; i < maxRetries; i++ {
		dsn := fmt.Sprintf(
			"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
			cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort, cfg.DBSSLMode,
		)

		db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
			Logger:                 gormLogger,
			SkipDefaultTransaction: true,
			PrepareStmt:            true,
		})

		if err == nil {
			break
		}

		log.Warn("Failed to connect to database, retrying...", "attempt", i+1, "error", err)
		time.Sleep(5 * time.Second)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to connect to database after %d attempts: %w", maxRetries, err)
	}

	// Creates the links table with its unique indexes on first start
	if err := db.AutoMigrate(&domain.Link{}); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Info("Database connection established successfully")
	return db, nil
}

// setupRouter configures the Gin router with middleware and routes
func setupRouter(linkHandler *handler.LinkHandler, cfg *config.Config, log *appLog.Logger) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(handler.LoggerMiddleware(log))
	router.Use(handler.CORSMiddleware())
	router.Use(handler.SecurityHeadersMiddleware())

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, domain.HealthResponse{
			Status:    "healthy",
			Service:   "url-shortener",
			Timestamp: time.Now(),
		})
	})

	// API routes consumed by the frontend
	router.POST("/shorten", linkHandler.Shorten)
	router.GET("/api/urls", linkHandler.List)

	// Short URL redirection; registered last like any catch-all
	router.GET("/:shortCode", linkHandler.Redirect)

	// 404 handler
	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "endpoint not found",
		})
	})

	return router
}
