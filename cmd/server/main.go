package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/toomanyjoshes/terminalchat/internal/config"
	"github.com/toomanyjoshes/terminalchat/internal/database"
	"github.com/toomanyjoshes/terminalchat/internal/handlers"
	"github.com/toomanyjoshes/terminalchat/internal/middleware"
	"github.com/toomanyjoshes/terminalchat/internal/models"
	"github.com/toomanyjoshes/terminalchat/internal/routes"
	"github.com/toomanyjoshes/terminalchat/internal/storage"
	"github.com/toomanyjoshes/terminalchat/internal/store"
	"github.com/toomanyjoshes/terminalchat/pkg/logger"
)

func main() {
	config.LoadConfig()

	env := os.Getenv("GO_ENV")
	if env == "" {
		env = "development"
	}
	logger.Init(env)

	logger.Info().Str("environment", env).Msg("Starting TerminalChat server...")

	if env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	database.Connect()
	database.InitRedis()

	if err := database.DB.AutoMigrate(
		&models.User{},
		&models.Session{},
		&models.Message{},
		&models.UserBlock{},
		&models.Attachment{},
	); err != nil {
		logger.Fatal().Err(err).Msg("Failed to run database migrations")
	}

	stores := store.New(database.DB, config.AppConfig.SessionTTL)

	blobs, err := storage.NewFromConfig(config.AppConfig)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to initialize blob storage")
	}

	handlers.Init(stores, blobs)

	r := gin.New()
	r.Use(middleware.LoggingMiddleware())
	r.Use(middleware.ErrorHandlerMiddleware())
	r.Use(gin.Recovery())
	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.GeneralRateLimit())

	// Tighter limiter on credential endpoints; everything else rides the
	// general limiter installed above. Message sends also pass a per-user
	// Redis counter inside the handler.
	authGroup := r.Group("")
	authGroup.Use(middleware.AuthRateLimit())
	routes.RegisterAuthRoutes(authGroup, stores.Sessions)

	routes.RegisterUserRoutes(r, stores.Sessions)
	routes.RegisterChatRoutes(r, stores.Sessions)

	r.GET("/health", func(c *gin.Context) {
		dbStatus := "ok"
		sqlDB, err := database.DB.DB()
		if err != nil || sqlDB.Ping() != nil {
			dbStatus = "error"
		}

		status := "ok"
		if dbStatus != "ok" {
			status = "degraded"
		}

		c.JSON(http.StatusOK, gin.H{
			"status": status,
			"checks": gin.H{"database": dbStatus},
		})
	})

	port := config.AppConfig.Port
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().Str("port", port).Str("env", env).Msg("Server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("Shutting down server gracefully...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	logger.Info().Msg("Server exited")
}
