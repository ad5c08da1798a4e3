// main.go
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"travel-booking/cmd"
	"travel-booking/internal/data/cache"
	"travel-booking/internal/data/repository"
	"travel-booking/internal/usecase"
	"travel-booking/internal/wire"
	"travel-booking/pkg/database"
	"travel-booking/pkg/middleware"
	"travel-booking/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
		zap.String("auth_mode", config.Auth.Mode),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Connect to database
	db, err := database.InitDB(config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Database connected successfully")

	if config.Database.AutoMigrate {
		if err := database.Migrate(ctx, db); err != nil {
			logger.Fatal("Failed to migrate database", zap.Error(err))
		}
		logger.Info("Database schema applied")
	}

	trackingCache := cache.NewNoopTrackingCache()
	if config.Redis.Addr != "" {
		client, err := cache.NewRedisClient(ctx, config.Redis)
		if err != nil {
			logger.Fatal("Failed to connect to redis", zap.Error(err))
		}
		defer client.Close()

		trackingCache = cache.NewRedisTrackingCache(client, config.Redis.CacheTTL, logger)
		logger.Info("Tracking cache enabled", zap.String("addr", config.Redis.Addr))
	}

	// Initialize all repositories and services
	repos := repository.NewRepository(db, logger)

	deps, err := usecase.DependenciesFromConfig(config, trackingCache)
	if err != nil {
		logger.Fatal("Invalid configuration", zap.Error(err))
	}
	service := usecase.NewService(repos, deps, logger)

	verifier, err := newVerifier(config, repos)
	if err != nil {
		logger.Fatal("Failed to configure authentication", zap.Error(err))
	}

	// Wire all dependencies
	app := wire.Wiring(wire.Options{
		Service:  service,
		Verifier: verifier,
		Pinger:   db,
	}, config, logger)

	go app.Limiter.Run(ctx, time.Minute)
	if config.Auth.Mode == "session" {
		go cleanSessions(ctx, repos.Session, logger)
	}

	// Start server
	if err := cmd.APIServer(ctx, app.Router, config.App.Port, logger); err != nil {
		logger.Error("Server stopped", zap.Error(err))
		return
	}

	logger.Info("Server stopped")
}

func newVerifier(config *utils.Config, repos *repository.Repository) (middleware.TokenVerifier, error) {
	if config.Auth.Mode == "jwt" {
		return middleware.NewJWTVerifier(config.Auth.JWTSecret)
	}
	return middleware.NewSessionVerifier(repos.Session, repos.User), nil
}

// cleanSessions removes expired session tokens once an hour.
func cleanSessions(ctx context.Context, sessions repository.SessionRepository, logger *zap.Logger) {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := sessions.CleanExpiredSessions(ctx); err != nil {
				logger.Warn("Failed to clean expired sessions", zap.Error(err))
			}
		}
	}
}
