package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tripveda/api/routes"
	"tripveda/internal/bookings"
	"tripveda/internal/notifications"
	"tripveda/internal/shared/config"
	"tripveda/internal/shared/database"
	"tripveda/pkg/logger"
	"tripveda/pkg/ratelimit"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	appLogger := logger.GetDefault()

	// Smart environment loading
	if err := godotenv.Load(); err != nil {
		if os.Getenv("GIN_MODE") == "release" || os.Getenv("DOCKER_CONTAINER") == "true" {
			appLogger.Info("Production environment: using container environment variables")
		} else {
			appLogger.Info("No .env file found, using system environment variables")
		}
	} else {
		appLogger.Info("Development environment: loaded .env file")
	}

	cfg := config.Load()

	gin.SetMode(cfg.GinMode)

	db, err := database.InitDB(cfg)
	if err != nil {
		appLogger.Error("failed to connect:", slog.Any("error", err))
		os.Exit(1)
	}
	defer db.Close()

	// Rate limiter
	var rateLimiter *ratelimit.RateLimiter
	if cfg.RateLimit.Enabled {
		rateLimiter = ratelimit.NewRateLimiter(db.GetRedisClient(), &ratelimit.Config{
			Enabled:         cfg.RateLimit.Enabled,
			WindowDuration:  cfg.RateLimit.WindowDuration,
			DefaultRequests: cfg.RateLimit.DefaultRequests,
			PublicRequests:  cfg.RateLimit.PublicRequests,
			AuthRequests:    cfg.RateLimit.AuthRequests,
			BookingRequests: cfg.RateLimit.BookingRequests,
			AdminRequests:   cfg.RateLimit.AdminRequests,
			HealthRequests:  cfg.RateLimit.HealthRequests,
			WhitelistedIPs:  cfg.RateLimit.WhitelistedIPs,
		})
		appLogger.Info("Rate limiter initialized",
			slog.Bool("enabled", cfg.RateLimit.Enabled),
			slog.Duration("window", cfg.RateLimit.WindowDuration),
			slog.Int("default_requests", cfg.RateLimit.DefaultRequests),
		)
	} else {
		appLogger.Info("Rate limiting disabled")
	}

	// Notification pipeline. The booking flow works without it, so a
	// missing SMTP or Kafka setup only disables emails.
	notificationCtx, notificationCancel := context.WithCancel(context.Background())
	defer notificationCancel()

	var notifier bookings.Notifier
	notificationService, err := notifications.NewService(cfg)
	if err != nil {
		appLogger.Error("Failed to initialize notification service", slog.Any("error", err))
		appLogger.Info("Continuing without notification service - booking emails will not be sent")
	} else {
		go func() {
			if err := notificationService.Start(notificationCtx); err != nil {
				appLogger.Error("Failed to start notification service", slog.Any("error", err))
			}
		}()
		notifier = notificationService
		appLogger.Info("Notification service initialized and started")

		defer func() {
			appLogger.Info("Stopping notification service...")
			if err := notificationService.Stop(); err != nil {
				appLogger.Error("Error stopping notification service", slog.Any("error", err))
			}
		}()
	}

	router := setupRouter(cfg, db, rateLimiter, notifier)

	srv := &http.Server{
		Addr:           cfg.GetServerAddress(),
		Handler:        router,
		ReadTimeout:    cfg.ReadTimeout,
		WriteTimeout:   cfg.WriteTimeout,
		IdleTimeout:    cfg.IdleTimeout,
		MaxHeaderBytes: cfg.MaxHeaderBytes,
	}

	go func() {
		appLogger.Info("🚀 Server running",
			slog.String("address", cfg.GetServerAddress()),
			slog.String("health_check", fmt.Sprintf("http://localhost:%s/health", cfg.Port)),
			slog.String("api_status", fmt.Sprintf("http://localhost:%s%s/status", cfg.Port, cfg.GetAPIBasePath())),
			slog.String("version", cfg.APIVersion),
			slog.Bool("notifications", notifier != nil),
			slog.Bool("rate_limiting", cfg.RateLimit.Enabled),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Error("Server failed", slog.Any("error", err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Error("Forced shutdown", slog.Any("error", err))
	}

	appLogger.Info("Server exited gracefully")
}

func setupRouter(cfg *config.Config, db *database.DB, rateLimiter *ratelimit.RateLimiter, notifier bookings.Notifier) *gin.Engine {
	engine := gin.New()
	appLogger := logger.GetDefault()

	// Built-in middleware: logs requests + recovers from panics
	engine.Use(RequestLoggerMiddleware(appLogger), gin.Recovery())

	engine.Use(cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool {
			return true
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "X-RateLimit-*"},
		ExposeHeaders:    []string{"Content-Length", "X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	if rateLimiter != nil {
		engine.Use(ratelimit.Middleware(rateLimiter))
		appLogger.Info("Rate limiting middleware applied to all routes")
	}

	appRouter := routes.NewRouter(cfg, db, appLogger, notifier)
	appRouter.SetupRoutes(engine)

	return engine
}

func RequestLoggerMiddleware(l *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		duration := time.Since(start)
		l.LogHTTPRequest(c, duration)
	}
}
