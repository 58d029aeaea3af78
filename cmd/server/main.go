package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentryfiber "github.com/getsentry/sentry-go/fiber"
	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"github.com/sentreats/sentreats-server/internal/config"
	"github.com/sentreats/sentreats-server/internal/dto"
	"github.com/sentreats/sentreats-server/internal/handlers"
	"github.com/sentreats/sentreats-server/internal/logging"
	"github.com/sentreats/sentreats-server/internal/middleware"
	"github.com/sentreats/sentreats-server/internal/routes"
	"github.com/sentreats/sentreats-server/internal/services"
	"github.com/sentreats/sentreats-server/internal/store"
	"github.com/sentreats/sentreats-server/internal/store/filestore"
	"github.com/sentreats/sentreats-server/internal/store/gormstore"
)

func main() {
	// Structured logging (JSON to stdout)
	logging.Setup()

	cfg := config.Load()

	if cfg.JWTSecret == "" {
		slog.Error("JWT_SECRET environment variable is required")
		os.Exit(1)
	}

	// Storage backend
	var (
		st           store.Store
		dbLogHandler *logging.DBHandler
		cleanupDone  chan struct{}
	)
	switch cfg.StorageDriver {
	case "file":
		fs, err := filestore.Open(cfg.DataDir)
		if err != nil {
			slog.Error("file store init failed", "dir", cfg.DataDir, "error", err)
			os.Exit(1)
		}
		st = fs
		slog.Info("file store ready", "dir", cfg.DataDir)
	case "postgres":
		if cfg.DBPassword == "" {
			slog.Error("DB_PASSWORD environment variable is required")
			os.Exit(1)
		}
		gs, err := gormstore.Open(cfg)
		if err != nil {
			slog.Error("database connection failed", "error", err)
			os.Exit(1)
		}
		st = gs

		// System-log slog handler (ERROR+ async batch) and 30-day retention
		dbLogHandler = logging.NewDBHandler(gs.DB())
		slog.SetDefault(slog.New(logging.NewMultiHandler(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
			dbLogHandler,
		)))
		cleanupDone = make(chan struct{})
		logging.StartCleanup(gs.DB(), cleanupDone)
	default:
		slog.Error("unknown STORAGE_DRIVER", "driver", cfg.StorageDriver)
		os.Exit(1)
	}

	// Services
	authService := services.NewAuthService(st, cfg)
	userService := services.NewUserService(st)
	eateryService := services.NewEateryService(st)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService)
	eateryHandler := handlers.NewEateryHandler(eateryService)
	reviewHandler := handlers.NewReviewHandler(eateryService)
	healthHandler := handlers.NewHealthHandler(st, cfg.StorageDriver)

	// Sentry error tracking
	if dsn := os.Getenv("SENTRY_DSN"); dsn != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              dsn,
			EnableTracing:    true,
			TracesSampleRate: 0.2,
			Environment:      os.Getenv("APP_ENV"),
		}); err != nil {
			slog.Error("sentry init failed", "error", err)
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	// Fiber app
	app := fiber.New(fiber.Config{
		BodyLimit:    4 * 1024 * 1024,
		ErrorHandler: customErrorHandler,
	})

	app.Use(sentryfiber.New(sentryfiber.Options{
		Repanic:         true,
		WaitForDelivery: false,
	}))

	// Global middleware
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path}\n",
	}))
	app.Use(middleware.CORS(cfg))
	app.Use(func(c *fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		c.Set("X-XSS-Protection", "1; mode=block")
		return c.Next()
	})

	routes.Setup(app, cfg, authHandler, userHandler, eateryHandler, reviewHandler, healthHandler)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "port", cfg.Port, "storage", cfg.StorageDriver)
		if err := app.Listen(":" + cfg.Port); err != nil {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	<-quit
	slog.Info("shutting down server...")

	if cleanupDone != nil {
		close(cleanupDone)
	}
	if dbLogHandler != nil {
		dbLogHandler.Stop()
	}
	sentry.Flush(2 * time.Second)

	if err := app.Shutdown(); err != nil {
		slog.Error("server shutdown error", "error", err)
	}
	if err := st.Close(); err != nil {
		slog.Error("store close error", "error", err)
	}

	slog.Info("server stopped")
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	// Only expose error details for client errors (4xx), not server errors (5xx)
	if code >= 500 {
		slog.Error("unhandled server error", "method", c.Method(), "path", c.Path(), "error", err.Error())
		message = "Internal server error"
	}

	return c.Status(code).JSON(dto.ErrorResponse{
		Error:   true,
		Message: message,
	})
}
