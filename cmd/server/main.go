package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentryfiber "github.com/getsentry/sentry-go/fiber"

	"github.com/ahmetcoskunkizilkaya/ecoreport-admin/internal/backend"
	"github.com/ahmetcoskunkizilkaya/ecoreport-admin/internal/config"
	"github.com/ahmetcoskunkizilkaya/ecoreport-admin/internal/database"
	"github.com/ahmetcoskunkizilkaya/ecoreport-admin/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/ecoreport-admin/internal/labels"
	"github.com/ahmetcoskunkizilkaya/ecoreport-admin/internal/logging"
	"github.com/ahmetcoskunkizilkaya/ecoreport-admin/internal/mapping"
	"github.com/ahmetcoskunkizilkaya/ecoreport-admin/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/ecoreport-admin/internal/routes"
	"github.com/ahmetcoskunkizilkaya/ecoreport-admin/internal/services"
	"github.com/ahmetcoskunkizilkaya/ecoreport-admin/internal/views"
	"github.com/ahmetcoskunkizilkaya/ecoreport-admin/internal/workflow"
	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

func main() {
	// Structured logging (JSON to stdout)
	stdout := logging.Setup()

	cfg := config.Load()

	if cfg.JWTSecret == "" {
		slog.Error("JWT_SECRET environment variable is required")
		os.Exit(1)
	}

	// Label tables
	labelSet := labels.Default()
	if cfg.LabelsPath != "" {
		set, err := labels.LoadFromFile(cfg.LabelsPath)
		if err != nil {
			slog.Error("failed to load labels", "path", cfg.LabelsPath, "error", err)
			os.Exit(1)
		}
		labelSet = set
		slog.Info("labels loaded", "path", cfg.LabelsPath)
	}

	policy, err := workflow.ParsePolicy(cfg.StatusWorkflow)
	if err != nil {
		slog.Error("invalid STATUS_WORKFLOW", "error", err)
		os.Exit(1)
	}
	if policy == workflow.PolicyForward {
		slog.Warn("forward-only status workflow enabled: reports can no longer be reopened")
	}

	// Backend
	var store backend.Backend
	if cfg.UsesMemoryBackend() {
		mem := backend.NewMemory()
		backend.SeedDemo(mem, cfg.DemoAdminEmail)
		store = mem
		slog.Warn("running on the in-memory demo backend")
	} else {
		if cfg.DBPassword == "" {
			slog.Error("DB_PASSWORD environment variable is required")
			os.Exit(1)
		}
		if err := database.Connect(cfg); err != nil {
			slog.Error("database connection failed", "error", err)
			os.Exit(1)
		}
		if err := database.Migrate(); err != nil {
			slog.Error("migration failed", "error", err)
			os.Exit(1)
		}
		store = backend.NewGorm(database.DB)
	}
	store = backend.NewInstrumented(store)

	// System log handler (ERROR+ async batch into system_logs)
	dbLogHandler := logging.NewDBHandler(store, stdout)
	logging.Tee(stdout, dbLogHandler)

	// reports_count write-back
	syncDone := make(chan struct{})
	services.StartCounterSync(store, cfg.CounterSyncInterval, syncDone)

	// Services
	auditService := services.NewAuditService(store)
	imageService, err := services.NewImageService(cfg)
	if err != nil {
		slog.Error("image service init failed", "error", err)
		os.Exit(1)
	}

	// Handlers
	mapCfg := views.MapConfig{
		Viewport: mapping.Viewport{
			Center: mapping.Point{cfg.MapCenterLat, cfg.MapCenterLng},
			Zoom:   cfg.MapZoom,
		},
		Labels: labelSet,
		Policy: policy,
	}
	healthHandler := handlers.NewHealthHandler(store)
	usersHandler := handlers.NewUsersHandler(store, auditService)
	adminsHandler := handlers.NewAdminsHandler(store, auditService)
	locationsHandler := handlers.NewLocationsHandler(store, auditService, mapCfg, imageService)
	logsHandler := handlers.NewLogsHandler(store)
	labelsHandler := handlers.NewLabelsHandler(labelSet)

	// Sentry error tracking
	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			EnableTracing:    true,
			TracesSampleRate: 0.2,
			Environment:      cfg.AppEnv,
		}); err != nil {
			slog.Error("sentry init failed", "error", err)
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	// Fiber app
	app := fiber.New(fiber.Config{
		BodyLimit:    1 * 1024 * 1024,
		ErrorHandler: handlers.ErrorHandler,
	})

	app.Use(sentryfiber.New(sentryfiber.Options{
		Repanic:         true,
		WaitForDelivery: false,
	}))
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path}\n",
	}))
	app.Use(middleware.CORS(cfg))
	app.Use(func(c *fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		return c.Next()
	})

	routes.Setup(app, cfg, store, healthHandler, usersHandler, adminsHandler, locationsHandler, logsHandler, labelsHandler)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "port", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	<-quit
	slog.Info("shutting down server...")

	close(syncDone)
	if err := app.Shutdown(); err != nil {
		slog.Error("server shutdown error", "error", err)
	}
	dbLogHandler.Stop()
	sentry.Flush(2 * time.Second)
	database.Close()

	slog.Info("server stopped")
}
