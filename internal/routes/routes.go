package routes

import (
	"time"

	"github.com/ahmetcoskunkizilkaya/ecoreport-admin/internal/backend"
	"github.com/ahmetcoskunkizilkaya/ecoreport-admin/internal/config"
	"github.com/ahmetcoskunkizilkaya/ecoreport-admin/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/ecoreport-admin/internal/metrics"
	"github.com/ahmetcoskunkizilkaya/ecoreport-admin/internal/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	b backend.Backend,
	healthHandler *handlers.HealthHandler,
	usersHandler *handlers.UsersHandler,
	adminsHandler *handlers.AdminsHandler,
	locationsHandler *handlers.LocationsHandler,
	logsHandler *handlers.LogsHandler,
	labelsHandler *handlers.LabelsHandler,
) {
	app.Get("/metrics", metrics.Handler())

	api := app.Group("/api")

	// General API rate limiter: 120 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               120,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", healthHandler.Check)

	// Dashboard (session token + active admin account required)
	admin := api.Group("/admin", middleware.JWTProtected(cfg), middleware.AdminSession(b))
	admin.Get("/me", adminsHandler.Me)
	admin.Get("/labels", labelsHandler.Get)

	admin.Get("/users", usersHandler.List)
	admin.Post("/users", usersHandler.Create)
	admin.Patch("/users/:id", usersHandler.Update)
	admin.Post("/users/:id/toggle-active", usersHandler.ToggleActive)

	admin.Get("/admins", adminsHandler.List)
	admin.Patch("/admins/:id", adminsHandler.Update)

	admin.Get("/locations", locationsHandler.List)
	admin.Post("/locations", locationsHandler.Create)
	admin.Get("/locations/:id", locationsHandler.Get)
	admin.Post("/locations/:id/status", locationsHandler.ChangeStatus)

	admin.Get("/logs", logsHandler.List)
}
