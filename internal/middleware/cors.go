package middleware

import (
	"github.com/ahmetcoskunkizilkaya/ecoreport-admin/internal/config"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

// CORS allows the dashboard front end to call the API. Credentials are only
// allowed for an explicit origin list.
func CORS(cfg *config.Config) fiber.Handler {
	return cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowHeaders:     "Origin, Content-Type, Authorization, Accept",
		AllowMethods:     "GET, POST, PATCH, OPTIONS",
		ExposeHeaders:    fiber.HeaderXRequestID,
		AllowCredentials: cfg.CORSOrigins != "*" && cfg.SessionCookie != "",
		MaxAge:           600,
	})
}
