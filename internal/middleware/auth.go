package middleware

import (
	"errors"

	"github.com/ahmetcoskunkizilkaya/ecoreport-admin/internal/config"
	"github.com/ahmetcoskunkizilkaya/ecoreport-admin/internal/dto"
	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
)

// JWTProtected verifies the session token issued by the backend's auth
// service, read from the Authorization header or the session cookie. The
// token is left in c.Locals("user").
func JWTProtected(cfg *config.Config) fiber.Handler {
	lookup := "header:Authorization"
	if cfg.SessionCookie != "" {
		lookup += ",cookie:" + cfg.SessionCookie
	}
	return jwtware.New(jwtware.Config{
		SigningKey:  jwtware.SigningKey{Key: []byte(cfg.JWTSecret)},
		TokenLookup: lookup,
		AuthScheme:  "Bearer",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			message := "Unauthorized: invalid or expired token"
			if errors.Is(err, jwtware.ErrJWTMissingOrMalformed) {
				message = "Unauthorized: missing session token"
			}
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error:   true,
				Message: message,
			})
		},
	})
}
