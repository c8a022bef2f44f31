package middleware

import (
	"errors"
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/ecoreport-admin/internal/backend"
	"github.com/ahmetcoskunkizilkaya/ecoreport-admin/internal/dto"
	"github.com/ahmetcoskunkizilkaya/ecoreport-admin/internal/models"
	"github.com/ahmetcoskunkizilkaya/ecoreport-admin/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

const adminLocal = "admin"

// AdminSession resolves the operator behind the session token by its email
// claim. Inactive or unknown operators are rejected. Per-role permissions are
// enforced by the backend, not here.
func AdminSession(b backend.Backend) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, ok := c.Locals("user").(*jwt.Token)
		if !ok || token == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Unauthorized",
			})
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Invalid claims",
			})
		}

		email, _ := claims["email"].(string)
		if email == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Missing email claim",
			})
		}

		admin, err := b.FindAdminUserByEmail(c.UserContext(), email)
		if err != nil {
			if errors.Is(err, backend.ErrNotFound) {
				return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
					Error: true, Message: "Admin access required",
				})
			}
			slog.Error("admin lookup failed", "error", err)
			return fiber.ErrInternalServerError
		}
		if !admin.IsActive {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Error: true, Message: "Admin account is disabled",
			})
		}

		c.Locals(adminLocal, admin)
		c.SetUserContext(services.WithActor(c.UserContext(), services.Actor{
			AdminID: admin.ID,
			IP:      c.IP(),
		}))
		return c.Next()
	}
}

// CurrentAdmin returns the operator resolved by AdminSession.
func CurrentAdmin(c *fiber.Ctx) *models.AdminUser {
	admin, _ := c.Locals(adminLocal).(*models.AdminUser)
	return admin
}
