package handlers

import (
	"time"

	"github.com/ahmetcoskunkizilkaya/ecoreport-admin/internal/backend"
	"github.com/ahmetcoskunkizilkaya/ecoreport-admin/internal/dto"
	"github.com/gofiber/fiber/v2"
)

type HealthHandler struct {
	backend backend.Backend
}

func NewHealthHandler(b backend.Backend) *HealthHandler {
	return &HealthHandler{backend: b}
}

func (h *HealthHandler) Check(c *fiber.Ctx) error {
	status := "ok"
	if err := h.backend.Ping(c.UserContext()); err != nil {
		status = "unhealthy: " + err.Error()
	}

	return c.JSON(dto.HealthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Backend:   status,
	})
}
