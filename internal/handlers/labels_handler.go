package handlers

import (
	"github.com/ahmetcoskunkizilkaya/ecoreport-admin/internal/labels"
	"github.com/gofiber/fiber/v2"
)

type LabelsHandler struct {
	labels *labels.Set
}

func NewLabelsHandler(set *labels.Set) *LabelsHandler {
	return &LabelsHandler{labels: set}
}

// Get returns the label tables the dashboard renders with.
func (h *LabelsHandler) Get(c *fiber.Ctx) error {
	return c.JSON(h.labels)
}
