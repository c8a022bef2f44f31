package handlers

import (
	"github.com/ahmetcoskunkizilkaya/ecoreport-admin/internal/backend"
	"github.com/ahmetcoskunkizilkaya/ecoreport-admin/internal/dto"
	"github.com/ahmetcoskunkizilkaya/ecoreport-admin/internal/models"
	"github.com/ahmetcoskunkizilkaya/ecoreport-admin/internal/views"
	"github.com/gofiber/fiber/v2"
)

type LogsHandler struct {
	backend backend.Backend
}

func NewLogsHandler(b backend.Backend) *LogsHandler {
	return &LogsHandler{backend: b}
}

// List returns the newest log entries. level narrows on the server, q
// filters action and entity type locally.
func (h *LogsHandler) List(c *fiber.Ctx) error {
	v := views.NewLogsView(h.backend)
	if err := v.SetLevel(models.LogLevel(c.Query("level"))); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, err.Error())
	}
	_ = v.Load(c.UserContext())
	v.SetFilter(c.Query("q"))

	entries := v.Entries()
	return c.JSON(dto.LogsResponse{
		Logs:   entries,
		Total:  len(entries),
		Level:  string(v.Level()),
		Filter: v.Filter(),
	})
}
