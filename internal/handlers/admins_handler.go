package handlers

import (
	"github.com/ahmetcoskunkizilkaya/ecoreport-admin/internal/backend"
	"github.com/ahmetcoskunkizilkaya/ecoreport-admin/internal/dto"
	"github.com/ahmetcoskunkizilkaya/ecoreport-admin/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/ecoreport-admin/internal/models"
	"github.com/ahmetcoskunkizilkaya/ecoreport-admin/internal/views"
	"github.com/gofiber/fiber/v2"
)

type AdminsHandler struct {
	backend  backend.Backend
	recorder views.Recorder
}

func NewAdminsHandler(b backend.Backend, recorder views.Recorder) *AdminsHandler {
	return &AdminsHandler{backend: b, recorder: recorder}
}

func adminsResponse(v *views.AdminsView) dto.AdminsResponse {
	admins := v.Admins()
	return dto.AdminsResponse{Admins: admins, Total: len(admins)}
}

// Me returns the operator behind the current session.
func (h *AdminsHandler) Me(c *fiber.Ctx) error {
	admin := middleware.CurrentAdmin(c)
	if admin == nil {
		return errorJSON(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	return c.JSON(admin)
}

func (h *AdminsHandler) List(c *fiber.Ctx) error {
	v := views.NewAdminsView(h.backend)
	_ = v.Load(c.UserContext())
	v.SetFilter(c.Query("q"))
	return c.JSON(adminsResponse(v))
}

func (h *AdminsHandler) Update(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid admin ID")
	}
	var req dto.UpdateAdminRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	v := views.NewAdminsView(h.backend, views.WithRecorder(h.recorder))
	if err := v.Load(c.UserContext()); err != nil {
		return errorJSON(c, fiber.StatusInternalServerError, "Failed to load admins")
	}
	err := v.Update(c.UserContext(), id, models.AdminUserPatch{
		Name:     req.Name,
		Role:     req.Role,
		IsActive: req.IsActive,
	})
	if err != nil {
		return mutationError(c, err, "Failed to update admin")
	}
	return c.JSON(adminsResponse(v))
}
