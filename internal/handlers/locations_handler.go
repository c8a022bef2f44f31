package handlers

import (
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/ecoreport-admin/internal/backend"
	"github.com/ahmetcoskunkizilkaya/ecoreport-admin/internal/dto"
	"github.com/ahmetcoskunkizilkaya/ecoreport-admin/internal/models"
	"github.com/ahmetcoskunkizilkaya/ecoreport-admin/internal/services"
	"github.com/ahmetcoskunkizilkaya/ecoreport-admin/internal/views"
	"github.com/gofiber/fiber/v2"
)

type LocationsHandler struct {
	backend  backend.Backend
	recorder views.Recorder
	mapCfg   views.MapConfig
	images   *services.ImageService
}

func NewLocationsHandler(b backend.Backend, recorder views.Recorder, mapCfg views.MapConfig, images *services.ImageService) *LocationsHandler {
	return &LocationsHandler{backend: b, recorder: recorder, mapCfg: mapCfg, images: images}
}

func (h *LocationsHandler) view() *views.LocationsView {
	return views.NewLocationsView(h.backend, h.mapCfg, views.WithRecorder(h.recorder))
}

func mapResponse(v *views.LocationsView) dto.MapResponse {
	locs := v.Locations()
	return dto.MapResponse{
		Map:       v.Map(),
		Locations: dto.NewLocationRows(locs),
		Status:    string(v.StatusFilter()),
		Total:     len(locs),
	}
}

// List returns the markers and rows for all locations, optionally narrowed
// to one status.
func (h *LocationsHandler) List(c *fiber.Ctx) error {
	v := h.view()
	if err := v.SetStatusFilter(models.TrashStatus(c.Query("status"))); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, err.Error())
	}
	_ = v.Load(c.UserContext())
	return c.JSON(mapResponse(v))
}

// Get opens the detail panel of one location, as a marker click would.
func (h *LocationsHandler) Get(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid location ID")
	}

	v := h.view()
	if err := v.Load(c.UserContext()); err != nil {
		return errorJSON(c, fiber.StatusInternalServerError, "Failed to load locations")
	}
	detail, err := v.Select(id)
	if err != nil {
		return mutationError(c, err, "Failed to load location")
	}

	resp := dto.DetailResponse{Detail: detail}
	if detail.Location.ImageURL != nil {
		link, err := h.images.Link(c.UserContext(), *detail.Location.ImageURL)
		if err != nil {
			slog.Warn("image link unavailable", "location_id", id.String(), "error", err)
		}
		resp.ImageLink = link
	}
	return c.JSON(resp)
}

func (h *LocationsHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateLocationRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	v := h.view()
	loc, err := v.Create(c.UserContext(), views.NewLocation{
		UserID:      req.UserID,
		Latitude:    *req.Latitude,
		Longitude:   *req.Longitude,
		Description: req.Description,
		TrashType:   req.TrashType,
		Priority:    req.Priority,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		return mutationError(c, err, "Failed to create location")
	}

	return c.Status(fiber.StatusCreated).JSON(dto.LocationMutationResponse{
		Location: loc,
		Map:      mapResponse(v),
	})
}

// ChangeStatus selects the location and applies the requested transition.
// The response carries the re-fetched map; the selection is closed.
func (h *LocationsHandler) ChangeStatus(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid location ID")
	}
	var req dto.StatusChangeRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	v := h.view()
	if err := v.Load(c.UserContext()); err != nil {
		return errorJSON(c, fiber.StatusInternalServerError, "Failed to load locations")
	}
	if _, err := v.Select(id); err != nil {
		return mutationError(c, err, "Failed to load location")
	}
	if err := v.Transition(c.UserContext(), req.Status); err != nil {
		return mutationError(c, err, "Failed to change status")
	}

	return c.JSON(dto.LocationMutationResponse{Map: mapResponse(v)})
}
