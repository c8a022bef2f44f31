package handlers

import (
	"github.com/ahmetcoskunkizilkaya/ecoreport-admin/internal/backend"
	"github.com/ahmetcoskunkizilkaya/ecoreport-admin/internal/dto"
	"github.com/ahmetcoskunkizilkaya/ecoreport-admin/internal/views"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type UsersHandler struct {
	backend  backend.Backend
	recorder views.Recorder
}

func NewUsersHandler(b backend.Backend, recorder views.Recorder) *UsersHandler {
	return &UsersHandler{backend: b, recorder: recorder}
}

func (h *UsersHandler) view() *views.UsersView {
	return views.NewUsersView(h.backend, views.WithRecorder(h.recorder))
}

func usersResponse(v *views.UsersView) dto.UsersResponse {
	users := v.Users()
	return dto.UsersResponse{Users: users, Total: len(users), Filter: v.Filter()}
}

// userMutation reports the re-fetched row. User is left out when the reload
// after a successful write came back without it.
func userMutation(v *views.UsersView, id uuid.UUID) dto.UserMutationResponse {
	resp := dto.UserMutationResponse{Users: usersResponse(v)}
	if user, ok := v.Get(id); ok {
		resp.User = &user
	}
	return resp
}

// List returns all project users, narrowed by the q text filter. A failed
// fetch yields an empty list.
func (h *UsersHandler) List(c *fiber.Ctx) error {
	v := h.view()
	_ = v.Load(c.UserContext())
	v.SetFilter(c.Query("q"))
	return c.JSON(usersResponse(v))
}

func (h *UsersHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateUserRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	v := h.view()
	user, err := v.Create(c.UserContext(), views.NewUser{
		Email: req.Email,
		Name:  req.Name,
		Phone: req.Phone,
	})
	if err != nil {
		return mutationError(c, err, "Failed to create user")
	}

	return c.Status(fiber.StatusCreated).JSON(dto.UserMutationResponse{
		User:  user,
		Users: usersResponse(v),
	})
}

func (h *UsersHandler) Update(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid user ID")
	}
	var req dto.UpdateUserRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	v := h.view()
	if err := v.Load(c.UserContext()); err != nil {
		return errorJSON(c, fiber.StatusInternalServerError, "Failed to load users")
	}
	err := v.Edit(c.UserContext(), id, views.UserEdit{
		Email:    req.Email,
		Name:     req.Name,
		Phone:    req.Phone,
		IsActive: req.IsActive,
	})
	if err != nil {
		return mutationError(c, err, "Failed to update user")
	}

	return c.JSON(userMutation(v, id))
}

func (h *UsersHandler) ToggleActive(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid user ID")
	}

	v := h.view()
	if err := v.Load(c.UserContext()); err != nil {
		return errorJSON(c, fiber.StatusInternalServerError, "Failed to load users")
	}
	if err := v.ToggleActive(c.UserContext(), id); err != nil {
		return mutationError(c, err, "Failed to update user")
	}

	return c.JSON(userMutation(v, id))
}
