package handlers

import (
	"errors"
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/ecoreport-admin/internal/backend"
	"github.com/ahmetcoskunkizilkaya/ecoreport-admin/internal/dto"
	"github.com/ahmetcoskunkizilkaya/ecoreport-admin/internal/views"
	"github.com/ahmetcoskunkizilkaya/ecoreport-admin/internal/workflow"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

func errorJSON(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(dto.ErrorResponse{Error: true, Message: message})
}

// mutationError maps a failed mutation onto a response. The client keeps its
// form open on any non-2xx answer.
func mutationError(c *fiber.Ctx, err error, fallback string) error {
	switch {
	case errors.Is(err, backend.ErrNotFound), errors.Is(err, views.ErrNotLoaded):
		return errorJSON(c, fiber.StatusNotFound, "Record not found")
	case errors.Is(err, backend.ErrDuplicateEmail):
		return errorJSON(c, fiber.StatusConflict, err.Error())
	case errors.Is(err, workflow.ErrNotAllowed):
		return errorJSON(c, fiber.StatusConflict, err.Error())
	case errors.Is(err, workflow.ErrInvalidStatus),
		errors.Is(err, workflow.ErrSameStatus),
		errors.Is(err, views.ErrEmailRequired),
		errors.Is(err, views.ErrNameRequired),
		errors.Is(err, views.ErrInvalidRole),
		errors.Is(err, views.ErrInvalidLevel),
		errors.Is(err, views.ErrInvalidLatitude),
		errors.Is(err, views.ErrInvalidLongitude),
		errors.Is(err, views.ErrInvalidTrashType),
		errors.Is(err, views.ErrInvalidPriority):
		return errorJSON(c, fiber.StatusBadRequest, err.Error())
	}
	slog.Error(fallback, "method", c.Method(), "path", c.Path(), "error", err)
	return errorJSON(c, fiber.StatusInternalServerError, fallback)
}

func parseID(c *fiber.Ctx) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Params("id"))
	return id, err == nil
}

// bindBody decodes and validates a JSON request body. The returned error is
// a *fiber.Error rendered by ErrorHandler.
func bindBody(c *fiber.Ctx, req interface{}) error {
	if err := c.BodyParser(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := dto.Validate(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	return nil
}

// ErrorHandler renders errors returned from handlers. Details are only
// exposed for client errors.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		message = fe.Message
	}

	if code >= 500 {
		slog.Error("unhandled server error", "method", c.Method(), "path", c.Path(), "error", err.Error())
		message = "Internal server error"
	}

	return c.Status(code).JSON(dto.ErrorResponse{
		Error:   true,
		Message: message,
	})
}
