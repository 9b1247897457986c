// Package handlers contains the Fiber handlers. They parse and validate the
// request, hand the authenticated principal to the services explicitly, and
// map service errors onto HTTP statuses.
package handlers

import (
	"errors"
	"fmt"

	"taskmanager/internal/apperr"
	"taskmanager/internal/config"
	"taskmanager/internal/models"
	"taskmanager/internal/service"
	"taskmanager/pkg/logger"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type Handler struct {
	Auth     *service.AuthService
	Users    *service.UserService
	Statuses *service.TaskStatusService
	Labels   *service.LabelService
	Tasks    *service.TaskService
}

func New(
	auth *service.AuthService,
	users *service.UserService,
	statuses *service.TaskStatusService,
	labels *service.LabelService,
	tasks *service.TaskService,
) *Handler {
	return &Handler{Auth: auth, Users: users, Statuses: statuses, Labels: labels, Tasks: tasks}
}

func principalFromLocals(c *fiber.Ctx) models.Principal {
	return c.Locals("principal").(models.Principal)
}

// validateStruct runs the shared validator and converts failures into the
// per-field shape the error responder serializes.
func validateStruct(req interface{}) error {
	err := config.Validate.Struct(req)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = fmt.Sprintf("failed on the '%s' rule", fe.Tag())
	}
	return apperr.NewValidationError(fields)
}

func respondOK(c *fiber.Ctx, message string, data interface{}) error {
	return c.JSON(fiber.Map{
		"message": message,
		"success": true,
		"status":  fiber.StatusOK,
		"data":    data,
	})
}

func respondCreated(c *fiber.Ctx, message string, data interface{}) error {
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": message,
		"success": true,
		"status":  fiber.StatusCreated,
		"data":    data,
	})
}

// respondError maps the error taxonomy onto HTTP statuses: validation and
// conflicts are 422, missing entities 404, ownership denials 403, bad
// credentials 401, everything else 500.
func respondError(c *fiber.Ctx, err error) error {
	var verr *apperr.ValidationError
	if errors.As(err, &verr) {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"message": "Validation error",
			"errors":  verr.Fields,
			"success": false,
			"status":  fiber.StatusUnprocessableEntity,
		})
	}

	status := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, apperr.ErrValidation), errors.Is(err, apperr.ErrConflict):
		status = fiber.StatusUnprocessableEntity
	case errors.Is(err, apperr.ErrNotFound):
		status = fiber.StatusNotFound
	case errors.Is(err, apperr.ErrForbidden):
		status = fiber.StatusForbidden
	case errors.Is(err, apperr.ErrUnauthorized):
		status = fiber.StatusUnauthorized
	}

	switch status {
	case fiber.StatusForbidden, fiber.StatusUnauthorized:
		logger.SecurityLogger.Warn("Request denied",
			zap.String("url", c.OriginalURL()), zap.Error(err))
	case fiber.StatusInternalServerError:
		logger.ErrorLogger.Error("Unexpected error",
			zap.String("url", c.OriginalURL()), zap.Error(err))
		return c.Status(status).JSON(fiber.Map{
			"message": "Internal server error",
			"success": false,
			"status":  status,
		})
	}

	return c.Status(status).JSON(fiber.Map{
		"message": err.Error(),
		"success": false,
		"status":  status,
	})
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"message": message,
		"success": false,
		"status":  fiber.StatusBadRequest,
	})
}
