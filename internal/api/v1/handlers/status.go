package handlers

import (
	"taskmanager/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type statusRequest struct {
	Name string `json:"name" validate:"required"`
}

func (h *Handler) CreateStatus(c *fiber.Ctx) error {
	var req statusRequest
	if err := c.BodyParser(&req); err != nil {
		logger.ErrorLogger.Error("Bad request in create status", zap.Error(err))
		return badRequest(c, "Bad request")
	}
	if err := validateStruct(req); err != nil {
		return respondError(c, err)
	}

	status, err := h.Statuses.Create(c.UserContext(), req.Name)
	if err != nil {
		return respondError(c, err)
	}

	logger.AuditLogger.Info("Task status created", zap.Int("status_id", status.ID))
	return respondCreated(c, "Task status created successfully", status)
}

func (h *Handler) GetStatus(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return badRequest(c, "Invalid status ID")
	}

	status, err := h.Statuses.GetByID(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, "Task status found", status)
}

func (h *Handler) GetAllStatuses(c *fiber.Ctx) error {
	statuses, err := h.Statuses.GetAll(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, "Task statuses fetched successfully", statuses)
}

func (h *Handler) UpdateStatus(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return badRequest(c, "Invalid status ID")
	}

	var req statusRequest
	if err := c.BodyParser(&req); err != nil {
		logger.ErrorLogger.Error("Bad request in update status", zap.Error(err))
		return badRequest(c, "Bad request")
	}
	if err := validateStruct(req); err != nil {
		return respondError(c, err)
	}

	status, err := h.Statuses.Update(c.UserContext(), id, req.Name)
	if err != nil {
		return respondError(c, err)
	}

	logger.AuditLogger.Info("Task status updated", zap.Int("status_id", id))
	return respondOK(c, "Task status updated successfully", status)
}

func (h *Handler) DeleteStatus(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return badRequest(c, "Invalid status ID")
	}

	if err := h.Statuses.Delete(c.UserContext(), id); err != nil {
		return respondError(c, err)
	}

	logger.AuditLogger.Info("Task status deleted", zap.Int("status_id", id))
	return respondOK(c, "Task status deleted successfully", nil)
}
