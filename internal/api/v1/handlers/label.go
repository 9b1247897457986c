package handlers

import (
	"taskmanager/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type labelRequest struct {
	Name string `json:"name" validate:"required"`
}

func (h *Handler) CreateLabel(c *fiber.Ctx) error {
	var req labelRequest
	if err := c.BodyParser(&req); err != nil {
		logger.ErrorLogger.Error("Bad request in create label", zap.Error(err))
		return badRequest(c, "Bad request")
	}
	if err := validateStruct(req); err != nil {
		return respondError(c, err)
	}

	label, err := h.Labels.Create(c.UserContext(), req.Name)
	if err != nil {
		return respondError(c, err)
	}

	logger.AuditLogger.Info("Label created", zap.Int("label_id", label.ID))
	return respondCreated(c, "Label created successfully", label)
}

func (h *Handler) GetLabel(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return badRequest(c, "Invalid label ID")
	}

	label, err := h.Labels.GetByID(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, "Label found", label)
}

func (h *Handler) GetAllLabels(c *fiber.Ctx) error {
	labels, err := h.Labels.GetAll(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, "Labels fetched successfully", labels)
}

func (h *Handler) UpdateLabel(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return badRequest(c, "Invalid label ID")
	}

	var req labelRequest
	if err := c.BodyParser(&req); err != nil {
		logger.ErrorLogger.Error("Bad request in update label", zap.Error(err))
		return badRequest(c, "Bad request")
	}
	if err := validateStruct(req); err != nil {
		return respondError(c, err)
	}

	label, err := h.Labels.Update(c.UserContext(), id, req.Name)
	if err != nil {
		return respondError(c, err)
	}

	logger.AuditLogger.Info("Label updated", zap.Int("label_id", id))
	return respondOK(c, "Label updated successfully", label)
}

func (h *Handler) DeleteLabel(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return badRequest(c, "Invalid label ID")
	}

	if err := h.Labels.Delete(c.UserContext(), id); err != nil {
		return respondError(c, err)
	}

	logger.AuditLogger.Info("Label deleted", zap.Int("label_id", id))
	return respondOK(c, "Label deleted successfully", nil)
}
