package handlers

import (
	"taskmanager/internal/service"
	"taskmanager/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type userRequest struct {
	Email     string `json:"email" validate:"required,email"`
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name" validate:"required"`
	Password  string `json:"password" validate:"required,min=3"`
}

func (h *Handler) CreateUser(c *fiber.Ctx) error {
	var req userRequest
	if err := c.BodyParser(&req); err != nil {
		logger.ErrorLogger.Error("Bad request in create user", zap.Error(err))
		return badRequest(c, "Bad request")
	}
	if err := validateStruct(req); err != nil {
		return respondError(c, err)
	}

	user, err := h.Users.Create(c.UserContext(), service.UserInput{
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Password:  req.Password,
	})
	if err != nil {
		return respondError(c, err)
	}

	logger.AuditLogger.Info("User created", zap.Int("user_id", user.ID))
	return respondCreated(c, "User created successfully", user)
}

func (h *Handler) GetUser(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return badRequest(c, "Invalid user ID")
	}

	user, err := h.Users.GetByID(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, "User found", user)
}

func (h *Handler) GetAllUsers(c *fiber.Ctx) error {
	users, err := h.Users.GetAll(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, "Users fetched successfully", users)
}

func (h *Handler) UpdateUser(c *fiber.Ctx) error {
	principal := principalFromLocals(c)
	id, err := c.ParamsInt("id")
	if err != nil {
		return badRequest(c, "Invalid user ID")
	}

	var req userRequest
	if err := c.BodyParser(&req); err != nil {
		logger.ErrorLogger.Error("Bad request in update user", zap.Error(err))
		return badRequest(c, "Bad request")
	}
	if err := validateStruct(req); err != nil {
		return respondError(c, err)
	}

	user, err := h.Users.Update(c.UserContext(), principal, id, service.UserInput{
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Password:  req.Password,
	})
	if err != nil {
		return respondError(c, err)
	}

	logger.AuditLogger.Info("User updated", zap.Int("user_id", user.ID))
	return respondOK(c, "User updated successfully", user)
}

func (h *Handler) DeleteUser(c *fiber.Ctx) error {
	principal := principalFromLocals(c)
	id, err := c.ParamsInt("id")
	if err != nil {
		return badRequest(c, "Invalid user ID")
	}

	if err := h.Users.Delete(c.UserContext(), principal, id); err != nil {
		return respondError(c, err)
	}

	logger.AuditLogger.Info("User deleted", zap.Int("user_id", id))
	return respondOK(c, "User deleted successfully", nil)
}
