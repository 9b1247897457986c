package handlers

import (
	"taskmanager/internal/token"
	"taskmanager/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

func (h *Handler) Login(c *fiber.Ctx) error {
	type LoginRequest struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}

	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		logger.ErrorLogger.Error("Bad request in login", zap.Error(err))
		return badRequest(c, "Bad request")
	}
	if err := validateStruct(req); err != nil {
		logger.AuditLogger.Warn("Validation error during login", zap.Error(err))
		return respondError(c, err)
	}

	tokenString, err := h.Auth.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		logger.SecurityLogger.Warn("Login failed", zap.String("email", req.Email))
		return respondError(c, err)
	}

	logger.AuditLogger.Info("Login success", zap.String("email", req.Email))
	return respondOK(c, "Login success", fiber.Map{"token": tokenString})
}

func (h *Handler) Logout(c *fiber.Ctx) error {
	claims := c.Locals("claims").(token.Claims)
	if err := h.Auth.Logout(c.UserContext(), claims); err != nil {
		return respondError(c, err)
	}
	logger.AuditLogger.Info("Logout", zap.String("email", claims.Email))
	return respondOK(c, "Logged out", nil)
}
