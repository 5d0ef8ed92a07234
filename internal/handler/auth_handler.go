package handler

import (
	"auralearn/internal/logger"
	"auralearn/internal/middleware"
	"auralearn/internal/service"

	"auralearn/internal/dto"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type AuthHandler struct {
	authService service.AuthService
}

func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Signup creates a new account and logs it in.
// @Summary Create account
// @Description Validates the signup form, creates the account and returns a session plus access token.
// @Tags auth
// @Accept json
// @Produce json
// @Param body body dto.SignupRequest true "Signup form"
// @Success 201 {object} dto.AuthResponse
// @Failure 400 {object} middleware.ValidationErrorResponse "Field validation failed"
// @Router /auth/signup [post]
func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var req dto.SignupRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Get().Warn("Failed to parse signup request body", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(middleware.ErrorResponse{
			Code: "INVALID_REQUEST_BODY", Message: "Invalid request body", Status: fiber.StatusBadRequest,
		})
	}

	resp, err := h.authService.Signup(c.Context(), &req)
	if err != nil {
		return err // mapped by the central error handler
	}

	return c.Status(fiber.StatusCreated).JSON(resp)
}

// Login verifies credentials and returns a session plus access token.
// @Summary Log in
// @Description Verifies email, password and role in that order.
// @Tags auth
// @Accept json
// @Produce json
// @Param body body dto.LoginRequest true "Login form"
// @Success 200 {object} dto.AuthResponse
// @Failure 401 {object} middleware.ErrorResponse "Unknown account, wrong password or wrong role"
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Get().Warn("Failed to parse login request body", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(middleware.ErrorResponse{
			Code: "INVALID_REQUEST_BODY", Message: "Invalid request body", Status: fiber.StatusBadRequest,
		})
	}

	resp, err := h.authService.Login(c.Context(), &req)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(resp)
}

// PasswordStrength scores a candidate password for live UI guidance.
// @Summary Password strength
// @Tags auth
// @Accept json
// @Produce json
// @Param body body dto.PasswordStrengthRequest true "Candidate password"
// @Success 200 {object} dto.PasswordStrengthResponse
// @Router /auth/password-strength [post]
func (h *AuthHandler) PasswordStrength(c *fiber.Ctx) error {
	var req dto.PasswordStrengthRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(middleware.ErrorResponse{
			Code: "INVALID_REQUEST_BODY", Message: "Invalid request body", Status: fiber.StatusBadRequest,
		})
	}

	return c.Status(fiber.StatusOK).JSON(h.authService.PasswordStrength(req.Password))
}

// Logout handles user logout. Sessions live only in the issued token,
// so logout is the client discarding it; the event is still logged.
// @Summary Log out
// @Tags auth
// @Security ApiKeyAuth
// @Success 200 {object} dto.MessageResponse
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if userID, ok := c.Locals(middleware.UserIDKey).(string); ok && userID != "" {
		logger.Get().Info("User logged out", zap.String("userID", userID))
	}
	return c.Status(fiber.StatusOK).JSON(dto.MessageResponse{Message: "Logout successful. Please discard your token."})
}
