package handlers

import (
	"errors"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/poseidon-api/internal/api/dto"
	"github.com/spec-kit/poseidon-api/internal/service"
	apperrors "github.com/spec-kit/poseidon-api/pkg/util/errorutil"
)

// LoginHandler exposes the credential exchange endpoint.
type LoginHandler struct {
	auth *service.AuthService
}

// NewLoginHandler constructs handler.
func NewLoginHandler(authService *service.AuthService) *LoginHandler {
	return &LoginHandler{auth: authService}
}

// Login handles POST /login.
func (h *LoginHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if err := req.Validate(); err != nil {
		return validationError("email and password are required", err)
	}

	token, err := h.auth.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(dto.AuthResponse{Token: token.Value, ExpiresAt: token.ExpiresAt})
}

// validationError converts ozzo field errors into a VALIDATION_FAILED response.
func validationError(message string, err error) error {
	var fields validation.Errors
	if !errors.As(err, &fields) {
		return apperrors.NewInternalError(err)
	}
	details := make(map[string]any, len(fields))
	for field, fieldErr := range fields {
		details[field] = fieldErr.Error()
	}
	return apperrors.NewValidationError(message, details)
}
