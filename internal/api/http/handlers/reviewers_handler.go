package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/accreditation-service/internal/api/dto"
	"github.com/spec-kit/accreditation-service/internal/auth"
	"github.com/spec-kit/accreditation-service/internal/service"
	apperrors "github.com/spec-kit/accreditation-service/pkg/util"
)

// ReviewersHandler exposes reviewer session endpoints.
type ReviewersHandler struct {
	auth *service.AuthService
}

// NewReviewersHandler constructs handler.
func NewReviewersHandler(authService *service.AuthService) *ReviewersHandler {
	return &ReviewersHandler{auth: authService}
}

// Login handles POST /auth/reviewers/login.
func (h *ReviewersHandler) Login(c *fiber.Ctx) error {
	var req dto.ReviewerLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Email == "" || req.Password == "" {
		return apperrors.NewValidationError("email and password required", nil)
	}

	reviewer, token, exp, err := h.auth.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		return apperrors.NewUnauthorized(err.Error())
	}

	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"reviewer": fiber.Map{
				"id":    reviewer.ID,
				"email": reviewer.Email,
			},
			"auth": dto.AuthResponse{Token: token, ExpiresAt: exp},
		},
	})
}

// Logout handles POST /auth/reviewers/logout, revoking the presented token.
func (h *ReviewersHandler) Logout(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("reviewer required")
	}
	if err := h.auth.Logout(c.Context(), principal); err != nil {
		return apperrors.MapError(err)
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"ok": true})
}
