package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/accreditation-service/internal/api/dto"
	"github.com/spec-kit/accreditation-service/internal/domain"
	"github.com/spec-kit/accreditation-service/internal/service"
	apperrors "github.com/spec-kit/accreditation-service/pkg/util"
)

// IntakeHandler exposes the applicant-facing submission endpoint.
type IntakeHandler struct {
	intake *service.IntakeService
}

// NewIntakeHandler constructs handler.
func NewIntakeHandler(intakeService *service.IntakeService) *IntakeHandler {
	return &IntakeHandler{intake: intakeService}
}

// Submit handles POST /accreditations.
func (h *IntakeHandler) Submit(c *fiber.Ctx) error {
	var req dto.SubmitAccreditationRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	area := domain.Area(req.Area)
	if !area.Valid() {
		return apperrors.NewValidationError("unknown area", map[string]any{"area": req.Area})
	}

	record, err := h.intake.Submit(c.Context(), service.IntakeInput{
		Area:          area,
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		IDDocument:    req.IDDocument,
		Email:         req.Email,
		Organization:  req.Organization,
		TermsAccepted: req.TermsAccepted,
	})
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"data": dto.NewAccreditationResponse(record),
		"confirmation": fiber.Map{
			"firstName": record.Applicant.FirstName,
			"lastName":  record.Applicant.LastName,
		},
	})
}
