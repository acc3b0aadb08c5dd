package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/accreditation-service/internal/api/dto"
	"github.com/spec-kit/accreditation-service/internal/domain"
	"github.com/spec-kit/accreditation-service/internal/notification"
	apperrors "github.com/spec-kit/accreditation-service/pkg/util"
)

// NotificationsHandler exposes the inbound approval email endpoint.
type NotificationsHandler struct {
	mailer notification.Mailer
}

// NewNotificationsHandler constructs handler.
func NewNotificationsHandler(mailer notification.Mailer) *NotificationsHandler {
	return &NotificationsHandler{mailer: mailer}
}

// Send handles POST /approval-notifications. A missing recipient email is a
// precondition failure answered synchronously with 400; a sender failure
// returns 500 with the underlying detail.
func (h *NotificationsHandler) Send(c *fiber.Ctx) error {
	var req dto.ApprovalNotificationRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if strings.TrimSpace(req.RecipientEmail) == "" {
		return apperrors.NewValidationError("recipientEmail is required", nil)
	}

	var zone *domain.Zone
	if req.Zone != "" {
		z := domain.Zone(req.Zone)
		zone = &z
	}

	if err := h.mailer.SendApprovalEmail(c.Context(), notification.ApprovalEmail{
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		RecipientEmail: req.RecipientEmail,
		Zone:           zone,
		Area:           domain.Area(req.Area),
	}); err != nil {
		return apperrors.NewSendError(err)
	}

	return c.JSON(fiber.Map{"ok": true})
}
