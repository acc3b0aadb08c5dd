package notification

import (
	"context"

	"github.com/spec-kit/accreditation-service/internal/domain"
)

// ApprovalEmail carries everything needed to notify an approved applicant.
type ApprovalEmail struct {
	FirstName      string
	LastName       string
	RecipientEmail string
	Zone           *domain.Zone
	Area           domain.Area
}

// Mailer delivers approval emails. Delivery success or failure is
// independent of record state; the approve workflow treats failures as
// best-effort and never rolls back an approval over them.
type Mailer interface {
	SendApprovalEmail(ctx context.Context, msg ApprovalEmail) error
}
