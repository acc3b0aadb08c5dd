package service

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/accreditation-service/internal/domain"
	"github.com/spec-kit/accreditation-service/internal/events"
	"github.com/spec-kit/accreditation-service/internal/repository"
	apperrors "github.com/spec-kit/accreditation-service/pkg/util"
)

// emailShape is intentionally permissive: local-part@domain with a dot,
// nothing close to full RFC validation.
var emailShape = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// IntakeService validates and submits new accreditation requests.
type IntakeService struct {
	records    repository.AccreditationRepository
	dispatcher events.Dispatcher
}

// NewIntakeService constructs the service.
func NewIntakeService(records repository.AccreditationRepository, dispatcher events.Dispatcher) *IntakeService {
	return &IntakeService{records: records, dispatcher: dispatcher}
}

// IntakeInput describes one candidate submission.
type IntakeInput struct {
	Area          domain.Area
	FirstName     string
	LastName      string
	IDDocument    string
	Email         string
	Organization  string
	TermsAccepted bool
}

// Submit validates the candidate fail-fast in a fixed order (names, email
// shape, terms), normalizes the fields and creates the record with status
// pending and no zone. The id document is accepted as-is: passport, national
// ID or any identifier string. There is no idempotency key, so a duplicate
// submission creates a duplicate record.
func (s *IntakeService) Submit(ctx context.Context, input IntakeInput) (*domain.AccreditationRecord, error) {
	firstName := strings.TrimSpace(input.FirstName)
	lastName := strings.TrimSpace(input.LastName)
	if firstName == "" || lastName == "" {
		return nil, apperrors.NewValidationError("first and last name are required", nil)
	}

	email := strings.TrimSpace(input.Email)
	if !emailShape.MatchString(email) {
		return nil, apperrors.NewValidationError("invalid email", nil)
	}

	if !input.TermsAccepted {
		return nil, apperrors.NewValidationError("terms and conditions must be accepted", nil)
	}

	record := &domain.AccreditationRecord{
		Area: input.Area,
		Applicant: domain.Applicant{
			FirstName:    firstName,
			LastName:     lastName,
			IDDocument:   strings.TrimSpace(input.IDDocument),
			Email:        strings.ToLower(email),
			Organization: optionalText(input.Organization),
		},
		Status: domain.StatusPending,
		Zone:   nil,
	}

	if err := s.records.Create(ctx, record); err != nil {
		return nil, apperrors.NewStoreError(err)
	}

	s.publish(ctx, events.Event{
		Type:     events.EventAccreditationSubmitted,
		RecordID: record.ID,
		Payload: events.AccreditationSubmittedPayload{
			Area:         record.Area,
			Email:        record.Applicant.Email,
			Organization: record.Applicant.Organization,
		},
	})
	return record, nil
}

func (s *IntakeService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}

func optionalText(val string) *string {
	trimmed := strings.TrimSpace(val)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
