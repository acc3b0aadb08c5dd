package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/accreditation-service/internal/domain"
	"github.com/spec-kit/accreditation-service/internal/events"
	"github.com/spec-kit/accreditation-service/internal/notification"
	"github.com/spec-kit/accreditation-service/internal/repository"
	apperrors "github.com/spec-kit/accreditation-service/pkg/util"
)

// ReviewService coordinates the review workspace: listing, filtering and the
// status/zone transitions on accreditation records.
type ReviewService struct {
	records    repository.AccreditationRepository
	mailer     notification.Mailer
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// ReviewDependencies bundles collaborators for the review service.
type ReviewDependencies struct {
	RecordRepo repository.AccreditationRepository
	Mailer     notification.Mailer
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// NewReviewService constructs the service.
func NewReviewService(deps ReviewDependencies) *ReviewService {
	return &ReviewService{
		records:    deps.RecordRepo,
		mailer:     deps.Mailer,
		dispatcher: deps.Dispatcher,
		logger:     deps.Logger,
	}
}

// List returns records matching the store-side filters, newest first. The
// free-text search term never reaches the store; apply Search to the result.
func (s *ReviewService) List(ctx context.Context, filter repository.AccreditationFilter) ([]domain.AccreditationRecord, error) {
	records, err := s.records.ListWithFilter(ctx, filter)
	if err != nil {
		return nil, apperrors.NewStoreError(err)
	}
	return records, nil
}

// Search is the pure, derived view over an already-loaded record list: it
// keeps records whose name, document, email or organization contains the
// term as a case-insensitive substring. An empty term is the identity. The
// input slice is never mutated and relative order is preserved.
func Search(records []domain.AccreditationRecord, term string) []domain.AccreditationRecord {
	needle := strings.ToLower(strings.TrimSpace(term))
	if needle == "" {
		return records
	}
	filtered := make([]domain.AccreditationRecord, 0, len(records))
	for _, record := range records {
		if matchesTerm(&record, needle) {
			filtered = append(filtered, record)
		}
	}
	return filtered
}

func matchesTerm(r *domain.AccreditationRecord, needle string) bool {
	haystacks := []string{
		r.Applicant.FirstName,
		r.Applicant.LastName,
		r.Applicant.IDDocument,
		r.Applicant.Email,
	}
	if r.Applicant.Organization != nil {
		haystacks = append(haystacks, *r.Applicant.Organization)
	}
	for _, h := range haystacks {
		if strings.Contains(strings.ToLower(h), needle) {
			return true
		}
	}
	return false
}

// SetStatus applies a direct status transition. All transitions between
// pending, approved and rejected are permitted in either direction; the
// zone precondition lives only in ApproveWithZone.
func (s *ReviewService) SetStatus(ctx context.Context, id int64, status domain.AccreditationStatus) (*domain.AccreditationRecord, error) {
	if !status.Valid() {
		return nil, apperrors.NewValidationError("unknown status", map[string]any{"status": status})
	}
	record, err := s.records.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	s.publish(ctx, events.Event{
		Type:     events.EventAccreditationStatusChanged,
		RecordID: record.ID,
		Payload:  events.AccreditationStatusChangedPayload{NewStatus: record.Status},
	})
	return record, nil
}

// SetZone sets or clears the zone independently of status. A reviewer may
// pre-assign a zone before approving.
func (s *ReviewService) SetZone(ctx context.Context, id int64, zone *domain.Zone) (*domain.AccreditationRecord, error) {
	if zone != nil && !zone.Valid() {
		return nil, apperrors.NewValidationError("unknown zone", map[string]any{"zone": *zone})
	}
	record, err := s.records.UpdateZone(ctx, id, zone)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	s.publish(ctx, events.Event{
		Type:     events.EventAccreditationZoneAssigned,
		RecordID: record.ID,
		Payload:  events.AccreditationZoneAssignedPayload{Zone: record.Zone},
	})
	return record, nil
}

// ApproveWithZone runs the compound approval workflow: the zone precondition
// is checked before any write, the update re-asserts the zone alongside the
// status, and only a successful update triggers the notification. Mail
// failure is logged and never surfaced; the approval is the authoritative
// action and stands regardless.
func (s *ReviewService) ApproveWithZone(ctx context.Context, id int64) (*domain.AccreditationRecord, error) {
	record, err := s.records.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if !record.ZoneAssigned() {
		return nil, apperrors.NewValidationError("a zone must be assigned before approval", nil)
	}

	oldStatus := record.Status
	updated, err := s.records.UpdateReview(ctx, id, domain.StatusApproved, *record.Zone)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	s.publish(ctx, events.Event{
		Type:     events.EventAccreditationStatusChanged,
		RecordID: updated.ID,
		Payload: events.AccreditationStatusChangedPayload{
			OldStatus: oldStatus,
			NewStatus: updated.Status,
		},
	})

	if err := s.mailer.SendApprovalEmail(ctx, notification.ApprovalEmail{
		FirstName:      updated.Applicant.FirstName,
		LastName:       updated.Applicant.LastName,
		RecipientEmail: updated.Applicant.Email,
		Zone:           updated.Zone,
		Area:           updated.Area,
	}); err != nil {
		s.logger.Error("approval email failed",
			zap.Int64("record_id", updated.ID),
			zap.String("email", updated.Applicant.Email),
			zap.Error(err))
	}

	return updated, nil
}

func (s *ReviewService) publish(ctx context.Context, event events.Event) {
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
