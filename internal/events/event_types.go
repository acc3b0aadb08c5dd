package events

import (
	"time"

	"github.com/spec-kit/accreditation-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventAccreditationSubmitted     EventType = "accreditation_submitted"
	EventAccreditationStatusChanged EventType = "accreditation_status_changed"
	EventAccreditationZoneAssigned  EventType = "accreditation_zone_assigned"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	RecordID  int64       `json:"record_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// AccreditationSubmittedPayload payload.
type AccreditationSubmittedPayload struct {
	Area         domain.Area `json:"area"`
	Email        string      `json:"email"`
	Organization *string     `json:"organization,omitempty"`
}

// AccreditationStatusChangedPayload payload.
type AccreditationStatusChangedPayload struct {
	OldStatus domain.AccreditationStatus `json:"old_status,omitempty"`
	NewStatus domain.AccreditationStatus `json:"new_status"`
}

// AccreditationZoneAssignedPayload payload.
type AccreditationZoneAssignedPayload struct {
	Zone *domain.Zone `json:"zone,omitempty"`
}
