package dto

import (
	"time"

	"github.com/spec-kit/accreditation-service/internal/domain"
)

// SubmitAccreditationRequest payload for the intake form.
type SubmitAccreditationRequest struct {
	Area          string `json:"area"`
	FirstName     string `json:"firstName"`
	LastName      string `json:"lastName"`
	IDDocument    string `json:"idDocument"`
	Email         string `json:"email"`
	Organization  string `json:"organization"`
	TermsAccepted bool   `json:"termsAccepted"`
}

// UpdateStatusRequest payload for a direct status transition.
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// UpdateZoneRequest payload for setting or clearing a zone. A null zone
// clears the assignment.
type UpdateZoneRequest struct {
	Zone *string `json:"zone"`
}

// ApprovalNotificationRequest payload for the inbound sender endpoint.
type ApprovalNotificationRequest struct {
	FirstName      string `json:"firstName"`
	LastName       string `json:"lastName"`
	RecipientEmail string `json:"recipientEmail"`
	Zone           string `json:"zone"`
	Area           string `json:"area"`
}

// AccreditationResponse is the wire form of one record.
type AccreditationResponse struct {
	ID           int64     `json:"id"`
	Area         string    `json:"area"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	IDDocument   string    `json:"idDocument"`
	Email        string    `json:"email"`
	Organization *string   `json:"organization"`
	Status       string    `json:"status"`
	Zone         *string   `json:"zone"`
	ZoneLabel    *string   `json:"zoneLabel,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// NewAccreditationResponse converts a domain record.
func NewAccreditationResponse(record *domain.AccreditationRecord) AccreditationResponse {
	resp := AccreditationResponse{
		ID:           record.ID,
		Area:         string(record.Area),
		FirstName:    record.Applicant.FirstName,
		LastName:     record.Applicant.LastName,
		IDDocument:   record.Applicant.IDDocument,
		Email:        record.Applicant.Email,
		Organization: record.Applicant.Organization,
		Status:       string(record.Status),
		CreatedAt:    record.CreatedAt,
	}
	if record.Zone != nil {
		zone := string(*record.Zone)
		label := record.Zone.Label()
		resp.Zone = &zone
		resp.ZoneLabel = &label
	}
	return resp
}
