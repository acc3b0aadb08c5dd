package export

import (
	"bytes"
	"encoding/csv"
	"strconv"
	"time"

	"github.com/spec-kit/accreditation-service/internal/domain"
)

// csvHeader is the fixed, ordered column set for exports.
var csvHeader = []string{
	"id", "area", "firstName", "lastName", "idDocument",
	"email", "organization", "status", "zone", "createdAt",
}

// RecordsCSV serializes the given record list to CSV. The function is pure:
// output is deterministic for identical input order, missing organization and
// zone render as empty fields, and every value is individually quoted by the
// encoder so embedded delimiters never split columns.
func RecordsCSV(records []domain.AccreditationRecord) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(csvHeader); err != nil {
		return nil, err
	}
	for i := range records {
		if err := w.Write(recordRow(&records[i])); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func recordRow(r *domain.AccreditationRecord) []string {
	organization := ""
	if r.Applicant.Organization != nil {
		organization = *r.Applicant.Organization
	}
	zone := ""
	if r.Zone != nil {
		zone = string(*r.Zone)
	}
	return []string{
		strconv.FormatInt(r.ID, 10),
		string(r.Area),
		r.Applicant.FirstName,
		r.Applicant.LastName,
		r.Applicant.IDDocument,
		r.Applicant.Email,
		organization,
		string(r.Status),
		zone,
		r.CreatedAt.Format(time.RFC3339),
	}
}

// Filename derives a dated export name like the dashboard download.
func Filename(now time.Time) string {
	return "accreditations_" + now.Format("2006-01-02") + ".csv"
}
