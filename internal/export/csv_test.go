package export

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/accreditation-service/internal/domain"
)

func TestRecordsCSVHeaderOnlyForEmptyList(t *testing.T) {
	out, err := RecordsCSV(nil)
	require.NoError(t, err)

	rows := parseCSV(t, out)
	require.Len(t, rows, 1)
	assert.Equal(t, []string{
		"id", "area", "firstName", "lastName", "idDocument",
		"email", "organization", "status", "zone", "createdAt",
	}, rows[0])
}

func TestRecordsCSVMissingOrganizationIsEmptyString(t *testing.T) {
	record := domain.AccreditationRecord{
		ID:   1,
		Area: domain.AreaPress,
		Applicant: domain.Applicant{
			FirstName:  "Ana",
			LastName:   "Lee",
			IDDocument: "P123",
			Email:      "ana@example.com",
		},
		Status:    domain.StatusPending,
		CreatedAt: time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC),
	}

	out, err := RecordsCSV([]domain.AccreditationRecord{record})
	require.NoError(t, err)

	rows := parseCSV(t, out)
	require.Len(t, rows, 2)
	row := rows[1]
	assert.Equal(t, "1", row[0])
	assert.Equal(t, "Press", row[1])
	assert.Equal(t, "", row[6], "missing organization renders as empty, not a placeholder")
	assert.Equal(t, "", row[8], "unassigned zone renders as empty")
	assert.Equal(t, "2026-06-01T12:00:00Z", row[9])
}

func TestRecordsCSVDelimiterSafety(t *testing.T) {
	org := `Lee, "Sons" & Co`
	zone := domain.Zone3
	record := domain.AccreditationRecord{
		ID:   7,
		Area: domain.AreaSuppliers,
		Applicant: domain.Applicant{
			FirstName:    "Bruno",
			LastName:     "da Silva, Jr.",
			IDDocument:   "X-987",
			Email:        "bruno@example.com",
			Organization: &org,
		},
		Status:    domain.StatusApproved,
		Zone:      &zone,
		CreatedAt: time.Date(2026, 6, 2, 9, 30, 0, 0, time.UTC),
	}

	out, err := RecordsCSV([]domain.AccreditationRecord{record})
	require.NoError(t, err)

	rows := parseCSV(t, out)
	require.Len(t, rows, 2)
	row := rows[1]
	require.Len(t, row, 10, "embedded delimiters must not split columns")
	assert.Equal(t, "da Silva, Jr.", row[3])
	assert.Equal(t, org, row[6])
	assert.Equal(t, "Zone 3", row[8])
}

func TestRecordsCSVDeterministic(t *testing.T) {
	zone := domain.Zone1
	records := []domain.AccreditationRecord{
		{ID: 1, Area: domain.AreaPress, Applicant: domain.Applicant{FirstName: "A", LastName: "B", IDDocument: "1", Email: "a@b.c"}, Status: domain.StatusPending, CreatedAt: time.Unix(0, 0).UTC()},
		{ID: 2, Area: domain.AreaFanFest, Applicant: domain.Applicant{FirstName: "C", LastName: "D", IDDocument: "2", Email: "c@d.e"}, Status: domain.StatusApproved, Zone: &zone, CreatedAt: time.Unix(100, 0).UTC()},
	}

	first, err := RecordsCSV(records)
	require.NoError(t, err)
	second, err := RecordsCSV(records)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestFilename(t *testing.T) {
	assert.Equal(t, "accreditations_2026-08-30.csv",
		Filename(time.Date(2026, 8, 30, 23, 59, 0, 0, time.UTC)))
}

func parseCSV(t *testing.T, data []byte) [][]string {
	t.Helper()
	rows, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	return rows
}
