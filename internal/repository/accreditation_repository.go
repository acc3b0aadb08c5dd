package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/accreditation-service/internal/domain"
)

// AccreditationFilter captures the store-side listing constraints. Both
// fields are exact-match equality; nil means no constraint. The free-text
// search term is deliberately not part of this filter (it is applied
// in memory, never sent to the store).
type AccreditationFilter struct {
	Area   *domain.Area
	Status *domain.AccreditationStatus
}

// AccreditationRepository encapsulates accreditation record persistence.
// The store is the sole authority for id and created_at. Every update
// returns the stored row so callers never rely on a blind local echo.
type AccreditationRepository interface {
	Create(ctx context.Context, record *domain.AccreditationRecord) error
	GetByID(ctx context.Context, id int64) (*domain.AccreditationRecord, error)
	ListWithFilter(ctx context.Context, filter AccreditationFilter) ([]domain.AccreditationRecord, error)
	UpdateStatus(ctx context.Context, id int64, status domain.AccreditationStatus) (*domain.AccreditationRecord, error)
	UpdateZone(ctx context.Context, id int64, zone *domain.Zone) (*domain.AccreditationRecord, error)
	UpdateReview(ctx context.Context, id int64, status domain.AccreditationStatus, zone domain.Zone) (*domain.AccreditationRecord, error)
}

type accreditationRepository struct {
	pool *pgxpool.Pool
}

// NewAccreditationRepository returns a Postgres-backed implementation.
func NewAccreditationRepository(pool *pgxpool.Pool) AccreditationRepository {
	return &accreditationRepository{pool: pool}
}

const recordColumns = "id, area, first_name, last_name, id_document, email, organization, status, zone, created_at"

func (r *accreditationRepository) Create(ctx context.Context, record *domain.AccreditationRecord) error {
	const query = `
        INSERT INTO accreditations (area, first_name, last_name, id_document, email, organization, status, zone)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		record.Area,
		record.Applicant.FirstName,
		record.Applicant.LastName,
		record.Applicant.IDDocument,
		record.Applicant.Email,
		record.Applicant.Organization,
		record.Status,
		zoneArg(record.Zone),
	).Scan(&record.ID, &record.CreatedAt)
}

func (r *accreditationRepository) GetByID(ctx context.Context, id int64) (*domain.AccreditationRecord, error) {
	query := fmt.Sprintf(`SELECT %s FROM accreditations WHERE id=$1`, recordColumns)
	return scanRecord(r.pool.QueryRow(ctx, query, id))
}

func (r *accreditationRepository) ListWithFilter(ctx context.Context, filter AccreditationFilter) ([]domain.AccreditationRecord, error) {
	clauses := []string{"1=1"}
	args := []any{}

	if filter.Area != nil {
		args = append(args, *filter.Area)
		clauses = append(clauses, fmt.Sprintf("area=$%d", len(args)))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		clauses = append(clauses, fmt.Sprintf("status=$%d", len(args)))
	}

	query := fmt.Sprintf(`SELECT %s FROM accreditations WHERE %s ORDER BY created_at DESC`,
		recordColumns, strings.Join(clauses, " AND "))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []domain.AccreditationRecord{}
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *record)
	}
	return result, rows.Err()
}

func (r *accreditationRepository) UpdateStatus(ctx context.Context, id int64, status domain.AccreditationStatus) (*domain.AccreditationRecord, error) {
	query := fmt.Sprintf(`UPDATE accreditations SET status=$1 WHERE id=$2 RETURNING %s`, recordColumns)
	return scanRecord(r.pool.QueryRow(ctx, query, status, id))
}

func (r *accreditationRepository) UpdateZone(ctx context.Context, id int64, zone *domain.Zone) (*domain.AccreditationRecord, error) {
	query := fmt.Sprintf(`UPDATE accreditations SET zone=$1 WHERE id=$2 RETURNING %s`, recordColumns)
	return scanRecord(r.pool.QueryRow(ctx, query, zoneArg(zone), id))
}

// UpdateReview applies status and zone in a single statement; the approve
// workflow re-asserts the zone alongside the status change.
func (r *accreditationRepository) UpdateReview(ctx context.Context, id int64, status domain.AccreditationStatus, zone domain.Zone) (*domain.AccreditationRecord, error) {
	query := fmt.Sprintf(`UPDATE accreditations SET status=$1, zone=$2 WHERE id=$3 RETURNING %s`, recordColumns)
	return scanRecord(r.pool.QueryRow(ctx, query, status, string(zone), id))
}

func zoneArg(zone *domain.Zone) *string {
	if zone == nil {
		return nil
	}
	val := string(*zone)
	return &val
}

func scanRecord(row pgx.Row) (*domain.AccreditationRecord, error) {
	var (
		record domain.AccreditationRecord
		area   string
		status string
		zone   *string
	)
	if err := row.Scan(
		&record.ID,
		&area,
		&record.Applicant.FirstName,
		&record.Applicant.LastName,
		&record.Applicant.IDDocument,
		&record.Applicant.Email,
		&record.Applicant.Organization,
		&status,
		&zone,
		&record.CreatedAt,
	); err != nil {
		return nil, err
	}
	record.Area = domain.Area(area)
	record.Status = domain.AccreditationStatus(status)
	if zone != nil {
		z := domain.Zone(*zone)
		record.Zone = &z
	}
	return &record, nil
}
