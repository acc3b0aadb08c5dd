package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/accreditation-service/internal/domain"
)

// ReviewerRepository defines persistence access for reviewer accounts.
type ReviewerRepository interface {
	Create(ctx context.Context, reviewer *domain.Reviewer) error
	GetByID(ctx context.Context, id string) (*domain.Reviewer, error)
	GetByEmail(ctx context.Context, email string) (*domain.Reviewer, error)
}

type reviewerRepository struct {
	pool *pgxpool.Pool
}

// NewReviewerRepository returns a Postgres-backed implementation.
func NewReviewerRepository(pool *pgxpool.Pool) ReviewerRepository {
	return &reviewerRepository{pool: pool}
}

func (r *reviewerRepository) Create(ctx context.Context, reviewer *domain.Reviewer) error {
	const query = `
        INSERT INTO reviewers (email, password_hash)
        VALUES ($1, $2)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		reviewer.Email,
		reviewer.PasswordHash,
	).Scan(&reviewer.ID, &reviewer.CreatedAt, &reviewer.UpdatedAt)
}

func (r *reviewerRepository) GetByID(ctx context.Context, id string) (*domain.Reviewer, error) {
	const query = `
        SELECT id, email, password_hash, created_at, updated_at
        FROM reviewers WHERE id=$1`
	return r.fetchSingle(ctx, query, id)
}

func (r *reviewerRepository) GetByEmail(ctx context.Context, email string) (*domain.Reviewer, error) {
	const query = `
        SELECT id, email, password_hash, created_at, updated_at
        FROM reviewers WHERE email=$1`
	return r.fetchSingle(ctx, query, email)
}

func (r *reviewerRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.Reviewer, error) {
	var reviewer domain.Reviewer
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&reviewer.ID,
		&reviewer.Email,
		&reviewer.PasswordHash,
		&reviewer.CreatedAt,
		&reviewer.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &reviewer, nil
}
