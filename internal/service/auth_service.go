package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/accreditation-service/internal/auth"
	"github.com/spec-kit/accreditation-service/internal/config"
	"github.com/spec-kit/accreditation-service/internal/domain"
	"github.com/spec-kit/accreditation-service/internal/repository"
)

// AuthService coordinates reviewer login and logout flows.
type AuthService struct {
	reviewers  repository.ReviewerRepository
	tokenMgr   *auth.TokenManager
	revoked    *auth.RevocationStore
	bcryptCost int
}

// AuthDependencies encapsulates collaborators for the auth service.
type AuthDependencies struct {
	ReviewerRepo    repository.ReviewerRepository
	RevocationStore *auth.RevocationStore
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, deps AuthDependencies) *AuthService {
	return &AuthService{
		reviewers:  deps.ReviewerRepo,
		tokenMgr:   auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes),
		revoked:    deps.RevocationStore,
		bcryptCost: cfg.Auth.BcryptCost,
	}
}

// Login authenticates a reviewer and issues a session token.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.Reviewer, string, time.Time, error) {
	reviewer, err := s.reviewers.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, "", time.Time{}, errors.New("invalid credentials")
		}
		return nil, "", time.Time{}, err
	}
	if err := auth.ComparePassword(reviewer.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, errors.New("invalid credentials")
	}
	token, exp, err := s.tokenMgr.GenerateToken(reviewer.ID)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return reviewer, token, exp, nil
}

// Logout revokes the session token backing the principal.
func (s *AuthService) Logout(ctx context.Context, principal *auth.Principal) error {
	if principal == nil {
		return nil
	}
	return s.revoked.Revoke(ctx, principal.TokenID, time.Unix(principal.ExpiresAt, 0))
}

// RegisterReviewer provisions a reviewer account. Used by deployment
// tooling; there is no self-service sign-up.
func (s *AuthService) RegisterReviewer(ctx context.Context, email, password string) (*domain.Reviewer, error) {
	normalized := strings.ToLower(strings.TrimSpace(email))
	if _, err := s.reviewers.GetByEmail(ctx, normalized); err == nil {
		return nil, errors.New("email already registered")
	} else if err != pgx.ErrNoRows {
		return nil, err
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, err
	}
	reviewer := &domain.Reviewer{Email: normalized, PasswordHash: hash}
	if err := s.reviewers.Create(ctx, reviewer); err != nil {
		return nil, err
	}
	return reviewer, nil
}

// TokenManager exposes the token manager for middleware wiring.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}
