package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/accreditation-service/internal/domain"
	"github.com/spec-kit/accreditation-service/internal/repository"
	apperrors "github.com/spec-kit/accreditation-service/pkg/util"
)

const principalKey = "auth_principal"

// Principal represents the authenticated reviewer along with the token id
// backing the session.
type Principal struct {
	Reviewer  *domain.Reviewer
	TokenID   string
	ExpiresAt int64
}

// Middleware validates bearer tokens and loads the reviewer principal.
type Middleware struct {
	tokens    *TokenManager
	reviewers repository.ReviewerRepository
	revoked   *RevocationStore
}

// NewMiddleware constructs middleware.
func NewMiddleware(tokens *TokenManager, reviewers repository.ReviewerRepository, revoked *RevocationStore) *Middleware {
	return &Middleware{tokens: tokens, reviewers: reviewers, revoked: revoked}
}

// Handle enforces authentication for review routes.
func (m *Middleware) Handle(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return apperrors.NewUnauthorized("missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return apperrors.NewUnauthorized("invalid authorization header")
	}

	claims, err := m.tokens.ParseToken(parts[1])
	if err != nil {
		return apperrors.NewUnauthorized("invalid token")
	}
	if m.revoked.IsRevoked(c.Context(), claims.ID) {
		return apperrors.NewUnauthorized("session signed out")
	}

	reviewer, err := m.reviewers.GetByID(c.Context(), claims.ReviewerID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NewUnauthorized("reviewer not found")
		}
		return apperrors.MapError(err)
	}

	c.Locals(principalKey, &Principal{
		Reviewer:  reviewer,
		TokenID:   claims.ID,
		ExpiresAt: claims.ExpiresAt.Unix(),
	})
	return c.Next()
}

// PrincipalFromContext retrieves the authenticated principal, if any.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	principal, ok := c.Locals(principalKey).(*Principal)
	return principal, ok && principal != nil
}
