package auth

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const revokedKeyPrefix = "auth:revoked:"

// RevocationStore tracks signed-out token ids until they would have expired
// anyway. A missing redis client degrades to no revocation tracking, which
// matches how the rest of the service treats redis as optional.
type RevocationStore struct {
	client *redis.Client
}

// NewRevocationStore builds a store over the shared redis client.
func NewRevocationStore(client *redis.Client) *RevocationStore {
	return &RevocationStore{client: client}
}

// Revoke marks a token id as signed out. TTL covers the remaining token
// lifetime; expired entries clean themselves up.
func (s *RevocationStore) Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error {
	if s == nil || s.client == nil || tokenID == "" {
		return nil
	}
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return nil
	}
	return s.client.Set(ctx, revokedKeyPrefix+tokenID, "1", ttl).Err()
}

// IsRevoked reports whether the token id has been signed out.
func (s *RevocationStore) IsRevoked(ctx context.Context, tokenID string) bool {
	if s == nil || s.client == nil || tokenID == "" {
		return false
	}
	n, err := s.client.Exists(ctx, revokedKeyPrefix+tokenID).Result()
	if err != nil {
		return false
	}
	return n > 0
}
