package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/travel-planner/backend/internal/domain"
)

const refreshTokenKeyPrefix = "refresh_token:"
const revokedTokenKeyPrefix = "blacklist:"

// revokedSentinel is the marker value stored against a revoked access token.
const revokedSentinel = "logout"

// SessionStore holds the single live refresh token per subject. Every Put
// resets the TTL, so the 14-day window slides per rotation.
type SessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewSessionStore(client *redis.Client, ttl time.Duration) *SessionStore {
	return &SessionStore{client: client, ttl: ttl}
}

// Put stores (or overwrites) the subject's refresh token. Last writer wins.
func (s *SessionStore) Put(ctx context.Context, subject, refreshToken string) error {
	key := refreshTokenKeyPrefix + subject
	if err := s.client.Set(ctx, key, refreshToken, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store refresh session: %w", err)
	}
	return nil
}

// Get returns the stored refresh token for the subject, or
// domain.ErrSessionNotFound when no session exists.
func (s *SessionStore) Get(ctx context.Context, subject string) (string, error) {
	key := refreshTokenKeyPrefix + subject
	val, err := s.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", domain.ErrSessionNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to read refresh session: %w", err)
	}
	return val, nil
}

// Delete removes the subject's session. Deleting an absent session is not an
// error.
func (s *SessionStore) Delete(ctx context.Context, subject string) error {
	key := refreshTokenKeyPrefix + subject
	if err := s.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to delete refresh session: %w", err)
	}
	return nil
}

// RevocationStore is the time-bounded denylist for access tokens revoked
// before their natural expiry.
type RevocationStore struct {
	client *redis.Client
}

func NewRevocationStore(client *redis.Client) *RevocationStore {
	return &RevocationStore{client: client}
}

// MarkRevoked denylists the raw token string for exactly its remaining
// validity window. A non-positive ttl is a no-op: the token is already
// expired and validation rejects it on expiry grounds anyway.
func (r *RevocationStore) MarkRevoked(ctx context.Context, accessToken string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	key := revokedTokenKeyPrefix + accessToken
	if err := r.client.Set(ctx, key, revokedSentinel, ttl).Err(); err != nil {
		return fmt.Errorf("failed to mark token revoked: %w", err)
	}
	return nil
}

// IsRevoked reports whether the token is currently denylisted.
func (r *RevocationStore) IsRevoked(ctx context.Context, accessToken string) (bool, error) {
	key := revokedTokenKeyPrefix + accessToken
	_, err := r.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check revocation: %w", err)
	}
	return true, nil
}
