package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
)

// SessionStore implements ports.SessionStore. Refresh tokens are opaque
// server-side state: the key is the token itself, the value the owning
// user ID, and expiry rides on the Redis TTL.
type SessionStore struct {
	client *goredis.Client
	prefix string
}

// NewSessionStore creates a new Redis-backed session store.
func NewSessionStore(client *goredis.Client) *SessionStore {
	return &SessionStore{
		client: client,
		prefix: "session:",
	}
}

// Save stores a refresh token for a user with the given TTL.
func (s *SessionStore) Save(ctx context.Context, token string, userID uuid.UUID, ttl time.Duration) error {
	if err := s.client.Set(ctx, s.prefix+token, userID.String(), ttl).Err(); err != nil {
		return fmt.Errorf("redis session save: %w", err)
	}
	return nil
}

// Get resolves a refresh token to its user ID. Returns uuid.Nil with no
// error when the token is unknown or expired.
func (s *SessionStore) Get(ctx context.Context, token string) (uuid.UUID, error) {
	val, err := s.client.Get(ctx, s.prefix+token).Result()
	if err != nil {
		if err == goredis.Nil {
			return uuid.Nil, nil
		}
		return uuid.Nil, fmt.Errorf("redis session get: %w", err)
	}

	userID, err := uuid.Parse(val)
	if err != nil {
		return uuid.Nil, fmt.Errorf("parse session user id: %w", err)
	}
	return userID, nil
}

// Delete revokes a refresh token. Deleting an unknown token is a no-op.
func (s *SessionStore) Delete(ctx context.Context, token string) error {
	if err := s.client.Del(ctx, s.prefix+token).Err(); err != nil {
		return fmt.Errorf("redis session delete: %w", err)
	}
	return nil
}
