package service

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
)

const revokedSessionPrefix = "tennis-rally:revoked-session:"

// SessionStore tracks revoked session ids until their tokens would have expired anyway
type SessionStore interface {
	Revoke(ctx context.Context, sessionID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, sessionID string) (bool, error)
}

type redisSessionStore struct {
	client *redis.Client
}

// NewRedisSessionStore stores revocations as expiring redis keys
func NewRedisSessionStore(client *redis.Client) SessionStore {
	return &redisSessionStore{client: client}
}

func (s *redisSessionStore) Revoke(ctx context.Context, sessionID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	return s.client.Set(ctx, revokedSessionPrefix+sessionID, "1", ttl).Err()
}

func (s *redisSessionStore) IsRevoked(ctx context.Context, sessionID string) (bool, error) {
	n, err := s.client.Exists(ctx, revokedSessionPrefix+sessionID).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

type noopSessionStore struct{}

// NewNoopSessionStore is used when redis is not configured; logout is then a client-side discard
func NewNoopSessionStore() SessionStore {
	return noopSessionStore{}
}

func (noopSessionStore) Revoke(context.Context, string, time.Duration) error { return nil }

func (noopSessionStore) IsRevoked(context.Context, string) (bool, error) { return false, nil }
