package router

import (
	"context"
	"sync"
	"time"
)

type memorySessions struct {
	mu      sync.Mutex
	revoked map[string]struct{}
}

func newMemorySessions() *memorySessions {
	return &memorySessions{revoked: make(map[string]struct{})}
}

func (s *memorySessions) Revoke(_ context.Context, sessionID string, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.revoked[sessionID] = struct{}{}
	return nil
}

func (s *memorySessions) IsRevoked(_ context.Context, sessionID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.revoked[sessionID]
	return ok, nil
}
