package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"tennis-rally-api/internal/database"
	"tennis-rally-api/internal/domain"
	"tennis-rally-api/internal/response"
)

// testHashIterations keeps PBKDF2 fast in tests
const testHashIterations = 1000

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Open(sqlite.Open(":memory:"), database.Config{MaxOpenConns: 1})
	require.NoError(t, err, "Failed to open test database")
	require.NoError(t, database.AutoMigrate(db), "Failed to migrate schema")
	t.Cleanup(func() { _ = database.Close(db) })
	return db
}

func seedUser(t *testing.T, db *gorm.DB, name, email string) *domain.User {
	t.Helper()
	user := &domain.User{
		Name:         name,
		Email:        email,
		PostalCode:   "20100",
		PasswordHash: "hash",
		SkillLevel:   domain.SkillBeginner,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

// errorCode returns the AppError code of err, or "" when err is not an AppError
func errorCode(err error) string {
	var appErr *response.AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}

// memorySessionStore is an in-process SessionStore for tests
type memorySessionStore struct {
	mu      sync.Mutex
	revoked map[string]time.Duration
}

func newMemorySessionStore() *memorySessionStore {
	return &memorySessionStore{revoked: make(map[string]time.Duration)}
}

func (s *memorySessionStore) Revoke(_ context.Context, sessionID string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.revoked[sessionID] = ttl
	return nil
}

func (s *memorySessionStore) IsRevoked(_ context.Context, sessionID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.revoked[sessionID]
	return ok, nil
}
