package repository

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"tennis-rally-api/internal/database"
	"tennis-rally-api/internal/domain"
)

// setupTestDB opens a fresh in-memory SQLite database with the full schema.
// A single connection keeps the in-memory database shared and serializes writers.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Open(sqlite.Open(":memory:"), database.Config{MaxOpenConns: 1})
	require.NoError(t, err, "Failed to open test database")
	require.NoError(t, database.AutoMigrate(db), "Failed to migrate schema")
	t.Cleanup(func() { _ = database.Close(db) })
	return db
}

var userSeq atomic.Int64

func createUser(t *testing.T, db *gorm.DB, name string) *domain.User {
	t.Helper()
	user := &domain.User{
		Name:         name,
		Email:        fmt.Sprintf("%s-%d@example.com", name, userSeq.Add(1)),
		PostalCode:   "20100",
		PasswordHash: "hash",
		SkillLevel:   domain.SkillBeginner,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createEvent(t *testing.T, db *gorm.DB, creator *domain.User, title, location string, at time.Time, capacity int) *domain.Event {
	t.Helper()
	event := &domain.Event{
		Title:            title,
		Type:             domain.EventTypeSingles,
		Datetime:         at.UTC(),
		Location:         location,
		MaxParticipants:  capacity,
		RecommendedLevel: domain.RecommendedAll,
		CreatorID:        creator.ID,
	}
	require.NoError(t, NewEventRepository(db).Create(context.Background(), event))
	return event
}
