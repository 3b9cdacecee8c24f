package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"tennis-rally-api/internal/domain"
)

func TestUserRepository_CreateAndFind(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := &domain.User{Name: "Mario", Email: "mario@example.com", PostalCode: "20100", PasswordHash: "h", SkillLevel: domain.SkillBeginner}
	require.NoError(t, repo.Create(ctx, user))
	assert.NotZero(t, user.ID)

	found, err := repo.FindByEmail(ctx, "mario@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)

	_, err = repo.FindByEmail(ctx, "Mario@example.com")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound, "email lookup is case-sensitive")

	_, err = repo.FindByID(ctx, 999)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestUserRepository_CreateDuplicateEmail(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	first := &domain.User{Name: "Mario", Email: "dup@example.com", PostalCode: "20100", PasswordHash: "h", SkillLevel: domain.SkillBeginner}
	require.NoError(t, repo.Create(ctx, first))

	second := &domain.User{Name: "Luigi", Email: "dup@example.com", PostalCode: "00100", PasswordHash: "h", SkillLevel: domain.SkillBeginner}
	assert.ErrorIs(t, repo.Create(ctx, second), ErrDuplicateEmail)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestUserRepository_UpdateProfile(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()
	user := createUser(t, db, "mario")

	surname := "Rossi"
	birth := time.Date(1990, time.June, 15, 0, 0, 0, 0, time.UTC)
	require.NoError(t, repo.UpdateProfile(ctx, user.ID, "Mario", &surname, &birth))

	found, err := repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Mario", found.Name)
	require.NotNil(t, found.Surname)
	assert.Equal(t, "Rossi", *found.Surname)
	require.NotNil(t, found.BirthDate)
	assert.Equal(t, birth.Format("2006-01-02"), found.BirthDate.Format("2006-01-02"))
	assert.Equal(t, user.Email, found.Email, "email is untouched")

	require.NoError(t, repo.UpdateProfile(ctx, user.ID, "Mario", nil, nil))
	found, err = repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Nil(t, found.Surname)
	assert.Nil(t, found.BirthDate)

	assert.ErrorIs(t, repo.UpdateProfile(ctx, 999, "X", nil, nil), gorm.ErrRecordNotFound)
}

func TestUserRepository_Search(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	surname := "Bianchi"
	users := []*domain.User{
		{Name: "Zoe", Email: "z@example.com", PostalCode: "20121", PasswordHash: "h", SkillLevel: domain.SkillBeginner},
		{Name: "Anna", Surname: &surname, Email: "a@example.com", PostalCode: "00184", PasswordHash: "h", SkillLevel: domain.SkillBeginner},
		{Name: "Marco", Email: "m@example.com", PostalCode: "20100", PasswordHash: "h", SkillLevel: domain.SkillBeginner},
		{Name: "Özil", Email: "o@example.com", PostalCode: "SW1A1", PasswordHash: "h", SkillLevel: domain.SkillBeginner},
	}
	for _, u := range users {
		require.NoError(t, repo.Create(ctx, u))
	}

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"name substring case-insensitive", "ARC", []string{"Marco"}},
		{"surname substring", "bian", []string{"Anna"}},
		{"postal code prefix ordered by name", "201", []string{"Marco", "Zoe"}},
		{"wildcards are literal", "%", nil},
		{"non-ASCII name in its stored casing", "Özil", []string{"Özil"}},
		{"ASCII part of a non-ASCII name ignores case", "ZIL", []string{"Özil"}},
		{"postal code prefix ignores case", "sw1a", []string{"Özil"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			found, err := repo.Search(ctx, tt.query, 10)
			require.NoError(t, err)
			var names []string
			for _, u := range found {
				names = append(names, u.Name)
			}
			assert.Equal(t, tt.want, names)
		})
	}
}

func TestUserRepository_Stats(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	owner := createUser(t, db, "owner")
	other := createUser(t, db, "other")
	createEvent(t, db, owner, "Morning match", "Milano", time.Now().Add(24*time.Hour), 4)
	theirs := createEvent(t, db, other, "Evening match", "Roma", time.Now().Add(48*time.Hour), 4)
	require.NoError(t, NewParticipationRepository(db).Join(ctx, theirs.ID, owner.ID))

	stats, err := repo.Stats(ctx, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.EventsJoined)
	assert.Equal(t, int64(1), stats.EventsCreated)
}

func TestUserRepository_DeleteCascades(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	leaving := createUser(t, db, "leaving")
	staying := createUser(t, db, "staying")

	owned := createEvent(t, db, leaving, "Owned event", "Milano", time.Now().Add(24*time.Hour), 4)
	require.NoError(t, NewParticipationRepository(db).Join(ctx, owned.ID, staying.ID))
	foreign := createEvent(t, db, staying, "Foreign event", "Roma", time.Now().Add(24*time.Hour), 4)
	require.NoError(t, NewParticipationRepository(db).Join(ctx, foreign.ID, leaving.ID))

	rally := NewRallyRepository(db)
	_, err := rally.Start(ctx, leaving.ID, staying.ID)
	require.NoError(t, err)
	_, err = rally.Start(ctx, staying.ID, leaving.ID)
	require.NoError(t, err)
	require.NoError(t, NewQuizRepository(db).Record(ctx, &domain.QuizSubmission{UserID: leaving.ID, SkillLevel: domain.SkillAdvanced, TotalTenths: 200}))

	require.NoError(t, repo.Delete(ctx, leaving.ID))

	_, err = repo.FindByID(ctx, leaving.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	var count int64
	require.NoError(t, db.Model(&domain.RallyEdge{}).Count(&count).Error)
	assert.Zero(t, count)
	require.NoError(t, db.Model(&domain.Event{}).Where("id = ?", owned.ID).Count(&count).Error)
	assert.Zero(t, count)
	require.NoError(t, db.Model(&domain.Participation{}).Where("event_id = ?", owned.ID).Count(&count).Error)
	assert.Zero(t, count)
	require.NoError(t, db.Model(&domain.QuizSubmission{}).Count(&count).Error)
	assert.Zero(t, count)

	roster, err := NewParticipationRepository(db).Roster(ctx, foreign.ID)
	require.NoError(t, err)
	require.Len(t, roster, 1)
	assert.Equal(t, staying.ID, roster[0].UserID)

	assert.ErrorIs(t, repo.Delete(ctx, leaving.ID), gorm.ErrRecordNotFound)
}
