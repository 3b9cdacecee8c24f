package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"tennis-rally-api/internal/domain"
)

// UserStats counts the events a user takes part in and has created
type UserStats struct {
	EventsJoined  int64 `json:"events_joined"`
	EventsCreated int64 `json:"events_created"`
}

// UserRepository defines the interface for identity data access
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	FindByID(ctx context.Context, id uint) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	UpdateProfile(ctx context.Context, id uint, name string, surname *string, birthDate *time.Time) error
	Search(ctx context.Context, query string, limit int) ([]*domain.User, error)
	Stats(ctx context.Context, id uint) (*UserStats, error)
	Count(ctx context.Context) (int64, error)
	Delete(ctx context.Context, id uint) error
}

// userRepositoryImpl is the GORM implementation of UserRepository
type userRepositoryImpl struct {
	db *gorm.DB
}

// NewUserRepository creates a new instance of UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepositoryImpl{db: db}
}

// Create inserts a user; a taken email yields ErrDuplicateEmail
func (r *userRepositoryImpl) Create(ctx context.Context, user *domain.User) error {
	var existing int64
	if err := r.db.WithContext(ctx).Model(&domain.User{}).
		Where("email = ?", user.Email).
		Count(&existing).Error; err != nil {
		return err
	}
	if existing > 0 {
		return ErrDuplicateEmail
	}

	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateEmail
		}
		return err
	}
	return nil
}

func (r *userRepositoryImpl) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	var user domain.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByEmail matches the stored email exactly
func (r *userRepositoryImpl) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateProfile overwrites name, surname and birth date, clearing the optional ones when nil
func (r *userRepositoryImpl) UpdateProfile(ctx context.Context, id uint, name string, surname *string, birthDate *time.Time) error {
	result := r.db.WithContext(ctx).Model(&domain.User{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"name":       name,
			"surname":    surname,
			"birth_date": birthDate,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Search matches name or surname by case-insensitive substring, or postal code by prefix
func (r *userRepositoryImpl) Search(ctx context.Context, query string, limit int) ([]*domain.User, error) {
	var users []*domain.User
	substr := likePattern(query, false)
	prefix := likePattern(query, true)
	if err := r.db.WithContext(ctx).
		Where(`LOWER(name) LIKE LOWER(?) ESCAPE '\' OR LOWER(COALESCE(surname, '')) LIKE LOWER(?) ESCAPE '\' OR LOWER(postal_code) LIKE LOWER(?) ESCAPE '\'`,
			substr, substr, prefix).
		Order("name ASC").Order("id ASC").
		Limit(limit).
		Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *userRepositoryImpl) Stats(ctx context.Context, id uint) (*UserStats, error) {
	var stats UserStats
	db := r.db.WithContext(ctx)
	if err := db.Model(&domain.Participation{}).Where("user_id = ?", id).Count(&stats.EventsJoined).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&domain.Event{}).Where("creator_id = ?", id).Count(&stats.EventsCreated).Error; err != nil {
		return nil, err
	}
	return &stats, nil
}

func (r *userRepositoryImpl) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.User{}).Count(&count).Error
	return count, err
}

// Delete removes the user and everything hanging off it in one transaction:
// rally edges on both sides, roster rows, owned events with their rosters, quiz submissions.
func (r *userRepositoryImpl) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("follower_id = ? OR followed_id = ?", id, id).
			Delete(&domain.RallyEdge{}).Error; err != nil {
			return err
		}

		owned := tx.Model(&domain.Event{}).Select("id").Where("creator_id = ?", id)
		if err := tx.Where("event_id IN (?) OR user_id = ?", owned, id).
			Delete(&domain.Participation{}).Error; err != nil {
			return err
		}
		if err := tx.Where("creator_id = ?", id).Delete(&domain.Event{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&domain.QuizSubmission{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&domain.User{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
