package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"tennis-rally-api/internal/domain"
)

// RallyRepository manages the directed follow graph
type RallyRepository interface {
	Start(ctx context.Context, followerID, followedID uint) (bool, error)
	Stop(ctx context.Context, followerID, followedID uint) (bool, error)
	Exists(ctx context.Context, followerID, followedID uint) (bool, error)
	Followers(ctx context.Context, userID uint) ([]*domain.User, error)
	Following(ctx context.Context, userID uint) ([]*domain.User, error)
	Count(ctx context.Context) (int64, error)
}

// rallyRepositoryImpl is the GORM implementation of RallyRepository
type rallyRepositoryImpl struct {
	db *gorm.DB
}

// NewRallyRepository creates a new instance of RallyRepository
func NewRallyRepository(db *gorm.DB) RallyRepository {
	return &rallyRepositoryImpl{db: db}
}

// Start inserts the edge and reports whether it was new.
// An unknown followed user yields gorm.ErrRecordNotFound.
func (r *rallyRepositoryImpl) Start(ctx context.Context, followerID, followedID uint) (bool, error) {
	created := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var followed domain.User
		if err := tx.Select("id").First(&followed, followedID).Error; err != nil {
			return err
		}

		result := tx.Clauses(clause.OnConflict{DoNothing: true}).
			Create(&domain.RallyEdge{FollowerID: followerID, FollowedID: followedID})
		if result.Error != nil {
			return result.Error
		}
		created = result.RowsAffected > 0
		return nil
	})
	return created, err
}

// Stop deletes the edge and reports whether one existed
func (r *rallyRepositoryImpl) Stop(ctx context.Context, followerID, followedID uint) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("follower_id = ? AND followed_id = ?", followerID, followedID).
		Delete(&domain.RallyEdge{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *rallyRepositoryImpl) Exists(ctx context.Context, followerID, followedID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&domain.RallyEdge{}).
		Where("follower_id = ? AND followed_id = ?", followerID, followedID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Followers lists users rallying userID, oldest edge first
func (r *rallyRepositoryImpl) Followers(ctx context.Context, userID uint) ([]*domain.User, error) {
	var users []*domain.User
	if err := r.db.WithContext(ctx).
		Joins("JOIN rally_edges ON rally_edges.follower_id = users.id").
		Where("rally_edges.followed_id = ?", userID).
		Order("rally_edges.created_at ASC").Order("users.id ASC").
		Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// Following lists users userID is rallying, oldest edge first
func (r *rallyRepositoryImpl) Following(ctx context.Context, userID uint) ([]*domain.User, error) {
	var users []*domain.User
	if err := r.db.WithContext(ctx).
		Joins("JOIN rally_edges ON rally_edges.followed_id = users.id").
		Where("rally_edges.follower_id = ?", userID).
		Order("rally_edges.created_at ASC").Order("users.id ASC").
		Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *rallyRepositoryImpl) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.RallyEdge{}).Count(&count).Error
	return count, err
}
