package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"tennis-rally-api/internal/domain"
)

// EventRepository defines the interface for event data access
type EventRepository interface {
	Create(ctx context.Context, event *domain.Event) error
	FindByID(ctx context.Context, id uint) (*domain.Event, error)
	Update(ctx context.Context, event *domain.Event) error
	Delete(ctx context.Context, id uint) error
	Filter(ctx context.Context, filter EventFilter) ([]*domain.Event, error)
	FindJoinedBy(ctx context.Context, userID uint) ([]*domain.Event, error)
	Count(ctx context.Context) (int64, error)
	CountUpcoming(ctx context.Context, now time.Time) (int64, error)
}

// eventRepositoryImpl is the GORM implementation of EventRepository
type eventRepositoryImpl struct {
	db *gorm.DB
}

// NewEventRepository creates a new instance of EventRepository
func NewEventRepository(db *gorm.DB) EventRepository {
	return &eventRepositoryImpl{db: db}
}

// Create persists the event and enrolls its creator as the first participant
func (r *eventRepositoryImpl) Create(ctx context.Context, event *domain.Event) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(event).Error; err != nil {
			return err
		}
		return tx.Create(&domain.Participation{
			EventID: event.ID,
			UserID:  event.CreatorID,
		}).Error
	})
}

// FindByID loads an event with its creator
func (r *eventRepositoryImpl) FindByID(ctx context.Context, id uint) (*domain.Event, error) {
	var event domain.Event
	if err := r.db.WithContext(ctx).Preload("Creator").First(&event, id).Error; err != nil {
		return nil, err
	}
	return &event, nil
}

// Update overwrites every mutable field. Shrinking capacity below the current roster yields ErrCapacityBelowRoster.
func (r *eventRepositoryImpl) Update(ctx context.Context, event *domain.Event) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var current domain.Event
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("id").
			First(&current, event.ID).Error; err != nil {
			return err
		}

		var roster int64
		if err := tx.Model(&domain.Participation{}).
			Where("event_id = ?", event.ID).
			Count(&roster).Error; err != nil {
			return err
		}
		if int64(event.MaxParticipants) < roster {
			return ErrCapacityBelowRoster
		}

		return tx.Model(&domain.Event{ID: event.ID}).
			Select("title", "type", "description", "datetime", "location", "max_participants", "recommended_level", "updated_at").
			Updates(event).Error
	})
}

// Delete removes the event and its roster
func (r *eventRepositoryImpl) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("event_id = ?", id).Delete(&domain.Participation{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&domain.Event{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// Filter lists events matching filter in chronological order
func (r *eventRepositoryImpl) Filter(ctx context.Context, filter EventFilter) ([]*domain.Event, error) {
	var events []*domain.Event
	if err := r.db.WithContext(ctx).
		Scopes(filter.Scopes()...).
		Scopes(chronological).
		Preload("Creator").
		Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

// FindJoinedBy lists the events the user is on the roster of, in chronological order
func (r *eventRepositoryImpl) FindJoinedBy(ctx context.Context, userID uint) ([]*domain.Event, error) {
	var events []*domain.Event
	if err := r.db.WithContext(ctx).
		Joins("JOIN event_participation ON event_participation.event_id = events.id").
		Where("event_participation.user_id = ?", userID).
		Scopes(chronological).
		Preload("Creator").
		Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

func (r *eventRepositoryImpl) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Event{}).Count(&count).Error
	return count, err
}

func (r *eventRepositoryImpl) CountUpcoming(ctx context.Context, now time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Event{}).
		Where("datetime >= ?", now.UTC()).
		Count(&count).Error
	return count, err
}
