package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"tennis-rally-api/internal/domain"
)

// ParticipationRepository manages event rosters
type ParticipationRepository interface {
	Join(ctx context.Context, eventID, userID uint) error
	Leave(ctx context.Context, eventID, userID uint) error
	Roster(ctx context.Context, eventID uint) ([]*domain.Participation, error)
	IsParticipant(ctx context.Context, eventID, userID uint) (bool, error)
	CountByEvent(ctx context.Context, eventID uint) (int64, error)
	CountByEvents(ctx context.Context, eventIDs []uint) (map[uint]int64, error)
	Count(ctx context.Context) (int64, error)
}

// participationRepositoryImpl is the GORM implementation of ParticipationRepository
type participationRepositoryImpl struct {
	db *gorm.DB
}

// NewParticipationRepository creates a new instance of ParticipationRepository
func NewParticipationRepository(db *gorm.DB) ParticipationRepository {
	return &participationRepositoryImpl{db: db}
}

// Join adds the user to the roster. The event row is locked for the duration of the
// transaction so the capacity check and insert see a stable roster.
// Returns gorm.ErrRecordNotFound, ErrAlreadyJoined or ErrEventFull without mutating anything.
func (r *participationRepositoryImpl) Join(ctx context.Context, eventID, userID uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var event domain.Event
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("id", "max_participants").
			First(&event, eventID).Error; err != nil {
			return err
		}

		var mine int64
		if err := tx.Model(&domain.Participation{}).
			Where("event_id = ? AND user_id = ?", eventID, userID).
			Count(&mine).Error; err != nil {
			return err
		}
		if mine > 0 {
			return ErrAlreadyJoined
		}

		var roster int64
		if err := tx.Model(&domain.Participation{}).
			Where("event_id = ?", eventID).
			Count(&roster).Error; err != nil {
			return err
		}
		if roster >= int64(event.MaxParticipants) {
			return ErrEventFull
		}

		if err := tx.Create(&domain.Participation{EventID: eventID, UserID: userID}).Error; err != nil {
			if isUniqueViolation(err) {
				return ErrAlreadyJoined
			}
			return err
		}
		return nil
	})
}

// Leave removes the user from the roster, or returns ErrNotJoined
func (r *participationRepositoryImpl) Leave(ctx context.Context, eventID, userID uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var event domain.Event
		if err := tx.Select("id").First(&event, eventID).Error; err != nil {
			return err
		}

		result := tx.Where("event_id = ? AND user_id = ?", eventID, userID).Delete(&domain.Participation{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrNotJoined
		}
		return nil
	})
}

// Roster returns the participants with their user rows, earliest first
func (r *participationRepositoryImpl) Roster(ctx context.Context, eventID uint) ([]*domain.Participation, error) {
	var roster []*domain.Participation
	if err := r.db.WithContext(ctx).
		Preload("User").
		Where("event_id = ?", eventID).
		Order("joined_at ASC").Order("user_id ASC").
		Find(&roster).Error; err != nil {
		return nil, err
	}
	return roster, nil
}

func (r *participationRepositoryImpl) IsParticipant(ctx context.Context, eventID, userID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&domain.Participation{}).
		Where("event_id = ? AND user_id = ?", eventID, userID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *participationRepositoryImpl) CountByEvent(ctx context.Context, eventID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Participation{}).
		Where("event_id = ?", eventID).
		Count(&count).Error
	return count, err
}

// CountByEvents returns roster sizes keyed by event id; events with no participants are absent
func (r *participationRepositoryImpl) CountByEvents(ctx context.Context, eventIDs []uint) (map[uint]int64, error) {
	counts := make(map[uint]int64, len(eventIDs))
	if len(eventIDs) == 0 {
		return counts, nil
	}

	var rows []struct {
		EventID uint
		Total   int64
	}
	if err := r.db.WithContext(ctx).Model(&domain.Participation{}).
		Select("event_id, COUNT(*) AS total").
		Where("event_id IN ?", eventIDs).
		Group("event_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	for _, row := range rows {
		counts[row.EventID] = row.Total
	}
	return counts, nil
}

func (r *participationRepositoryImpl) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Participation{}).Count(&count).Error
	return count, err
}
