package repository

import (
	"context"

	"gorm.io/gorm"

	"tennis-rally-api/internal/domain"
)

// QuizRepository stores scored quiz submissions
type QuizRepository interface {
	Record(ctx context.Context, submission *domain.QuizSubmission) error
	Latest(ctx context.Context, userID uint) (*domain.QuizSubmission, error)
	CountByLevel(ctx context.Context) (map[domain.SkillLevel]int64, error)
}

// quizRepositoryImpl is the GORM implementation of QuizRepository
type quizRepositoryImpl struct {
	db *gorm.DB
}

// NewQuizRepository creates a new instance of QuizRepository
func NewQuizRepository(db *gorm.DB) QuizRepository {
	return &quizRepositoryImpl{db: db}
}

// Record sets the user's skill level and stores the submission in one transaction
func (r *quizRepositoryImpl) Record(ctx context.Context, submission *domain.QuizSubmission) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&domain.User{}).
			Where("id = ?", submission.UserID).
			Update("skill_level", submission.SkillLevel)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Omit("User").Create(submission).Error
	})
}

// Latest returns the user's most recent submission
func (r *quizRepositoryImpl) Latest(ctx context.Context, userID uint) (*domain.QuizSubmission, error) {
	var submission domain.QuizSubmission
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").Order("id DESC").
		First(&submission).Error; err != nil {
		return nil, err
	}
	return &submission, nil
}

// CountByLevel counts users per skill level
func (r *quizRepositoryImpl) CountByLevel(ctx context.Context) (map[domain.SkillLevel]int64, error) {
	var rows []struct {
		SkillLevel domain.SkillLevel
		Total      int64
	}
	if err := r.db.WithContext(ctx).Model(&domain.User{}).
		Select("skill_level, COUNT(*) AS total").
		Group("skill_level").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	counts := make(map[domain.SkillLevel]int64, len(rows))
	for _, row := range rows {
		counts[row.SkillLevel] = row.Total
	}
	return counts, nil
}
