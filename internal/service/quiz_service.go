package service

import (
	"context"
	"encoding/json"
	"errors"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"tennis-rally-api/internal/domain"
	"tennis-rally-api/internal/dto"
	"tennis-rally-api/internal/metrics"
	"tennis-rally-api/internal/quiz"
	"tennis-rally-api/internal/repository"
	"tennis-rally-api/internal/response"
)

// QuizService serves the questionnaire and records scored submissions
type QuizService interface {
	GetQuiz(ctx context.Context, userID uint) (*dto.QuizResponse, error)
	Submit(ctx context.Context, userID uint, req *dto.QuizSubmitRequest) (*dto.QuizResultResponse, error)
}

// quizServiceImpl is the implementation of QuizService
type quizServiceImpl struct {
	quizRepo repository.QuizRepository
	metrics  *metrics.Metrics
	logger   *zap.Logger
}

// NewQuizService creates a new instance of QuizService
func NewQuizService(quizRepo repository.QuizRepository, m *metrics.Metrics, logger *zap.Logger) QuizService {
	return &quizServiceImpl{
		quizRepo: quizRepo,
		metrics:  m,
		logger:   logger,
	}
}

// GetQuiz returns the questions and the user's most recent result, if any
func (s *quizServiceImpl) GetQuiz(ctx context.Context, userID uint) (*dto.QuizResponse, error) {
	resp := &dto.QuizResponse{Questions: quiz.Questions()}

	latest, err := s.quizRepo.Latest(ctx, userID)
	switch {
	case err == nil:
		result := dto.ToQuizResultResponse(latest.TotalTenths, latest.SkillLevel)
		resp.Latest = &result
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, translateError(err, "Quiz result not found", "Failed to fetch quiz result")
	}
	return resp, nil
}

// Submit scores the answers and overwrites the user's skill level with the result
func (s *quizServiceImpl) Submit(ctx context.Context, userID uint, req *dto.QuizSubmitRequest) (*dto.QuizResultResponse, error) {
	result, err := quiz.Score(req.Answers)
	if err != nil {
		return nil, response.NewValidationError("Invalid quiz answers", err.Error())
	}

	answers, err := json.Marshal(req.Answers)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to encode answers", err.Error())
	}

	submission := &domain.QuizSubmission{
		UserID:      userID,
		Answers:     datatypes.JSON(answers),
		TotalTenths: result.TotalTenths,
		SkillLevel:  result.Level,
	}
	if err := s.quizRepo.Record(ctx, submission); err != nil {
		return nil, translateError(err, "User not found", "Failed to save quiz result")
	}

	s.metrics.RecordQuizSubmitted(result.Level)
	s.logger.Info("Quiz submitted",
		zap.Uint("user_id", userID),
		zap.Int("total_tenths", result.TotalTenths),
		zap.String("skill_level", string(result.Level)),
	)

	resp := dto.ToQuizResultResponse(result.TotalTenths, result.Level)
	return &resp, nil
}
