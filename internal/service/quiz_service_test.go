package service

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"tennis-rally-api/internal/domain"
	"tennis-rally-api/internal/dto"
	"tennis-rally-api/internal/metrics"
	"tennis-rally-api/internal/quiz"
	"tennis-rally-api/internal/repository"
	"tennis-rally-api/internal/response"
)

// answersAt picks the choice at index pick for every question, clamped to the last choice
func answersAt(pick int) map[string]string {
	answers := make(map[string]string)
	for _, q := range quiz.Questions() {
		i := pick
		if i >= len(q.Choices) {
			i = len(q.Choices) - 1
		}
		answers[q.Key] = q.Choices[i].Value
	}
	return answers
}

func TestQuizService_SubmitRejectsIncompleteAnswers(t *testing.T) {
	quizzes := &MockQuizRepository{
		RecordFunc: func(ctx context.Context, submission *domain.QuizSubmission) error {
			t.Fatal("Record must not be called")
			return nil
		},
	}
	svc := NewQuizService(quizzes, nil, zap.NewNop())

	missing := answersAt(0)
	delete(missing, "q4")
	invalid := answersAt(0)
	invalid["q2"] = "0.3"

	for name, answers := range map[string]map[string]string{
		"missing": missing,
		"invalid": invalid,
		"empty":   {},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := svc.Submit(context.Background(), 1, &dto.QuizSubmitRequest{Answers: answers})
			assert.Equal(t, response.ErrCodeValidation, errorCode(err))
		})
	}
}

func TestQuizService_SubmitRecordsResult(t *testing.T) {
	var recorded *domain.QuizSubmission
	quizzes := &MockQuizRepository{
		RecordFunc: func(ctx context.Context, submission *domain.QuizSubmission) error {
			recorded = submission
			return nil
		},
	}
	m := metrics.NewWithRegistry(prometheus.NewRegistry(), zap.NewNop())
	svc := NewQuizService(quizzes, m, zap.NewNop())

	got, err := svc.Submit(context.Background(), 4, &dto.QuizSubmitRequest{Answers: answersAt(0)})
	require.NoError(t, err)
	assert.Equal(t, 73, got.TotalTenths)
	assert.InDelta(t, 7.3, got.Score, 1e-9)
	assert.Equal(t, domain.SkillBeginner, got.SkillLevel)

	require.NotNil(t, recorded)
	assert.Equal(t, uint(4), recorded.UserID)
	assert.Equal(t, 73, recorded.TotalTenths)
	var stored map[string]string
	require.NoError(t, json.Unmarshal(recorded.Answers, &stored))
	assert.Equal(t, answersAt(0), stored)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.QuizSubmittedTotal.WithLabelValues(string(domain.SkillBeginner))))
}

func TestQuizService_AgainstDatabase(t *testing.T) {
	db := setupTestDB(t)
	svc := NewQuizService(repository.NewQuizRepository(db), nil, zap.NewNop())
	users := repository.NewUserRepository(db)
	ctx := context.Background()
	player := seedUser(t, db, "Anna", "anna@example.com")

	before, err := svc.GetQuiz(ctx, player.ID)
	require.NoError(t, err)
	assert.Len(t, before.Questions, 11)
	assert.Nil(t, before.Latest)

	result, err := svc.Submit(ctx, player.ID, &dto.QuizSubmitRequest{Answers: answersAt(3)})
	require.NoError(t, err)
	assert.Equal(t, 246, result.TotalTenths)
	assert.Equal(t, domain.SkillAdvanced, result.SkillLevel)

	stored, err := users.FindByID(ctx, player.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.SkillAdvanced, stored.SkillLevel)

	after, err := svc.GetQuiz(ctx, player.ID)
	require.NoError(t, err)
	require.NotNil(t, after.Latest)
	assert.Equal(t, 246, after.Latest.TotalTenths)

	_, err = svc.Submit(ctx, 9999, &dto.QuizSubmitRequest{Answers: answersAt(0)})
	assert.Equal(t, response.ErrCodeNotFound, errorCode(err))
}
