package service

import (
	"context"
	"time"

	"gorm.io/gorm"

	"tennis-rally-api/internal/domain"
	"tennis-rally-api/internal/repository"
)

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	CreateFunc        func(ctx context.Context, user *domain.User) error
	FindByIDFunc      func(ctx context.Context, id uint) (*domain.User, error)
	FindByEmailFunc   func(ctx context.Context, email string) (*domain.User, error)
	UpdateProfileFunc func(ctx context.Context, id uint, name string, surname *string, birthDate *time.Time) error
	SearchFunc        func(ctx context.Context, query string, limit int) ([]*domain.User, error)
	StatsFunc         func(ctx context.Context, id uint) (*repository.UserStats, error)
	CountFunc         func(ctx context.Context) (int64, error)
	DeleteFunc        func(ctx context.Context, id uint) error
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, user)
	}
	return nil
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.FindByEmailFunc != nil {
		return m.FindByEmailFunc(ctx, email)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *MockUserRepository) UpdateProfile(ctx context.Context, id uint, name string, surname *string, birthDate *time.Time) error {
	if m.UpdateProfileFunc != nil {
		return m.UpdateProfileFunc(ctx, id, name, surname, birthDate)
	}
	return nil
}

func (m *MockUserRepository) Search(ctx context.Context, query string, limit int) ([]*domain.User, error) {
	if m.SearchFunc != nil {
		return m.SearchFunc(ctx, query, limit)
	}
	return nil, nil
}

func (m *MockUserRepository) Stats(ctx context.Context, id uint) (*repository.UserStats, error) {
	if m.StatsFunc != nil {
		return m.StatsFunc(ctx, id)
	}
	return &repository.UserStats{}, nil
}

func (m *MockUserRepository) Count(ctx context.Context) (int64, error) {
	if m.CountFunc != nil {
		return m.CountFunc(ctx)
	}
	return 0, nil
}

func (m *MockUserRepository) Delete(ctx context.Context, id uint) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

// MockEventRepository is a mock implementation of EventRepository
type MockEventRepository struct {
	CreateFunc        func(ctx context.Context, event *domain.Event) error
	FindByIDFunc      func(ctx context.Context, id uint) (*domain.Event, error)
	UpdateFunc        func(ctx context.Context, event *domain.Event) error
	DeleteFunc        func(ctx context.Context, id uint) error
	FilterFunc        func(ctx context.Context, filter repository.EventFilter) ([]*domain.Event, error)
	FindJoinedByFunc  func(ctx context.Context, userID uint) ([]*domain.Event, error)
	CountFunc         func(ctx context.Context) (int64, error)
	CountUpcomingFunc func(ctx context.Context, now time.Time) (int64, error)
}

func (m *MockEventRepository) Create(ctx context.Context, event *domain.Event) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, event)
	}
	return nil
}

func (m *MockEventRepository) FindByID(ctx context.Context, id uint) (*domain.Event, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *MockEventRepository) Update(ctx context.Context, event *domain.Event) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, event)
	}
	return nil
}

func (m *MockEventRepository) Delete(ctx context.Context, id uint) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *MockEventRepository) Filter(ctx context.Context, filter repository.EventFilter) ([]*domain.Event, error) {
	if m.FilterFunc != nil {
		return m.FilterFunc(ctx, filter)
	}
	return nil, nil
}

func (m *MockEventRepository) FindJoinedBy(ctx context.Context, userID uint) ([]*domain.Event, error) {
	if m.FindJoinedByFunc != nil {
		return m.FindJoinedByFunc(ctx, userID)
	}
	return nil, nil
}

func (m *MockEventRepository) Count(ctx context.Context) (int64, error) {
	if m.CountFunc != nil {
		return m.CountFunc(ctx)
	}
	return 0, nil
}

func (m *MockEventRepository) CountUpcoming(ctx context.Context, now time.Time) (int64, error) {
	if m.CountUpcomingFunc != nil {
		return m.CountUpcomingFunc(ctx, now)
	}
	return 0, nil
}

// MockParticipationRepository is a mock implementation of ParticipationRepository
type MockParticipationRepository struct {
	JoinFunc          func(ctx context.Context, eventID, userID uint) error
	LeaveFunc         func(ctx context.Context, eventID, userID uint) error
	RosterFunc        func(ctx context.Context, eventID uint) ([]*domain.Participation, error)
	IsParticipantFunc func(ctx context.Context, eventID, userID uint) (bool, error)
	CountByEventFunc  func(ctx context.Context, eventID uint) (int64, error)
	CountByEventsFunc func(ctx context.Context, eventIDs []uint) (map[uint]int64, error)
	CountFunc         func(ctx context.Context) (int64, error)
}

func (m *MockParticipationRepository) Join(ctx context.Context, eventID, userID uint) error {
	if m.JoinFunc != nil {
		return m.JoinFunc(ctx, eventID, userID)
	}
	return nil
}

func (m *MockParticipationRepository) Leave(ctx context.Context, eventID, userID uint) error {
	if m.LeaveFunc != nil {
		return m.LeaveFunc(ctx, eventID, userID)
	}
	return nil
}

func (m *MockParticipationRepository) Roster(ctx context.Context, eventID uint) ([]*domain.Participation, error) {
	if m.RosterFunc != nil {
		return m.RosterFunc(ctx, eventID)
	}
	return nil, nil
}

func (m *MockParticipationRepository) IsParticipant(ctx context.Context, eventID, userID uint) (bool, error) {
	if m.IsParticipantFunc != nil {
		return m.IsParticipantFunc(ctx, eventID, userID)
	}
	return false, nil
}

func (m *MockParticipationRepository) CountByEvent(ctx context.Context, eventID uint) (int64, error) {
	if m.CountByEventFunc != nil {
		return m.CountByEventFunc(ctx, eventID)
	}
	return 0, nil
}

func (m *MockParticipationRepository) CountByEvents(ctx context.Context, eventIDs []uint) (map[uint]int64, error) {
	if m.CountByEventsFunc != nil {
		return m.CountByEventsFunc(ctx, eventIDs)
	}
	return map[uint]int64{}, nil
}

func (m *MockParticipationRepository) Count(ctx context.Context) (int64, error) {
	if m.CountFunc != nil {
		return m.CountFunc(ctx)
	}
	return 0, nil
}

// MockRallyRepository is a mock implementation of RallyRepository
type MockRallyRepository struct {
	StartFunc     func(ctx context.Context, followerID, followedID uint) (bool, error)
	StopFunc      func(ctx context.Context, followerID, followedID uint) (bool, error)
	ExistsFunc    func(ctx context.Context, followerID, followedID uint) (bool, error)
	FollowersFunc func(ctx context.Context, userID uint) ([]*domain.User, error)
	FollowingFunc func(ctx context.Context, userID uint) ([]*domain.User, error)
	CountFunc     func(ctx context.Context) (int64, error)
}

func (m *MockRallyRepository) Start(ctx context.Context, followerID, followedID uint) (bool, error) {
	if m.StartFunc != nil {
		return m.StartFunc(ctx, followerID, followedID)
	}
	return true, nil
}

func (m *MockRallyRepository) Stop(ctx context.Context, followerID, followedID uint) (bool, error) {
	if m.StopFunc != nil {
		return m.StopFunc(ctx, followerID, followedID)
	}
	return true, nil
}

func (m *MockRallyRepository) Exists(ctx context.Context, followerID, followedID uint) (bool, error) {
	if m.ExistsFunc != nil {
		return m.ExistsFunc(ctx, followerID, followedID)
	}
	return false, nil
}

func (m *MockRallyRepository) Followers(ctx context.Context, userID uint) ([]*domain.User, error) {
	if m.FollowersFunc != nil {
		return m.FollowersFunc(ctx, userID)
	}
	return nil, nil
}

func (m *MockRallyRepository) Following(ctx context.Context, userID uint) ([]*domain.User, error) {
	if m.FollowingFunc != nil {
		return m.FollowingFunc(ctx, userID)
	}
	return nil, nil
}

func (m *MockRallyRepository) Count(ctx context.Context) (int64, error) {
	if m.CountFunc != nil {
		return m.CountFunc(ctx)
	}
	return 0, nil
}

// MockQuizRepository is a mock implementation of QuizRepository
type MockQuizRepository struct {
	RecordFunc       func(ctx context.Context, submission *domain.QuizSubmission) error
	LatestFunc       func(ctx context.Context, userID uint) (*domain.QuizSubmission, error)
	CountByLevelFunc func(ctx context.Context) (map[domain.SkillLevel]int64, error)
}

func (m *MockQuizRepository) Record(ctx context.Context, submission *domain.QuizSubmission) error {
	if m.RecordFunc != nil {
		return m.RecordFunc(ctx, submission)
	}
	return nil
}

func (m *MockQuizRepository) Latest(ctx context.Context, userID uint) (*domain.QuizSubmission, error) {
	if m.LatestFunc != nil {
		return m.LatestFunc(ctx, userID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *MockQuizRepository) CountByLevel(ctx context.Context) (map[domain.SkillLevel]int64, error) {
	if m.CountByLevelFunc != nil {
		return m.CountByLevelFunc(ctx)
	}
	return map[domain.SkillLevel]int64{}, nil
}
