package service

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"tennis-rally-api/internal/dto"
	"tennis-rally-api/internal/repository"
	"tennis-rally-api/internal/response"
)

const (
	defaultSearchLimit = 20
	maxSearchLimit     = 50
)

// UserService defines profile operations
type UserService interface {
	GetMe(ctx context.Context, userID uint) (*dto.UserResponse, error)
	GetProfile(ctx context.Context, viewerID, userID uint) (*dto.PlayerProfileResponse, error)
	UpdateProfile(ctx context.Context, userID uint, req *dto.UpdateProfileRequest) (*dto.UserResponse, error)
	SearchPlayers(ctx context.Context, query string, limit int) ([]dto.UserSummary, error)
	GetStats(ctx context.Context, userID uint) (*dto.StatsResponse, error)
	DeleteAccount(ctx context.Context, userID uint) error
}

// userServiceImpl is the implementation of UserService
type userServiceImpl struct {
	userRepo  repository.UserRepository
	rallyRepo repository.RallyRepository
	logger    *zap.Logger
	now       func() time.Time
}

// NewUserService creates a new instance of UserService
func NewUserService(userRepo repository.UserRepository, rallyRepo repository.RallyRepository, logger *zap.Logger) UserService {
	return &userServiceImpl{
		userRepo:  userRepo,
		rallyRepo: rallyRepo,
		logger:    logger,
		now:       time.Now,
	}
}

func (s *userServiceImpl) GetMe(ctx context.Context, userID uint) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, translateError(err, "User not found", "Failed to fetch user")
	}
	resp := dto.ToUserResponse(user, s.now())
	return &resp, nil
}

// GetProfile returns another player's public profile and whether the viewer rallies them
func (s *userServiceImpl) GetProfile(ctx context.Context, viewerID, userID uint) (*dto.PlayerProfileResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, translateError(err, "User not found", "Failed to fetch user")
	}

	rallying := false
	if viewerID != userID {
		rallying, err = s.rallyRepo.Exists(ctx, viewerID, userID)
		if err != nil {
			return nil, translateError(err, "User not found", "Failed to check rally status")
		}
	}

	return &dto.PlayerProfileResponse{
		UserSummary: dto.ToUserSummary(user),
		Age:         dto.ToUserResponse(user, s.now()).Age,
		IsRallying:  rallying,
		IsSelf:      viewerID == userID,
	}, nil
}

// UpdateProfile overwrites name, surname and birth date
func (s *userServiceImpl) UpdateProfile(ctx context.Context, userID uint, req *dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	var birthDate *time.Time
	if req.BirthDate != nil && *req.BirthDate != "" {
		parsed, err := time.Parse(dto.DateLayout, *req.BirthDate)
		if err != nil {
			return nil, response.NewValidationError("Invalid birth date", err.Error())
		}
		if parsed.After(s.now()) {
			return nil, response.NewValidationError("Birth date cannot be in the future", "")
		}
		birthDate = &parsed
	}

	name := strings.TrimSpace(req.Name)
	if utf8.RuneCountInString(name) < 2 {
		return nil, response.NewValidationError("Name must be at least 2 characters", "")
	}

	var surname *string
	if req.Surname != nil && strings.TrimSpace(*req.Surname) != "" {
		trimmed := strings.TrimSpace(*req.Surname)
		surname = &trimmed
	}

	if err := s.userRepo.UpdateProfile(ctx, userID, name, surname, birthDate); err != nil {
		return nil, translateError(err, "User not found", "Failed to update profile")
	}

	s.logger.Info("Profile updated", zap.Uint("user_id", userID))
	return s.GetMe(ctx, userID)
}

// SearchPlayers finds players by name, surname or postal code prefix
func (s *userServiceImpl) SearchPlayers(ctx context.Context, query string, limit int) ([]dto.UserSummary, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, response.NewValidationError("Search query is required", "")
	}
	if limit <= 0 {
		limit = defaultSearchLimit
	}
	if limit > maxSearchLimit {
		limit = maxSearchLimit
	}

	users, err := s.userRepo.Search(ctx, query, limit)
	if err != nil {
		return nil, translateError(err, "User not found", "Failed to search players")
	}
	return dto.ToUserSummaries(users), nil
}

func (s *userServiceImpl) GetStats(ctx context.Context, userID uint) (*dto.StatsResponse, error) {
	stats, err := s.userRepo.Stats(ctx, userID)
	if err != nil {
		return nil, translateError(err, "User not found", "Failed to fetch stats")
	}
	return &dto.StatsResponse{EventsJoined: stats.EventsJoined, EventsCreated: stats.EventsCreated}, nil
}

// DeleteAccount removes the user with their events, rosters, rally edges and quiz history
func (s *userServiceImpl) DeleteAccount(ctx context.Context, userID uint) error {
	if err := s.userRepo.Delete(ctx, userID); err != nil {
		return translateError(err, "User not found", "Failed to delete account")
	}
	s.logger.Info("Account deleted", zap.Uint("user_id", userID))
	return nil
}
