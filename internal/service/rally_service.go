package service

import (
	"context"

	"go.uber.org/zap"

	"tennis-rally-api/internal/dto"
	"tennis-rally-api/internal/metrics"
	"tennis-rally-api/internal/repository"
)

// RallyService manages the follow graph between players
type RallyService interface {
	StartRally(ctx context.Context, followerID, followedID uint) (*dto.RallyResponse, error)
	StopRally(ctx context.Context, followerID, followedID uint) (*dto.RallyResponse, error)
	IsRallying(ctx context.Context, followerID, followedID uint) (bool, error)
	Followers(ctx context.Context, userID uint) ([]dto.UserSummary, error)
	Following(ctx context.Context, userID uint) ([]dto.UserSummary, error)
}

// rallyServiceImpl is the implementation of RallyService
type rallyServiceImpl struct {
	rallyRepo repository.RallyRepository
	userRepo  repository.UserRepository
	metrics   *metrics.Metrics
	logger    *zap.Logger
}

// NewRallyService creates a new instance of RallyService
func NewRallyService(rallyRepo repository.RallyRepository, userRepo repository.UserRepository, m *metrics.Metrics, logger *zap.Logger) RallyService {
	return &rallyServiceImpl{
		rallyRepo: rallyRepo,
		userRepo:  userRepo,
		metrics:   m,
		logger:    logger,
	}
}

// StartRally follows followedID. Rallying yourself or an already rallied player changes nothing.
func (s *rallyServiceImpl) StartRally(ctx context.Context, followerID, followedID uint) (*dto.RallyResponse, error) {
	if followerID == followedID {
		return &dto.RallyResponse{UserID: followedID, IsRallying: false, Changed: false}, nil
	}

	created, err := s.rallyRepo.Start(ctx, followerID, followedID)
	if err != nil {
		return nil, translateError(err, "User not found", "Failed to start rally")
	}
	if created {
		s.metrics.IncrementRallyStarted()
		s.logger.Info("Rally started", zap.Uint("follower_id", followerID), zap.Uint("followed_id", followedID))
	}
	return &dto.RallyResponse{UserID: followedID, IsRallying: true, Changed: created}, nil
}

// StopRally unfollows followedID; stopping a rally that does not exist changes nothing
func (s *rallyServiceImpl) StopRally(ctx context.Context, followerID, followedID uint) (*dto.RallyResponse, error) {
	removed, err := s.rallyRepo.Stop(ctx, followerID, followedID)
	if err != nil {
		return nil, translateError(err, "User not found", "Failed to stop rally")
	}
	if removed {
		s.logger.Info("Rally stopped", zap.Uint("follower_id", followerID), zap.Uint("followed_id", followedID))
	}
	return &dto.RallyResponse{UserID: followedID, IsRallying: false, Changed: removed}, nil
}

func (s *rallyServiceImpl) IsRallying(ctx context.Context, followerID, followedID uint) (bool, error) {
	ok, err := s.rallyRepo.Exists(ctx, followerID, followedID)
	if err != nil {
		return false, translateError(err, "User not found", "Failed to check rally status")
	}
	return ok, nil
}

func (s *rallyServiceImpl) Followers(ctx context.Context, userID uint) ([]dto.UserSummary, error) {
	if _, err := s.userRepo.FindByID(ctx, userID); err != nil {
		return nil, translateError(err, "User not found", "Failed to fetch user")
	}
	users, err := s.rallyRepo.Followers(ctx, userID)
	if err != nil {
		return nil, translateError(err, "User not found", "Failed to list followers")
	}
	return dto.ToUserSummaries(users), nil
}

func (s *rallyServiceImpl) Following(ctx context.Context, userID uint) ([]dto.UserSummary, error) {
	if _, err := s.userRepo.FindByID(ctx, userID); err != nil {
		return nil, translateError(err, "User not found", "Failed to fetch user")
	}
	users, err := s.rallyRepo.Following(ctx, userID)
	if err != nil {
		return nil, translateError(err, "User not found", "Failed to list following")
	}
	return dto.ToUserSummaries(users), nil
}
