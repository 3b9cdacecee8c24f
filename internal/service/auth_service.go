package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"tennis-rally-api/internal/domain"
	"tennis-rally-api/internal/dto"
	"tennis-rally-api/internal/metrics"
	"tennis-rally-api/internal/repository"
	"tennis-rally-api/internal/response"
)

// AuthService defines registration, login and session handling
type AuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
	Logout(ctx context.Context, claims *SessionClaims) error
	ValidateToken(ctx context.Context, tokenString string) (*SessionClaims, error)
}

// authServiceImpl is the implementation of AuthService
type authServiceImpl struct {
	userRepo  repository.UserRepository
	hasher    PasswordHasher
	tokens    *TokenManager
	sessions  SessionStore
	metrics   *metrics.Metrics
	logger    *zap.Logger
	now       func() time.Time
	dummyHash string
}

// NewAuthService creates a new instance of AuthService
func NewAuthService(
	userRepo repository.UserRepository,
	hasher PasswordHasher,
	tokens *TokenManager,
	sessions SessionStore,
	m *metrics.Metrics,
	logger *zap.Logger,
) AuthService {
	// Verified against unknown emails so both failure paths cost one hash
	dummy, err := hasher.Hash("dummy-password-for-timing")
	if err != nil {
		logger.Warn("Failed to prepare dummy password hash", zap.Error(err))
	}
	return &authServiceImpl{
		userRepo:  userRepo,
		hasher:    hasher,
		tokens:    tokens,
		sessions:  sessions,
		metrics:   m,
		logger:    logger,
		now:       time.Now,
		dummyHash: dummy,
	}
}

// Register creates an account with a hashed password and the default skill level
func (s *authServiceImpl) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserResponse, error) {
	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to hash password", err.Error())
	}

	user := &domain.User{
		Name:         req.Name,
		Email:        req.Email,
		PostalCode:   req.PostalCode,
		PasswordHash: hash,
		SkillLevel:   domain.SkillBeginner,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, response.NewConflictError(response.ErrCodeDuplicateEmail, "Email already registered")
		}
		s.logger.Error("Failed to create user", zap.Error(err))
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to create user", err.Error())
	}

	s.metrics.IncrementUserRegistered()
	s.logger.Info("User registered", zap.Uint("user_id", user.ID))

	resp := dto.ToUserResponse(user, s.now())
	return &resp, nil
}

// Login verifies credentials and issues a session token.
// Unknown email and wrong password produce the same error.
func (s *authServiceImpl) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	invalid := response.NewAppError(response.ErrCodeInvalidCredentials, "Invalid email or password", "")

	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.hasher.Verify(s.dummyHash, req.Password)
			s.metrics.RecordLoginAttempt(metrics.LoginFailure)
			return nil, invalid
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch user", err.Error())
	}

	if !s.hasher.Verify(user.PasswordHash, req.Password) {
		s.metrics.RecordLoginAttempt(metrics.LoginFailure)
		return nil, invalid
	}

	token, claims, err := s.tokens.Issue(user.ID, req.RememberMe)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to issue session", err.Error())
	}

	s.metrics.RecordLoginAttempt(metrics.LoginSuccess)
	s.logger.Info("User logged in",
		zap.Uint("user_id", user.ID),
		zap.Bool("remember_me", req.RememberMe),
	)

	return &dto.LoginResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresAt:   claims.ExpiresAt.Time,
		User:        dto.ToUserResponse(user, s.now()),
	}, nil
}

// Logout revokes the session until its natural expiry
func (s *authServiceImpl) Logout(ctx context.Context, claims *SessionClaims) error {
	if claims == nil {
		return response.NewAppError(response.ErrCodeUnauthorized, "No active session", "")
	}
	ttl := time.Until(claims.ExpiresAt.Time)
	if err := s.sessions.Revoke(ctx, claims.ID, ttl); err != nil {
		s.logger.Error("Failed to revoke session", zap.String("session_id", claims.ID), zap.Error(err))
		return response.NewAppError(response.ErrCodeInternal, "Failed to revoke session", err.Error())
	}
	s.logger.Info("User logged out", zap.Uint("user_id", claims.UserID))
	return nil
}

// ValidateToken parses the token and rejects revoked sessions
func (s *authServiceImpl) ValidateToken(ctx context.Context, tokenString string) (*SessionClaims, error) {
	claims, err := s.tokens.Parse(tokenString)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeUnauthorized, "Invalid or expired token", "")
	}
	revoked, err := s.sessions.IsRevoked(ctx, claims.ID)
	if err != nil {
		s.logger.Error("Failed to check session revocation", zap.Error(err))
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to validate session", err.Error())
	}
	if revoked {
		return nil, response.NewAppError(response.ErrCodeUnauthorized, "Session has been logged out", "")
	}
	if _, err := s.userRepo.FindByID(ctx, claims.UserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeUnauthorized, "Account no longer exists", "")
		}
		s.logger.Error("Failed to load session user", zap.Uint("user_id", claims.UserID), zap.Error(err))
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to validate session", err.Error())
	}
	return claims, nil
}
