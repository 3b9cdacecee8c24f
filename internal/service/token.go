package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ErrInvalidToken is returned for malformed, expired or wrongly signed tokens
var ErrInvalidToken = errors.New("invalid or expired token")

// SessionClaims are the JWT claims of a login session. The session id travels in RegisteredClaims.ID.
type SessionClaims struct {
	UserID uint `json:"user_id"`
	jwt.RegisteredClaims
}

// TokenManager issues and verifies HS256 session tokens
type TokenManager struct {
	secret      []byte
	sessionTTL  time.Duration
	rememberTTL time.Duration
	now         func() time.Time
}

// NewTokenManager creates a TokenManager; rememberTTL applies when the user asks to stay signed in
func NewTokenManager(secret string, sessionTTL, rememberTTL time.Duration) *TokenManager {
	return &TokenManager{
		secret:      []byte(secret),
		sessionTTL:  sessionTTL,
		rememberTTL: rememberTTL,
		now:         time.Now,
	}
}

// Issue signs a new session token for userID
func (m *TokenManager) Issue(userID uint, remember bool) (string, *SessionClaims, error) {
	ttl := m.sessionTTL
	if remember {
		ttl = m.rememberTTL
	}
	now := m.now()
	claims := &SessionClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   fmt.Sprintf("%d", userID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", nil, fmt.Errorf("sign token: %w", err)
	}
	return signed, claims, nil
}

// Parse verifies signature and expiry and returns the claims
func (m *TokenManager) Parse(tokenString string) (*SessionClaims, error) {
	claims := &SessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.UserID == 0 || claims.ID == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
