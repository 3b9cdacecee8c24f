package service

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenManager_IssueAndParse(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Hour, 30*24*time.Hour)

	token, claims, err := tm.Issue(42, false)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "42", claims.Subject)
	assert.NotEmpty(t, claims.ID)

	parsed, err := tm.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), parsed.UserID)
	assert.Equal(t, claims.ID, parsed.ID)
}

func TestTokenManager_RememberMeExtendsExpiry(t *testing.T) {
	now := time.Date(2030, 1, 1, 12, 0, 0, 0, time.UTC)
	tm := NewTokenManager("test-secret", time.Hour, 30*24*time.Hour)
	tm.now = func() time.Time { return now }

	_, short, err := tm.Issue(1, false)
	require.NoError(t, err)
	_, long, err := tm.Issue(1, true)
	require.NoError(t, err)

	assert.Equal(t, now.Add(time.Hour), short.ExpiresAt.Time)
	assert.Equal(t, now.Add(30*24*time.Hour), long.ExpiresAt.Time)
	assert.NotEqual(t, short.ID, long.ID)
}

func TestTokenManager_RejectsExpired(t *testing.T) {
	now := time.Date(2030, 1, 1, 12, 0, 0, 0, time.UTC)
	tm := NewTokenManager("test-secret", time.Hour, time.Hour)
	tm.now = func() time.Time { return now }

	token, _, err := tm.Issue(1, false)
	require.NoError(t, err)

	tm.now = func() time.Time { return now.Add(2 * time.Hour) }
	_, err = tm.Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenManager_RejectsForeignTokens(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Hour, time.Hour)
	other := NewTokenManager("other-secret", time.Hour, time.Hour)

	foreign, _, err := other.Issue(1, false)
	require.NoError(t, err)

	claims := &SessionClaims{
		UserID: 1,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        "sid",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	hs512, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	noExpiry, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &SessionClaims{
		UserID:           1,
		RegisteredClaims: jwt.RegisteredClaims{ID: "sid"},
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	for name, token := range map[string]string{
		"wrong secret": foreign,
		"HS512":        hs512,
		"alg none":     unsigned,
		"no expiry":    noExpiry,
		"garbage":      "not.a.token",
		"empty":        "",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := tm.Parse(token)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}
