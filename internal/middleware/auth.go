package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"tennis-rally-api/internal/response"
	"tennis-rally-api/internal/service"
)

// Context keys set by AuthWithValidator
const (
	ContextUserID  = "user_id"
	ContextSession = "session"
	ContextToken   = "jwtToken"
)

// TokenValidator verifies a bearer token and returns its session claims
type TokenValidator interface {
	ValidateToken(ctx context.Context, tokenStr string) (*service.SessionClaims, error)
}

// AuthWithValidator returns a middleware that requires a valid, non-revoked bearer token
func AuthWithValidator(validator TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.SendError(c, http.StatusUnauthorized, response.ErrCodeUnauthorized, "Authorization header is required")
			c.Abort()
			return
		}

		// Extract token from "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
			response.SendError(c, http.StatusUnauthorized, response.ErrCodeUnauthorized, "Invalid authorization header format")
			c.Abort()
			return
		}
		tokenString := strings.TrimSpace(parts[1])

		// Revocation lookups may hit redis
		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		claims, err := validator.ValidateToken(ctx, tokenString)
		if err != nil {
			var appErr *response.AppError
			if errors.As(err, &appErr) && appErr.Code == response.ErrCodeInternal {
				response.SendError(c, http.StatusInternalServerError, appErr.Code, appErr.Message)
				c.Abort()
				return
			}
			response.SendError(c, http.StatusUnauthorized, response.ErrCodeUnauthorized, "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextSession, claims)
		c.Set(ContextToken, tokenString)

		c.Next()
	}
}
