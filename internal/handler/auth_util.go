package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tennis-rally-api/internal/middleware"
	"tennis-rally-api/internal/response"
	"tennis-rally-api/internal/service"
)

// AuthData holds the authenticated caller extracted from the Gin context
type AuthData struct {
	UserID  uint
	Session *service.SessionClaims
	Token   string
}

// ExtractAuthData reads what AuthWithValidator stored, writing a 401 when it is absent
func ExtractAuthData(c *gin.Context) (AuthData, bool) {
	userID, exists := c.Get(middleware.ContextUserID)
	if !exists {
		response.SendError(c, http.StatusUnauthorized, response.ErrCodeUnauthorized, "User ID not found in context")
		return AuthData{}, false
	}
	id, ok := userID.(uint)
	if !ok || id == 0 {
		response.SendError(c, http.StatusUnauthorized, response.ErrCodeUnauthorized, "Invalid user ID format")
		return AuthData{}, false
	}

	data := AuthData{UserID: id, Token: c.GetString(middleware.ContextToken)}
	if session, ok := c.Get(middleware.ContextSession); ok {
		data.Session, _ = session.(*service.SessionClaims)
	}
	return data, true
}
