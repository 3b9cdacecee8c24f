package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"tennis-rally-api/internal/dto"
	"tennis-rally-api/internal/response"
	"tennis-rally-api/internal/service"
)

type UserHandler struct {
	userService  service.UserService
	eventService service.EventService
	authService  service.AuthService
	logger       *zap.Logger
}

func NewUserHandler(userService service.UserService, eventService service.EventService, authService service.AuthService, logger *zap.Logger) *UserHandler {
	return &UserHandler{
		userService:  userService,
		eventService: eventService,
		authService:  authService,
		logger:       logger,
	}
}

// GetMe godoc
// @Summary      Current profile
// @Tags         users
// @Produce      json
// @Success      200 {object} response.SuccessResponse{data=dto.UserResponse}
// @Failure      401 {object} response.ErrorResponse "Not authenticated"
// @Security     BearerAuth
// @Router       /users/me [get]
func (h *UserHandler) GetMe(c *gin.Context) {
	auth, ok := ExtractAuthData(c)
	if !ok {
		return
	}

	user, err := h.userService.GetMe(c.Request.Context(), auth.UserID)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, user)
}

// UpdateMe godoc
// @Summary      Update profile
// @Description  Overwrites name, surname and birth date
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        request body dto.UpdateProfileRequest true "Profile data"
// @Success      200 {object} response.SuccessResponse{data=dto.UserResponse}
// @Failure      400 {object} response.ErrorResponse "Invalid request"
// @Security     BearerAuth
// @Router       /users/me [put]
func (h *UserHandler) UpdateMe(c *gin.Context) {
	auth, ok := ExtractAuthData(c)
	if !ok {
		return
	}

	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendBindError(c, err)
		return
	}

	user, err := h.userService.UpdateProfile(c.Request.Context(), auth.UserID, &req)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, user)
}

// DeleteMe godoc
// @Summary      Delete account
// @Description  Removes the account with its events, participations, rallies and quiz history
// @Tags         users
// @Produce      json
// @Success      200 {object} response.SuccessResponse
// @Security     BearerAuth
// @Router       /users/me [delete]
func (h *UserHandler) DeleteMe(c *gin.Context) {
	auth, ok := ExtractAuthData(c)
	if !ok {
		return
	}

	if err := h.userService.DeleteAccount(c.Request.Context(), auth.UserID); err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	// Tokens of a missing user already fail validation, so a revoke error is only logged
	if err := h.authService.Logout(c.Request.Context(), auth.Session); err != nil {
		h.logger.Warn("Failed to revoke session of deleted account",
			zap.Uint("user_id", auth.UserID),
			zap.Error(err),
		)
	}

	response.SendSuccess(c, http.StatusOK, gin.H{"message": "Account deleted"})
}

// GetMyStats godoc
// @Summary      Activity counters
// @Tags         users
// @Produce      json
// @Success      200 {object} response.SuccessResponse{data=dto.StatsResponse}
// @Security     BearerAuth
// @Router       /users/me/stats [get]
func (h *UserHandler) GetMyStats(c *gin.Context) {
	auth, ok := ExtractAuthData(c)
	if !ok {
		return
	}

	stats, err := h.userService.GetStats(c.Request.Context(), auth.UserID)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, stats)
}

// GetMyEvents godoc
// @Summary      Joined events
// @Description  Events the caller is on the roster of, past and upcoming
// @Tags         users
// @Produce      json
// @Success      200 {object} response.SuccessResponse{data=[]dto.EventResponse}
// @Security     BearerAuth
// @Router       /users/me/events [get]
func (h *UserHandler) GetMyEvents(c *gin.Context) {
	auth, ok := ExtractAuthData(c)
	if !ok {
		return
	}

	events, err := h.eventService.EventsOf(c.Request.Context(), auth.UserID)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, events)
}

// SearchPlayers godoc
// @Summary      Search players
// @Description  Matches name or surname substrings and postal code prefixes
// @Tags         users
// @Produce      json
// @Param        q query string true "Search text"
// @Param        limit query int false "Maximum results (default 20, max 50)"
// @Success      200 {object} response.SuccessResponse{data=[]dto.UserSummary}
// @Failure      400 {object} response.ErrorResponse "Missing query"
// @Security     BearerAuth
// @Router       /users/search [get]
func (h *UserHandler) SearchPlayers(c *gin.Context) {
	if _, ok := ExtractAuthData(c); !ok {
		return
	}

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid limit")
			return
		}
		limit = n
	}

	players, err := h.userService.SearchPlayers(c.Request.Context(), c.Query("q"), limit)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, players)
}

// GetUser godoc
// @Summary      Player profile
// @Description  Another player's public profile with the caller's rally status
// @Tags         users
// @Produce      json
// @Param        userId path int true "User ID"
// @Success      200 {object} response.SuccessResponse{data=dto.PlayerProfileResponse}
// @Failure      404 {object} response.ErrorResponse "User not found"
// @Security     BearerAuth
// @Router       /users/{userId} [get]
func (h *UserHandler) GetUser(c *gin.Context) {
	auth, ok := ExtractAuthData(c)
	if !ok {
		return
	}
	userID, ok := parseIDParam(c, "userId")
	if !ok {
		return
	}

	profile, err := h.userService.GetProfile(c.Request.Context(), auth.UserID, userID)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, profile)
}

