package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"tennis-rally-api/internal/response"
	"tennis-rally-api/internal/service"
)

type RallyHandler struct {
	rallyService service.RallyService
	logger       *zap.Logger
}

func NewRallyHandler(rallyService service.RallyService, logger *zap.Logger) *RallyHandler {
	return &RallyHandler{
		rallyService: rallyService,
		logger:       logger,
	}
}

// StartRally godoc
// @Summary      Rally a player
// @Description  Follows the player. Rallying yourself or someone already rallied changes nothing.
// @Tags         rallies
// @Produce      json
// @Param        userId path int true "User ID"
// @Success      200 {object} response.SuccessResponse{data=dto.RallyResponse}
// @Failure      404 {object} response.ErrorResponse "User not found"
// @Security     BearerAuth
// @Router       /users/{userId}/rally [post]
func (h *RallyHandler) StartRally(c *gin.Context) {
	auth, ok := ExtractAuthData(c)
	if !ok {
		return
	}
	userID, ok := parseIDParam(c, "userId")
	if !ok {
		return
	}

	result, err := h.rallyService.StartRally(c.Request.Context(), auth.UserID, userID)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, result)
}

// StopRally godoc
// @Summary      Stop rallying a player
// @Tags         rallies
// @Produce      json
// @Param        userId path int true "User ID"
// @Success      200 {object} response.SuccessResponse{data=dto.RallyResponse}
// @Security     BearerAuth
// @Router       /users/{userId}/rally [delete]
func (h *RallyHandler) StopRally(c *gin.Context) {
	auth, ok := ExtractAuthData(c)
	if !ok {
		return
	}
	userID, ok := parseIDParam(c, "userId")
	if !ok {
		return
	}

	result, err := h.rallyService.StopRally(c.Request.Context(), auth.UserID, userID)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, result)
}

// GetFollowers godoc
// @Summary      Followers
// @Description  Players rallying the given user, oldest first
// @Tags         rallies
// @Produce      json
// @Param        userId path int true "User ID"
// @Success      200 {object} response.SuccessResponse{data=[]dto.UserSummary}
// @Failure      404 {object} response.ErrorResponse "User not found"
// @Security     BearerAuth
// @Router       /users/{userId}/followers [get]
func (h *RallyHandler) GetFollowers(c *gin.Context) {
	if _, ok := ExtractAuthData(c); !ok {
		return
	}
	userID, ok := parseIDParam(c, "userId")
	if !ok {
		return
	}

	users, err := h.rallyService.Followers(c.Request.Context(), userID)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, users)
}

// GetFollowing godoc
// @Summary      Following
// @Description  Players the given user rallies, oldest first
// @Tags         rallies
// @Produce      json
// @Param        userId path int true "User ID"
// @Success      200 {object} response.SuccessResponse{data=[]dto.UserSummary}
// @Failure      404 {object} response.ErrorResponse "User not found"
// @Security     BearerAuth
// @Router       /users/{userId}/following [get]
func (h *RallyHandler) GetFollowing(c *gin.Context) {
	if _, ok := ExtractAuthData(c); !ok {
		return
	}
	userID, ok := parseIDParam(c, "userId")
	if !ok {
		return
	}

	users, err := h.rallyService.Following(c.Request.Context(), userID)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, users)
}
