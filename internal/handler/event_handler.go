package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"tennis-rally-api/internal/dto"
	"tennis-rally-api/internal/repository"
	"tennis-rally-api/internal/response"
	"tennis-rally-api/internal/service"
)

type EventHandler struct {
	eventService service.EventService
	logger       *zap.Logger
	now          func() time.Time
}

func NewEventHandler(eventService service.EventService, logger *zap.Logger) *EventHandler {
	return &EventHandler{
		eventService: eventService,
		logger:       logger,
		now:          time.Now,
	}
}

// ListEvents godoc
// @Summary      List events
// @Description  Events from the start of today onward, optionally filtered; all filters must match
// @Tags         events
// @Produce      json
// @Param        text query string false "Substring of title or location"
// @Param        date query string false "Calendar day (YYYY-MM-DD)"
// @Param        type query string false "Event type"
// @Param        creator_id query int false "Creator user ID"
// @Success      200 {object} response.SuccessResponse{data=[]dto.EventResponse}
// @Failure      400 {object} response.ErrorResponse "Invalid filter"
// @Security     BearerAuth
// @Router       /events [get]
func (h *EventHandler) ListEvents(c *gin.Context) {
	if _, ok := ExtractAuthData(c); !ok {
		return
	}

	var query dto.EventListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		sendBindError(c, err)
		return
	}

	from, _ := repository.DayRange(h.now().UTC())
	events, err := h.eventService.ListEvents(c.Request.Context(), from, &query)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, events)
}

// CreateEvent godoc
// @Summary      Create event
// @Description  Creates an event; the creator is enrolled as first participant
// @Tags         events
// @Accept       json
// @Produce      json
// @Param        request body dto.EventRequest true "Event data"
// @Success      201 {object} response.SuccessResponse{data=dto.EventDetailResponse}
// @Failure      400 {object} response.ErrorResponse "Invalid request"
// @Security     BearerAuth
// @Router       /events [post]
func (h *EventHandler) CreateEvent(c *gin.Context) {
	auth, ok := ExtractAuthData(c)
	if !ok {
		return
	}

	var req dto.EventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendBindError(c, err)
		return
	}

	event, err := h.eventService.CreateEvent(c.Request.Context(), auth.UserID, &req)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	response.SendSuccess(c, http.StatusCreated, event)
}

// GetEvent godoc
// @Summary      Event detail
// @Tags         events
// @Produce      json
// @Param        eventId path int true "Event ID"
// @Success      200 {object} response.SuccessResponse{data=dto.EventDetailResponse}
// @Failure      404 {object} response.ErrorResponse "Event not found"
// @Security     BearerAuth
// @Router       /events/{eventId} [get]
func (h *EventHandler) GetEvent(c *gin.Context) {
	auth, ok := ExtractAuthData(c)
	if !ok {
		return
	}
	eventID, ok := parseIDParam(c, "eventId")
	if !ok {
		return
	}

	event, err := h.eventService.GetEvent(c.Request.Context(), auth.UserID, eventID)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, event)
}

// UpdateEvent godoc
// @Summary      Edit event
// @Description  Creator only; overwrites every field. Capacity cannot drop below the roster size.
// @Tags         events
// @Accept       json
// @Produce      json
// @Param        eventId path int true "Event ID"
// @Param        request body dto.EventRequest true "Event data"
// @Success      200 {object} response.SuccessResponse{data=dto.EventDetailResponse}
// @Failure      403 {object} response.ErrorResponse "Not the creator"
// @Failure      409 {object} response.ErrorResponse "Capacity below roster"
// @Security     BearerAuth
// @Router       /events/{eventId} [put]
func (h *EventHandler) UpdateEvent(c *gin.Context) {
	auth, ok := ExtractAuthData(c)
	if !ok {
		return
	}
	eventID, ok := parseIDParam(c, "eventId")
	if !ok {
		return
	}

	var req dto.EventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendBindError(c, err)
		return
	}

	event, err := h.eventService.UpdateEvent(c.Request.Context(), auth.UserID, eventID, &req)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, event)
}

// DeleteEvent godoc
// @Summary      Delete event
// @Description  Creator only; removes the event and its roster
// @Tags         events
// @Produce      json
// @Param        eventId path int true "Event ID"
// @Success      200 {object} response.SuccessResponse
// @Failure      403 {object} response.ErrorResponse "Not the creator"
// @Security     BearerAuth
// @Router       /events/{eventId} [delete]
func (h *EventHandler) DeleteEvent(c *gin.Context) {
	auth, ok := ExtractAuthData(c)
	if !ok {
		return
	}
	eventID, ok := parseIDParam(c, "eventId")
	if !ok {
		return
	}

	if err := h.eventService.DeleteEvent(c.Request.Context(), auth.UserID, eventID); err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, gin.H{"message": "Event deleted"})
}

// JoinEvent godoc
// @Summary      Join event
// @Tags         events
// @Produce      json
// @Param        eventId path int true "Event ID"
// @Success      200 {object} response.SuccessResponse{data=dto.EventDetailResponse}
// @Failure      409 {object} response.ErrorResponse "Event full or already joined"
// @Security     BearerAuth
// @Router       /events/{eventId}/join [post]
func (h *EventHandler) JoinEvent(c *gin.Context) {
	auth, ok := ExtractAuthData(c)
	if !ok {
		return
	}
	eventID, ok := parseIDParam(c, "eventId")
	if !ok {
		return
	}

	event, err := h.eventService.JoinEvent(c.Request.Context(), auth.UserID, eventID)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, event)
}

// LeaveEvent godoc
// @Summary      Leave event
// @Tags         events
// @Produce      json
// @Param        eventId path int true "Event ID"
// @Success      200 {object} response.SuccessResponse{data=dto.EventDetailResponse}
// @Failure      409 {object} response.ErrorResponse "Not a participant"
// @Security     BearerAuth
// @Router       /events/{eventId}/leave [post]
func (h *EventHandler) LeaveEvent(c *gin.Context) {
	auth, ok := ExtractAuthData(c)
	if !ok {
		return
	}
	eventID, ok := parseIDParam(c, "eventId")
	if !ok {
		return
	}

	event, err := h.eventService.LeaveEvent(c.Request.Context(), auth.UserID, eventID)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, event)
}

// GetParticipants godoc
// @Summary      Event roster
// @Tags         events
// @Produce      json
// @Param        eventId path int true "Event ID"
// @Success      200 {object} response.SuccessResponse{data=[]dto.ParticipantResponse}
// @Failure      404 {object} response.ErrorResponse "Event not found"
// @Security     BearerAuth
// @Router       /events/{eventId}/participants [get]
func (h *EventHandler) GetParticipants(c *gin.Context) {
	if _, ok := ExtractAuthData(c); !ok {
		return
	}
	eventID, ok := parseIDParam(c, "eventId")
	if !ok {
		return
	}

	roster, err := h.eventService.GetRoster(c.Request.Context(), eventID)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, roster)
}
