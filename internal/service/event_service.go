package service

import (
	"context"
	"errors"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"tennis-rally-api/internal/domain"
	"tennis-rally-api/internal/dto"
	"tennis-rally-api/internal/metrics"
	"tennis-rally-api/internal/repository"
	"tennis-rally-api/internal/response"
)

// EventService defines event and roster business logic
type EventService interface {
	CreateEvent(ctx context.Context, userID uint, req *dto.EventRequest) (*dto.EventDetailResponse, error)
	GetEvent(ctx context.Context, viewerID, eventID uint) (*dto.EventDetailResponse, error)
	ListEvents(ctx context.Context, from time.Time, query *dto.EventListQuery) ([]dto.EventResponse, error)
	UpdateEvent(ctx context.Context, userID, eventID uint, req *dto.EventRequest) (*dto.EventDetailResponse, error)
	DeleteEvent(ctx context.Context, userID, eventID uint) error
	JoinEvent(ctx context.Context, userID, eventID uint) (*dto.EventDetailResponse, error)
	LeaveEvent(ctx context.Context, userID, eventID uint) (*dto.EventDetailResponse, error)
	GetRoster(ctx context.Context, eventID uint) ([]dto.ParticipantResponse, error)
	EventsOf(ctx context.Context, userID uint) ([]dto.EventResponse, error)
}

// eventServiceImpl is the implementation of EventService
type eventServiceImpl struct {
	eventRepo         repository.EventRepository
	participationRepo repository.ParticipationRepository
	metrics           *metrics.Metrics
	logger            *zap.Logger
}

// NewEventService creates a new instance of EventService
func NewEventService(
	eventRepo repository.EventRepository,
	participationRepo repository.ParticipationRepository,
	m *metrics.Metrics,
	logger *zap.Logger,
) EventService {
	return &eventServiceImpl{
		eventRepo:         eventRepo,
		participationRepo: participationRepo,
		metrics:           m,
		logger:            logger,
	}
}

// CreateEvent persists the event with the caller as creator and first participant
func (s *eventServiceImpl) CreateEvent(ctx context.Context, userID uint, req *dto.EventRequest) (*dto.EventDetailResponse, error) {
	if err := validateEventRequest(req); err != nil {
		return nil, err
	}

	event := &domain.Event{CreatorID: userID}
	applyEventRequest(event, req)

	if err := s.eventRepo.Create(ctx, event); err != nil {
		s.logger.Error("Failed to create event", zap.Uint("user_id", userID), zap.Error(err))
		return nil, translateError(err, "Event not found", "Failed to create event")
	}

	s.metrics.IncrementEventCreated()
	s.logger.Info("Event created",
		zap.Uint("event_id", event.ID),
		zap.Uint("creator_id", userID),
		zap.Int("max_participants", event.MaxParticipants),
	)

	return s.GetEvent(ctx, userID, event.ID)
}

// GetEvent returns the event with its roster and the viewer's relation to it
func (s *eventServiceImpl) GetEvent(ctx context.Context, viewerID, eventID uint) (*dto.EventDetailResponse, error) {
	event, err := s.eventRepo.FindByID(ctx, eventID)
	if err != nil {
		return nil, translateError(err, "Event not found", "Failed to fetch event")
	}

	roster, err := s.participationRepo.Roster(ctx, eventID)
	if err != nil {
		return nil, translateError(err, "Event not found", "Failed to fetch participants")
	}

	joined := false
	for _, p := range roster {
		if p.UserID == viewerID {
			joined = true
			break
		}
	}

	return &dto.EventDetailResponse{
		EventResponse: dto.ToEventResponse(event, int64(len(roster))),
		Participants:  dto.ToParticipantResponses(roster),
		IsCreator:     event.IsCreator(viewerID),
		HasJoined:     joined,
	}, nil
}

// ListEvents lists events from the given instant onward, narrowed by the optional query filters
func (s *eventServiceImpl) ListEvents(ctx context.Context, from time.Time, query *dto.EventListQuery) ([]dto.EventResponse, error) {
	filter := repository.EventFilter{From: &from}
	if query != nil {
		filter.Text = query.Text
		filter.Type = query.Type
		filter.CreatorID = query.CreatorID
		if query.Date != "" {
			day, err := time.Parse(dto.DateLayout, query.Date)
			if err != nil {
				return nil, response.NewValidationError("Invalid date filter", err.Error())
			}
			filter.Date = &day
		}
	}

	events, err := s.eventRepo.Filter(ctx, filter)
	if err != nil {
		return nil, translateError(err, "Event not found", "Failed to list events")
	}
	return s.withCounts(ctx, events)
}

// UpdateEvent lets the creator overwrite every mutable field
func (s *eventServiceImpl) UpdateEvent(ctx context.Context, userID, eventID uint, req *dto.EventRequest) (*dto.EventDetailResponse, error) {
	if err := validateEventRequest(req); err != nil {
		return nil, err
	}

	event, err := s.requireCreator(ctx, userID, eventID, "Only the creator can edit this event")
	if err != nil {
		return nil, err
	}

	applyEventRequest(event, req)
	if err := s.eventRepo.Update(ctx, event); err != nil {
		if !errors.Is(err, repository.ErrCapacityBelowRoster) {
			s.logger.Error("Failed to update event", zap.Uint("event_id", eventID), zap.Error(err))
		}
		return nil, translateError(err, "Event not found", "Failed to update event")
	}

	s.logger.Info("Event updated", zap.Uint("event_id", eventID), zap.Uint("user_id", userID))
	return s.GetEvent(ctx, userID, eventID)
}

// DeleteEvent lets the creator remove the event and its roster
func (s *eventServiceImpl) DeleteEvent(ctx context.Context, userID, eventID uint) error {
	if _, err := s.requireCreator(ctx, userID, eventID, "Only the creator can delete this event"); err != nil {
		return err
	}

	if err := s.eventRepo.Delete(ctx, eventID); err != nil {
		s.logger.Error("Failed to delete event", zap.Uint("event_id", eventID), zap.Error(err))
		return translateError(err, "Event not found", "Failed to delete event")
	}

	s.logger.Info("Event deleted", zap.Uint("event_id", eventID), zap.Uint("user_id", userID))
	return nil
}

// JoinEvent adds the caller to the roster if there is room
func (s *eventServiceImpl) JoinEvent(ctx context.Context, userID, eventID uint) (*dto.EventDetailResponse, error) {
	err := s.participationRepo.Join(ctx, eventID, userID)
	switch {
	case err == nil:
		s.metrics.RecordJoin(metrics.JoinOutcomeJoined)
	case errors.Is(err, repository.ErrEventFull):
		s.metrics.RecordJoin(metrics.JoinOutcomeFull)
	case errors.Is(err, repository.ErrAlreadyJoined):
		s.metrics.RecordJoin(metrics.JoinOutcomeAlreadyJoined)
	}
	if err != nil {
		return nil, translateError(err, "Event not found", "Failed to join event")
	}

	s.logger.Info("User joined event", zap.Uint("event_id", eventID), zap.Uint("user_id", userID))
	return s.GetEvent(ctx, userID, eventID)
}

// LeaveEvent removes the caller from the roster
func (s *eventServiceImpl) LeaveEvent(ctx context.Context, userID, eventID uint) (*dto.EventDetailResponse, error) {
	if err := s.participationRepo.Leave(ctx, eventID, userID); err != nil {
		return nil, translateError(err, "Event not found", "Failed to leave event")
	}

	s.logger.Info("User left event", zap.Uint("event_id", eventID), zap.Uint("user_id", userID))
	return s.GetEvent(ctx, userID, eventID)
}

func (s *eventServiceImpl) GetRoster(ctx context.Context, eventID uint) ([]dto.ParticipantResponse, error) {
	if _, err := s.eventRepo.FindByID(ctx, eventID); err != nil {
		return nil, translateError(err, "Event not found", "Failed to fetch event")
	}
	roster, err := s.participationRepo.Roster(ctx, eventID)
	if err != nil {
		return nil, translateError(err, "Event not found", "Failed to fetch participants")
	}
	return dto.ToParticipantResponses(roster), nil
}

// EventsOf lists the events the user is on the roster of
func (s *eventServiceImpl) EventsOf(ctx context.Context, userID uint) ([]dto.EventResponse, error) {
	events, err := s.eventRepo.FindJoinedBy(ctx, userID)
	if err != nil {
		return nil, translateError(err, "Event not found", "Failed to list events")
	}
	return s.withCounts(ctx, events)
}

func (s *eventServiceImpl) requireCreator(ctx context.Context, userID, eventID uint, forbidden string) (*domain.Event, error) {
	event, err := s.eventRepo.FindByID(ctx, eventID)
	if err != nil {
		return nil, translateError(err, "Event not found", "Failed to fetch event")
	}
	if !event.IsCreator(userID) {
		return nil, response.NewForbiddenError(forbidden, "")
	}
	return event, nil
}

func (s *eventServiceImpl) withCounts(ctx context.Context, events []*domain.Event) ([]dto.EventResponse, error) {
	ids := make([]uint, 0, len(events))
	for _, e := range events {
		ids = append(ids, e.ID)
	}
	counts, err := s.participationRepo.CountByEvents(ctx, ids)
	if err != nil {
		return nil, translateError(err, "Event not found", "Failed to count participants")
	}

	out := make([]dto.EventResponse, 0, len(events))
	for _, e := range events {
		out = append(out, dto.ToEventResponse(e, counts[e.ID]))
	}
	return out, nil
}

// validateEventRequest re-checks the invariants binding tags also enforce, for callers outside HTTP
func validateEventRequest(req *dto.EventRequest) error {
	switch {
	case req == nil:
		return response.NewValidationError("Event data is required", "")
	case utf8.RuneCountInString(req.Title) < 5 || utf8.RuneCountInString(req.Title) > 100:
		return response.NewValidationError("Title must be between 5 and 100 characters", "")
	case !req.Type.IsValid():
		return response.NewValidationError("Invalid event type", string(req.Type))
	case !req.RecommendedLevel.IsValid():
		return response.NewValidationError("Invalid recommended level", string(req.RecommendedLevel))
	case req.MaxParticipants < domain.MinParticipants || req.MaxParticipants > domain.MaxParticipants:
		return response.NewValidationError("Max participants must be between 2 and 10", "")
	case req.Location == "":
		return response.NewValidationError("Location is required", "")
	case req.Datetime.IsZero():
		return response.NewValidationError("Datetime is required", "")
	}
	return nil
}

func applyEventRequest(event *domain.Event, req *dto.EventRequest) {
	event.Title = req.Title
	event.Type = req.Type
	event.Description = req.Description
	event.Datetime = req.Datetime.UTC()
	event.Location = req.Location
	event.MaxParticipants = req.MaxParticipants
	event.RecommendedLevel = req.RecommendedLevel
}
