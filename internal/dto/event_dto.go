package dto

import (
	"time"

	"tennis-rally-api/internal/domain"
)

// EventRequest is the body for creating or editing an event. Editing overwrites every field.
// @Description datetime is RFC3339; maxParticipants is between 2 and 10
type EventRequest struct {
	Title            string                  `json:"title" binding:"required,min=5,max=100" example:"Saturday doubles"`
	Type             domain.EventType        `json:"type" binding:"required,event_type" example:"2v2 Match"`
	Description      string                  `json:"description" binding:"max=1000" example:"Friendly doubles, bring balls"`
	Datetime         time.Time               `json:"datetime" binding:"required" example:"2030-05-11T09:00:00Z"`
	Location         string                  `json:"location" binding:"required,max=100" example:"Milano Campo 1"`
	MaxParticipants  int                     `json:"maxParticipants" binding:"required,min=2,max=10" example:"4"`
	RecommendedLevel domain.RecommendedLevel `json:"recommendedLevel" binding:"required,recommended_level" example:"All"`
}

// EventListQuery holds the optional filters of GET /events
type EventListQuery struct {
	Text      string           `form:"text" binding:"max=100"`
	Date      string           `form:"date" binding:"omitempty,datetime=2006-01-02"`
	Type      domain.EventType `form:"type" binding:"omitempty,event_type"`
	CreatorID uint             `form:"creator_id"`
}

// EventResponse is an event with its occupancy
type EventResponse struct {
	ID               uint                    `json:"id" example:"1"`
	Title            string                  `json:"title"`
	Type             domain.EventType        `json:"type"`
	Description      string                  `json:"description"`
	Datetime         time.Time               `json:"datetime"`
	Location         string                  `json:"location"`
	MaxParticipants  int                     `json:"maxParticipants"`
	RecommendedLevel domain.RecommendedLevel `json:"recommendedLevel"`
	Creator          *UserSummary            `json:"creator,omitempty"`
	ParticipantCount int64                   `json:"participantCount"`
	SpotsLeft        int64                   `json:"spotsLeft"`
	IsFull           bool                    `json:"isFull"`
	CreatedAt        time.Time               `json:"createdAt"`
}

// ParticipantResponse is one roster entry
type ParticipantResponse struct {
	User     UserSummary `json:"user"`
	JoinedAt time.Time   `json:"joinedAt"`
}

// EventDetailResponse is an event with its roster and the viewer's relation to it
type EventDetailResponse struct {
	EventResponse
	Participants []ParticipantResponse `json:"participants"`
	IsCreator    bool                  `json:"isCreator"`
	HasJoined    bool                  `json:"hasJoined"`
}

// ToEventResponse projects an event with the given roster size
func ToEventResponse(e *domain.Event, participants int64) EventResponse {
	spots := int64(e.MaxParticipants) - participants
	if spots < 0 {
		spots = 0
	}
	resp := EventResponse{
		ID:               e.ID,
		Title:            e.Title,
		Type:             e.Type,
		Description:      e.Description,
		Datetime:         e.Datetime,
		Location:         e.Location,
		MaxParticipants:  e.MaxParticipants,
		RecommendedLevel: e.RecommendedLevel,
		ParticipantCount: participants,
		SpotsLeft:        spots,
		IsFull:           spots == 0,
		CreatedAt:        e.CreatedAt,
	}
	if e.Creator != nil {
		creator := ToUserSummary(e.Creator)
		resp.Creator = &creator
	}
	return resp
}

func ToParticipantResponses(roster []*domain.Participation) []ParticipantResponse {
	out := make([]ParticipantResponse, 0, len(roster))
	for _, p := range roster {
		entry := ParticipantResponse{JoinedAt: p.JoinedAt}
		if p.User != nil {
			entry.User = ToUserSummary(p.User)
		} else {
			entry.User = UserSummary{ID: p.UserID}
		}
		out = append(out, entry)
	}
	return out
}
