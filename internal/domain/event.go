package domain

import "time"

// EventType is the kind of tennis activity an event offers
type EventType string

const (
	EventTypeSingles        EventType = "1v1 Match"
	EventTypeDoubles        EventType = "2v2 Match"
	EventTypeGuidedTraining EventType = "Guided Training"
	EventTypeLesson         EventType = "Lesson"
)

// EventTypes lists the accepted event types
var EventTypes = []EventType{EventTypeSingles, EventTypeDoubles, EventTypeGuidedTraining, EventTypeLesson}

// IsValid reports whether the type is one of EventTypes
func (t EventType) IsValid() bool {
	for _, v := range EventTypes {
		if t == v {
			return true
		}
	}
	return false
}

// RecommendedLevel is the skill level an event is aimed at
type RecommendedLevel string

const (
	RecommendedBeginner     RecommendedLevel = "Beginner"
	RecommendedIntermediate RecommendedLevel = "Intermediate"
	RecommendedAdvanced     RecommendedLevel = "Advanced"
	RecommendedAll          RecommendedLevel = "All"
)

// RecommendedLevels lists the accepted recommended levels
var RecommendedLevels = []RecommendedLevel{RecommendedBeginner, RecommendedIntermediate, RecommendedAdvanced, RecommendedAll}

// IsValid reports whether the level is one of RecommendedLevels
func (l RecommendedLevel) IsValid() bool {
	for _, v := range RecommendedLevels {
		if l == v {
			return true
		}
	}
	return false
}

// Capacity bounds for an event roster
const (
	MinParticipants = 2
	MaxParticipants = 10
)

// Event represents a scheduled tennis activity with a capacity-bounded roster
type Event struct {
	ID               uint             `gorm:"primaryKey" json:"id"`
	Title            string           `gorm:"type:varchar(100);not null" json:"title"`
	Type             EventType        `gorm:"type:varchar(50);not null;index:idx_events_type" json:"type"`
	Description      string           `gorm:"type:varchar(1000)" json:"description"`
	Datetime         time.Time        `gorm:"not null;index:idx_events_datetime" json:"datetime"`
	Location         string           `gorm:"type:varchar(100);not null" json:"location"`
	MaxParticipants  int              `gorm:"not null" json:"maxParticipants"`
	RecommendedLevel RecommendedLevel `gorm:"type:varchar(20);not null" json:"recommendedLevel"`
	CreatorID        uint             `gorm:"index:idx_events_creator_id" json:"creatorId"`
	Creator          *User            `gorm:"foreignKey:CreatorID;constraint:OnDelete:CASCADE" json:"creator,omitempty"`
	Participants     []Participation  `gorm:"foreignKey:EventID;constraint:OnDelete:CASCADE" json:"participants,omitempty"`
	CreatedAt        time.Time        `gorm:"not null" json:"createdAt"`
	UpdatedAt        time.Time        `gorm:"not null" json:"updatedAt"`
}

// TableName specifies the table name for Event
func (Event) TableName() string {
	return "events"
}

// IsCreator reports whether the given user owns the event
func (e *Event) IsCreator(userID uint) bool {
	return e.CreatorID != 0 && e.CreatorID == userID
}
