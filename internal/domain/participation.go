package domain

import "time"

// Participation is a roster row linking a user to an event
type Participation struct {
	EventID  uint      `gorm:"primaryKey;autoIncrement:false" json:"eventId"`
	UserID   uint      `gorm:"primaryKey;autoIncrement:false;index:idx_event_participation_user_id" json:"userId"`
	JoinedAt time.Time `gorm:"not null;autoCreateTime" json:"joinedAt"`
	User     *User     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
}

// TableName specifies the table name for Participation
func (Participation) TableName() string {
	return "event_participation"
}
