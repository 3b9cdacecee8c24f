package domain

import "time"

// SkillLevel is the self-assessed playing level of a user
type SkillLevel string

const (
	SkillBeginner     SkillLevel = "Beginner"
	SkillIntermediate SkillLevel = "Intermediate"
	SkillAdvanced     SkillLevel = "Advanced"
)

// SkillLevels lists the accepted skill levels
var SkillLevels = []SkillLevel{SkillBeginner, SkillIntermediate, SkillAdvanced}

// IsValid reports whether the level is one of SkillLevels
func (l SkillLevel) IsValid() bool {
	for _, v := range SkillLevels {
		if l == v {
			return true
		}
	}
	return false
}

// User represents a registered member
type User struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	Name         string     `gorm:"type:varchar(64);not null;index:idx_users_name" json:"name"`
	Surname      *string    `gorm:"type:varchar(64)" json:"surname,omitempty"`
	BirthDate    *time.Time `gorm:"type:date" json:"birthDate,omitempty"`
	Email        string     `gorm:"type:varchar(120);not null;uniqueIndex:uq_users_email" json:"email"`
	PostalCode   string     `gorm:"type:varchar(5);not null;index:idx_users_postal_code" json:"postalCode"`
	PasswordHash string     `gorm:"type:varchar(256);not null" json:"-"`
	SkillLevel   SkillLevel `gorm:"type:varchar(20);not null;default:'Beginner'" json:"skillLevel"`
	CreatedAt    time.Time  `gorm:"not null" json:"createdAt"`
	UpdatedAt    time.Time  `gorm:"not null" json:"updatedAt"`
}

// TableName specifies the table name for User
func (User) TableName() string {
	return "users"
}
