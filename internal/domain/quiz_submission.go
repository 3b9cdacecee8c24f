package domain

import (
	"time"

	"gorm.io/datatypes"
)

// QuizSubmission records one scored run of the skill quiz
type QuizSubmission struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	UserID      uint           `gorm:"not null;index:idx_quiz_submissions_user_id" json:"userId"`
	Answers     datatypes.JSON `json:"answers"`
	TotalTenths int            `gorm:"not null" json:"totalTenths"`
	SkillLevel  SkillLevel     `gorm:"type:varchar(20);not null" json:"skillLevel"`
	CreatedAt   time.Time      `gorm:"not null" json:"createdAt"`
	User        *User          `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName specifies the table name for QuizSubmission
func (QuizSubmission) TableName() string {
	return "quiz_submissions"
}
