package dto

import (
	"time"

	"tennis-rally-api/internal/domain"
)

// DateLayout is the wire format for calendar dates
const DateLayout = "2006-01-02"

// UpdateProfileRequest overwrites name, surname and birth date.
// @Description Omitted surname or birthDate clears the stored value
type UpdateProfileRequest struct {
	Name      string  `json:"name" binding:"required,min=2,max=64" example:"Mario"`
	Surname   *string `json:"surname" binding:"omitempty,max=64" example:"Rossi"`
	BirthDate *string `json:"birthDate" binding:"omitempty,datetime=2006-01-02" example:"1990-06-15"`
}

// UserResponse is the full profile of the authenticated user
type UserResponse struct {
	ID         uint              `json:"id" example:"1"`
	Name       string            `json:"name" example:"Mario"`
	Surname    *string           `json:"surname,omitempty" example:"Rossi"`
	Email      string            `json:"email" example:"mario@example.com"`
	PostalCode string            `json:"postalCode" example:"20121"`
	BirthDate  *string           `json:"birthDate,omitempty" example:"1990-06-15"`
	Age        *int              `json:"age,omitempty" example:"34"`
	SkillLevel domain.SkillLevel `json:"skillLevel" example:"Beginner"`
	CreatedAt  time.Time         `json:"createdAt"`
}

// UserSummary is the public projection of a player shown in lists
type UserSummary struct {
	ID         uint              `json:"id" example:"2"`
	Name       string            `json:"name" example:"Luigi"`
	Surname    *string           `json:"surname,omitempty"`
	PostalCode string            `json:"postalCode" example:"00184"`
	SkillLevel domain.SkillLevel `json:"skillLevel" example:"Intermediate"`
}

// PlayerProfileResponse is another player's profile as seen by the viewer
type PlayerProfileResponse struct {
	UserSummary
	Age        *int `json:"age,omitempty"`
	IsRallying bool `json:"isRallying"`
	IsSelf     bool `json:"isSelf"`
}

// StatsResponse counts the user's event activity
type StatsResponse struct {
	EventsJoined  int64 `json:"eventsJoined" example:"4"`
	EventsCreated int64 `json:"eventsCreated" example:"1"`
}

// RallyResponse reports the rally state after a start or stop
type RallyResponse struct {
	UserID     uint `json:"userId"`
	IsRallying bool `json:"isRallying"`
	Changed    bool `json:"changed"`
}

// ToUserResponse projects a user with the age computed at today
func ToUserResponse(u *domain.User, today time.Time) UserResponse {
	resp := UserResponse{
		ID:         u.ID,
		Name:       u.Name,
		Surname:    u.Surname,
		Email:      u.Email,
		PostalCode: u.PostalCode,
		Age:        domain.ComputeAge(u.BirthDate, today),
		SkillLevel: u.SkillLevel,
		CreatedAt:  u.CreatedAt,
	}
	if u.BirthDate != nil {
		s := u.BirthDate.Format(DateLayout)
		resp.BirthDate = &s
	}
	return resp
}

func ToUserSummary(u *domain.User) UserSummary {
	return UserSummary{
		ID:         u.ID,
		Name:       u.Name,
		Surname:    u.Surname,
		PostalCode: u.PostalCode,
		SkillLevel: u.SkillLevel,
	}
}

func ToUserSummaries(users []*domain.User) []UserSummary {
	out := make([]UserSummary, 0, len(users))
	for _, u := range users {
		out = append(out, ToUserSummary(u))
	}
	return out
}
