package dto

import "time"

// RegisterRequest represents the request to create an account
// @Description Request body for registering a new player
type RegisterRequest struct {
	Name            string `json:"name" binding:"required,min=2,max=64" example:"Mario"`
	Email           string `json:"email" binding:"required,email,max=120" example:"mario@example.com"`
	PostalCode      string `json:"postalCode" binding:"required,len=5" example:"20121"`
	Password        string `json:"password" binding:"required,min=6,max=128" example:"s3cret-pass"`
	ConfirmPassword string `json:"confirmPassword" binding:"required,eqfield=Password" example:"s3cret-pass"`
}

// LoginRequest represents the request to authenticate
type LoginRequest struct {
	Email      string `json:"email" binding:"required,email" example:"mario@example.com"`
	Password   string `json:"password" binding:"required" example:"s3cret-pass"`
	RememberMe bool   `json:"rememberMe" example:"false"`
}

// LoginResponse carries the bearer token for subsequent requests
type LoginResponse struct {
	AccessToken string       `json:"accessToken"`
	TokenType   string       `json:"tokenType" example:"Bearer"`
	ExpiresAt   time.Time    `json:"expiresAt"`
	User        UserResponse `json:"user"`
}
