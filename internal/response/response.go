package response

import (
	"fmt"

	"github.com/gin-gonic/gin"
)

// Error codes shared by services and handlers
const (
	ErrCodeValidation          = "VALIDATION_ERROR"
	ErrCodeUnauthorized        = "UNAUTHORIZED"
	ErrCodeInvalidCredentials  = "INVALID_CREDENTIALS"
	ErrCodeForbidden           = "FORBIDDEN"
	ErrCodeNotFound            = "NOT_FOUND"
	ErrCodeAlreadyExists       = "ALREADY_EXISTS"
	ErrCodeDuplicateEmail      = "DUPLICATE_EMAIL"
	ErrCodeEventFull           = "EVENT_FULL"
	ErrCodeAlreadyJoined       = "ALREADY_JOINED"
	ErrCodeNotJoined           = "NOT_JOINED"
	ErrCodeCapacityBelowRoster = "CAPACITY_BELOW_ROSTER"
	ErrCodeInternal            = "INTERNAL_ERROR"
)

// AppError is the error type returned by the service layer
type AppError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

func (e *AppError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewAppError creates a new AppError
func NewAppError(code, message, details string) *AppError {
	return &AppError{Code: code, Message: message, Details: details}
}

// NewNotFoundError creates a NOT_FOUND AppError
func NewNotFoundError(message, details string) *AppError {
	return NewAppError(ErrCodeNotFound, message, details)
}

// NewForbiddenError creates a FORBIDDEN AppError
func NewForbiddenError(message, details string) *AppError {
	return NewAppError(ErrCodeForbidden, message, details)
}

// NewValidationError creates a VALIDATION_ERROR AppError
func NewValidationError(message, details string) *AppError {
	return NewAppError(ErrCodeValidation, message, details)
}

// NewConflictError creates an AppError for a state conflict (mapped to 409)
func NewConflictError(code, message string) *AppError {
	return NewAppError(code, message, "")
}

// SuccessResponse is the envelope for successful responses
type SuccessResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
}

// ErrorResponse is the envelope for error responses
type ErrorResponse struct {
	Success bool        `json:"success"`
	Error   interface{} `json:"error"`
}

// SendSuccess writes a success envelope
func SendSuccess(c *gin.Context, status int, data interface{}) {
	c.JSON(status, SuccessResponse{
		Success: true,
		Data:    data,
	})
}

// SendError writes an error envelope
func SendError(c *gin.Context, status int, code, message string) {
	c.JSON(status, ErrorResponse{
		Success: false,
		Error: gin.H{
			"code":    code,
			"message": message,
		},
	})
}
