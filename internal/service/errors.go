package service

import (
	"errors"

	"gorm.io/gorm"

	"tennis-rally-api/internal/repository"
	"tennis-rally-api/internal/response"
)

// translateError maps repository errors onto AppErrors. notFound is the message used for gorm.ErrRecordNotFound.
func translateError(err error, notFound, internal string) error {
	var appErr *response.AppError
	switch {
	case err == nil:
		return nil
	case errors.As(err, &appErr):
		return appErr
	case errors.Is(err, gorm.ErrRecordNotFound):
		return response.NewNotFoundError(notFound, "")
	case errors.Is(err, repository.ErrEventFull):
		return response.NewConflictError(response.ErrCodeEventFull, "Event is full")
	case errors.Is(err, repository.ErrAlreadyJoined):
		return response.NewConflictError(response.ErrCodeAlreadyJoined, "Already joined this event")
	case errors.Is(err, repository.ErrNotJoined):
		return response.NewConflictError(response.ErrCodeNotJoined, "Not a participant of this event")
	case errors.Is(err, repository.ErrCapacityBelowRoster):
		return response.NewConflictError(response.ErrCodeCapacityBelowRoster, "Capacity cannot be lower than the current number of participants")
	case errors.Is(err, repository.ErrDuplicateEmail):
		return response.NewConflictError(response.ErrCodeDuplicateEmail, "Email already registered")
	default:
		return response.NewAppError(response.ErrCodeInternal, internal, err.Error())
	}
}
