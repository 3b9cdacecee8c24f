package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"tennis-rally-api/internal/response"
)

// handleServiceError maps service layer errors to appropriate HTTP responses
func handleServiceError(c *gin.Context, logger *zap.Logger, err error) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		response.SendError(c, http.StatusNotFound, response.ErrCodeNotFound, "Resource not found")
		return
	}

	var appErr *response.AppError
	if errors.As(err, &appErr) {
		status := mapErrorCodeToHTTPStatus(appErr.Code)
		if status >= http.StatusInternalServerError {
			logger.Error("Service error",
				zap.String("code", appErr.Code),
				zap.String("message", appErr.Message),
				zap.String("details", appErr.Details),
				zap.String("path", c.FullPath()),
			)
		}
		message := appErr.Message
		if status == http.StatusBadRequest && appErr.Details != "" {
			message = fmt.Sprintf("%s: %s", appErr.Message, appErr.Details)
		}
		response.SendError(c, status, appErr.Code, message)
		return
	}

	logger.Error("Unhandled service error",
		zap.String("type", fmt.Sprintf("%T", err)),
		zap.Error(err),
		zap.String("path", c.FullPath()),
	)
	response.SendError(c, http.StatusInternalServerError, response.ErrCodeInternal, "Internal server error")
}

// mapErrorCodeToHTTPStatus maps error codes to HTTP status codes
func mapErrorCodeToHTTPStatus(code string) int {
	switch code {
	case response.ErrCodeNotFound:
		return http.StatusNotFound
	case response.ErrCodeValidation:
		return http.StatusBadRequest
	case response.ErrCodeUnauthorized, response.ErrCodeInvalidCredentials:
		return http.StatusUnauthorized
	case response.ErrCodeForbidden:
		return http.StatusForbidden
	case response.ErrCodeAlreadyExists,
		response.ErrCodeDuplicateEmail,
		response.ErrCodeEventFull,
		response.ErrCodeAlreadyJoined,
		response.ErrCodeNotJoined,
		response.ErrCodeCapacityBelowRoster:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// sendBindError reports a request that failed binding or validation
func sendBindError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag()))
		}
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request: "+strings.Join(fields, ", "))
		return
	}
	response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
}

// parseIDParam reads a positive numeric path parameter, writing a 400 when it is malformed
func parseIDParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, fmt.Sprintf("Invalid %s", name))
		return 0, false
	}
	return uint(id), true
}
