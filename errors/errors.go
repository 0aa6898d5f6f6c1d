package errors

import (
	"fmt"
	"net/http"

	"github.com/fra-atlas/fra-atlas-backend/logger"
)

type ErrorType string

const (
	ValidationError       ErrorType = "VALIDATION_ERROR"
	NotFoundError         ErrorType = "NOT_FOUND"
	DatabaseError         ErrorType = "DATABASE_ERROR"
	ServerError           ErrorType = "SERVER_ERROR"
	UnsupportedMediaError ErrorType = "UNSUPPORTED_MEDIA"
	DecodeError           ErrorType = "DECODE_FAILED"
	ClaimNotFoundError    ErrorType = "CLAIM_NOT_FOUND"
)

// AppError represents a structured application error
type AppError struct {
	Type       ErrorType `json:"type"`
	Code       string    `json:"code"`
	Message    string    `json:"message"`
	Detail     string    `json:"detail,omitempty"`
	HTTPStatus int       `json:"-"`
	Raw        error     `json:"-"`
}

func (e *AppError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Type, e.Message, e.Detail)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// GetHTTPStatus returns the HTTP status code associated with the error.
func (e *AppError) GetHTTPStatus() int {
	if e.HTTPStatus != 0 {
		return e.HTTPStatus
	}
	return getHTTPStatus(e.Type)
}

// Unwrap exposes the wrapped raw error for errors.Is/As chains.
func (e *AppError) Unwrap() error {
	return e.Raw
}

// New creates a new AppError
func New(errType ErrorType, message string, detail string) *AppError {
	return &AppError{
		Type:       errType,
		Message:    message,
		Detail:     detail,
		HTTPStatus: getHTTPStatus(errType),
	}
}

// Wrap wraps a raw error with AppError context
func Wrap(err error, errType ErrorType, message string) *AppError {
	if err == nil {
		return nil
	}
	return &AppError{
		Type:       errType,
		Message:    message,
		Detail:     err.Error(),
		HTTPStatus: getHTTPStatus(errType),
		Raw:        err,
	}
}

// Helper functions for common errors
func NotFound(entity string, id interface{}) *AppError {
	return &AppError{
		Type:       NotFoundError,
		Message:    fmt.Sprintf("%s not found", entity),
		Detail:     fmt.Sprintf("ID: %v", id),
		HTTPStatus: http.StatusNotFound,
	}
}

func ValidationFailed(message string, details string) *AppError {
	return &AppError{
		Type:       ValidationError,
		Message:    message,
		Detail:     details,
		HTTPStatus: http.StatusBadRequest,
	}
}

func NewDatabaseError(err error) *AppError {
	// Log original error but return sanitized message
	logger.GetLogger().Errorw("Database error", "error", err)
	return &AppError{
		Type:       DatabaseError,
		Message:    "Database operation failed",
		Detail:     "Please try again later",
		HTTPStatus: http.StatusInternalServerError,
		Raw:        err,
	}
}

func InternalServerError(message string) *AppError {
	return &AppError{
		Type:       ServerError,
		Message:    message,
		HTTPStatus: http.StatusInternalServerError,
	}
}

// ClaimNotFound reports a missing claim record.
func ClaimNotFound(id int64) *AppError {
	return &AppError{
		Type:       ClaimNotFoundError,
		Message:    "Claim not found",
		Detail:     fmt.Sprintf("Claim ID: %d", id),
		HTTPStatus: http.StatusNotFound,
	}
}

// UnsupportedMedia reports a file type the extraction pipeline cannot handle.
func UnsupportedMedia(extension string) *AppError {
	return &AppError{
		Type:       UnsupportedMediaError,
		Message:    "Unsupported file type",
		Detail:     fmt.Sprintf("Extension: %s", extension),
		HTTPStatus: http.StatusBadRequest,
	}
}

// DecodeFailed reports image bytes that could not be decoded. This is the only
// pipeline failure that propagates to the caller.
func DecodeFailed(err error) *AppError {
	return &AppError{
		Type:       DecodeError,
		Message:    "Failed to decode uploaded image",
		Detail:     err.Error(),
		HTTPStatus: http.StatusUnprocessableEntity,
		Raw:        err,
	}
}

func getHTTPStatus(errType ErrorType) int {
	switch errType {
	case ValidationError:
		return http.StatusBadRequest
	case NotFoundError, ClaimNotFoundError:
		return http.StatusNotFound
	case DatabaseError:
		return http.StatusInternalServerError
	case UnsupportedMediaError:
		return http.StatusBadRequest
	case DecodeError:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
