package errors

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/feral-file/ff-portfolio/internal/domain"
)

// ErrorCode represents a standardized error code
type ErrorCode string

const (
	// Client errors (4xx)
	ErrCodeInvalidArgument ErrorCode = "invalid_argument"

	// Server errors (5xx)
	ErrCodeInternalError       ErrorCode = "internal_error"
	ErrCodeDatabaseError       ErrorCode = "database_error"
	ErrCodeUpstreamUnavailable ErrorCode = "upstream_unavailable"
)

// APIError represents a structured API error that carries error code and details
type APIError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Details string    `json:"details,omitempty"`
}

func (e *APIError) Error() string {
	jsonErr, _ := json.Marshal(e)
	return string(jsonErr)
}

// StatusCode returns the HTTP status for the error code
func (e *APIError) StatusCode() int {
	switch e.Code {
	case ErrCodeInvalidArgument:
		return http.StatusBadRequest
	case ErrCodeUpstreamUnavailable:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func NewInvalidArgumentError(message string, details ...string) *APIError {
	return &APIError{
		Code:    ErrCodeInvalidArgument,
		Message: message,
		Details: strings.Join(details, ", "),
	}
}

func NewInternalError(message string, details ...string) *APIError {
	return &APIError{
		Code:    ErrCodeInternalError,
		Message: message,
		Details: strings.Join(details, ", "),
	}
}

func NewDatabaseError(message string, details ...string) *APIError {
	return &APIError{
		Code:    ErrCodeDatabaseError,
		Message: message,
		Details: strings.Join(details, ", "),
	}
}

func NewUpstreamUnavailableError(message string, details ...string) *APIError {
	return &APIError{
		Code:    ErrCodeUpstreamUnavailable,
		Message: message,
		Details: strings.Join(details, ", "),
	}
}

// FromError classifies a domain error; an *APIError passes through unchanged
func FromError(err error) *APIError {
	var apiErr *APIError
	switch {
	case errors.As(err, &apiErr):
		return apiErr
	case errors.Is(err, domain.ErrInvalidAddress), errors.Is(err, domain.ErrInvalidLimit):
		return NewInvalidArgumentError(err.Error())
	case errors.Is(err, domain.ErrUpstreamUnavailable):
		return NewUpstreamUnavailableError(err.Error())
	default:
		return NewInternalError(err.Error())
	}
}
