package errors

import (
	"errors"
	"net/http"
)

// Domain errors
var (
	ErrNotFound     = errors.New("resource not found")
	ErrValidation   = errors.New("invalid input")
	ErrUnauthorized = errors.New("unauthorized")
	ErrRateLimited  = errors.New("rate limit exceeded")
	ErrInternal     = errors.New("internal error")
)

// Wire error types, kept stable for API consumers.
const (
	TypeInvalidToken    = "xInvalidToken"
	TypeValidationError = "xValidationError"
	TypeNotFound        = "xNotFound"
	TypeTooManyRequests = "xTooManyRequests"
	TypeInternalError   = "xInternalError"
)

// AppError represents an application error with HTTP status and wire type
type AppError struct {
	Status  int    `json:"-"`
	Type    string `json:"type"`
	Message string `json:"info"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new app error
func NewAppError(status int, errType, message string, err error) *AppError {
	return &AppError{
		Status:  status,
		Type:    errType,
		Message: message,
		Err:     err,
	}
}

// Unauthorized covers both a failed capability check and a rejected caller
// address. The two are deliberately indistinguishable on the wire so that the
// existence of a whitelist never leaks.
func Unauthorized() *AppError {
	return NewAppError(http.StatusForbidden, TypeInvalidToken,
		"Invalid token was specified or do not have permission.", ErrUnauthorized)
}

func Validation(message string) *AppError {
	return NewAppError(http.StatusBadRequest, TypeValidationError, message, ErrValidation)
}

func NotFound() *AppError {
	return NewAppError(http.StatusNotFound, TypeNotFound,
		"The requested resource was not found.", ErrNotFound)
}

func RateLimited() *AppError {
	return NewAppError(http.StatusTooManyRequests, TypeTooManyRequests,
		"Too many requests. Please try again later.", ErrRateLimited)
}

func Internal(err error) *AppError {
	return NewAppError(http.StatusInternalServerError, TypeInternalError,
		"Internal server error.", err)
}
