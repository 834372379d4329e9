package app_error

import (
	"encoding/json"
	"net/http"
)

type AppError struct {
	Code    int    `json:"-"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

func (e AppError) Error() string {
	return e.Message
}

func (e AppError) JSON(w http.ResponseWriter) error {
	return json.NewEncoder(w).Encode(e)
}

func NewAppError(code int, msg, field string) *AppError {
	return &AppError{
		Code:    code,
		Message: msg,
		Field:   field,
	}
}

// Taxonomy constructors. Services only speak these six; handlers map the
// carried code straight onto the HTTP response.

func NotFound(msg, field string) *AppError {
	return NewAppError(http.StatusNotFound, msg, field)
}

func Forbidden(msg, field string) *AppError {
	return NewAppError(http.StatusForbidden, msg, field)
}

func InvalidArgument(msg, field string) *AppError {
	return NewAppError(http.StatusBadRequest, msg, field)
}

func Conflict(msg, field string) *AppError {
	return NewAppError(http.StatusConflict, msg, field)
}

// Unavailable marks a transient upstream failure, safe to retry with backoff.
func Unavailable(msg, field string) *AppError {
	return NewAppError(http.StatusServiceUnavailable, msg, field)
}

// InvalidCredentials marks a fatal upstream auth failure, never retried.
func InvalidCredentials(msg, field string) *AppError {
	return NewAppError(http.StatusUnauthorized, msg, field)
}

func (e *AppError) IsRetryable() bool {
	return e != nil && e.Code == http.StatusServiceUnavailable
}
