package errors

import (
	stdErrors "errors"
	"fmt"
	"net/http"
)

// StatusError represents a non-200, non-429 answer from the catalog API
type StatusError struct {
	Message    string
	StatusCode int
	APIMessage string // status_message from the API error body, if any
}

func (e *StatusError) Error() string {
	if e.APIMessage != "" {
		return fmt.Sprintf("%s (HTTP %d): %s", e.Message, e.StatusCode, e.APIMessage)
	}
	return fmt.Sprintf("%s (HTTP %d)", e.Message, e.StatusCode)
}

// NewStatusError creates a StatusError with a message derived from the status code
func NewStatusError(statusCode int, apiMessage string) *StatusError {
	var message string
	switch statusCode {
	case http.StatusUnauthorized:
		message = "Invalid catalog API token"
	case http.StatusNotFound:
		message = "Catalog resource not found"
	default:
		if statusCode >= 500 {
			message = "Catalog API server error"
		} else {
			message = "Catalog API request failed"
		}
	}

	return &StatusError{
		Message:    message,
		StatusCode: statusCode,
		APIMessage: apiMessage,
	}
}

// IsStatusError checks if err is a StatusError
func IsStatusError(err error) bool {
	var statusErr *StatusError
	return stdErrors.As(err, &statusErr)
}
