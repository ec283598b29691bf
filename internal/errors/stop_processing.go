package errors

import "errors"

// StopProcessingError ends the browse loop when the picker is closed without a choice.
type StopProcessingError struct {
	Reason string
}

func (e *StopProcessingError) Error() string {
	return e.Reason
}

// NewStopProcessingError wraps the reason the picker was closed.
func NewStopProcessingError(reason string) *StopProcessingError {
	return &StopProcessingError{Reason: reason}
}

// IsStopProcessingError reports whether err, or anything it wraps, means the user left the picker.
func IsStopProcessingError(err error) bool {
	var stop *StopProcessingError
	return errors.As(err, &stop)
}
