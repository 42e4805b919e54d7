package common

import (
	"errors"
	"fmt"
)

// AppError represents application-specific errors
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// Common application errors
var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrConfiguration = errors.New("configuration error")
	ErrCollaborator  = errors.New("collaborator unavailable")
)

// Error constructors
func NewAppError(code, message string, cause error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// ConfigError marks an error as a configuration problem (missing
// credentials, bad endpoint). Retrying the same scan will not help.
func ConfigError(message string, cause error) *AppError {
	return NewAppError("CONFIG_ERROR", message, cause)
}

// IsConfigError reports whether err carries the CONFIG_ERROR code.
func IsConfigError(err error) bool {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae.Code == "CONFIG_ERROR"
	}
	return false
}
