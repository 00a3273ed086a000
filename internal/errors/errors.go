package errors

import (
	"fmt"
)

// ErrorType represents different types of errors that can occur
type ErrorType int

const (
	ErrorTypeConfig ErrorType = iota
	ErrorTypeNetwork
	ErrorTypeParse
	ErrorTypeOpenFolder
)

// String returns a string representation of the error type
func (et ErrorType) String() string {
	switch et {
	case ErrorTypeConfig:
		return "config"
	case ErrorTypeNetwork:
		return "network"
	case ErrorTypeParse:
		return "parse"
	case ErrorTypeOpenFolder:
		return "openfolder"
	default:
		return "unknown"
	}
}

// AppError represents a structured application error
type AppError struct {
	Type      ErrorType
	Operation string
	Path      string
	Status    int // HTTP status for network errors, 0 otherwise
	Message   string
	Err       error
}

func (e *AppError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s error in %s (status %d): %s", e.Type, e.Operation, e.Status, e.Message)
	}
	if e.Path != "" {
		return fmt.Sprintf("%s error in %s [%s]: %s", e.Type, e.Operation, e.Path, e.Message)
	}
	return fmt.Sprintf("%s error in %s: %s", e.Type, e.Operation, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewConfigError creates a new configuration error
func NewConfigError(operation, message string, err error) *AppError {
	return &AppError{
		Type:      ErrorTypeConfig,
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}

// NewNetworkError creates a new network error carrying the response status
func NewNetworkError(operation string, status int, message string) *AppError {
	return &AppError{
		Type:      ErrorTypeNetwork,
		Operation: operation,
		Status:    status,
		Message:   message,
	}
}

// NewParseError creates a new response parse error
func NewParseError(operation, message string, err error) *AppError {
	return &AppError{
		Type:      ErrorTypeParse,
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}

// NewOpenFolderError creates a new open-folder error with a user-facing message
func NewOpenFolderError(path, message string, err error) *AppError {
	return &AppError{
		Type:      ErrorTypeOpenFolder,
		Operation: "open_folder",
		Path:      path,
		Message:   message,
		Err:       err,
	}
}
