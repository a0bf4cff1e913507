package domain

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrorCode represents a specific type of error in the domain
type ErrorCode string

const (
	// Common errors
	ErrInternal     ErrorCode = "INTERNAL_ERROR"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"
	ErrNotFound     ErrorCode = "NOT_FOUND"

	// Pipeline specific errors
	ErrExtractionFailed       ErrorCode = "EXTRACTION_FAILED"
	ErrUnreadableContent      ErrorCode = "UNREADABLE_CONTENT"
	ErrCompletionUnavailable  ErrorCode = "COMPLETION_UNAVAILABLE"
	ErrInvalidCompletionShape ErrorCode = "INVALID_COMPLETION_SHAPE"
	ErrTitleUnavailable       ErrorCode = "TITLE_UNAVAILABLE"
	ErrMissingCredential      ErrorCode = "MISSING_CREDENTIAL"
	ErrArchiveUnavailable     ErrorCode = "ARCHIVE_UNAVAILABLE"
)

// DomainError represents a domain-specific error
type DomainError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Err     error     `json:"-"`
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// MarshalJSON implements the json.Marshaler interface
func (e *DomainError) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}{
		Code:    string(e.Code),
		Message: e.Message,
	})
}

// NewError creates a new DomainError
func NewError(code ErrorCode, message string, err error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// CodeOf returns the domain error code carried by err, or ErrInternal
// when err is not a DomainError.
func CodeOf(err error) ErrorCode {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Code
	}
	return ErrInternal
}

// Helper functions for common errors
func NewInvalidInputError(message string) *DomainError {
	return NewError(ErrInvalidInput, message, nil)
}

func NewInternalError(message string, err error) *DomainError {
	return NewError(ErrInternal, message, err)
}

func NewExtractionFailedError(message string, err error) *DomainError {
	return NewError(ErrExtractionFailed, message, err)
}

func NewUnreadableContentError(message string) *DomainError {
	return NewError(ErrUnreadableContent, message, nil)
}

func NewCompletionUnavailableError(err error) *DomainError {
	return NewError(ErrCompletionUnavailable, "Completion service unavailable", err)
}

func NewInvalidCompletionShapeError(message string, err error) *DomainError {
	return NewError(ErrInvalidCompletionShape, message, err)
}

func NewMissingCredentialError() *DomainError {
	return NewError(ErrMissingCredential, "OpenRouter API key not configured", nil)
}

func NewArchiveUnavailableError(err error) *DomainError {
	return NewError(ErrArchiveUnavailable, "Quiz archive unavailable", err)
}
