package domain

import (
	"errors"
	"fmt"
)

// ErrorCode classifies a DomainError. Codes are stable and part of the API contract.
type ErrorCode string

const (
	CodeNotFound     ErrorCode = "NOT_FOUND"
	CodeValidation   ErrorCode = "VALIDATION_ERROR"
	CodeConflict     ErrorCode = "CONFLICT"
	CodeForbidden    ErrorCode = "FORBIDDEN"
	CodeUnauthorized ErrorCode = "UNAUTHORIZED"
	CodeInvalidState ErrorCode = "INVALID_STATE"
)

// DomainError is a recoverable, user-facing error raised by the domain or application layer.
type DomainError struct {
	Code    ErrorCode
	Message string
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Is reports whether target is a DomainError with the same code, so that
// errors.Is(err, domain.ErrNotFound) matches any not-found error.
func (e *DomainError) Is(target error) bool {
	var t *DomainError
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

// New creates a DomainError with an arbitrary code.
func New(code ErrorCode, message string) *DomainError {
	return &DomainError{Code: code, Message: message}
}

// Sentinels for errors.Is checks.
var (
	ErrNotFound     = New(CodeNotFound, "not found")
	ErrValidation   = New(CodeValidation, "validation failed")
	ErrConflict     = New(CodeConflict, "conflict")
	ErrForbidden    = New(CodeForbidden, "forbidden")
	ErrUnauthorized = New(CodeUnauthorized, "unauthorized")
	ErrInvalidState = New(CodeInvalidState, "invalid state")
)

// NewNotFoundError reports that an entity with the given identifier does not exist
// or is not visible to the caller.
func NewNotFoundError(entity, id string) *DomainError {
	return New(CodeNotFound, fmt.Sprintf("%s %s not found", entity, id))
}

// NewValidationError reports invalid input.
func NewValidationError(message string) *DomainError {
	return New(CodeValidation, message)
}

// NewConflictError reports a write that conflicts with the current state.
func NewConflictError(message string) *DomainError {
	return New(CodeConflict, message)
}

// NewForbiddenError reports that the actor lacks the required capability.
func NewForbiddenError(message string) *DomainError {
	return New(CodeForbidden, message)
}

// NewUnauthorizedError reports missing or invalid credentials.
func NewUnauthorizedError(message string) *DomainError {
	return New(CodeUnauthorized, message)
}

// NewInvalidStateError reports an illegal state transition.
func NewInvalidStateError(from, to string) *DomainError {
	return New(CodeInvalidState, fmt.Sprintf("cannot transition from %s to %s", from, to))
}

// AsDomainError extracts a DomainError from err, if any.
func AsDomainError(err error) (*DomainError, bool) {
	var de *DomainError
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}
