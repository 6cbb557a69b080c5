// Package shared contains common domain types, errors, and events that are
// used across all domain packages. This package has zero external dependencies.
package shared

import (
	"errors"
	"fmt"
)

// Base domain errors that can be used for error checking with errors.Is().
var (
	// Entity errors
	ErrNotFound      = errors.New("entity not found")
	ErrAlreadyExists = errors.New("entity already exists")

	// Validation errors
	ErrValidation      = errors.New("validation error")
	ErrInvalidID       = errors.New("invalid ID")
	ErrInvalidInput    = errors.New("invalid input")
	ErrEmptyValue      = errors.New("value cannot be empty")
	ErrValueOutOfRange = errors.New("value out of range")

	// State errors
	ErrInvalidState    = errors.New("invalid state")
	ErrStateTransition = errors.New("invalid state transition")

	// Persistence errors. Reported distinctly from validation failures:
	// when a write-through fails the in-memory journal has already advanced.
	ErrPersistence   = errors.New("persistence failure")
	ErrCorrupt       = errors.New("snapshot corrupt")
	ErrSchemaVersion = errors.New("unsupported snapshot schema version")
)

// DomainError represents a domain-specific error with context.
type DomainError struct {
	Domain  string // e.g., "target", "review", "murojaah"
	Op      string // Operation that failed, e.g., "AddTarget", "UpdateStatus"
	Kind    error  // Base error type for errors.Is() checking
	Message string // Human-readable message
	Err     error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s.%s: %s: %v", e.Domain, e.Op, e.Message, e.Err)
	}
	return fmt.Sprintf("%s.%s: %s", e.Domain, e.Op, e.Message)
}

// Unwrap returns the underlying error for errors.Unwrap().
func (e *DomainError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return e.Kind
}

// Is implements errors.Is() matching.
func (e *DomainError) Is(target error) bool {
	if e.Kind != nil && errors.Is(e.Kind, target) {
		return true
	}
	if e.Err != nil && errors.Is(e.Err, target) {
		return true
	}
	return false
}

// NewDomainError creates a new domain error.
func NewDomainError(domain, op string, kind error, message string) *DomainError {
	return &DomainError{
		Domain:  domain,
		Op:      op,
		Kind:    kind,
		Message: message,
	}
}

// WrapError wraps an existing error with domain context.
func WrapError(domain, op string, kind error, message string, err error) *DomainError {
	return &DomainError{
		Domain:  domain,
		Op:      op,
		Kind:    kind,
		Message: message,
		Err:     err,
	}
}

// Target domain errors
var (
	ErrTargetNotFound      = NewDomainError("target", "Find", ErrNotFound, "memorization target not found")
	ErrTargetTerminal      = NewDomainError("target", "Activate", ErrInvalidState, "target has reached mutqin and cannot be activated")
	ErrInvalidAyahRange    = NewDomainError("target", "Validate", ErrValueOutOfRange, "ayah range outside surah bounds")
	ErrInvalidTargetStatus = NewDomainError("target", "UpdateStatus", ErrStateTransition, "status change not permitted from current state")
)

// Review domain errors
var (
	ErrReviewNotFound   = NewDomainError("review", "Find", ErrNotFound, "no murojaah entry scheduled for that day")
	ErrPeerNameRequired = NewDomainError("review", "Validate", ErrEmptyValue, "peer name is required")
	ErrInvalidSlot      = NewDomainError("review", "Validate", ErrInvalidInput, "slot must be Pagi, Siang or Malam")
	ErrInvalidMistakes  = NewDomainError("review", "Validate", ErrValueOutOfRange, "mistake count cannot be negative")
)

// Murojaah (segment review) domain errors
var (
	ErrSurahDetailNotFound = NewDomainError("murojaah", "Find", ErrNotFound, "surah review detail not found")
	ErrSurahDetailExists   = NewDomainError("murojaah", "Add", ErrAlreadyExists, "surah review detail already exists")
	ErrSegmentNotFound     = NewDomainError("murojaah", "FindSegment", ErrNotFound, "segment index out of range")
	ErrInvalidSegment      = NewDomainError("murojaah", "Validate", ErrInvalidInput, "segment bounds are invalid")
)

// Quran metadata errors
var (
	ErrUnknownSurah = NewDomainError("quran", "Lookup", ErrNotFound, "surah number outside 1..114")
)

// IsNotFound checks if the error is a "not found" error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsValidation checks if the error is a validation error.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation) ||
		errors.Is(err, ErrInvalidID) ||
		errors.Is(err, ErrInvalidInput) ||
		errors.Is(err, ErrEmptyValue) ||
		errors.Is(err, ErrValueOutOfRange)
}

// IsStateTransition checks if the error is an illegal state transition.
func IsStateTransition(err error) bool {
	return errors.Is(err, ErrStateTransition)
}

// IsPersistence checks if the error came from the snapshot store.
func IsPersistence(err error) bool {
	return errors.Is(err, ErrPersistence) ||
		errors.Is(err, ErrCorrupt) ||
		errors.Is(err, ErrSchemaVersion)
}
