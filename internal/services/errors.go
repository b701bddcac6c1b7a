package services

import (
	"errors"

	apperrors "github.com/SAP-F-2025/exam-engine/internal/errors"
)

// ===== COMMON SERVICE ERRORS =====

var (
	// Generic errors
	ErrValidationFailed = errors.New("validation failed")
	ErrInternalError    = errors.New("internal server error")

	// Exam specific errors
	ErrExamNotFound = errors.New("exam not found")
	ErrExamInvalid  = errors.New("exam content is malformed")

	// Session specific errors
	ErrSessionNotFound         = errors.New("session not found")
	ErrSessionNotActive        = errors.New("session is not in progress")
	ErrSessionAlreadyStarted   = errors.New("session already started")
	ErrSessionAlreadySubmitted = errors.New("session already submitted")
	ErrSessionNotSubmitted     = errors.New("session is not submitted")
	ErrQuestionNotFound        = errors.New("question not found in exam")
	ErrInvalidDirection        = errors.New("invalid navigation direction")

	// Result specific errors
	ErrResultNotFound = errors.New("result not found")
)

// Use shared validation errors from errors package
type ValidationError = apperrors.ValidationError
type ValidationErrors = apperrors.ValidationErrors

// NewValidationError creates a new validation error using the shared type
func NewValidationError(field, message string, value interface{}) *ValidationError {
	return apperrors.NewValidationError(field, message, value)
}

// ===== ERROR HELPERS =====

// IsNotFound checks if error represents a "not found" condition
func IsNotFound(err error) bool {
	return errors.Is(err, ErrExamNotFound) ||
		errors.Is(err, ErrSessionNotFound) ||
		errors.Is(err, ErrQuestionNotFound) ||
		errors.Is(err, ErrResultNotFound)
}

// IsConflict checks if error represents an invalid-transition conflict
func IsConflict(err error) bool {
	return errors.Is(err, ErrSessionNotActive) ||
		errors.Is(err, ErrSessionAlreadyStarted) ||
		errors.Is(err, ErrSessionAlreadySubmitted) ||
		errors.Is(err, ErrSessionNotSubmitted)
}

// IsValidation checks if error represents a validation failure
func IsValidation(err error) bool {
	if errors.Is(err, ErrValidationFailed) || errors.Is(err, ErrInvalidDirection) || errors.Is(err, ErrExamInvalid) {
		return true
	}
	var ve apperrors.ValidationErrors
	return errors.As(err, &ve)
}
