package services

import (
	"errors"
	"fmt"

	"github.com/campusops/registry-service/internal/academics"
	apperrors "github.com/campusops/registry-service/internal/errors"
)

// ===== COMMON SERVICE ERRORS =====

var (
	ErrStudentNotFound   = errors.New("student not found")
	ErrStructureNotFound = errors.New("program structure not found")
	ErrClearanceNotFound = errors.New("no clearance request on record")

	// ErrNoActiveProgram wraps the engine sentinel: the student has no
	// enrollments at all, so clearance must not be evaluated.
	ErrNoActiveProgram = academics.ErrNoPrograms

	// Portal / sync errors
	ErrPortalUnavailable = errors.New("legacy portal is unreachable")
	ErrSyncInProgress    = errors.New("a sync job is already running")

	// Report errors
	ErrNotCleared      = errors.New("student has not been cleared for graduation")
	ErrNotClassifiable = errors.New("student has no classifiable academic record")
)

// ===== CUSTOM ERROR TYPES =====

// Use shared validation errors from the errors package.
type ValidationError = apperrors.ValidationError
type ValidationErrors = apperrors.ValidationErrors

// BusinessRuleError carries the rule name alongside the message so bulk
// callers can report which policy blocked an operation.
type BusinessRuleError struct {
	Rule    string                 `json:"rule"`
	Message string                 `json:"message"`
	Context map[string]interface{} `json:"context,omitempty"`
}

func (bre *BusinessRuleError) Error() string {
	return fmt.Sprintf("business rule violation (%s): %s", bre.Rule, bre.Message)
}

// ===== ERROR HELPERS =====

func NewValidationError(field, message string, value interface{}) *ValidationError {
	return apperrors.NewValidationError(field, message, value)
}

func NewBusinessRuleError(rule, message string, context map[string]interface{}) *BusinessRuleError {
	return &BusinessRuleError{Rule: rule, Message: message, Context: context}
}

// IsNotFound checks if the error represents a "not found" condition.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrStudentNotFound) ||
		errors.Is(err, ErrStructureNotFound) ||
		errors.Is(err, ErrClearanceNotFound)
}

// IsBusinessOutcome checks if the error is an expected business result
// rather than a defect: callers render these, they do not alert on them.
func IsBusinessOutcome(err error) bool {
	return errors.Is(err, ErrNoActiveProgram) ||
		errors.Is(err, academics.ErrNoEligibleProgram) ||
		errors.Is(err, ErrNotCleared) ||
		errors.Is(err, ErrNotClassifiable)
}

// IsValidation checks if the error represents a validation failure.
func IsValidation(err error) bool {
	var ve apperrors.ValidationErrors
	if errors.As(err, &ve) {
		return true
	}
	var single *apperrors.ValidationError
	return errors.As(err, &single)
}

// IsBusinessRule checks if the error is a business rule violation.
func IsBusinessRule(err error) bool {
	var bre *BusinessRuleError
	return errors.As(err, &bre)
}
