package academics

import (
	"errors"
	"fmt"
)

var (
	// ErrNoPrograms is signalled when a student has no program enrollments
	// on record at all. Clearance evaluation must not proceed in that case.
	ErrNoPrograms = errors.New("student has no program enrollments on record")

	// ErrNoEligibleProgram is signalled when enrollments exist but none is
	// active or completed, so there is nothing to evaluate against.
	ErrNoEligibleProgram = errors.New("no active or completed program enrollment")
)

// InvalidGradeError marks a grade symbol that is absent from the catalog.
// Bulk calculations recover from it by skipping the offending attempt.
type InvalidGradeError struct {
	Raw string
}

func (e *InvalidGradeError) Error() string {
	return fmt.Sprintf("grade symbol %q is not in the grade catalog", e.Raw)
}

// IsInvalidGrade reports whether err is an InvalidGradeError.
func IsInvalidGrade(err error) bool {
	var ig *InvalidGradeError
	return errors.As(err, &ig)
}
