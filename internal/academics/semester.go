package academics

import "strings"

// Attempt is one recorded outcome for one module in one semester, reduced to
// the fields the calculation engine needs. Credits carry the value attached
// at attempt time, not the current curriculum revision.
type Attempt struct {
	ModuleName string
	ModuleCode string
	Grade      string
	Status     string
	Credits    float64
}

// SemesterSummary is the aggregate of one semester's counted attempts.
// HasNoMarks flags that at least one counted attempt is still ungraded,
// which upstream surfaces as grading-in-progress.
type SemesterSummary struct {
	Points           float64
	CreditsAttempted float64
	CreditsCompleted float64
	CreditsForGPA    float64
	GPA              float64
	HasNoMarks       bool
}

func statusEquals(status, want string) bool {
	return strings.EqualFold(strings.TrimSpace(status), want)
}

// ExcludedAttempt reports whether an enrollment status removes the attempt
// from every calculation.
func ExcludedAttempt(status string) bool {
	s := strings.ToLower(strings.TrimSpace(status))
	return s == "delete" || s == "drop"
}

// ExcludedSemester reports whether a semester status removes the whole
// semester from CGPA and curriculum-completion calculations.
func ExcludedSemester(status string) bool {
	s := strings.ToLower(strings.TrimSpace(status))
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, "-", "")
	switch s {
	case "deleted", "deferred", "droppedout", "withdrawn":
		return true
	}
	return false
}

// SummarizeSemester folds one semester's attempts into grade points, credit
// counts and a GPA. Attempts with a deleted/dropped status are discarded;
// attempts whose grade is empty or unknown are skipped individually rather
// than aborting the whole semester. Administrative grades other than NM
// count toward attempted and GPA credits but contribute no points.
func (c *Catalog) SummarizeSemester(attempts []Attempt) SemesterSummary {
	var sum SemesterSummary

	for _, a := range attempts {
		if ExcludedAttempt(a.Status) {
			continue
		}

		sym, err := c.Normalize(a.Grade)
		if err != nil {
			continue
		}

		sum.CreditsAttempted += a.Credits

		if sym == "NM" {
			sum.HasNoMarks = true
			continue
		}

		sum.CreditsForGPA += a.Credits
		if points, ok := c.Points(sym); ok {
			sum.Points += points * a.Credits
		}
		if c.IsPassing(sym) {
			sum.CreditsCompleted += a.Credits
		}
	}

	if sum.CreditsForGPA > 0 {
		sum.GPA = sum.Points / sum.CreditsForGPA
	}

	return sum
}
