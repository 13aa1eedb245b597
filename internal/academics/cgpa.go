package academics

import "time"

// Classification is the award class printed on a transcript, or one of the
// terminal "cannot classify" outcomes. The sentinels are ordinary business
// results, not errors: a report must render them verbatim instead of
// mistaking a zero CGPA for a Failed class.
type Classification string

const (
	ClassDistinction Classification = "Distinction"
	ClassMerit       Classification = "Merit"
	ClassPass        Classification = "Pass"
	ClassFailed      Classification = "Failed"

	ClassNoValidGrades Classification = "No Valid Grades"
	ClassNoSemesters   Classification = "No Semesters Found"
	ClassNoProgram     Classification = "No Active or Completed Program"
)

// IsAward reports whether the classification is a real award class rather
// than a sentinel outcome.
func (c Classification) IsAward() bool {
	switch c {
	case ClassDistinction, ClassMerit, ClassPass, ClassFailed:
		return true
	}
	return false
}

// SemesterAttempts pairs a semester's identity with its attempt list, in
// chronological sequence order. The caller has already removed semesters
// with an excluded administrative status.
type SemesterAttempts struct {
	SemesterID uint
	TermCode   string
	Attempts   []Attempt
}

// SemesterRecord is one row of the running CGPA fold.
type SemesterRecord struct {
	SemesterID       uint
	TermCode         string
	GPA              float64
	CGPA             float64
	CreditsAttempted float64
	CreditsCompleted float64
	HasNoMarks       bool
}

// CalculateCGPA folds semesters in sequence order into per-semester records
// and the final CGPA. Each record's CGPA is cumulative points over
// cumulative GPA-eligible credits up to and including that semester. The
// final CGPA is the last record's, or 0 when there are no semesters.
func (c *Catalog) CalculateCGPA(semesters []SemesterAttempts) ([]SemesterRecord, float64) {
	var (
		records          []SemesterRecord
		cumulativePoints float64
		cumulativeGPACr  float64
		finalCGPA        float64
	)

	for _, sem := range semesters {
		sum := c.SummarizeSemester(sem.Attempts)

		cumulativePoints += sum.Points
		cumulativeGPACr += sum.CreditsForGPA

		cgpa := 0.0
		if cumulativeGPACr > 0 {
			cgpa = cumulativePoints / cumulativeGPACr
		}

		records = append(records, SemesterRecord{
			SemesterID:       sem.SemesterID,
			TermCode:         sem.TermCode,
			GPA:              sum.GPA,
			CGPA:             cgpa,
			CreditsAttempted: sum.CreditsAttempted,
			CreditsCompleted: sum.CreditsCompleted,
			HasNoMarks:       sum.HasNoMarks,
		})
		finalCGPA = cgpa
	}

	return records, finalCGPA
}

// Classify maps a final CGPA to its award class. The value is rounded to
// two decimals first, then compared against the thresholds, so boundary
// values classify exactly as they print. A rounded CGPA of zero means the
// student has no valid grades at all and cannot be classified.
func Classify(cgpa float64) Classification {
	rounded := RoundCGPA(cgpa)
	switch {
	case rounded == 0:
		return ClassNoValidGrades
	case rounded >= 3.5:
		return ClassDistinction
	case rounded >= 3.0:
		return ClassMerit
	case rounded >= 1.7:
		return ClassPass
	default:
		return ClassFailed
	}
}

// ProgramSnapshot is one enrollment of a student, reduced to what the
// calculation engine needs. Semesters are in chronological sequence order.
type ProgramSnapshot struct {
	ID          uint
	ProgramCode string
	ProgramName string
	StructureID uint
	Status      string
	CreatedAt   time.Time
	Semesters   []SemesterSnapshot
}

// SemesterSnapshot is one semester inside a ProgramSnapshot.
type SemesterSnapshot struct {
	ID       uint
	TermCode string
	Status   string
	Attempts []Attempt
}

// SelectProgram picks the enrollment that eligibility and CGPA use: the
// active program if present, otherwise the most recently created completed
// one. ErrNoPrograms means the student has no enrollments at all;
// ErrNoEligibleProgram means none of them is active or completed.
func SelectProgram(programs []ProgramSnapshot) (*ProgramSnapshot, error) {
	if len(programs) == 0 {
		return nil, ErrNoPrograms
	}

	var completed *ProgramSnapshot
	for i := range programs {
		p := &programs[i]
		switch {
		case statusEquals(p.Status, "active"):
			return p, nil
		case statusEquals(p.Status, "completed"):
			if completed == nil || p.CreatedAt.After(completed.CreatedAt) {
				completed = p
			}
		}
	}

	if completed != nil {
		return completed, nil
	}
	return nil, ErrNoEligibleProgram
}

// CountedSemesters drops semesters whose administrative status excludes
// them and returns the rest, still in sequence order, as fold input.
func CountedSemesters(program *ProgramSnapshot) []SemesterAttempts {
	var out []SemesterAttempts
	for _, sem := range program.Semesters {
		if ExcludedSemester(sem.Status) {
			continue
		}
		out = append(out, SemesterAttempts{
			SemesterID: sem.ID,
			TermCode:   sem.TermCode,
			Attempts:   sem.Attempts,
		})
	}
	return out
}
