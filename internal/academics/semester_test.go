package academics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSummarizeSemesterWeightedScenario(t *testing.T) {
	catalog := DefaultCatalog()

	// A+ (4.00 pts, 3 cr) + B (3.33 pts, 4 cr) + PP (0 pts, 3 cr).
	sum := catalog.SummarizeSemester([]Attempt{
		{ModuleName: "Programming 1", Grade: "A+", Status: "Active", Credits: 3},
		{ModuleName: "Mathematics 1", Grade: "B", Status: "Active", Credits: 4},
		{ModuleName: "Communication Skills", Grade: "PP", Status: "Active", Credits: 3},
	})

	assert.InDelta(t, 4.00*3+3.33*4, sum.Points, 1e-9)
	assert.InDelta(t, 10, sum.CreditsForGPA, 1e-9)
	assert.InDelta(t, 10, sum.CreditsAttempted, 1e-9)
	assert.InDelta(t, 2.532, sum.GPA, 1e-9)
	// PP is not a pass, so only A+ and B complete credits.
	assert.InDelta(t, 7, sum.CreditsCompleted, 1e-9)
	assert.False(t, sum.HasNoMarks)
}

func TestSummarizeSemesterEmptyInput(t *testing.T) {
	catalog := DefaultCatalog()

	sum := catalog.SummarizeSemester(nil)
	assert.Zero(t, sum.GPA)
	assert.Zero(t, sum.CreditsAttempted)
	assert.Zero(t, sum.CreditsCompleted)
	assert.Zero(t, sum.Points)
}

func TestSummarizeSemesterExcludesDeletedAndDropped(t *testing.T) {
	catalog := DefaultCatalog()

	sum := catalog.SummarizeSemester([]Attempt{
		{Grade: "A", Status: "Delete", Credits: 3},
		{Grade: "A", Status: "drop", Credits: 3},
		{Grade: "C", Status: "Active", Credits: 3},
	})

	assert.InDelta(t, 3, sum.CreditsAttempted, 1e-9)
	assert.InDelta(t, 2.33, sum.GPA, 1e-9)
}

func TestSummarizeSemesterSkipsBadGradesWithoutAborting(t *testing.T) {
	catalog := DefaultCatalog()

	sum := catalog.SummarizeSemester([]Attempt{
		{Grade: "??", Status: "Active", Credits: 3},
		{Grade: "", Status: "Active", Credits: 3},
		{Grade: "B", Status: "Active", Credits: 4},
	})

	// The two unparseable attempts vanish; the semester still computes.
	assert.InDelta(t, 4, sum.CreditsAttempted, 1e-9)
	assert.InDelta(t, 3.33, sum.GPA, 1e-9)
}

func TestSummarizeSemesterNoMarksFlag(t *testing.T) {
	catalog := DefaultCatalog()

	sum := catalog.SummarizeSemester([]Attempt{
		{Grade: "NM", Status: "Active", Credits: 3},
		{Grade: "A", Status: "Active", Credits: 3},
	})

	assert.True(t, sum.HasNoMarks)
	// NM counts as attempted but stays out of the GPA denominator.
	assert.InDelta(t, 6, sum.CreditsAttempted, 1e-9)
	assert.InDelta(t, 3, sum.CreditsForGPA, 1e-9)
	assert.InDelta(t, 3.67, sum.GPA, 1e-9)
}

func TestSummarizeSemesterAdministrativeGrades(t *testing.T) {
	catalog := DefaultCatalog()

	// EXP contributes credits but no points, so it dilutes the GPA.
	sum := catalog.SummarizeSemester([]Attempt{
		{Grade: "EXP", Status: "Active", Credits: 3},
		{Grade: "A+", Status: "Active", Credits: 3},
	})

	assert.InDelta(t, 6, sum.CreditsAttempted, 1e-9)
	assert.InDelta(t, 6, sum.CreditsForGPA, 1e-9)
	assert.InDelta(t, 12, sum.Points, 1e-9)
	assert.InDelta(t, 2.0, sum.GPA, 1e-9)
	assert.InDelta(t, 3, sum.CreditsCompleted, 1e-9)
}

func TestExcludedSemesterStatuses(t *testing.T) {
	for _, status := range []string{"Deleted", "deferred", "Dropped Out", "dropped-out", "Withdrawn"} {
		assert.True(t, ExcludedSemester(status), "%q should be excluded", status)
	}
	for _, status := range []string{"Active", "Repeat", ""} {
		assert.False(t, ExcludedSemester(status), "%q should be counted", status)
	}
}
