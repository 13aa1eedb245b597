package academics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func semesterFixture() []SemesterAttempts {
	return []SemesterAttempts{
		{
			SemesterID: 1,
			TermCode:   "2023-1",
			Attempts: []Attempt{
				{ModuleName: "Programming 1", Grade: "A+", Status: "Active", Credits: 3},
				{ModuleName: "Mathematics 1", Grade: "B", Status: "Active", Credits: 4},
			},
		},
		{
			SemesterID: 2,
			TermCode:   "2023-2",
			Attempts: []Attempt{
				{ModuleName: "Programming 2", Grade: "C", Status: "Active", Credits: 3},
				{ModuleName: "Mathematics 2", Grade: "F", Status: "Active", Credits: 4},
			},
		},
	}
}

func TestCalculateCGPARunningFold(t *testing.T) {
	catalog := DefaultCatalog()

	records, final := catalog.CalculateCGPA(semesterFixture())
	require.Len(t, records, 2)

	// Semester 1: (4.00*3 + 3.33*4) / 7
	assert.InDelta(t, 25.32/7, records[0].GPA, 1e-9)
	assert.InDelta(t, 25.32/7, records[0].CGPA, 1e-9)

	// Semester 2 alone: (2.33*3 + 0*4) / 7; cumulative over 14 credits.
	assert.InDelta(t, 6.99/7, records[1].GPA, 1e-9)
	assert.InDelta(t, (25.32+6.99)/14, records[1].CGPA, 1e-9)
	assert.InDelta(t, records[1].CGPA, final, 1e-9)
}

func TestCalculateCGPAIsDeterministic(t *testing.T) {
	catalog := DefaultCatalog()

	first, firstFinal := catalog.CalculateCGPA(semesterFixture())
	second, secondFinal := catalog.CalculateCGPA(semesterFixture())

	assert.Equal(t, first, second)
	assert.Equal(t, firstFinal, secondFinal)
}

func TestCalculateCGPANoSemesters(t *testing.T) {
	catalog := DefaultCatalog()

	records, final := catalog.CalculateCGPA(nil)
	assert.Empty(t, records)
	assert.Zero(t, final)
}

func TestClassifyThresholds(t *testing.T) {
	tests := []struct {
		name string
		cgpa float64
		want Classification
	}{
		{"exact distinction boundary", 3.50, ClassDistinction},
		{"rounds up into distinction", 3.4999, ClassDistinction},
		{"just below after rounding", 3.49, ClassMerit},
		{"exact merit boundary", 3.00, ClassMerit},
		{"pass band", 1.70, ClassPass},
		{"below pass", 1.69, ClassFailed},
		{"rounds down to failing floor", 0.004, ClassNoValidGrades},
		{"zero means no valid grades", 0, ClassNoValidGrades},
		{"top of scale", 4.0, ClassDistinction},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.cgpa))
		})
	}
}

func TestOnlyAdministrativeGradesYieldNoValidGrades(t *testing.T) {
	catalog := DefaultCatalog()

	_, final := catalog.CalculateCGPA([]SemesterAttempts{
		{SemesterID: 1, Attempts: []Attempt{
			{Grade: "EXP", Status: "Active", Credits: 3},
			{Grade: "NM", Status: "Active", Credits: 3},
		}},
		{SemesterID: 2, Attempts: []Attempt{
			{Grade: "NM", Status: "Active", Credits: 3},
		}},
	})

	assert.Zero(t, final)
	assert.Equal(t, ClassNoValidGrades, Classify(final))
}

func TestClassificationIsAward(t *testing.T) {
	assert.True(t, ClassDistinction.IsAward())
	assert.True(t, ClassFailed.IsAward())
	assert.False(t, ClassNoValidGrades.IsAward())
	assert.False(t, ClassNoSemesters.IsAward())
	assert.False(t, ClassNoProgram.IsAward())
}

func TestSelectProgram(t *testing.T) {
	base := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)

	t.Run("no enrollments at all", func(t *testing.T) {
		_, err := SelectProgram(nil)
		assert.ErrorIs(t, err, ErrNoPrograms)
	})

	t.Run("active wins over completed", func(t *testing.T) {
		p, err := SelectProgram([]ProgramSnapshot{
			{ID: 1, Status: "Completed", CreatedAt: base.AddDate(1, 0, 0)},
			{ID: 2, Status: "Active", CreatedAt: base},
		})
		require.NoError(t, err)
		assert.Equal(t, uint(2), p.ID)
	})

	t.Run("newest completed when no active", func(t *testing.T) {
		p, err := SelectProgram([]ProgramSnapshot{
			{ID: 1, Status: "Completed", CreatedAt: base},
			{ID: 2, Status: "Changed", CreatedAt: base.AddDate(2, 0, 0)},
			{ID: 3, Status: "completed", CreatedAt: base.AddDate(1, 0, 0)},
		})
		require.NoError(t, err)
		assert.Equal(t, uint(3), p.ID)
	})

	t.Run("nothing active or completed", func(t *testing.T) {
		_, err := SelectProgram([]ProgramSnapshot{
			{ID: 1, Status: "Changed", CreatedAt: base},
			{ID: 2, Status: "Deleted", CreatedAt: base},
		})
		assert.ErrorIs(t, err, ErrNoEligibleProgram)
	})
}

func TestCountedSemestersDropsExcludedStatuses(t *testing.T) {
	program := &ProgramSnapshot{
		Semesters: []SemesterSnapshot{
			{ID: 1, Status: "Active"},
			{ID: 2, Status: "Deferred"},
			{ID: 3, Status: "Repeat"},
			{ID: 4, Status: "Withdrawn"},
		},
	}

	counted := CountedSemesters(program)
	require.Len(t, counted, 2)
	assert.Equal(t, uint(1), counted[0].SemesterID)
	assert.Equal(t, uint(3), counted[1].SemesterID)
}
