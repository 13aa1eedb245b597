package academics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalogMarkRangesDoNotOverlap(t *testing.T) {
	catalog := DefaultCatalog()

	for mark := 0; mark <= 100; mark++ {
		var matches []string
		for _, def := range catalog.Definitions() {
			if def.MarkRange != nil && def.MarkRange.Contains(mark) {
				matches = append(matches, def.Symbol)
			}
		}
		assert.LessOrEqual(t, len(matches), 1, "mark %d matched %v", mark, matches)
	}
}

func TestGradeFromMarksCoversWholeScale(t *testing.T) {
	catalog := DefaultCatalog()

	for mark := 0; mark <= 100; mark++ {
		sym, ok := catalog.GradeFromMarks(float64(mark))
		require.True(t, ok, "mark %d has no grade band", mark)

		def, found := catalog.Definition(sym)
		require.True(t, found)
		require.NotNil(t, def.MarkRange)
		assert.True(t, def.MarkRange.Contains(mark), "mark %d mapped to %s outside its band", mark, sym)
	}
}

func TestGradeFromMarksTruncatesFractions(t *testing.T) {
	catalog := DefaultCatalog()

	sym, ok := catalog.GradeFromMarks(89.9)
	require.True(t, ok)
	assert.Equal(t, "A", sym)

	sym, ok = catalog.GradeFromMarks(39.99)
	require.True(t, ok)
	assert.Equal(t, "F", sym)
}

func TestNoGradeIsBothPassingAndFailing(t *testing.T) {
	catalog := DefaultCatalog()

	for _, def := range catalog.Definitions() {
		if catalog.IsPassing(def.Symbol) {
			assert.False(t, catalog.IsFailing(def.Symbol),
				"grade %s is both passing and failing", def.Symbol)
		}
	}
}

func TestNewCatalogRejectsOverlappingRanges(t *testing.T) {
	_, err := NewCatalog([]GradeDefinition{
		{Symbol: "A", Points: pts(4), Category: CategoryDistinction, MarkRange: rng(80, 100)},
		{Symbol: "B", Points: pts(3), Category: CategoryMerit, MarkRange: rng(70, 80)},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "overlapping")
}

func TestNewCatalogRejectsDuplicateSymbols(t *testing.T) {
	_, err := NewCatalog([]GradeDefinition{
		{Symbol: "A", Points: pts(4), Category: CategoryDistinction},
		{Symbol: " a ", Points: pts(4), Category: CategoryDistinction},
	})
	require.Error(t, err)
}

func TestAdministrativeGradesCarryNoPoints(t *testing.T) {
	catalog := DefaultCatalog()

	for _, sym := range []string{"EXP", "DEF", "NM"} {
		assert.True(t, catalog.HasNoPoints(sym), "%s should carry no points", sym)
		_, ok := catalog.Points(sym)
		assert.False(t, ok)
		assert.False(t, catalog.IsPassing(sym))
	}

	// PP carries a defined zero, which is not the same as no points.
	assert.False(t, catalog.HasNoPoints("PP"))
	assert.True(t, catalog.IsSupplementary("PP"))
	assert.False(t, catalog.IsPassing("PP"))
}
