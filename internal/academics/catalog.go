package academics

import (
	"fmt"
	"sort"
	"strings"
)

// GradeCategory buckets grade symbols by the academic meaning the registry
// attaches to them.
type GradeCategory string

const (
	CategoryDistinction     GradeCategory = "distinction"
	CategoryMerit           GradeCategory = "merit"
	CategoryPass            GradeCategory = "pass"
	CategoryPassProvisional GradeCategory = "pass-provisional"
	CategoryFail            GradeCategory = "fail"
	CategoryAdministrative  GradeCategory = "administrative"
)

// MarkRange is a closed integer interval of numeric marks that maps to a
// grade symbol. Only grades derivable from a numeric score carry one.
type MarkRange struct {
	Min int
	Max int
}

// Contains reports whether the (truncated) mark falls inside the range.
func (r MarkRange) Contains(mark int) bool {
	return mark >= r.Min && mark <= r.Max
}

// GradeDefinition is one immutable entry of the grade catalog.
// Points is nil for administrative grades (exempted, deferred, no-mark) that
// must never enter a GPA average.
type GradeDefinition struct {
	Symbol    string
	Points    *float64
	Category  GradeCategory
	MarkRange *MarkRange
}

// Catalog is the process-wide grade registry. It is constructed once at
// startup, never mutated afterwards, and safe for concurrent readers.
type Catalog struct {
	defs    map[string]GradeDefinition
	byMarks []GradeDefinition // entries with a mark range, descending by Min
}

// NewCatalog builds a catalog from definitions and rejects overlapping mark
// ranges, so lookup-by-marks always selects at most one grade.
func NewCatalog(defs []GradeDefinition) (*Catalog, error) {
	c := &Catalog{defs: make(map[string]GradeDefinition, len(defs))}

	for _, def := range defs {
		sym := strings.ToUpper(strings.TrimSpace(def.Symbol))
		if sym == "" {
			return nil, fmt.Errorf("grade definition with empty symbol")
		}
		if _, exists := c.defs[sym]; exists {
			return nil, fmt.Errorf("duplicate grade symbol %q", sym)
		}
		if def.Points != nil && *def.Points < 0 {
			return nil, fmt.Errorf("grade %q has negative points", sym)
		}
		def.Symbol = sym
		c.defs[sym] = def
		if def.MarkRange != nil {
			if def.MarkRange.Min > def.MarkRange.Max {
				return nil, fmt.Errorf("grade %q has inverted mark range", sym)
			}
			c.byMarks = append(c.byMarks, def)
		}
	}

	sort.Slice(c.byMarks, func(i, j int) bool {
		return c.byMarks[i].MarkRange.Min > c.byMarks[j].MarkRange.Min
	})

	for i := 1; i < len(c.byMarks); i++ {
		upper := c.byMarks[i-1].MarkRange
		lower := c.byMarks[i].MarkRange
		if lower.Max >= upper.Min {
			return nil, fmt.Errorf("grades %q and %q have overlapping mark ranges",
				c.byMarks[i].Symbol, c.byMarks[i-1].Symbol)
		}
	}

	return c, nil
}

// Definition returns the catalog entry for an already-normalized symbol.
func (c *Catalog) Definition(symbol string) (GradeDefinition, bool) {
	def, ok := c.defs[symbol]
	return def, ok
}

// Definitions returns every catalog entry in no particular order.
func (c *Catalog) Definitions() []GradeDefinition {
	out := make([]GradeDefinition, 0, len(c.defs))
	for _, def := range c.defs {
		out = append(out, def)
	}
	return out
}

func pts(v float64) *float64 { return &v }

func rng(min, max int) *MarkRange { return &MarkRange{Min: min, Max: max} }

// DefaultCatalog returns the registry grade table. Mark bands are contiguous
// and non-overlapping; administrative codes carry no points and no band.
func DefaultCatalog() *Catalog {
	c, err := NewCatalog([]GradeDefinition{
		{Symbol: "A+", Points: pts(4.00), Category: CategoryDistinction, MarkRange: rng(90, 100)},
		{Symbol: "A", Points: pts(3.67), Category: CategoryDistinction, MarkRange: rng(80, 89)},
		{Symbol: "B+", Points: pts(3.50), Category: CategoryMerit, MarkRange: rng(75, 79)},
		{Symbol: "B", Points: pts(3.33), Category: CategoryMerit, MarkRange: rng(70, 74)},
		{Symbol: "B-", Points: pts(3.00), Category: CategoryMerit, MarkRange: rng(65, 69)},
		{Symbol: "C+", Points: pts(2.67), Category: CategoryPass, MarkRange: rng(60, 64)},
		{Symbol: "C", Points: pts(2.33), Category: CategoryPass, MarkRange: rng(55, 59)},
		{Symbol: "C-", Points: pts(2.00), Category: CategoryPass, MarkRange: rng(50, 54)},
		{Symbol: "D+", Points: pts(1.67), Category: CategoryPass, MarkRange: rng(45, 49)},
		{Symbol: "D", Points: pts(1.33), Category: CategoryPass, MarkRange: rng(40, 44)},
		{Symbol: "PP", Points: pts(0), Category: CategoryPassProvisional},
		{Symbol: "F", Points: pts(0), Category: CategoryFail, MarkRange: rng(0, 39)},
		{Symbol: "X", Points: pts(0), Category: CategoryFail},
		{Symbol: "GNS", Points: pts(0), Category: CategoryFail},
		{Symbol: "ANN", Points: pts(0), Category: CategoryFail},
		{Symbol: "FIN", Points: pts(0), Category: CategoryFail},
		{Symbol: "FX", Points: pts(0), Category: CategoryFail},
		{Symbol: "DNC", Points: pts(0), Category: CategoryFail},
		{Symbol: "DNA", Points: pts(0), Category: CategoryFail},
		{Symbol: "DNS", Points: pts(0), Category: CategoryFail},
		{Symbol: "EXP", Category: CategoryAdministrative},
		{Symbol: "DEF", Category: CategoryAdministrative},
		{Symbol: "NM", Category: CategoryAdministrative},
	})
	if err != nil {
		// The table above is static; a construction failure is a programming error.
		panic(err)
	}
	return c
}
