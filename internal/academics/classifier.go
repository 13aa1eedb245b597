package academics

import (
	"math"
	"strings"
)

// failingSymbols is the fixed set of failing grades. Failing status is an
// explicit enumeration, not derived from points == 0: some failing grades
// carry zero points but so do non-failing codes like PP.
var failingSymbols = map[string]struct{}{
	"F": {}, "X": {}, "GNS": {}, "ANN": {}, "FIN": {},
	"FX": {}, "DNC": {}, "DNA": {}, "DNS": {},
}

// Normalize trims and upper-cases a raw grade string and verifies it against
// the catalog. Unknown symbols come back as *InvalidGradeError.
func (c *Catalog) Normalize(raw string) (string, error) {
	sym := strings.ToUpper(strings.TrimSpace(raw))
	if _, ok := c.defs[sym]; !ok {
		return "", &InvalidGradeError{Raw: raw}
	}
	return sym, nil
}

// GradeFromMarks truncates marks to an integer and returns the grade whose
// mark range contains it. Ranges are checked in descending order of their
// lower bound so the highest applicable band wins. The second return is
// false when the mark falls in a gap between bands.
func (c *Catalog) GradeFromMarks(marks float64) (string, bool) {
	mark := int(marks)
	for _, def := range c.byMarks {
		if def.MarkRange.Contains(mark) {
			return def.Symbol, true
		}
	}
	return "", false
}

// Points returns the grade-point weight of a normalized symbol. The second
// return is false for administrative grades, which carry no weight at all.
func (c *Catalog) Points(symbol string) (float64, bool) {
	def, ok := c.defs[symbol]
	if !ok || def.Points == nil {
		return 0, false
	}
	return *def.Points, true
}

// IsPassing reports whether a normalized symbol counts as a pass: it must
// carry a defined, strictly positive point value.
func (c *Catalog) IsPassing(symbol string) bool {
	def, ok := c.defs[symbol]
	return ok && def.Points != nil && *def.Points > 0
}

// IsFailing reports whether a normalized symbol is in the fixed failing set.
func (c *Catalog) IsFailing(symbol string) bool {
	_, ok := failingSymbols[symbol]
	return ok
}

// IsSupplementary reports whether the symbol grants a supplementary sitting.
func (c *Catalog) IsSupplementary(symbol string) bool {
	return symbol == "PP"
}

// HasNoPoints reports whether the symbol is administrative: present in the
// catalog but excluded from GPA arithmetic entirely.
func (c *Catalog) HasNoPoints(symbol string) bool {
	def, ok := c.defs[symbol]
	return ok && def.Points == nil
}

// RoundCGPA rounds a CGPA to the two decimal places students see on their
// transcript. Classification happens on the rounded value so the printed
// number and the awarded class never disagree.
func RoundCGPA(v float64) float64 {
	return math.Round(v*100) / 100
}
