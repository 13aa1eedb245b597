package academics

import "strings"

// romanTokens maps the roman-numeral words that appear in module titles to
// digits, so "Media Studies II" and "Media Studies 2" canonicalize the same.
var romanTokens = map[string]string{
	"i": "1", "ii": "2", "iii": "3", "iv": "4", "v": "5",
	"vi": "6", "vii": "7", "viii": "8", "ix": "9", "x": "10",
}

// NormalizeModuleName canonicalizes a module title for comparison across
// curriculum revisions: lower-case, trimmed, "&" spelled out, roman-numeral
// suffix words converted to digits, whitespace collapsed. Curricula rename
// modules over the years and carry no stable module identifier, so this key
// is what ties a requirement to a student's attempt history.
func NormalizeModuleName(name string) string {
	lowered := strings.ToLower(strings.TrimSpace(name))
	lowered = strings.ReplaceAll(lowered, "&", " and ")

	fields := strings.Fields(lowered)
	for i, f := range fields {
		if digit, ok := romanTokens[f]; ok {
			fields[i] = digit
		}
	}
	return strings.Join(fields, " ")
}

// Requirement is one expected module of a program structure.
type Requirement struct {
	Name           string
	Code           string
	SemesterNumber int
	Credits        float64
	Hidden         bool
}

// OutstandingResult lists the requirements that block graduation clearance.
// A requirement with at least one passing attempt, or two or more failing
// attempts, is treated as satisfied and appears in neither list.
type OutstandingResult struct {
	FailedNeverRepeated []Requirement
	NeverAttempted      []Requirement
}

// Clear reports whether nothing is outstanding.
func (r OutstandingResult) Clear() bool {
	return len(r.FailedNeverRepeated) == 0 && len(r.NeverAttempted) == 0
}

// ResolveOutstanding compares a program structure's visible requirements
// against the student's attempt history. An attempt matches a requirement
// through the normalized module name. Hidden requirements and deleted or
// dropped attempts never count.
//
// A requirement is never-attempted when no counted attempt exists under its
// name, and failed-never-repeated when exactly one counted attempt exists
// and that attempt did not pass. A module failed twice is deliberately not
// flagged: only the single-failure case is reported.
func (c *Catalog) ResolveOutstanding(requirements []Requirement, attempts []Attempt) OutstandingResult {
	byName := make(map[string][]Attempt)
	for _, a := range attempts {
		if ExcludedAttempt(a.Status) {
			continue
		}
		key := NormalizeModuleName(a.ModuleName)
		byName[key] = append(byName[key], a)
	}

	var result OutstandingResult
	for _, req := range requirements {
		if req.Hidden {
			continue
		}

		matched := byName[NormalizeModuleName(req.Name)]
		if len(matched) == 0 {
			result.NeverAttempted = append(result.NeverAttempted, req)
			continue
		}
		if len(matched) == 1 && !c.attemptPassed(matched[0]) {
			result.FailedNeverRepeated = append(result.FailedNeverRepeated, req)
		}
	}

	return result
}

func (c *Catalog) attemptPassed(a Attempt) bool {
	sym, err := c.Normalize(a.Grade)
	if err != nil {
		return false
	}
	return c.IsPassing(sym)
}
