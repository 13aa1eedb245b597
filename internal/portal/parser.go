package portal

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Raw records scraped from the portal. Grade and status strings are kept
// verbatim; interpretation belongs to the calculation engine. The validate
// tags are enforced at the data-store boundary before anything is mirrored.

type StudentRecord struct {
	StudentNo string `json:"student_no" validate:"required,student_no"`
	Name      string `json:"name" validate:"required"`
	Email     string `json:"email" validate:"omitempty,email"`
	Phone     string `json:"phone"`

	Programs []ProgramRecord `json:"programs" validate:"dive"`
}

type ProgramRecord struct {
	ProgramCode   string `json:"program_code" validate:"required"`
	ProgramName   string `json:"program_name" validate:"required"`
	StructureCode string `json:"structure_code"`
	Status        string `json:"status" validate:"required"`

	Semesters []SemesterRecord `json:"semesters" validate:"dive"`
}

type SemesterRecord struct {
	TermCode       string `json:"term_code" validate:"omitempty,term_code"`
	SemesterNumber int    `json:"semester_number" validate:"min=1,max=12"`
	Status         string `json:"status"`

	Attempts []AttemptRecord `json:"attempts" validate:"dive"`
}

type AttemptRecord struct {
	ModuleCode string   `json:"module_code"`
	ModuleName string   `json:"module_name" validate:"required"`
	Credits    float64  `json:"credits" validate:"min=0"`
	Marks      *float64 `json:"marks" validate:"omitempty,min=0,max=100"`
	Grade      string   `json:"grade"`
	Status     string   `json:"status"`
}

type StructureRecord struct {
	StructureCode string              `json:"structure_code" validate:"required"`
	ProgramCode   string              `json:"program_code" validate:"required"`
	Requirements  []RequirementRecord `json:"requirements" validate:"dive"`
}

type RequirementRecord struct {
	ModuleCode     string  `json:"module_code" validate:"required"`
	ModuleName     string  `json:"module_name" validate:"required"`
	Credits        float64 `json:"credits" validate:"min=0"`
	SemesterNumber int     `json:"semester_number" validate:"min=1,max=12"`
	Hidden         bool    `json:"hidden"`
}

/// ParseStudentDocument walks the academic-record page: a profile block
// followed by one section per enrollment, each holding one results table
// per semester.
func ParseStudentDocument(doc *goquery.Document) (*StudentRecord, error) {
	record := &StudentRecord{
		StudentNo: text(doc.Find("#student-profile .student-no")),
		Name:      text(doc.Find("#student-profile .student-name")),
		Email:     text(doc.Find("#student-profile .student-email")),
		Phone:     text(doc.Find("#student-profile .student-phone")),
	}

	var parseErr error
	doc.Find("div.program").Each(func(_ int, section *goquery.Selection) {
		program := ProgramRecord{
			ProgramCode:   section.AttrOr("data-code", ""),
			ProgramName:   section.AttrOr("data-name", ""),
			StructureCode: section.AttrOr("data-structure", ""),
			Status:        section.AttrOr("data-status", ""),
		}

		section.Find("div.semester").Each(func(_ int, block *goquery.Selection) {
			semester := SemesterRecord{
				TermCode: block.AttrOr("data-term", ""),
				Status:   block.AttrOr("data-status", ""),
			}
			if n, err := strconv.Atoi(block.AttrOr("data-number", "")); err == nil {
				semester.SemesterNumber = n
			}

			block.Find("table.results tr").Each(func(i int, row *goquery.Selection) {
				cells := row.Find("td")
				if cells.Length() < 6 {
					return // header row
				}
				attempt, err := parseAttemptRow(cells)
				if err != nil {
					parseErr = fmt.Errorf("semester %s: %w", semester.TermCode, err)
					return
				}
				semester.Attempts = append(semester.Attempts, attempt)
			})

			program.Semesters = append(program.Semesters, semester)
		})

		record.Programs = append(record.Programs, program)
	})

	return record, parseErr
}

func parseAttemptRow(cells *goquery.Selection) (AttemptRecord, error) {
	attempt := AttemptRecord{
		ModuleCode: text(cells.Eq(0)),
		ModuleName: text(cells.Eq(1)),
		Grade:      text(cells.Eq(4)),
		Status:     text(cells.Eq(5)),
	}

	creditsRaw := text(cells.Eq(2))
	if creditsRaw != "" {
		credits, err := strconv.ParseFloat(creditsRaw, 64)
		if err != nil {
			return attempt, fmt.Errorf("module %s: bad credits %q", attempt.ModuleCode, creditsRaw)
		}
		attempt.Credits = credits
	}

	// Marks are frequently blank or dashed out while grading is underway.
	marksRaw := text(cells.Eq(3))
	if marksRaw != "" && marksRaw != "-" {
		if marks, err := strconv.ParseFloat(marksRaw, 64); err == nil {
			attempt.Marks = &marks
		}
	}

	return attempt, nil
}

// ParseStructureDocument walks a program-structure page: one requirements
// table with a row per required module.
func ParseStructureDocument(doc *goquery.Document) (*StructureRecord, error) {
	record := &StructureRecord{
		StructureCode: doc.Find("#structure").AttrOr("data-code", ""),
		ProgramCode:   doc.Find("#structure").AttrOr("data-program", ""),
	}
	if record.StructureCode == "" {
		return nil, fmt.Errorf("structure block not found on page")
	}

	var parseErr error
	doc.Find("table.requirements tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td")
		if cells.Length() < 4 {
			return
		}

		req := RequirementRecord{
			ModuleCode: text(cells.Eq(0)),
			ModuleName: text(cells.Eq(1)),
			Hidden:     strings.EqualFold(row.AttrOr("data-hidden", ""), "true"),
		}
		if credits, err := strconv.ParseFloat(text(cells.Eq(2)), 64); err == nil {
			req.Credits = credits
		}
		if n, err := strconv.Atoi(text(cells.Eq(3))); err == nil {
			req.SemesterNumber = n
		} else {
			parseErr = fmt.Errorf("module %s: bad semester number %q", req.ModuleCode, text(cells.Eq(3)))
			return
		}

		record.Requirements = append(record.Requirements, req)
	})

	return record, parseErr
}

func text(sel *goquery.Selection) string {
	return strings.TrimSpace(sel.Text())
}
