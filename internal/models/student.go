package models

import (
	"time"

	"gorm.io/gorm"
)

// Status strings mirror the legacy portal verbatim; comparisons elsewhere
// are case-insensitive because the portal is not consistent about casing.

type ProgramStatus string

const (
	ProgramActive    ProgramStatus = "Active"
	ProgramCompleted ProgramStatus = "Completed"
	ProgramChanged   ProgramStatus = "Changed"
	ProgramDeleted   ProgramStatus = "Deleted"
	ProgramInactive  ProgramStatus = "Inactive"
)

type SemesterStatus string

const (
	SemesterActive     SemesterStatus = "Active"
	SemesterRepeat     SemesterStatus = "Repeat"
	SemesterDeleted    SemesterStatus = "Deleted"
	SemesterDeferred   SemesterStatus = "Deferred"
	SemesterDroppedOut SemesterStatus = "Dropped Out"
	SemesterWithdrawn  SemesterStatus = "Withdrawn"
)

type AttemptStatus string

const (
	AttemptActive AttemptStatus = "Active"
	AttemptRepeat AttemptStatus = "Repeat"
	AttemptDelete AttemptStatus = "Delete"
	AttemptDrop   AttemptStatus = "Drop"
)

// Student is one registry record mirrored from the portal.
type Student struct {
	ID        uint   `json:"id" gorm:"primaryKey"`
	StudentNo string `json:"student_no" gorm:"uniqueIndex;size:20;not null" validate:"required"`
	Name      string `json:"name" gorm:"size:200;not null" validate:"required,max=200"`
	Email     string `json:"email" gorm:"size:200" validate:"omitempty,email"`
	Phone     string `json:"phone" gorm:"size:50"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	// Relations
	Programs []StudentProgram `json:"programs" gorm:"foreignKey:StudentID"`
}

// StudentProgram is one enrollment of a student in one curriculum structure.
// A student may carry several; at most one is active at a time.
type StudentProgram struct {
	ID          uint          `json:"id" gorm:"primaryKey"`
	StudentID   uint          `json:"student_id" gorm:"not null;index"`
	ProgramID   uint          `json:"program_id" gorm:"not null;index"`
	StructureID uint          `json:"structure_id" gorm:"not null;index"`
	Status      ProgramStatus `json:"status" gorm:"size:20;not null;index"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations. Semesters compose into the enrollment: they cannot
	// outlive it.
	Program   Program           `json:"program" gorm:"foreignKey:ProgramID"`
	Structure ProgramStructure  `json:"structure" gorm:"foreignKey:StructureID"`
	Semesters []StudentSemester `json:"semesters" gorm:"foreignKey:StudentProgramID;constraint:OnDelete:CASCADE"`
}

// StudentSemester is one academic term inside an enrollment. The insertion
// id doubles as the chronological ordering key for the CGPA fold.
type StudentSemester struct {
	ID               uint           `json:"id" gorm:"primaryKey"`
	StudentProgramID uint           `json:"student_program_id" gorm:"not null;index"`
	TermCode         string         `json:"term_code" gorm:"size:20"`
	SemesterNumber   int            `json:"semester_number" gorm:"not null" validate:"min=1,max=12"`
	Status           SemesterStatus `json:"status" gorm:"size:20;not null"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Attempts []StudentModule `json:"attempts" gorm:"foreignKey:StudentSemesterID;constraint:OnDelete:CASCADE"`
}

// StudentModule is one recorded module attempt. The grade symbol is stored
// raw exactly as scraped; normalization happens in the calculation engine.
// Credits hold the value the module carried at attempt time, which may
// differ from the current catalog entry.
type StudentModule struct {
	ID                uint          `json:"id" gorm:"primaryKey"`
	StudentSemesterID uint          `json:"student_semester_id" gorm:"not null;index"`
	ModuleID          *uint         `json:"module_id" gorm:"index"`
	Name              string        `json:"name" gorm:"size:200;not null" validate:"required"`
	Code              string        `json:"code" gorm:"size:30"`
	GradeSymbol       string        `json:"grade_symbol" gorm:"size:10"`
	Marks             *float64      `json:"marks" validate:"omitempty,min=0,max=100"`
	Status            AttemptStatus `json:"status" gorm:"size:20;not null"`
	Credits           float64       `json:"credits" gorm:"not null" validate:"min=0"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Student) TableName() string         { return "students" }
func (StudentProgram) TableName() string  { return "student_programs" }
func (StudentSemester) TableName() string { return "student_semesters" }
func (StudentModule) TableName() string   { return "student_modules" }
