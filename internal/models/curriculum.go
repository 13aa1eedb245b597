package models

import "time"

// Program is one degree program offered by the institution.
type Program struct {
	ID    uint   `json:"id" gorm:"primaryKey"`
	Code  string `json:"code" gorm:"uniqueIndex;size:30;not null" validate:"required"`
	Name  string `json:"name" gorm:"size:200;not null" validate:"required"`
	Level string `json:"level" gorm:"size:50"` // certificate, diploma, degree

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ProgramStructure is one curriculum revision of a program. Students are
// pinned to the structure that was current when they enrolled.
type ProgramStructure struct {
	ID        uint   `json:"id" gorm:"primaryKey"`
	ProgramID uint   `json:"program_id" gorm:"not null;index"`
	Code      string `json:"code" gorm:"size:30;not null"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Program Program           `json:"program" gorm:"foreignKey:ProgramID"`
	Modules []StructureModule `json:"modules" gorm:"foreignKey:StructureID"`
}

// Module is one catalog module. Credits here are the current curriculum
// value; attempts snapshot their own.
type Module struct {
	ID      uint    `json:"id" gorm:"primaryKey"`
	Code    string  `json:"code" gorm:"uniqueIndex;size:30;not null" validate:"required"`
	Name    string  `json:"name" gorm:"size:200;not null" validate:"required"`
	Credits float64 `json:"credits" gorm:"not null" validate:"min=0"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// StructureModule is one required-module row of a structure. Hidden rows are
// retired requirements kept for history; they never count toward the
// outstanding-modules determination.
type StructureModule struct {
	ID             uint `json:"id" gorm:"primaryKey"`
	StructureID    uint `json:"structure_id" gorm:"not null;index"`
	ModuleID       uint `json:"module_id" gorm:"not null;index"`
	SemesterNumber int  `json:"semester_number" gorm:"not null" validate:"min=1,max=12"`
	Hidden         bool `json:"hidden" gorm:"default:false;index"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Module Module `json:"module" gorm:"foreignKey:ModuleID"`
}

func (Program) TableName() string          { return "programs" }
func (ProgramStructure) TableName() string { return "program_structures" }
func (Module) TableName() string           { return "modules" }
func (StructureModule) TableName() string  { return "structure_modules" }
