package models

import "time"

type ClearanceStatus string

const (
	ClearanceApproved ClearanceStatus = "Approved"
	ClearancePending  ClearanceStatus = "Pending"
)

// ClearanceRequest is one evaluated graduation-clearance decision for a
// student enrollment. Pending requests carry the generated human-readable
// reason listing the outstanding modules.
type ClearanceRequest struct {
	ID               uint            `json:"id" gorm:"primaryKey"`
	StudentID        uint            `json:"student_id" gorm:"not null;index"`
	StudentProgramID uint            `json:"student_program_id" gorm:"not null;index"`
	Status           ClearanceStatus `json:"status" gorm:"size:20;not null;index"`
	Reason           string          `json:"reason" gorm:"type:text"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Student Student        `json:"student" gorm:"foreignKey:StudentID"`
	Program StudentProgram `json:"program" gorm:"foreignKey:StudentProgramID"`
}

func (ClearanceRequest) TableName() string { return "clearance_requests" }
