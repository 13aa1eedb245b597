package events

import (
	"time"

	"github.com/google/uuid"
)

type ClearanceEventType string

const (
	ClearanceApproved ClearanceEventType = "clearance.approved"
	ClearancePending  ClearanceEventType = "clearance.pending"
)

// ClearanceEvent is the message published whenever a graduation-clearance
// decision is made, so downstream consumers (student portal, faculty
// dashboards) see decisions without polling the registry database.
type ClearanceEvent struct {
	ID          string             `json:"id"`
	Type        ClearanceEventType `json:"type"`
	StudentNo   string             `json:"student_no"`
	ProgramCode string             `json:"program_code"`
	Status      string             `json:"status"`
	Reason      string             `json:"reason,omitempty"`
	Source      string             `json:"source"`
	Version     string             `json:"version"`
	Timestamp   time.Time          `json:"timestamp"`
}

// NewClearanceEvent builds a clearance event with identity and envelope
// fields filled in.
func NewClearanceEvent(studentNo, programCode, status, reason string) *ClearanceEvent {
	eventType := ClearancePending
	if status == "Approved" {
		eventType = ClearanceApproved
	}

	return &ClearanceEvent{
		ID:          uuid.New().String(),
		Type:        eventType,
		StudentNo:   studentNo,
		ProgramCode: programCode,
		Status:      status,
		Reason:      reason,
		Source:      "registry-service",
		Version:     "1.0",
		Timestamp:   time.Now().UTC(),
	}
}
