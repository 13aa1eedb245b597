package models

import (
	"time"

	"gorm.io/datatypes"
)

type SyncJobStatus string

const (
	SyncRunning   SyncJobStatus = "Running"
	SyncCompleted SyncJobStatus = "Completed"
	SyncFailed    SyncJobStatus = "Failed"
)

// SyncJob records one mirror run against the portal, with per-student
// counters and the raw scraped payload kept for replay and debugging.
type SyncJob struct {
	ID     uint          `json:"id" gorm:"primaryKey"`
	Kind   string        `json:"kind" gorm:"size:30;not null"` // full, students, curriculum
	Status SyncJobStatus `json:"status" gorm:"size:20;not null;index"`

	TotalStudents  int `json:"total_students"`
	SyncedStudents int `json:"synced_students"`
	FailedStudents int `json:"failed_students"`

	Payload datatypes.JSON `json:"payload" gorm:"type:jsonb"`
	Error   string         `json:"error" gorm:"type:text"`

	StartedAt  time.Time  `json:"started_at"`
	FinishedAt *time.Time `json:"finished_at"`
	CreatedAt  time.Time  `json:"created_at"`
}

func (SyncJob) TableName() string { return "sync_jobs" }
