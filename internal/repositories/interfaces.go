package repositories

import (
	"context"
	"time"

	"github.com/campusops/registry-service/internal/models"
)

// ===== SHARED FILTER STRUCTS =====

type StudentFilters struct {
	ProgramID *uint                 `json:"program_id"`
	Status    *models.ProgramStatus `json:"status"`
	Search    string                `json:"search"` // student number or name fragment
	Limit     int                   `json:"limit"`
	Offset    int                   `json:"offset"`
	SortBy    string                `json:"sort_by"`    // "created_at", "student_no", "name"
	SortOrder string                `json:"sort_order"` // "asc", "desc"
}

type ClearanceFilters struct {
	Status   *models.ClearanceStatus `json:"status"`
	DateFrom *time.Time              `json:"date_from"`
	DateTo   *time.Time              `json:"date_to"`
	Limit    int                     `json:"limit"`
	Offset   int                     `json:"offset"`
}

// ===== REPOSITORY INTERFACES =====

type StudentRepository interface {
	Create(ctx context.Context, student *models.Student) error
	Update(ctx context.Context, student *models.Student) error
	GetByID(ctx context.Context, id uint) (*models.Student, error)
	GetByStudentNo(ctx context.Context, studentNo string) (*models.Student, error)
	// GetAcademicRecord loads the student with programs, semesters and
	// attempts preloaded, in chronological semester order.
	GetAcademicRecord(ctx context.Context, studentNo string) (*models.Student, error)
	List(ctx context.Context, filters StudentFilters) ([]*models.Student, int64, error)
	// UpsertRecord replaces the student's mirrored academic record in one
	// transaction: header, enrollments, semesters and attempts.
	UpsertRecord(ctx context.Context, student *models.Student) error
}

type CurriculumRepository interface {
	GetProgramByCode(ctx context.Context, code string) (*models.Program, error)
	GetStructure(ctx context.Context, id uint) (*models.ProgramStructure, error)
	GetStructureByCode(ctx context.Context, code string) (*models.ProgramStructure, error)
	// VisibleRequirements returns the structure's non-hidden required
	// modules with their module rows preloaded, ordered by semester number.
	VisibleRequirements(ctx context.Context, structureID uint) ([]*models.StructureModule, error)
	UpsertProgram(ctx context.Context, program *models.Program) error
	UpsertModule(ctx context.Context, module *models.Module) error
	UpsertStructure(ctx context.Context, structure *models.ProgramStructure) error
}

type ClearanceRepository interface {
	Create(ctx context.Context, request *models.ClearanceRequest) error
	GetLatestByStudent(ctx context.Context, studentID uint) (*models.ClearanceRequest, error)
	List(ctx context.Context, filters ClearanceFilters) ([]*models.ClearanceRequest, int64, error)
}

type SyncJobRepository interface {
	Create(ctx context.Context, job *models.SyncJob) error
	Update(ctx context.Context, job *models.SyncJob) error
	GetByID(ctx context.Context, id uint) (*models.SyncJob, error)
}

// Repository aggregates the per-aggregate repositories behind one handle.
type Repository interface {
	Students() StudentRepository
	Curriculum() CurriculumRepository
	Clearance() ClearanceRepository
	SyncJobs() SyncJobRepository
}
