package postgres

import (
	"github.com/campusops/registry-service/internal/repositories"
	"gorm.io/gorm"
)

type repository struct {
	students   repositories.StudentRepository
	curriculum repositories.CurriculumRepository
	clearance  repositories.ClearanceRepository
	syncJobs   repositories.SyncJobRepository
}

// NewRepository wires the gorm-backed repositories behind the aggregate
// handle the services depend on.
func NewRepository(db *gorm.DB) repositories.Repository {
	return &repository{
		students:   NewStudentPostgreSQL(db),
		curriculum: NewCurriculumPostgreSQL(db),
		clearance:  NewClearancePostgreSQL(db),
		syncJobs:   NewSyncJobPostgreSQL(db),
	}
}

func (r *repository) Students() repositories.StudentRepository      { return r.students }
func (r *repository) Curriculum() repositories.CurriculumRepository { return r.curriculum }
func (r *repository) Clearance() repositories.ClearanceRepository   { return r.clearance }
func (r *repository) SyncJobs() repositories.SyncJobRepository      { return r.syncJobs }
