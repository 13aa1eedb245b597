package postgres

import (
	"context"

	"github.com/campusops/registry-service/internal/models"
	"github.com/campusops/registry-service/internal/repositories"
	"gorm.io/gorm"
)

type SyncJobPostgreSQL struct {
	db *gorm.DB
}

func NewSyncJobPostgreSQL(db *gorm.DB) repositories.SyncJobRepository {
	return &SyncJobPostgreSQL{db: db}
}

func (s *SyncJobPostgreSQL) Create(ctx context.Context, job *models.SyncJob) error {
	return s.db.WithContext(ctx).Create(job).Error
}

func (s *SyncJobPostgreSQL) Update(ctx context.Context, job *models.SyncJob) error {
	return s.db.WithContext(ctx).Save(job).Error
}

func (s *SyncJobPostgreSQL) GetByID(ctx context.Context, id uint) (*models.SyncJob, error) {
	var job models.SyncJob
	if err := s.db.WithContext(ctx).First(&job, id).Error; err != nil {
		return nil, err
	}
	return &job, nil
}
