package postgres

import (
	"context"

	"github.com/campusops/registry-service/internal/models"
	"github.com/campusops/registry-service/internal/repositories"
	"gorm.io/gorm"
)

type ClearancePostgreSQL struct {
	db *gorm.DB
}

func NewClearancePostgreSQL(db *gorm.DB) repositories.ClearanceRepository {
	return &ClearancePostgreSQL{db: db}
}

func (c *ClearancePostgreSQL) Create(ctx context.Context, request *models.ClearanceRequest) error {
	return c.db.WithContext(ctx).Create(request).Error
}

func (c *ClearancePostgreSQL) GetLatestByStudent(ctx context.Context, studentID uint) (*models.ClearanceRequest, error) {
	var request models.ClearanceRequest
	if err := c.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Order("created_at DESC").
		First(&request).Error; err != nil {
		return nil, err
	}
	return &request, nil
}

func (c *ClearancePostgreSQL) List(ctx context.Context, filters repositories.ClearanceFilters) ([]*models.ClearanceRequest, int64, error) {
	var requests []*models.ClearanceRequest
	var total int64

	query := c.db.WithContext(ctx).Model(&models.ClearanceRequest{})
	if filters.Status != nil {
		query = query.Where("status = ?", *filters.Status)
	}
	if filters.DateFrom != nil {
		query = query.Where("created_at >= ?", *filters.DateFrom)
	}
	if filters.DateTo != nil {
		query = query.Where("created_at <= ?", *filters.DateTo)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filters.Limit > 0 {
		query = query.Limit(filters.Limit)
	}
	if filters.Offset > 0 {
		query = query.Offset(filters.Offset)
	}

	if err := query.
		Preload("Student").
		Preload("Program.Program").
		Order("created_at DESC").
		Find(&requests).Error; err != nil {
		return nil, 0, err
	}

	return requests, total, nil
}
