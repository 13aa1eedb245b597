package postgres

import (
	"context"
	"fmt"

	"github.com/campusops/registry-service/internal/models"
	"github.com/campusops/registry-service/internal/repositories"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type StudentPostgreSQL struct {
	db *gorm.DB
}

func NewStudentPostgreSQL(db *gorm.DB) repositories.StudentRepository {
	return &StudentPostgreSQL{db: db}
}

func (s *StudentPostgreSQL) Create(ctx context.Context, student *models.Student) error {
	return s.db.WithContext(ctx).Create(student).Error
}

func (s *StudentPostgreSQL) Update(ctx context.Context, student *models.Student) error {
	return s.db.WithContext(ctx).Save(student).Error
}

func (s *StudentPostgreSQL) GetByID(ctx context.Context, id uint) (*models.Student, error) {
	var student models.Student
	if err := s.db.WithContext(ctx).First(&student, id).Error; err != nil {
		return nil, err
	}
	return &student, nil
}

func (s *StudentPostgreSQL) GetByStudentNo(ctx context.Context, studentNo string) (*models.Student, error) {
	var student models.Student
	if err := s.db.WithContext(ctx).
		Where("student_no = ?", studentNo).
		First(&student).Error; err != nil {
		return nil, err
	}
	return &student, nil
}

func (s *StudentPostgreSQL) GetAcademicRecord(ctx context.Context, studentNo string) (*models.Student, error) {
	var student models.Student
	if err := s.db.WithContext(ctx).
		Where("student_no = ?", studentNo).
		Preload("Programs").
		Preload("Programs.Program").
		Preload("Programs.Semesters", func(db *gorm.DB) *gorm.DB {
			// the insertion id is the chronological ordering key
			return db.Order("student_semesters.id ASC")
		}).
		Preload("Programs.Semesters.Attempts").
		First(&student).Error; err != nil {
		return nil, err
	}
	return &student, nil
}

func (s *StudentPostgreSQL) List(ctx context.Context, filters repositories.StudentFilters) ([]*models.Student, int64, error) {
	var students []*models.Student
	var total int64

	query := s.db.WithContext(ctx).Model(&models.Student{})
	query = s.applyFilters(query, filters)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = s.applyPaginationAndSort(query, filters)
	if err := query.Find(&students).Error; err != nil {
		return nil, 0, err
	}

	return students, total, nil
}

func (s *StudentPostgreSQL) UpsertRecord(ctx context.Context, student *models.Student) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "student_no"}},
				DoUpdates: clause.AssignmentColumns([]string{"name", "email", "phone", "updated_at"}),
			}).
			Omit("Programs").
			Create(student).Error; err != nil {
			return fmt.Errorf("upsert student %s: %w", student.StudentNo, err)
		}

		// The portal is the source of truth: replace the mirrored
		// enrollment tree wholesale rather than diffing row by row.
		var existing []models.StudentProgram
		if err := tx.Where("student_id = ?", student.ID).Find(&existing).Error; err != nil {
			return err
		}
		if len(existing) > 0 {
			if err := tx.Select(clause.Associations).Delete(&existing).Error; err != nil {
				return fmt.Errorf("clear mirrored programs for %s: %w", student.StudentNo, err)
			}
		}

		for i := range student.Programs {
			student.Programs[i].ID = 0
			student.Programs[i].StudentID = student.ID
		}
		if len(student.Programs) > 0 {
			if err := tx.Create(&student.Programs).Error; err != nil {
				return fmt.Errorf("mirror programs for %s: %w", student.StudentNo, err)
			}
		}
		return nil
	})
}

func (s *StudentPostgreSQL) applyFilters(query *gorm.DB, filters repositories.StudentFilters) *gorm.DB {
	if filters.ProgramID != nil || filters.Status != nil {
		query = query.Joins("JOIN student_programs ON student_programs.student_id = students.id")
		if filters.ProgramID != nil {
			query = query.Where("student_programs.program_id = ?", *filters.ProgramID)
		}
		if filters.Status != nil {
			query = query.Where("student_programs.status = ?", *filters.Status)
		}
	}
	if filters.Search != "" {
		like := "%" + filters.Search + "%"
		query = query.Where("students.student_no ILIKE ? OR students.name ILIKE ?", like, like)
	}
	return query
}

func (s *StudentPostgreSQL) applyPaginationAndSort(query *gorm.DB, filters repositories.StudentFilters) *gorm.DB {
	sortBy := filters.SortBy
	switch sortBy {
	case "student_no", "name", "created_at":
	default:
		sortBy = "student_no"
	}
	order := "ASC"
	if filters.SortOrder == "desc" {
		order = "DESC"
	}
	query = query.Order(fmt.Sprintf("students.%s %s", sortBy, order))

	if filters.Limit > 0 {
		query = query.Limit(filters.Limit)
	}
	if filters.Offset > 0 {
		query = query.Offset(filters.Offset)
	}
	return query
}
