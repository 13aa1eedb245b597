package postgres

import (
	"context"

	"github.com/campusops/registry-service/internal/models"
	"github.com/campusops/registry-service/internal/repositories"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CurriculumPostgreSQL struct {
	db *gorm.DB
}

func NewCurriculumPostgreSQL(db *gorm.DB) repositories.CurriculumRepository {
	return &CurriculumPostgreSQL{db: db}
}

func (c *CurriculumPostgreSQL) GetProgramByCode(ctx context.Context, code string) (*models.Program, error) {
	var program models.Program
	if err := c.db.WithContext(ctx).Where("code = ?", code).First(&program).Error; err != nil {
		return nil, err
	}
	return &program, nil
}

func (c *CurriculumPostgreSQL) GetStructure(ctx context.Context, id uint) (*models.ProgramStructure, error) {
	var structure models.ProgramStructure
	if err := c.db.WithContext(ctx).
		Preload("Program").
		Preload("Modules.Module").
		First(&structure, id).Error; err != nil {
		return nil, err
	}
	return &structure, nil
}

func (c *CurriculumPostgreSQL) GetStructureByCode(ctx context.Context, code string) (*models.ProgramStructure, error) {
	var structure models.ProgramStructure
	if err := c.db.WithContext(ctx).
		Where("code = ?", code).
		Preload("Modules.Module").
		First(&structure).Error; err != nil {
		return nil, err
	}
	return &structure, nil
}

func (c *CurriculumPostgreSQL) VisibleRequirements(ctx context.Context, structureID uint) ([]*models.StructureModule, error) {
	var requirements []*models.StructureModule
	if err := c.db.WithContext(ctx).
		Where("structure_id = ? AND hidden = false", structureID).
		Preload("Module").
		Order("semester_number ASC, id ASC").
		Find(&requirements).Error; err != nil {
		return nil, err
	}
	return requirements, nil
}

func (c *CurriculumPostgreSQL) UpsertProgram(ctx context.Context, program *models.Program) error {
	return c.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "code"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "level", "updated_at"}),
		}).
		Create(program).Error
}

func (c *CurriculumPostgreSQL) UpsertModule(ctx context.Context, module *models.Module) error {
	return c.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "code"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "credits", "updated_at"}),
		}).
		Create(module).Error
}

func (c *CurriculumPostgreSQL) UpsertStructure(ctx context.Context, structure *models.ProgramStructure) error {
	return c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Modules").Save(structure).Error; err != nil {
			return err
		}
		if err := tx.Where("structure_id = ?", structure.ID).
			Delete(&models.StructureModule{}).Error; err != nil {
			return err
		}
		for i := range structure.Modules {
			structure.Modules[i].ID = 0
			structure.Modules[i].StructureID = structure.ID
		}
		if len(structure.Modules) > 0 {
			return tx.Create(&structure.Modules).Error
		}
		return nil
	})
}
