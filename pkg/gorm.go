package pkg

import (
	"fmt"

	"github.com/campusops/registry-service/internal/config"
	"github.com/campusops/registry-service/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDatabase(cfg *config.Config) (*gorm.DB, error) {
	var logLevel logger.LogLevel
	if cfg.Environment == "production" {
		logLevel = logger.Error
	} else {
		logLevel = logger.Info
	}

	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.AutoMigrate(
		&models.Program{},
		&models.ProgramStructure{},
		&models.Module{},
		&models.StructureModule{},
		&models.Student{},
		&models.StudentProgram{},
		&models.StudentSemester{},
		&models.StudentModule{},
		&models.ClearanceRequest{},
		&models.SyncJob{},
	); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return db, nil
}
