package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/campusops/registry-service/internal/cache"
	"github.com/campusops/registry-service/internal/models"
	"github.com/campusops/registry-service/internal/portal"
	"github.com/campusops/registry-service/internal/repositories"
	"github.com/campusops/registry-service/internal/validator"
	"gorm.io/gorm"
)

// PortalCredentials is the service account the registry uses on the portal.
type PortalCredentials struct {
	Username string
	Password string
}

// PortalFetcher is the scraping surface the sync service depends on.
type PortalFetcher interface {
	Login(ctx context.Context, username, password string) error
	FetchStudent(ctx context.Context, studentNo string) (*portal.StudentRecord, error)
	FetchStructure(ctx context.Context, structureCode string) (*portal.StructureRecord, error)
}

// SyncService mirrors portal data into the local database.
type SyncService interface {
	// SyncStudents fetches and mirrors the given students, fanning the
	// page fetches out over a bounded worker pool. A failure on one
	// student is counted and skipped, never aborting the run.
	SyncStudents(ctx context.Context, studentNos []string) (*models.SyncJob, error)

	// SyncStructure mirrors one program structure's required modules.
	SyncStructure(ctx context.Context, structureCode string) error
}

type syncService struct {
	repo      repositories.Repository
	portal    PortalFetcher
	creds     PortalCredentials
	validator *validator.Validator
	cache     cache.Service
	logger    *slog.Logger
	workers   int
}

func NewSyncService(
	repo repositories.Repository,
	fetcher PortalFetcher,
	creds PortalCredentials,
	v *validator.Validator,
	cacheService cache.Service,
	logger *slog.Logger,
	workers int,
) SyncService {
	if workers < 1 {
		workers = 4
	}
	return &syncService{
		repo:      repo,
		portal:    fetcher,
		creds:     creds,
		validator: v,
		cache:     cacheService,
		logger:    logger,
		workers:   workers,
	}
}

type studentSyncFailure struct {
	StudentNo string `json:"student_no"`
	Error     string `json:"error"`
}

func (s *syncService) SyncStudents(ctx context.Context, studentNos []string) (*models.SyncJob, error) {
	job := &models.SyncJob{
		Kind:          "students",
		Status:        models.SyncRunning,
		TotalStudents: len(studentNos),
		StartedAt:     time.Now().UTC(),
	}
	if err := s.repo.SyncJobs().Create(ctx, job); err != nil {
		return nil, fmt.Errorf("create sync job: %w", err)
	}

	if err := s.portal.Login(ctx, s.creds.Username, s.creds.Password); err != nil {
		s.finishJob(ctx, job, models.SyncFailed, err.Error(), nil)
		return job, fmt.Errorf("%w: %v", ErrPortalUnavailable, err)
	}

	var (
		mu       sync.Mutex
		failures []studentSyncFailure
		synced   int
	)

	jobs := make(chan string)
	var wg sync.WaitGroup
	for i := 0; i < s.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for studentNo := range jobs {
				if err := s.syncOne(ctx, studentNo); err != nil {
					s.logger.Warn("Student sync failed",
						"student_no", studentNo, "error", err)
					mu.Lock()
					failures = append(failures, studentSyncFailure{
						StudentNo: studentNo,
						Error:     err.Error(),
					})
					mu.Unlock()
					continue
				}
				mu.Lock()
				synced++
				mu.Unlock()
			}
		}()
	}

	for _, no := range studentNos {
		select {
		case <-ctx.Done():
			// stop feeding; in-flight fetches drain on their own
		case jobs <- no:
		}
	}
	close(jobs)
	wg.Wait()

	job.SyncedStudents = synced
	job.FailedStudents = len(failures)
	s.finishJob(ctx, job, models.SyncCompleted, "", failures)

	s.logger.Info("Student sync finished",
		"job_id", job.ID,
		"total", job.TotalStudents,
		"synced", job.SyncedStudents,
		"failed", job.FailedStudents)

	return job, ctx.Err()
}

func (s *syncService) syncOne(ctx context.Context, studentNo string) error {
	record, err := s.portal.FetchStudent(ctx, studentNo)
	if err != nil {
		return err
	}

	if err := s.validator.ValidateStruct(record); err != nil {
		return fmt.Errorf("scraped record rejected: %w", err)
	}

	student, err := s.mapStudentRecord(ctx, record)
	if err != nil {
		return err
	}

	if err := s.repo.Students().UpsertRecord(ctx, student); err != nil {
		return err
	}

	if err := s.cache.Delete(ctx, "summary:"+studentNo); err != nil {
		s.logger.Warn("Failed to invalidate cached summary",
			"student_no", studentNo, "error", err)
	}
	return nil
}

// mapStudentRecord converts a validated scrape into mirror rows, resolving
// program and structure codes against the local curriculum tables.
func (s *syncService) mapStudentRecord(ctx context.Context, record *portal.StudentRecord) (*models.Student, error) {
	student := &models.Student{
		StudentNo: record.StudentNo,
		Name:      record.Name,
		Email:     record.Email,
		Phone:     record.Phone,
	}

	for _, p := range record.Programs {
		program, err := s.ensureProgram(ctx, p.ProgramCode, p.ProgramName)
		if err != nil {
			return nil, err
		}
		structure, err := s.ensureStructure(ctx, program.ID, p.StructureCode)
		if err != nil {
			return nil, err
		}

		enrollment := models.StudentProgram{
			ProgramID:   program.ID,
			StructureID: structure.ID,
			Status:      models.ProgramStatus(p.Status),
		}
		for _, sem := range p.Semesters {
			semester := models.StudentSemester{
				TermCode:       sem.TermCode,
				SemesterNumber: sem.SemesterNumber,
				Status:         models.SemesterStatus(sem.Status),
			}
			for _, a := range sem.Attempts {
				semester.Attempts = append(semester.Attempts, models.StudentModule{
					Name:        a.ModuleName,
					Code:        a.ModuleCode,
					GradeSymbol: a.Grade,
					Marks:       a.Marks,
					Status:      models.AttemptStatus(a.Status),
					Credits:     a.Credits,
				})
			}
			enrollment.Semesters = append(enrollment.Semesters, semester)
		}
		student.Programs = append(student.Programs, enrollment)
	}

	return student, nil
}

func (s *syncService) ensureProgram(ctx context.Context, code, name string) (*models.Program, error) {
	program, err := s.repo.Curriculum().GetProgramByCode(ctx, code)
	if err == nil {
		return program, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	program = &models.Program{Code: code, Name: name}
	if err := s.repo.Curriculum().UpsertProgram(ctx, program); err != nil {
		return nil, fmt.Errorf("create program %s: %w", code, err)
	}
	return s.repo.Curriculum().GetProgramByCode(ctx, code)
}

func (s *syncService) ensureStructure(ctx context.Context, programID uint, code string) (*models.ProgramStructure, error) {
	structure, err := s.repo.Curriculum().GetStructureByCode(ctx, code)
	if err == nil {
		return structure, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	structure = &models.ProgramStructure{ProgramID: programID, Code: code}
	if err := s.repo.Curriculum().UpsertStructure(ctx, structure); err != nil {
		return nil, fmt.Errorf("create structure %s: %w", code, err)
	}
	return structure, nil
}

func (s *syncService) SyncStructure(ctx context.Context, structureCode string) error {
	if err := s.portal.Login(ctx, s.creds.Username, s.creds.Password); err != nil {
		return fmt.Errorf("%w: %v", ErrPortalUnavailable, err)
	}

	record, err := s.portal.FetchStructure(ctx, structureCode)
	if err != nil {
		return err
	}
	if err := s.validator.ValidateStruct(record); err != nil {
		return fmt.Errorf("scraped structure rejected: %w", err)
	}

	program, err := s.ensureProgram(ctx, record.ProgramCode, record.ProgramCode)
	if err != nil {
		return err
	}
	structure, err := s.ensureStructure(ctx, program.ID, record.StructureCode)
	if err != nil {
		return err
	}

	structure.Modules = structure.Modules[:0]
	for _, req := range record.Requirements {
		module := &models.Module{
			Code:    req.ModuleCode,
			Name:    req.ModuleName,
			Credits: req.Credits,
		}
		if err := s.repo.Curriculum().UpsertModule(ctx, module); err != nil {
			return fmt.Errorf("mirror module %s: %w", req.ModuleCode, err)
		}
		structure.Modules = append(structure.Modules, models.StructureModule{
			ModuleID:       module.ID,
			SemesterNumber: req.SemesterNumber,
			Hidden:         req.Hidden,
		})
	}

	if err := s.repo.Curriculum().UpsertStructure(ctx, structure); err != nil {
		return fmt.Errorf("mirror structure %s: %w", structureCode, err)
	}

	s.logger.Info("Structure mirrored",
		"structure", structureCode, "requirements", len(record.Requirements))
	return nil
}

func (s *syncService) finishJob(ctx context.Context, job *models.SyncJob, status models.SyncJobStatus, errMsg string, failures []studentSyncFailure) {
	now := time.Now().UTC()
	job.Status = status
	job.Error = errMsg
	job.FinishedAt = &now

	if len(failures) > 0 {
		if payload, err := json.Marshal(failures); err == nil {
			job.Payload = payload
		}
	}

	if err := s.repo.SyncJobs().Update(ctx, job); err != nil {
		s.logger.Error("Failed to update sync job", "job_id", job.ID, "error", err)
	}
}
