package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/campusops/registry-service/internal/academics"
	"github.com/campusops/registry-service/internal/cache"
	"github.com/campusops/registry-service/internal/repositories"
	"gorm.io/gorm"
)

const summaryCacheTTL = time.Hour

// AcademicSummary is one student's transcript-level result: the running
// GPA/CGPA records, the final CGPA and its classification. The sentinel
// classifications ("No Valid Grades", "No Semesters Found", "No Active or
// Completed Program") are carried in Classification with a zero CGPA, never
// surfaced as errors.
type AcademicSummary struct {
	StudentNo      string                     `json:"student_no"`
	StudentName    string                     `json:"student_name"`
	ProgramCode    string                     `json:"program_code"`
	ProgramName    string                     `json:"program_name"`
	Records        []academics.SemesterRecord `json:"records"`
	FinalCGPA      float64                    `json:"final_cgpa"`
	Classification academics.Classification   `json:"classification"`
}

// TranscriptService computes transcript summaries over the mirrored records.
type TranscriptService interface {
	AcademicSummary(ctx context.Context, studentNo string) (*AcademicSummary, error)
}

type transcriptService struct {
	repo    repositories.Repository
	catalog *academics.Catalog
	cache   cache.Service
	logger  *slog.Logger
}

func NewTranscriptService(repo repositories.Repository, catalog *academics.Catalog, cacheService cache.Service, logger *slog.Logger) TranscriptService {
	return &transcriptService{
		repo:    repo,
		catalog: catalog,
		cache:   cacheService,
		logger:  logger,
	}
}

func (s *transcriptService) AcademicSummary(ctx context.Context, studentNo string) (*AcademicSummary, error) {
	cacheKey := "summary:" + studentNo
	var cached AcademicSummary
	if err := s.cache.Get(ctx, cacheKey, &cached); err == nil {
		return &cached, nil
	} else if !errors.Is(err, cache.ErrCacheMiss) {
		s.logger.Warn("Summary cache read failed", "student_no", studentNo, "error", err)
	}

	student, err := s.repo.Students().GetAcademicRecord(ctx, studentNo)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStudentNotFound
		}
		return nil, fmt.Errorf("load academic record for %s: %w", studentNo, err)
	}

	summary := &AcademicSummary{
		StudentNo:   student.StudentNo,
		StudentName: student.Name,
	}

	program, err := academics.SelectProgram(buildProgramSnapshots(student))
	if err != nil {
		// Both selection failures are expected business outcomes here:
		// the transcript reports them as a sentinel classification.
		summary.Classification = academics.ClassNoProgram
		s.logger.Info("No usable enrollment for transcript",
			"student_no", studentNo, "reason", err.Error())
		s.cacheSummary(ctx, cacheKey, summary)
		return summary, nil
	}

	summary.ProgramCode = program.ProgramCode
	summary.ProgramName = program.ProgramName

	semesters := academics.CountedSemesters(program)
	if len(semesters) == 0 {
		summary.Classification = academics.ClassNoSemesters
		s.cacheSummary(ctx, cacheKey, summary)
		return summary, nil
	}

	records, final := s.catalog.CalculateCGPA(semesters)
	summary.Records = records
	summary.FinalCGPA = academics.RoundCGPA(final)
	summary.Classification = academics.Classify(final)

	s.cacheSummary(ctx, cacheKey, summary)
	return summary, nil
}

func (s *transcriptService) cacheSummary(ctx context.Context, key string, summary *AcademicSummary) {
	if err := s.cache.Set(ctx, key, summary, summaryCacheTTL); err != nil {
		s.logger.Warn("Summary cache write failed", "key", key, "error", err)
	}
}
