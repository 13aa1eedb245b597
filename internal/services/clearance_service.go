package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/campusops/registry-service/internal/academics"
	"github.com/campusops/registry-service/internal/events"
	"github.com/campusops/registry-service/internal/models"
	"github.com/campusops/registry-service/internal/repositories"
	"gorm.io/gorm"
)

// ClearanceDecision is the outcome of one graduation-clearance evaluation.
type ClearanceDecision struct {
	StudentNo   string                      `json:"student_no"`
	StudentName string                      `json:"student_name"`
	ProgramCode string                      `json:"program_code"`
	Status      models.ClearanceStatus      `json:"status"`
	Reason      string                      `json:"reason,omitempty"`
	Outstanding academics.OutstandingResult `json:"outstanding"`
}

// ClearanceService evaluates graduation clearance against the mirrored
// records and persists, publishes and notifies the decision.
type ClearanceService interface {
	// Evaluate runs the outstanding-requirements resolver for one student.
	// It returns ErrNoActiveProgram when the student has no enrollments at
	// all; clearance is never defaulted to approved or rejected in that case.
	Evaluate(ctx context.Context, studentNo string) (*ClearanceDecision, error)

	// Outstanding runs the resolver without persisting, publishing or
	// notifying; it backs the read-only outstanding-modules view.
	Outstanding(ctx context.Context, studentNo string) (*ClearanceDecision, error)

	// Latest returns the most recent persisted decision for a student.
	Latest(ctx context.Context, studentNo string) (*models.ClearanceRequest, error)
}

type clearanceService struct {
	repo      repositories.Repository
	catalog   *academics.Catalog
	publisher events.Publisher
	notifier  Notifier
	logger    *slog.Logger
}

func NewClearanceService(
	repo repositories.Repository,
	catalog *academics.Catalog,
	publisher events.Publisher,
	notifier Notifier,
	logger *slog.Logger,
) ClearanceService {
	return &clearanceService{
		repo:      repo,
		catalog:   catalog,
		publisher: publisher,
		notifier:  notifier,
		logger:    logger,
	}
}

// resolve loads the record, selects the governing enrollment and runs the
// outstanding resolver. Shared by Evaluate and Outstanding.
func (s *clearanceService) resolve(ctx context.Context, studentNo string) (*ClearanceDecision, *models.Student, *academics.ProgramSnapshot, error) {
	student, err := s.repo.Students().GetAcademicRecord(ctx, studentNo)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, nil, ErrStudentNotFound
		}
		return nil, nil, nil, fmt.Errorf("load academic record for %s: %w", studentNo, err)
	}

	program, err := academics.SelectProgram(buildProgramSnapshots(student))
	if err != nil {
		// No enrollments, or none active/completed: either way there is
		// nothing to clear against. Surface the sentinel to the caller.
		return nil, nil, nil, err
	}

	requirements, err := s.repo.Curriculum().VisibleRequirements(ctx, program.StructureID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, nil, ErrStructureNotFound
		}
		return nil, nil, nil, fmt.Errorf("load requirements for structure %d: %w", program.StructureID, err)
	}

	outstanding := s.catalog.ResolveOutstanding(
		buildRequirements(requirements),
		programAttempts(program),
	)

	decision := &ClearanceDecision{
		StudentNo:   student.StudentNo,
		StudentName: student.Name,
		ProgramCode: program.ProgramCode,
		Outstanding: outstanding,
	}

	if outstanding.Clear() {
		decision.Status = models.ClearanceApproved
	} else {
		decision.Status = models.ClearancePending
		decision.Reason = clearanceReason(outstanding)
	}

	return decision, student, program, nil
}

func (s *clearanceService) Outstanding(ctx context.Context, studentNo string) (*ClearanceDecision, error) {
	decision, _, _, err := s.resolve(ctx, studentNo)
	return decision, err
}

func (s *clearanceService) Evaluate(ctx context.Context, studentNo string) (*ClearanceDecision, error) {
	s.logger.Info("Evaluating graduation clearance", "student_no", studentNo)

	decision, student, program, err := s.resolve(ctx, studentNo)
	if err != nil {
		return nil, err
	}

	request := &models.ClearanceRequest{
		StudentID:        student.ID,
		StudentProgramID: program.ID,
		Status:           decision.Status,
		Reason:           decision.Reason,
	}
	if err := s.repo.Clearance().Create(ctx, request); err != nil {
		return nil, fmt.Errorf("persist clearance decision for %s: %w", studentNo, err)
	}

	if err := s.publisher.PublishClearanceEvent(ctx, events.NewClearanceEvent(decision.StudentNo, decision.ProgramCode, string(decision.Status), decision.Reason)); err != nil {
		// The decision is already persisted; a lost event is not fatal.
		s.logger.Error("Failed to publish clearance event",
			"student_no", studentNo, "error", err)
	}

	if student.Email != "" {
		if err := s.notifier.SendClearanceOutcome(ctx, student.Email, student.Name, decision); err != nil {
			s.logger.Error("Failed to send clearance email",
				"student_no", studentNo, "error", err)
		}
	}

	s.logger.Info("Clearance evaluated",
		"student_no", studentNo,
		"status", decision.Status,
		"failed_never_repeated", len(decision.Outstanding.FailedNeverRepeated),
		"never_attempted", len(decision.Outstanding.NeverAttempted))

	return decision, nil
}

func (s *clearanceService) Latest(ctx context.Context, studentNo string) (*models.ClearanceRequest, error) {
	student, err := s.repo.Students().GetByStudentNo(ctx, studentNo)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStudentNotFound
		}
		return nil, err
	}

	request, err := s.repo.Clearance().GetLatestByStudent(ctx, student.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClearanceNotFound
		}
		return nil, err
	}
	return request, nil
}

// clearanceReason renders the outstanding lists into the registrar-facing
// reason string attached to pending decisions.
func clearanceReason(outstanding academics.OutstandingResult) string {
	var parts []string

	if names := requirementNames(outstanding.FailedNeverRepeated); len(names) > 0 {
		parts = append(parts, "failed and never repeated: "+strings.Join(names, ", "))
	}
	if names := requirementNames(outstanding.NeverAttempted); len(names) > 0 {
		parts = append(parts, "never attempted: "+strings.Join(names, ", "))
	}

	return "Outstanding modules - " + strings.Join(parts, "; ")
}

func requirementNames(reqs []academics.Requirement) []string {
	names := make([]string, 0, len(reqs))
	for _, r := range reqs {
		if r.Code != "" {
			names = append(names, fmt.Sprintf("%s (%s)", r.Name, r.Code))
		} else {
			names = append(names, r.Name)
		}
	}
	return names
}
