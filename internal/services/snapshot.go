package services

import (
	"github.com/campusops/registry-service/internal/academics"
	"github.com/campusops/registry-service/internal/models"
)

// buildProgramSnapshots reduces a mirrored student record to the in-memory
// snapshot the calculation engine works on. The engine owns all filtering
// and normalization; this is a straight field mapping.
func buildProgramSnapshots(student *models.Student) []academics.ProgramSnapshot {
	snapshots := make([]academics.ProgramSnapshot, 0, len(student.Programs))
	for _, enrollment := range student.Programs {
		snapshot := academics.ProgramSnapshot{
			ID:          enrollment.ID,
			ProgramCode: enrollment.Program.Code,
			ProgramName: enrollment.Program.Name,
			StructureID: enrollment.StructureID,
			Status:      string(enrollment.Status),
			CreatedAt:   enrollment.CreatedAt,
		}
		for _, semester := range enrollment.Semesters {
			snapshot.Semesters = append(snapshot.Semesters, academics.SemesterSnapshot{
				ID:       semester.ID,
				TermCode: semester.TermCode,
				Status:   string(semester.Status),
				Attempts: buildAttempts(semester.Attempts),
			})
		}
		snapshots = append(snapshots, snapshot)
	}
	return snapshots
}

func buildAttempts(attempts []models.StudentModule) []academics.Attempt {
	out := make([]academics.Attempt, 0, len(attempts))
	for _, a := range attempts {
		out = append(out, academics.Attempt{
			ModuleName: a.Name,
			ModuleCode: a.Code,
			Grade:      a.GradeSymbol,
			Status:     string(a.Status),
			Credits:    a.Credits,
		})
	}
	return out
}

// programAttempts flattens every counted semester of one enrollment into a
// single attempt history for the outstanding-requirements resolver.
func programAttempts(program *academics.ProgramSnapshot) []academics.Attempt {
	var out []academics.Attempt
	for _, sem := range academics.CountedSemesters(program) {
		out = append(out, sem.Attempts...)
	}
	return out
}

// buildRequirements maps curriculum rows to engine requirements.
func buildRequirements(rows []*models.StructureModule) []academics.Requirement {
	out := make([]academics.Requirement, 0, len(rows))
	for _, row := range rows {
		out = append(out, academics.Requirement{
			Name:           row.Module.Name,
			Code:           row.Module.Code,
			SemesterNumber: row.SemesterNumber,
			Credits:        row.Module.Credits,
			Hidden:         row.Hidden,
		})
	}
	return out
}
