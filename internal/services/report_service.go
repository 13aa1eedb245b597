package services

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/campusops/registry-service/internal/models"
	"github.com/campusops/registry-service/internal/repositories"
	"github.com/go-pdf/fpdf"
	"github.com/xuri/excelize/v2"
)

// ReportService renders registrar-facing documents: clearance rosters and
// transcript workbooks as xlsx, graduation certificates as PDF.
type ReportService interface {
	ClearanceRoster(ctx context.Context, filters repositories.ClearanceFilters) ([]byte, error)
	AcademicSummaryWorkbook(ctx context.Context, studentNo string) ([]byte, error)
	// GraduationCertificate requires an approved clearance and an award
	// classification; it returns ErrNotCleared or ErrNotClassifiable
	// otherwise.
	GraduationCertificate(ctx context.Context, studentNo string) ([]byte, error)
}

type reportService struct {
	repo        repositories.Repository
	transcripts TranscriptService
	clearances  ClearanceService
	logger      *slog.Logger
}

func NewReportService(
	repo repositories.Repository,
	transcripts TranscriptService,
	clearances ClearanceService,
	logger *slog.Logger,
) ReportService {
	return &reportService{
		repo:        repo,
		transcripts: transcripts,
		clearances:  clearances,
		logger:      logger,
	}
}

func (s *reportService) ClearanceRoster(ctx context.Context, filters repositories.ClearanceFilters) ([]byte, error) {
	requests, _, err := s.repo.Clearance().List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("list clearance requests: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Clearance Roster"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"Student No", "Student Name", "Program", "Status", "Reason", "Decided At"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, header)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"DDEBF7"}, Pattern: 1},
	})
	if err == nil {
		f.SetCellStyle(sheet, "A1", "F1", headerStyle)
	}

	for i, request := range requests {
		row := i + 2
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), request.Student.StudentNo)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), request.Student.Name)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), request.Program.Program.Code)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), string(request.Status))
		f.SetCellValue(sheet, fmt.Sprintf("E%d", row), request.Reason)
		f.SetCellValue(sheet, fmt.Sprintf("F%d", row), request.CreatedAt.Format("2006-01-02 15:04"))
	}

	f.SetColWidth(sheet, "A", "A", 14)
	f.SetColWidth(sheet, "B", "C", 28)
	f.SetColWidth(sheet, "E", "E", 60)
	f.SetColWidth(sheet, "F", "F", 18)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write roster workbook: %w", err)
	}

	s.logger.Info("Clearance roster generated", "rows", len(requests))
	return buf.Bytes(), nil
}

func (s *reportService) AcademicSummaryWorkbook(ctx context.Context, studentNo string) ([]byte, error) {
	summary, err := s.transcripts.AcademicSummary(ctx, studentNo)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Academic Summary"
	f.SetSheetName("Sheet1", sheet)

	f.SetCellValue(sheet, "A1", "Student No")
	f.SetCellValue(sheet, "B1", summary.StudentNo)
	f.SetCellValue(sheet, "A2", "Name")
	f.SetCellValue(sheet, "B2", summary.StudentName)
	f.SetCellValue(sheet, "A3", "Program")
	f.SetCellValue(sheet, "B3", fmt.Sprintf("%s %s", summary.ProgramCode, summary.ProgramName))
	f.SetCellValue(sheet, "A4", "Final CGPA")
	f.SetCellValue(sheet, "B4", summary.FinalCGPA)
	f.SetCellValue(sheet, "A5", "Classification")
	f.SetCellValue(sheet, "B5", string(summary.Classification))

	headers := []string{"Term", "GPA", "CGPA", "Credits Attempted", "Credits Completed", "Has Unmarked Modules"}
	headerRow := 7
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, headerRow)
		f.SetCellValue(sheet, cell, header)
	}

	for i, record := range summary.Records {
		row := headerRow + 1 + i
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), record.TermCode)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), record.GPA)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), record.CGPA)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), record.CreditsAttempted)
		f.SetCellValue(sheet, fmt.Sprintf("E%d", row), record.CreditsCompleted)
		f.SetCellValue(sheet, fmt.Sprintf("F%d", row), record.HasNoMarks)
	}

	f.SetColWidth(sheet, "A", "A", 16)
	f.SetColWidth(sheet, "B", "F", 20)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write summary workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func (s *reportService) GraduationCertificate(ctx context.Context, studentNo string) ([]byte, error) {
	latest, err := s.clearances.Latest(ctx, studentNo)
	if err != nil {
		return nil, err
	}
	if latest.Status != models.ClearanceApproved {
		return nil, ErrNotCleared
	}

	summary, err := s.transcripts.AcademicSummary(ctx, studentNo)
	if err != nil {
		return nil, err
	}
	if !summary.Classification.IsAward() {
		return nil, ErrNotClassifiable
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Times", "B", 30)
	pdf.CellFormat(0, 40, "Certificate of Graduation", "", 1, "C", false, 0, "")

	pdf.SetFont("Times", "", 14)
	pdf.CellFormat(0, 10, "This is to certify that", "", 1, "C", false, 0, "")

	pdf.SetFont("Times", "B", 22)
	pdf.CellFormat(0, 16, summary.StudentName, "", 1, "C", false, 0, "")

	pdf.SetFont("Times", "", 14)
	pdf.CellFormat(0, 10, fmt.Sprintf("Student Number %s", summary.StudentNo), "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 10, "has satisfied all requirements of the program", "", 1, "C", false, 0, "")

	pdf.SetFont("Times", "B", 18)
	pdf.CellFormat(0, 14, summary.ProgramName, "", 1, "C", false, 0, "")

	pdf.SetFont("Times", "", 14)
	pdf.CellFormat(0, 10, fmt.Sprintf("and is awarded the classification of %s", summary.Classification), "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 10, fmt.Sprintf("with a cumulative grade point average of %.2f", summary.FinalCGPA), "", 1, "C", false, 0, "")

	pdf.SetFont("Times", "I", 11)
	pdf.CellFormat(0, 20, fmt.Sprintf("Issued by the Office of the Registrar on %s", time.Now().Format("2 January 2006")), "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render certificate: %w", err)
	}

	s.logger.Info("Graduation certificate generated",
		"student_no", studentNo, "classification", summary.Classification)
	return buf.Bytes(), nil
}
