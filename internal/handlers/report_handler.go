package handlers

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/campusops/registry-service/internal/models"
	"github.com/campusops/registry-service/internal/repositories"
	"github.com/campusops/registry-service/internal/services"
	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ReportHandler struct {
	reports services.ReportService
	logger  *slog.Logger
}

func NewReportHandler(reports services.ReportService, logger *slog.Logger) *ReportHandler {
	return &ReportHandler{reports: reports, logger: logger}
}

// DownloadClearanceRoster streams the clearance roster workbook.
func (h *ReportHandler) DownloadClearanceRoster(c *gin.Context) {
	var filters repositories.ClearanceFilters
	if status := c.Query("status"); status != "" {
		s := models.ClearanceStatus(status)
		filters.Status = &s
	}

	data, err := h.reports.ClearanceRoster(c.Request.Context(), filters)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="clearance-roster.xlsx"`)
	c.Data(http.StatusOK, xlsxContentType, data)
}

// DownloadAcademicSummary streams one student's transcript workbook.
func (h *ReportHandler) DownloadAcademicSummary(c *gin.Context) {
	studentNo := ParseStudentNoParam(c)
	if studentNo == "" {
		return
	}

	data, err := h.reports.AcademicSummaryWorkbook(c.Request.Context(), studentNo)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="summary-%s.xlsx"`, studentNo))
	c.Data(http.StatusOK, xlsxContentType, data)
}

// DownloadCertificate streams the graduation certificate PDF.
func (h *ReportHandler) DownloadCertificate(c *gin.Context) {
	studentNo := ParseStudentNoParam(c)
	if studentNo == "" {
		return
	}

	data, err := h.reports.GraduationCertificate(c.Request.Context(), studentNo)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="certificate-%s.pdf"`, studentNo))
	c.Data(http.StatusOK, "application/pdf", data)
}
