package handlers

import (
	"log/slog"

	"github.com/campusops/registry-service/internal/repositories"
	"github.com/campusops/registry-service/internal/services"
	"github.com/gin-gonic/gin"
)

type HandlerManager struct {
	studentHandler *StudentHandler
	reportHandler  *ReportHandler
}

func NewHandlerManager(
	repo repositories.Repository,
	transcripts services.TranscriptService,
	clearances services.ClearanceService,
	syncs services.SyncService,
	reports services.ReportService,
	logger *slog.Logger,
) *HandlerManager {
	return &HandlerManager{
		studentHandler: NewStudentHandler(transcripts, clearances, syncs, repo.Students(), logger),
		reportHandler:  NewReportHandler(reports, logger),
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	// Health check endpoint
	router.GET("/health", HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		students := v1.Group("/students")
		{
			students.GET("", hm.studentHandler.ListStudents)
			students.GET("/:student_no/summary", hm.studentHandler.GetAcademicSummary)
			students.GET("/:student_no/outstanding", hm.studentHandler.GetOutstanding)
			students.POST("/:student_no/clearance", hm.studentHandler.EvaluateClearance)
			students.GET("/:student_no/clearance", hm.studentHandler.GetLatestClearance)
			students.GET("/:student_no/summary/export", hm.reportHandler.DownloadAcademicSummary)
			students.GET("/:student_no/certificate", hm.reportHandler.DownloadCertificate)
		}

		sync := v1.Group("/sync")
		{
			sync.POST("/students", hm.studentHandler.TriggerSync)
		}

		reports := v1.Group("/reports")
		{
			reports.GET("/clearance-roster", hm.reportHandler.DownloadClearanceRoster)
		}
	}
}
