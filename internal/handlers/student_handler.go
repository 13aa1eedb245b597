package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/campusops/registry-service/internal/models"
	"github.com/campusops/registry-service/internal/repositories"
	"github.com/campusops/registry-service/internal/services"
	"github.com/gin-gonic/gin"
)

type StudentHandler struct {
	transcripts services.TranscriptService
	clearances  services.ClearanceService
	syncs       services.SyncService
	students    repositories.StudentRepository
	logger      *slog.Logger
}

func NewStudentHandler(
	transcripts services.TranscriptService,
	clearances services.ClearanceService,
	syncs services.SyncService,
	students repositories.StudentRepository,
	logger *slog.Logger,
) *StudentHandler {
	return &StudentHandler{
		transcripts: transcripts,
		clearances:  clearances,
		syncs:       syncs,
		students:    students,
		logger:      logger,
	}
}

// ListStudents returns the mirrored student roster with pagination.
func (h *StudentHandler) ListStudents(c *gin.Context) {
	filters := repositories.StudentFilters{
		Search:    c.Query("search"),
		SortBy:    c.DefaultQuery("sort_by", "created_at"),
		SortOrder: c.DefaultQuery("sort_order", "desc"),
	}
	filters.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", "50"))
	filters.Offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))

	students, total, err := h.students.List(c.Request.Context(), filters)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"students": students,
		"total":    total,
	})
}

// GetAcademicSummary returns the computed GPA/CGPA fold and classification.
func (h *StudentHandler) GetAcademicSummary(c *gin.Context) {
	studentNo := ParseStudentNoParam(c)
	if studentNo == "" {
		return
	}

	summary, err := h.transcripts.AcademicSummary(c.Request.Context(), studentNo)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

// GetOutstanding returns the outstanding-modules determination without
// recording a clearance decision.
func (h *StudentHandler) GetOutstanding(c *gin.Context) {
	studentNo := ParseStudentNoParam(c)
	if studentNo == "" {
		return
	}

	decision, err := h.clearances.Outstanding(c.Request.Context(), studentNo)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, decision)
}

// EvaluateClearance runs and records a graduation-clearance decision.
func (h *StudentHandler) EvaluateClearance(c *gin.Context) {
	studentNo := ParseStudentNoParam(c)
	if studentNo == "" {
		return
	}

	decision, err := h.clearances.Evaluate(c.Request.Context(), studentNo)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, decision)
}

// GetLatestClearance returns the most recent recorded decision.
func (h *StudentHandler) GetLatestClearance(c *gin.Context) {
	studentNo := ParseStudentNoParam(c)
	if studentNo == "" {
		return
	}

	request, err := h.clearances.Latest(c.Request.Context(), studentNo)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, request)
}

type SyncRequest struct {
	StudentNos []string `json:"student_nos" validate:"required,min=1"`
}

// TriggerSync mirrors the requested students from the portal.
func (h *StudentHandler) TriggerSync(c *gin.Context) {
	var req SyncRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}
	if len(req.StudentNos) == 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Validation failed",
			Details: "student_nos cannot be empty",
		})
		return
	}

	job, err := h.syncs.SyncStudents(c.Request.Context(), req.StudentNos)
	if err != nil {
		if job != nil && job.Status == models.SyncFailed {
			// The job row carries the failure detail.
			c.JSON(http.StatusBadGateway, ErrorResponse{
				Message: "Sync failed",
				Details: job,
			})
			return
		}
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusAccepted, job)
}
