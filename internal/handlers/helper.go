package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/campusops/registry-service/internal/services"
	"github.com/gin-gonic/gin"
)

// ParseStudentNoParam extracts and trims the student_no path parameter,
// writing a 400 response when it is blank.
func ParseStudentNoParam(c *gin.Context) string {
	studentNo := strings.TrimSpace(c.Param("student_no"))
	if studentNo == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid student_no",
			Details: "student number cannot be empty",
		})
	}
	return studentNo
}

// handleServiceError maps service errors onto HTTP responses.
func handleServiceError(c *gin.Context, err error) {
	var validationErrors services.ValidationErrors
	if errors.As(err, &validationErrors) {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Validation failed",
			Details: validationErrors,
		})
		return
	}

	var businessRuleError *services.BusinessRuleError
	if errors.As(err, &businessRuleError) {
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Message: businessRuleError.Message,
			Details: map[string]interface{}{
				"rule":    businessRuleError.Rule,
				"context": businessRuleError.Context,
			},
		})
		return
	}

	switch {
	case services.IsNotFound(err):
		c.JSON(http.StatusNotFound, ErrorResponse{
			Message: "Resource not found",
			Details: err.Error(),
		})
	case services.IsBusinessOutcome(err):
		// Expected registry outcomes, not server faults.
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Message: err.Error(),
		})
	case errors.Is(err, services.ErrPortalUnavailable):
		c.JSON(http.StatusBadGateway, ErrorResponse{
			Message: "Legacy portal is unreachable",
			Details: err.Error(),
		})
	case errors.Is(err, services.ErrSyncInProgress):
		c.JSON(http.StatusConflict, ErrorResponse{
			Message: "A sync job is already running",
		})
	default:
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Message: "Internal server error",
			Details: err.Error(),
		})
	}
}
