package assessment

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/rehabtrack/rehab-api/internal/handler"
	"github.com/rehabtrack/rehab-api/internal/model"
	"github.com/rehabtrack/rehab-api/internal/service/assessment"
)

type Handler struct {
	service assessment.AssessmentService
}

func NewHandler(service assessment.AssessmentService) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	assessments := r.Group("/assessments")
	{
		assessments.POST("", h.CreateAssessment)
		assessments.GET("", h.ListAssessments)
	}
}

// CreateAssessment binds the payload as a free-form map: beyond patientId
// and timestamp, any fields the assessment form sends become assessment
// data.
func (h *Handler) CreateAssessment(c *gin.Context) {
	var payload model.JSONMap
	if err := c.ShouldBindJSON(&payload); err != nil {
		handler.BadRequest(c, err)
		return
	}

	created, score, err := h.service.CreateAssessment(c.Request.Context(), payload)
	if err != nil {
		if errors.Is(err, assessment.ErrMissingPatientID) {
			handler.BadRequest(c, err)
			return
		}
		handler.Internal(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Assessment saved successfully",
		"id":      created.ID,
		"score":   score,
	})
}

func (h *Handler) ListAssessments(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}

	records, err := h.service.ListAssessments(c.Request.Context(), c.Query("patientId"), limit)
	if err != nil {
		handler.Internal(c, err)
		return
	}

	c.JSON(http.StatusOK, records)
}
