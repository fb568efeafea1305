package report

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/rehabtrack/rehab-api/internal/handler"
	"github.com/rehabtrack/rehab-api/internal/model"
	"github.com/rehabtrack/rehab-api/internal/service/report"
)

type Handler struct {
	service *report.Service
}

func NewHandler(service *report.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/reports/generate", h.GenerateReport)
}

// GenerateReport returns either a JSON envelope with the narrative content
// or a downloadable document, depending on the requested format or the
// Accept header.
func (h *Handler) GenerateReport(c *gin.Context) {
	var req model.ReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BadRequest(c, err)
		return
	}

	wantPDF := strings.EqualFold(req.Format, "pdf") ||
		strings.Contains(strings.ToLower(c.GetHeader("Accept")), "application/pdf")

	result, err := h.service.Generate(c.Request.Context(), &req, wantPDF)
	if err != nil {
		handler.Internal(c, err)
		return
	}

	if !result.IsDocument() {
		c.JSON(http.StatusOK, gin.H{"content": result.Content})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", result.Filename))
	c.Data(http.StatusOK, result.ContentType, result.Document)
}
