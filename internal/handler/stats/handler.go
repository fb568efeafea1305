package stats

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/rehabtrack/rehab-api/internal/handler"
	"github.com/rehabtrack/rehab-api/internal/service/analytics"
)

const defaultProgressDays = 7

// Handler serves the dashboard stats and the chart-data queries. Every
// endpoint accepts an optional patientId filter.
type Handler struct {
	service *analytics.Service
}

func NewHandler(service *analytics.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/stats/dashboard", h.DashboardStats)

	charts := r.Group("/charts")
	{
		charts.GET("/homeworkout/weekly", h.WeeklyActivity)
		charts.GET("/homeworkout/distribution", h.ActivityDistribution)
		charts.GET("/dashboard/progress", h.ProgressSeries)
		charts.GET("/dashboard/skills", h.SkillsRadar)
	}

	reports := r.Group("/reports")
	{
		reports.GET("/skill-performance", h.SkillPerformance)
		reports.GET("/session-history", h.SessionHistory)
	}
}

func (h *Handler) DashboardStats(c *gin.Context) {
	stats, err := h.service.DashboardStats(c.Request.Context(), c.Query("patientId"))
	if err != nil {
		handler.Internal(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h *Handler) WeeklyActivity(c *gin.Context) {
	series, err := h.service.WeeklyActivity(c.Request.Context(), c.Query("patientId"))
	if err != nil {
		handler.Internal(c, err)
		return
	}
	c.JSON(http.StatusOK, series)
}

func (h *Handler) ActivityDistribution(c *gin.Context) {
	series, err := h.service.ActivityDistribution(c.Request.Context(), c.Query("patientId"))
	if err != nil {
		handler.Internal(c, err)
		return
	}
	c.JSON(http.StatusOK, series)
}

func (h *Handler) ProgressSeries(c *gin.Context) {
	days := defaultProgressDays
	if raw := c.Query("days"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			days = n
		}
	}

	series, err := h.service.ProgressSeries(c.Request.Context(), c.Query("patientId"), days)
	if err != nil {
		handler.Internal(c, err)
		return
	}
	c.JSON(http.StatusOK, series)
}

func (h *Handler) SkillsRadar(c *gin.Context) {
	series, err := h.service.SkillsRadar(c.Request.Context(), c.Query("patientId"))
	if err != nil {
		handler.Internal(c, err)
		return
	}
	c.JSON(http.StatusOK, series)
}

func (h *Handler) SkillPerformance(c *gin.Context) {
	rows, err := h.service.SkillPerformance(c.Request.Context(), c.Query("patientId"))
	if err != nil {
		handler.Internal(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

func (h *Handler) SessionHistory(c *gin.Context) {
	rows, err := h.service.SessionHistory(c.Request.Context(), c.Query("patientId"))
	if err != nil {
		handler.Internal(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}
