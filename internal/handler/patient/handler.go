package patient

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rehabtrack/rehab-api/internal/handler"
	"github.com/rehabtrack/rehab-api/internal/model"
	"github.com/rehabtrack/rehab-api/internal/service/patient"
)

type Handler struct {
	service patient.PatientService
}

func NewHandler(service patient.PatientService) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	patients := r.Group("/patients")
	{
		patients.POST("", h.CreatePatient)
		patients.GET("", h.ListPatients)
	}
}

func (h *Handler) CreatePatient(c *gin.Context) {
	var req model.CreatePatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BadRequest(c, err)
		return
	}

	created, err := h.service.CreatePatient(c.Request.Context(), &req)
	if err != nil {
		handler.BadRequest(c, err)
		return
	}

	c.JSON(http.StatusCreated, created)
}

func (h *Handler) ListPatients(c *gin.Context) {
	patients, err := h.service.ListPatients(c.Request.Context())
	if err != nil {
		handler.Internal(c, err)
		return
	}

	c.JSON(http.StatusOK, patients)
}
