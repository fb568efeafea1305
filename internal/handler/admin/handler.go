package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rehabtrack/rehab-api/internal/handler"
	"github.com/rehabtrack/rehab-api/internal/service/admin"
)

type Handler struct {
	service *admin.Service
}

func NewHandler(service *admin.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/admin/clear", h.Clear)
}

func (h *Handler) Clear(c *gin.Context) {
	selector := c.DefaultQuery("type", admin.SelectorAll)

	if err := h.service.Clear(c.Request.Context(), selector); err != nil {
		handler.Internal(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "cleared", "type": selector})
}
