package workout

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rehabtrack/rehab-api/internal/handler"
	"github.com/rehabtrack/rehab-api/internal/model"
	"github.com/rehabtrack/rehab-api/internal/service/workout"
)

type Handler struct {
	service workout.WorkoutService
}

func NewHandler(service workout.WorkoutService) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	workouts := r.Group("/workouts")
	{
		workouts.POST("", h.CreateWorkout)
		workouts.GET("", h.ListWorkouts)
	}
}

func (h *Handler) CreateWorkout(c *gin.Context) {
	var req model.CreateWorkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BadRequest(c, err)
		return
	}

	created, err := h.service.CreateWorkout(c.Request.Context(), &req)
	if err != nil {
		handler.Internal(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Workout saved successfully",
		"id":      created.ID,
	})
}

func (h *Handler) ListWorkouts(c *gin.Context) {
	workouts, err := h.service.ListWorkouts(c.Request.Context(), c.Query("patientId"))
	if err != nil {
		handler.Internal(c, err)
		return
	}

	c.JSON(http.StatusOK, workouts)
}
