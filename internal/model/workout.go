package model

import "time"

// Workout categories form a fixed vocabulary; matching is case-insensitive.
const (
	CategoryFineMotor     = "fine-motor"
	CategoryGrossMotor    = "gross-motor"
	CategoryCognitive     = "cognitive"
	CategorySensory       = "sensory"
	CategoryCommunication = "communication"
	CategorySocial        = "social"
	CategoryADL           = "adl"
	CategoryAttention     = "attention"
)

// WorkoutCategories lists the known categories in chart order.
var WorkoutCategories = []string{
	CategoryFineMotor,
	CategoryGrossMotor,
	CategoryCognitive,
	CategorySensory,
	CategoryCommunication,
	CategorySocial,
	CategoryADL,
	CategoryAttention,
}

// Workout is a home exercise assigned to a patient.
type Workout struct {
	ID           string    `json:"id"`
	PatientID    string    `json:"patientId"`
	ActivityName string    `json:"activityName"`
	Category     string    `json:"category"`
	Duration     int       `json:"duration"`
	Frequency    string    `json:"frequency"`
	Instructions string    `json:"instructions,omitempty"`
	Timestamp    time.Time `json:"timestamp"`
}

type CreateWorkoutRequest struct {
	PatientID    string `json:"patientId" binding:"required"`
	ActivityName string `json:"activityName" binding:"required"`
	Category     string `json:"category" binding:"required,rehabcategory"`
	Duration     int    `json:"duration" binding:"required,min=1"`
	Frequency    string `json:"frequency" binding:"required"`
	Instructions string `json:"instructions"`
	Timestamp    string `json:"timestamp"`
}
