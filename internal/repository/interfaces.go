package repository

import (
	"context"

	"github.com/rehabtrack/rehab-api/internal/model"
)

// PatientRepository persists the ordered patient collection.
type PatientRepository interface {
	List(ctx context.Context) ([]*model.Patient, error)
	Append(ctx context.Context, patient *model.Patient) error
	Clear(ctx context.Context) error
}

// AssessmentRepository persists the ordered assessment collection.
type AssessmentRepository interface {
	List(ctx context.Context) ([]*model.Assessment, error)
	Append(ctx context.Context, assessment *model.Assessment) error
	Clear(ctx context.Context) error
}

// WorkoutRepository persists the ordered workout collection.
type WorkoutRepository interface {
	List(ctx context.Context) ([]*model.Workout, error)
	Append(ctx context.Context, workout *model.Workout) error
	Clear(ctx context.Context) error
}
