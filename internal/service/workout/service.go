package workout

import (
	"context"
	"fmt"
	"time"

	"github.com/rehabtrack/rehab-api/internal/model"
	"github.com/rehabtrack/rehab-api/internal/repository"
	"github.com/rehabtrack/rehab-api/internal/service/analytics"
)

type WorkoutService interface {
	CreateWorkout(ctx context.Context, req *model.CreateWorkoutRequest) (*model.Workout, error)
	ListWorkouts(ctx context.Context, patientID string) ([]*model.Workout, error)
}

type Service struct {
	repo repository.WorkoutRepository
	now  func() time.Time
}

func NewService(repo repository.WorkoutRepository) *Service {
	return &Service{repo: repo, now: time.Now}
}

func (s *Service) CreateWorkout(ctx context.Context, req *model.CreateWorkoutRequest) (*model.Workout, error) {
	workout := &model.Workout{
		ID:           model.NewRecordID("WORK", s.now().UTC()),
		PatientID:    req.PatientID,
		ActivityName: req.ActivityName,
		Category:     req.Category,
		Duration:     req.Duration,
		Frequency:    req.Frequency,
		Instructions: req.Instructions,
		Timestamp:    model.ParseTimestamp(req.Timestamp),
	}
	if err := s.repo.Append(ctx, workout); err != nil {
		return nil, fmt.Errorf("failed to save workout: %w", err)
	}
	return workout, nil
}

func (s *Service) ListWorkouts(ctx context.Context, patientID string) ([]*model.Workout, error) {
	workouts, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list workouts: %w", err)
	}
	return analytics.FilterWorkouts(workouts, patientID), nil
}
