package jsonfile

import (
	"context"

	"github.com/rehabtrack/rehab-api/internal/model"
)

type WorkoutRepository struct {
	store *Store
}

func NewWorkoutRepository(store *Store) *WorkoutRepository {
	return &WorkoutRepository{store: store}
}

func (r *WorkoutRepository) List(ctx context.Context) ([]*model.Workout, error) {
	workouts := []*model.Workout{}
	r.store.readList(workoutsFile, &workouts)
	return workouts, nil
}

func (r *WorkoutRepository) Append(ctx context.Context, workout *model.Workout) error {
	workouts, _ := r.List(ctx)
	workouts = append(workouts, workout)
	return r.store.writeList(workoutsFile, workouts)
}

func (r *WorkoutRepository) Clear(ctx context.Context) error {
	return r.store.clear(workoutsFile)
}
