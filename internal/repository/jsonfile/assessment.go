package jsonfile

import (
	"context"

	"github.com/rehabtrack/rehab-api/internal/model"
)

type AssessmentRepository struct {
	store *Store
}

func NewAssessmentRepository(store *Store) *AssessmentRepository {
	return &AssessmentRepository{store: store}
}

func (r *AssessmentRepository) List(ctx context.Context) ([]*model.Assessment, error) {
	assessments := []*model.Assessment{}
	r.store.readList(assessmentsFile, &assessments)
	return assessments, nil
}

func (r *AssessmentRepository) Append(ctx context.Context, assessment *model.Assessment) error {
	assessments, _ := r.List(ctx)
	assessments = append(assessments, assessment)
	return r.store.writeList(assessmentsFile, assessments)
}

func (r *AssessmentRepository) Clear(ctx context.Context) error {
	return r.store.clear(assessmentsFile)
}
