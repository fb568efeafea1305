package admin

import (
	"context"
	"fmt"

	"github.com/rehabtrack/rehab-api/internal/repository"
)

// Clear selectors.
const (
	SelectorPatients    = "patients"
	SelectorAssessments = "assessments"
	SelectorWorkouts    = "workouts"
	SelectorAll         = "all"
)

// Service handles bulk data administration. Clearing is the only way
// records leave the store.
type Service struct {
	patients    repository.PatientRepository
	assessments repository.AssessmentRepository
	workouts    repository.WorkoutRepository
}

func NewService(patients repository.PatientRepository, assessments repository.AssessmentRepository, workouts repository.WorkoutRepository) *Service {
	return &Service{patients: patients, assessments: assessments, workouts: workouts}
}

// Clear empties the selected collection(s). Unknown selectors clear
// nothing and are not an error, mirroring the admin tooling contract.
func (s *Service) Clear(ctx context.Context, selector string) error {
	if selector == "" {
		selector = SelectorAll
	}
	if selector == SelectorAssessments || selector == SelectorAll {
		if err := s.assessments.Clear(ctx); err != nil {
			return fmt.Errorf("failed to clear assessments: %w", err)
		}
	}
	if selector == SelectorWorkouts || selector == SelectorAll {
		if err := s.workouts.Clear(ctx); err != nil {
			return fmt.Errorf("failed to clear workouts: %w", err)
		}
	}
	if selector == SelectorPatients || selector == SelectorAll {
		if err := s.patients.Clear(ctx); err != nil {
			return fmt.Errorf("failed to clear patients: %w", err)
		}
	}
	return nil
}
