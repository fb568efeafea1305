// Package analytics derives dashboard statistics, chart series, and report
// tables from the assessment and workout collections. Every query re-reads
// the collections; nothing is cached across requests.
package analytics

import (
	"context"
	"strconv"
	"time"

	"github.com/rehabtrack/rehab-api/internal/model"
	"github.com/rehabtrack/rehab-api/internal/repository"
)

type Service struct {
	patients    repository.PatientRepository
	assessments repository.AssessmentRepository
	workouts    repository.WorkoutRepository
	now         func() time.Time
}

func NewService(patients repository.PatientRepository, assessments repository.AssessmentRepository, workouts repository.WorkoutRepository) *Service {
	return &Service{
		patients:    patients,
		assessments: assessments,
		workouts:    workouts,
		now:         time.Now,
	}
}

// WithClock overrides the time source. Used by tests that pin "today".
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

func (s *Service) DashboardStats(ctx context.Context, patientID string) (*model.DashboardStats, error) {
	assessments, err := s.loadAssessments(ctx, patientID)
	if err != nil {
		return nil, err
	}
	workouts, err := s.loadWorkouts(ctx, patientID)
	if err != nil {
		return nil, err
	}
	return Stats(assessments, workouts, s.now()), nil
}

func (s *Service) WeeklyActivity(ctx context.Context, patientID string) (*model.ChartSeries, error) {
	workouts, err := s.loadWorkouts(ctx, patientID)
	if err != nil {
		return nil, err
	}
	return WeeklyActivity(workouts), nil
}

func (s *Service) ActivityDistribution(ctx context.Context, patientID string) (*model.ChartSeries, error) {
	workouts, err := s.loadWorkouts(ctx, patientID)
	if err != nil {
		return nil, err
	}
	return Distribution(workouts), nil
}

func (s *Service) ProgressSeries(ctx context.Context, patientID string, days int) (*model.ChartSeries, error) {
	assessments, err := s.loadAssessments(ctx, patientID)
	if err != nil {
		return nil, err
	}
	return ProgressSeries(assessments, days, s.now()), nil
}

func (s *Service) SkillsRadar(ctx context.Context, patientID string) (*model.ChartSeries, error) {
	assessments, err := s.loadAssessments(ctx, patientID)
	if err != nil {
		return nil, err
	}
	return SkillsRadar(assessments), nil
}

func (s *Service) SkillPerformance(ctx context.Context, patientID string) ([]*model.SkillPerformance, error) {
	assessments, err := s.loadAssessments(ctx, patientID)
	if err != nil {
		return nil, err
	}
	return SkillPerformance(assessments), nil
}

func (s *Service) SessionHistory(ctx context.Context, patientID string) ([]*model.SessionRecord, error) {
	assessments, err := s.loadAssessments(ctx, patientID)
	if err != nil {
		return nil, err
	}
	patients, err := s.patients.List(ctx)
	if err != nil {
		return nil, err
	}
	return SessionHistory(assessments, PatientIndex(patients)), nil
}

// PatientIndex maps patients by ID, assigning positional IDs to legacy
// records that predate ID assignment.
func PatientIndex(patients []*model.Patient) map[string]*model.Patient {
	index := make(map[string]*model.Patient, len(patients))
	for i, p := range patients {
		id := p.ID
		if id == "" {
			id = strconv.Itoa(i + 1)
		}
		index[id] = p
	}
	return index
}

func (s *Service) loadAssessments(ctx context.Context, patientID string) ([]*model.Assessment, error) {
	assessments, err := s.assessments.List(ctx)
	if err != nil {
		return nil, err
	}
	return FilterAssessments(assessments, patientID), nil
}

func (s *Service) loadWorkouts(ctx context.Context, patientID string) ([]*model.Workout, error) {
	workouts, err := s.workouts.List(ctx)
	if err != nil {
		return nil, err
	}
	return FilterWorkouts(workouts, patientID), nil
}

// FilterAssessments keeps assessments for one patient; an empty patientID
// keeps everything.
func FilterAssessments(assessments []*model.Assessment, patientID string) []*model.Assessment {
	if patientID == "" {
		return assessments
	}
	filtered := make([]*model.Assessment, 0, len(assessments))
	for _, a := range assessments {
		if a.PatientID == patientID {
			filtered = append(filtered, a)
		}
	}
	return filtered
}

// FilterWorkouts keeps workouts for one patient; an empty patientID keeps
// everything.
func FilterWorkouts(workouts []*model.Workout, patientID string) []*model.Workout {
	if patientID == "" {
		return workouts
	}
	filtered := make([]*model.Workout, 0, len(workouts))
	for _, w := range workouts {
		if w.PatientID == patientID {
			filtered = append(filtered, w)
		}
	}
	return filtered
}
