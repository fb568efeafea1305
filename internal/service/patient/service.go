package patient

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rehabtrack/rehab-api/internal/model"
	"github.com/rehabtrack/rehab-api/internal/repository"
)

type PatientService interface {
	CreatePatient(ctx context.Context, req *model.CreatePatientRequest) (*model.Patient, error)
	ListPatients(ctx context.Context) ([]*model.Patient, error)
}

type Service struct {
	repo repository.PatientRepository
	now  func() time.Time
}

func NewService(repo repository.PatientRepository) *Service {
	return &Service{repo: repo, now: time.Now}
}

func (s *Service) CreatePatient(ctx context.Context, req *model.CreatePatientRequest) (*model.Patient, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("name is required")
	}

	patient := &model.Patient{
		ID:   model.NewRecordID("", s.now().UTC()),
		Name: name,
		Age:  req.Age,
	}
	if err := s.repo.Append(ctx, patient); err != nil {
		return nil, fmt.Errorf("failed to create patient: %w", err)
	}
	return patient, nil
}

// ListPatients returns every patient, backfilling positional IDs for legacy
// records missing one. The backfill is per-response only; stored records
// are never rewritten.
func (s *Service) ListPatients(ctx context.Context) ([]*model.Patient, error) {
	patients, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list patients: %w", err)
	}
	for i, p := range patients {
		if p.ID == "" {
			p.ID = fmt.Sprintf("%d", i+1)
		}
	}
	return patients, nil
}
