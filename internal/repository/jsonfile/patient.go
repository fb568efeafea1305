package jsonfile

import (
	"context"

	"github.com/rehabtrack/rehab-api/internal/model"
)

type PatientRepository struct {
	store *Store
}

func NewPatientRepository(store *Store) *PatientRepository {
	return &PatientRepository{store: store}
}

func (r *PatientRepository) List(ctx context.Context) ([]*model.Patient, error) {
	patients := []*model.Patient{}
	r.store.readList(patientsFile, &patients)
	return patients, nil
}

func (r *PatientRepository) Append(ctx context.Context, patient *model.Patient) error {
	patients, _ := r.List(ctx)
	patients = append(patients, patient)
	return r.store.writeList(patientsFile, patients)
}

func (r *PatientRepository) Clear(ctx context.Context) error {
	return r.store.clear(patientsFile)
}
