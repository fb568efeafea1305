package assessment

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/rehabtrack/rehab-api/internal/model"
	"github.com/rehabtrack/rehab-api/internal/repository"
	"github.com/rehabtrack/rehab-api/internal/service/analytics"
	"github.com/rehabtrack/rehab-api/internal/service/scoring"
)

// ErrMissingPatientID rejects assessment payloads without a patient
// reference. The reference is not validated against the patient collection.
var ErrMissingPatientID = fmt.Errorf("patientId is required")

type AssessmentService interface {
	CreateAssessment(ctx context.Context, payload model.JSONMap) (*model.Assessment, int, error)
	ListAssessments(ctx context.Context, patientID string, limit int) ([]*model.AssessmentRecord, error)
}

type Service struct {
	repo     repository.AssessmentRepository
	patients repository.PatientRepository
	now      func() time.Time
}

func NewService(repo repository.AssessmentRepository, patients repository.PatientRepository) *Service {
	return &Service{repo: repo, patients: patients, now: time.Now}
}

// CreateAssessment accepts a flexible payload: patientId and timestamp are
// lifted out, every other field lands in the data map untouched. Returns
// the stored assessment and its computed score.
func (s *Service) CreateAssessment(ctx context.Context, payload model.JSONMap) (*model.Assessment, int, error) {
	patientID := stringField(payload, "patientId")
	if patientID == "" {
		patientID = stringField(payload, "patient_id")
	}
	if patientID == "" {
		return nil, 0, ErrMissingPatientID
	}

	data := model.JSONMap{}
	for k, v := range payload {
		if k == "patientId" || k == "timestamp" {
			continue
		}
		data[k] = v
	}

	assessment := &model.Assessment{
		ID:        model.NewRecordID("ASSESS", s.now().UTC()),
		PatientID: patientID,
		Timestamp: model.ParseTimestamp(stringField(payload, "timestamp")),
		Data:      data,
	}
	if err := s.repo.Append(ctx, assessment); err != nil {
		return nil, 0, fmt.Errorf("failed to save assessment: %w", err)
	}
	return assessment, scoring.AssessmentScore(assessment), nil
}

// ListAssessments returns assessments, optionally filtered by patient and
// enriched with patient name and age. A positive limit keeps only the most
// recent entries, newest first.
func (s *Service) ListAssessments(ctx context.Context, patientID string, limit int) ([]*model.AssessmentRecord, error) {
	assessments, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list assessments: %w", err)
	}
	assessments = analytics.FilterAssessments(assessments, patientID)

	patients, err := s.patients.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list patients: %w", err)
	}
	index := analytics.PatientIndex(patients)

	records := make([]*model.AssessmentRecord, 0, len(assessments))
	for _, a := range assessments {
		rec := &model.AssessmentRecord{Assessment: *a}
		if p, ok := index[a.PatientID]; ok {
			rec.PatientName = p.Name
			rec.PatientAge = p.Age
		}
		records = append(records, rec)
	}

	if limit > 0 {
		sort.SliceStable(records, func(i, j int) bool {
			return records[i].Timestamp.After(records[j].Timestamp)
		})
		if len(records) > limit {
			records = records[:limit]
		}
	}
	return records, nil
}

func stringField(payload model.JSONMap, key string) string {
	switch v := payload[key].(type) {
	case string:
		return v
	case float64:
		// JSON numbers decode as float64; patient IDs are integral.
		return strconv.FormatFloat(v, 'f', -1, 64)
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", v)
	}
}
