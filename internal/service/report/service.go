// Package report composes the narrative progress report and hands it to
// the document renderer. The external generator is optional; every failure
// path degrades to a deterministic narrative instead of erroring.
package report

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/rehabtrack/rehab-api/internal/model"
	"github.com/rehabtrack/rehab-api/internal/repository"
	"github.com/rehabtrack/rehab-api/internal/service/analytics"
	"github.com/rehabtrack/rehab-api/internal/service/scoring"
	"github.com/rehabtrack/rehab-api/pkg/document"
	"github.com/rehabtrack/rehab-api/pkg/generator"
)

// Result is a composed report, rendered or not depending on the request.
type Result struct {
	Content     string
	Document    []byte
	ContentType string
	Filename    string
}

// IsDocument reports whether the result carries rendered bytes rather than
// a JSON-embeddable narrative.
func (r *Result) IsDocument() bool {
	return r.Document != nil
}

type Service struct {
	patients    repository.PatientRepository
	assessments repository.AssessmentRepository
	workouts    repository.WorkoutRepository
	gen         generator.Generator
	renderer    *document.Renderer
	genTimeout  time.Duration
	now         func() time.Time
}

// NewService wires the composer. gen may be nil when no external generator
// is configured; the deterministic fallback is used instead.
func NewService(
	patients repository.PatientRepository,
	assessments repository.AssessmentRepository,
	workouts repository.WorkoutRepository,
	gen generator.Generator,
	renderer *document.Renderer,
	genTimeout time.Duration,
) *Service {
	if genTimeout <= 0 {
		genTimeout = 30 * time.Second
	}
	return &Service{
		patients:    patients,
		assessments: assessments,
		workouts:    workouts,
		gen:         gen,
		renderer:    renderer,
		genTimeout:  genTimeout,
		now:         time.Now,
	}
}

// Generate builds the narrative for the request and, when wantPDF is set,
// renders it into a downloadable document.
func (s *Service) Generate(ctx context.Context, req *model.ReportRequest, wantPDF bool) (*Result, error) {
	if req.ReportType == "" {
		req.ReportType = "daily"
	}

	allAssessments, err := s.assessments.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load assessments: %w", err)
	}
	allWorkouts, err := s.workouts.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load workouts: %w", err)
	}
	patients, err := s.patients.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load patients: %w", err)
	}

	assessments := analytics.FilterAssessments(allAssessments, req.PatientID)
	workouts := analytics.FilterWorkouts(allWorkouts, req.PatientID)
	stats := analytics.Stats(assessments, workouts, s.now())

	var patient *model.Patient
	if req.PatientID != "" {
		patient = analytics.PatientIndex(patients)[req.PatientID]
	}

	content := s.compose(ctx, req, patient, stats, assessments, workouts)

	if !wantPDF {
		return &Result{Content: content}, nil
	}

	title := "Patient Report"
	patientRef := "all"
	if patient != nil {
		title = patient.Name
		patientRef = patient.ID
	}
	title = fmt.Sprintf("%s - %s", title, titleCase(req.ReportType))

	data, contentType := s.renderer.Render(title, content)
	return &Result{
		Document:    data,
		ContentType: contentType,
		Filename:    fmt.Sprintf("report_%s_%s.pdf", req.ReportType, patientRef),
	}, nil
}

// compose picks the narrative source in fixed precedence: insufficient-data
// guidance, then the unconfigured summary, then the external generator with
// a local fallback on failure.
func (s *Service) compose(ctx context.Context, req *model.ReportRequest, patient *model.Patient, stats *model.DashboardStats, assessments []*model.Assessment, workouts []*model.Workout) string {
	if !hasScoredAssessments(assessments) && len(workouts) == 0 {
		return insufficientDataNarrative(patient)
	}

	if s.gen == nil {
		return unconfiguredNarrative(stats)
	}

	genCtx, cancel := context.WithTimeout(ctx, s.genTimeout)
	defer cancel()

	payload := buildPayload(req, patient, stats, assessments, workouts)
	content, err := s.gen.Generate(genCtx, systemInstructions, payload)
	if err != nil {
		log.Warn().Err(err).Str("reportType", req.ReportType).Msg("generator failed, using fallback narrative")
		return fallbackNarrative(stats, err)
	}
	if strings.TrimSpace(content) == "" {
		return fallbackNarrative(stats, fmt.Errorf("no content generated"))
	}
	return content
}

func hasScoredAssessments(assessments []*model.Assessment) bool {
	for _, a := range assessments {
		if scoring.AssessmentScore(a) > 0 {
			return true
		}
	}
	return false
}

func insufficientDataNarrative(patient *model.Patient) string {
	name := "the patient"
	ageSuffix := ""
	if patient != nil {
		name = patient.Name
		if patient.Age != nil {
			ageSuffix = fmt.Sprintf(" (Age %d)", *patient.Age)
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Insufficient data to generate a detailed report for %s%s at this time.\n\n", name, ageSuffix)
	b.WriteString("## What this means\n")
	b.WriteString("* No scored assessment fields were provided yet, and no home workouts are recorded.\n\n")
	b.WriteString("## Recommended next steps\n")
	b.WriteString("* Complete at least one assessment with key skill ratings (e.g., Fine Motor, Gross Motor, Communication).\n")
	b.WriteString("* Optionally log a few home workout activities to enrich the analysis.\n\n")
	b.WriteString("Once new data is available, generate the report again to see personalized insights and recommendations.")
	return b.String()
}

func unconfiguredNarrative(stats *model.DashboardStats) string {
	return fmt.Sprintf(
		"AI is not configured. Summary placeholder:\nActive Patients: %d\nAverage Progress: %d%%\nTotal Workouts: %d\n",
		stats.ActivePatients, stats.AverageProgress, stats.HomeWorkouts,
	)
}

func fallbackNarrative(stats *model.DashboardStats, cause error) string {
	return fmt.Sprintf(
		"AI generation failed. Fallback summary based on available data.\nReason: %v\nActive Patients: %d\nAverage Progress: %d%%\nTotal Workouts: %d\n",
		cause, stats.ActivePatients, stats.AverageProgress, stats.HomeWorkouts,
	)
}

// titleCase uppercases the first letter of each space-separated word,
// matching the report title convention.
func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + strings.ToLower(w[1:])
	}
	return strings.Join(words, " ")
}
