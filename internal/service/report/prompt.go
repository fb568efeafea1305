package report

import (
	"sort"
	"time"

	"github.com/rehabtrack/rehab-api/internal/model"
	"github.com/rehabtrack/rehab-api/internal/service/scoring"
)

// Hard bounds on the sample sizes handed to the external generator.
const (
	assessmentSampleLimit = 50
	workoutSampleLimit    = 100
	highlightLimit        = 8
)

const systemInstructions = `You are an expert pediatric rehabilitation data analyst generating a professional report.

FORMAT REQUIREMENTS:
1. DO NOT use markdown syntax or code blocks
2. Use plain text formatting with these conventions:
   - Main headings: Start with "# " (e.g., "# Patient Summary")
   - Subheadings: Start with "## " (e.g., "## Strengths")
   - Bullet points: Start with "* " (e.g., "* Fine motor skills improving")
   - Nested bullets: Start with "  * " (with two spaces)
3. Include clear section breaks between major sections. dont use extra spaces after section break
4. Start with a clear title and patient information section

CONTENT REQUIREMENTS:
- Summarize overall performance and key trends
- Highlight strengths and positive progress
- Identify areas needing attention or improvement
- Provide clear, actionable recommendations and next steps
- Maintain a professional, supportive tone suitable for parents and caregivers

The output will be formatted as a PDF, so ensure proper spacing and organization.`

type dateRange struct {
	Start string `json:"start,omitempty"`
	End   string `json:"end,omitempty"`
}

type assessmentSummary struct {
	PatientID  string        `json:"patientId"`
	Timestamp  time.Time     `json:"timestamp"`
	Score      int           `json:"score"`
	Highlights model.JSONMap `json:"highlights"`
}

type workoutSummary struct {
	PatientID    string    `json:"patientId"`
	ActivityName string    `json:"activityName"`
	Category     string    `json:"category"`
	Duration     int       `json:"duration"`
	Timestamp    time.Time `json:"timestamp"`
}

type generationPayload struct {
	ReportType        string                `json:"reportType"`
	DateRange         dateRange             `json:"dateRange"`
	Patient           *model.Patient        `json:"patient"`
	Stats             *model.DashboardStats `json:"stats"`
	AssessmentsSample []assessmentSummary   `json:"assessmentsSample"`
	WorkoutsSample    []workoutSummary      `json:"workoutsSample"`
}

// buildPayload reduces the collections to a bounded, id-less sample the
// generator can reason about.
func buildPayload(req *model.ReportRequest, patient *model.Patient, stats *model.DashboardStats, assessments []*model.Assessment, workouts []*model.Workout) *generationPayload {
	if n := len(assessments); n > assessmentSampleLimit {
		assessments = assessments[n-assessmentSampleLimit:]
	}
	if n := len(workouts); n > workoutSampleLimit {
		workouts = workouts[n-workoutSampleLimit:]
	}

	assessmentSamples := make([]assessmentSummary, 0, len(assessments))
	for _, a := range assessments {
		assessmentSamples = append(assessmentSamples, assessmentSummary{
			PatientID:  a.PatientID,
			Timestamp:  a.Timestamp,
			Score:      scoring.AssessmentScore(a),
			Highlights: highlights(a.Data),
		})
	}

	workoutSamples := make([]workoutSummary, 0, len(workouts))
	for _, w := range workouts {
		workoutSamples = append(workoutSamples, workoutSummary{
			PatientID:    w.PatientID,
			ActivityName: w.ActivityName,
			Category:     w.Category,
			Duration:     w.Duration,
			Timestamp:    w.Timestamp,
		})
	}

	return &generationPayload{
		ReportType:        req.ReportType,
		DateRange:         dateRange{Start: req.StartDate, End: req.EndDate},
		Patient:           patient,
		Stats:             stats,
		AssessmentsSample: assessmentSamples,
		WorkoutsSample:    workoutSamples,
	}
}

// highlights keeps up to 8 data fields, by sorted key for determinism.
func highlights(data model.JSONMap) model.JSONMap {
	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	if len(keys) > highlightLimit {
		keys = keys[:highlightLimit]
	}

	out := make(model.JSONMap, len(keys))
	for _, k := range keys {
		out[k] = data[k]
	}
	return out
}
