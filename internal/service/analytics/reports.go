package analytics

import (
	"sort"

	"github.com/rehabtrack/rehab-api/internal/model"
	"github.com/rehabtrack/rehab-api/internal/service/scoring"
)

// Skill performance statuses.
const (
	StatusOnTrack        = "On Track"
	StatusImproving      = "Improving"
	StatusNeedsAttention = "Needs Attention"
)

// performanceCategories drive the skill-performance report. Categories with
// no mapped fields always report zeros.
var performanceCategories = []skillCategory{
	{"Fine Motor Skills", []string{"fineMotor_grip"}},
	{"Gross Motor Skills", []string{"grossMotor_balance"}},
	{"Cognitive Abilities", []string{"cognitive_approach"}},
	{"Communication Skills", []string{"communication_clarity", "communication_grammar"}},
	{"Social Skills", nil},
	{"ADL Skills", []string{"adl_independence"}},
	{"Sensory Processing", []string{"sensory_behavior"}},
	{"Attention & Concentration", nil},
}

// SkillPerformance derives a current/previous/goal/status tuple per skill
// category. "Previous" is the average of all but the last per-assessment
// score; with fewer than two scored assessments it falls back to
// max(0, current-5). The trend proxy is intentionally naive and kept as-is.
func SkillPerformance(assessments []*model.Assessment) []*model.SkillPerformance {
	results := make([]*model.SkillPerformance, 0, len(performanceCategories))
	for _, cat := range performanceCategories {
		var perAssessment []int
		for _, a := range assessments {
			vals := scoring.CollectRatings(a.Data, cat.Fields)
			if len(vals) > 0 {
				perAssessment = append(perAssessment, scoring.PercentageScore(vals, scoring.RatingScale))
			}
		}

		current := roundedMean(perAssessment)
		previous := 0
		if len(perAssessment) > 1 {
			previous = roundedMean(perAssessment[:len(perAssessment)-1])
		} else {
			previous = current - 5
			if previous < 0 {
				previous = 0
			}
		}

		status := StatusNeedsAttention
		if current >= previous {
			status = StatusOnTrack
		} else if current > 0 {
			status = StatusImproving
		}

		goal := 80
		if current > 0 {
			goal = current + 5
			if goal < 80 {
				goal = 80
			}
			if goal > 100 {
				goal = 100
			}
		}

		results = append(results, &model.SkillPerformance{
			Skill:    cat.Label,
			Current:  current,
			Previous: previous,
			Goal:     goal,
			Status:   status,
		})
	}
	return results
}

const sessionNoteLimit = 60

// SessionHistory builds the chronological (newest first) session list,
// enriched with patient name and age where the patient is known. Session
// duration is a fixed placeholder until sessions carry their own timing.
func SessionHistory(assessments []*model.Assessment, patients map[string]*model.Patient) []*model.SessionRecord {
	records := make([]*model.SessionRecord, 0, len(assessments))
	for _, a := range assessments {
		rec := &model.SessionRecord{
			Date:       a.Timestamp.UTC().Format("2006-01-02"),
			Patient:    a.PatientID,
			PatientID:  a.PatientID,
			Duration:   45,
			Activities: "Assessment Session",
			Score:      scoring.AssessmentScore(a),
		}
		if rec.Patient == "" {
			rec.Patient = "Unknown"
		}
		if p, ok := patients[a.PatientID]; ok {
			rec.Patient = p.Name
			rec.Age = p.Age
		}
		if notes, ok := a.Data["fineMotor_notes"].(string); ok {
			// Truncate on rune boundaries so multi-byte text stays valid.
			if r := []rune(notes); len(r) > sessionNoteLimit {
				notes = string(r[:sessionNoteLimit])
			}
			rec.Notes = notes
		}
		records = append(records, rec)
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Date > records[j].Date
	})
	return records
}
