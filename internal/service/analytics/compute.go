package analytics

import (
	"math"
	"strings"
	"time"

	"github.com/rehabtrack/rehab-api/internal/model"
	"github.com/rehabtrack/rehab-api/internal/service/scoring"
)

// weekdayLabels are fixed; workouts bucket by weekday identity, not by a
// rolling 7-day window.
var weekdayLabels = []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// categoryLabels maps the stored category vocabulary to display labels, in
// chart order.
var categoryLabels = map[string]string{
	model.CategoryFineMotor:     "Fine Motor",
	model.CategoryGrossMotor:    "Gross Motor",
	model.CategoryCognitive:     "Cognitive",
	model.CategorySensory:       "Sensory",
	model.CategoryCommunication: "Communication",
	model.CategorySocial:        "Social",
	model.CategoryADL:           "ADL",
	model.CategoryAttention:     "Attention",
}

// skillCategory groups assessment data fields under one radar axis.
type skillCategory struct {
	Label  string
	Fields []string
}

var radarCategories = []skillCategory{
	{"Fine Motor", []string{"fineMotor_grip", "fineMotor_beads"}},
	{"Gross Motor", []string{"grossMotor_balance", "grossMotor_time", "grossMotor_falls"}},
	{"Cognitive", []string{"cognitive_approach", "cognitive_memory"}},
	{"Sensory", []string{"sensory_behavior"}},
	{"Communication", []string{"communication_clarity", "communication_grammar"}},
	{"Social", []string{"social_interaction"}},
	{"ADL", []string{"adl_independence"}},
	{"Attention", []string{"attention_span"}},
}

// Stats derives the dashboard headline numbers. averageProgress only counts
// assessments that scored above zero.
func Stats(assessments []*model.Assessment, workouts []*model.Workout, now time.Time) *model.DashboardStats {
	patients := map[string]struct{}{}
	for _, a := range assessments {
		patients[a.PatientID] = struct{}{}
	}
	for _, w := range workouts {
		patients[w.PatientID] = struct{}{}
	}

	today := now.UTC().Format("2006-01-02")
	todays := 0
	scored := []int{}
	for _, a := range assessments {
		if a.Timestamp.UTC().Format("2006-01-02") == today {
			todays++
		}
		if s := scoring.AssessmentScore(a); s > 0 {
			scored = append(scored, s)
		}
	}

	return &model.DashboardStats{
		ActivePatients:    len(patients),
		TodaysAssessments: todays,
		AverageProgress:   roundedMean(scored),
		HomeWorkouts:      len(workouts),
	}
}

// WeeklyActivity counts workouts into Mon..Sun buckets by the timestamp's
// day of week.
func WeeklyActivity(workouts []*model.Workout) *model.ChartSeries {
	counts := make([]int, 7)
	for _, w := range workouts {
		// time.Weekday starts at Sunday; shift so Monday is index 0.
		idx := (int(w.Timestamp.UTC().Weekday()) + 6) % 7
		counts[idx]++
	}
	return &model.ChartSeries{Labels: weekdayLabels, Data: counts}
}

// Distribution counts workouts per known category, case-insensitively.
// Unknown categories are dropped.
func Distribution(workouts []*model.Workout) *model.ChartSeries {
	counts := map[string]int{}
	for _, w := range workouts {
		c := strings.ToLower(w.Category)
		if _, known := categoryLabels[c]; known {
			counts[c]++
		}
	}

	series := &model.ChartSeries{
		Labels: make([]string, 0, len(model.WorkoutCategories)),
		Data:   make([]int, 0, len(model.WorkoutCategories)),
	}
	for _, c := range model.WorkoutCategories {
		series.Labels = append(series.Labels, categoryLabels[c])
		series.Data = append(series.Data, counts[c])
	}
	return series
}

// ProgressSeries averages assessment scores over N consecutive calendar
// days ending today (UTC), oldest first. Days without assessments score 0.
func ProgressSeries(assessments []*model.Assessment, days int, now time.Time) *model.ChartSeries {
	if days < 1 {
		days = 1
	} else if days > 90 {
		days = 90
	}

	today := now.UTC().Truncate(24 * time.Hour)
	buckets := map[string][]int{}
	order := make([]time.Time, 0, days)
	for i := days - 1; i >= 0; i-- {
		d := today.AddDate(0, 0, -i)
		order = append(order, d)
		buckets[d.Format("2006-01-02")] = nil
	}

	for _, a := range assessments {
		key := a.Timestamp.UTC().Format("2006-01-02")
		if _, ok := buckets[key]; ok {
			buckets[key] = append(buckets[key], scoring.AssessmentScore(a))
		}
	}

	series := &model.ChartSeries{
		Labels: make([]string, 0, days),
		Data:   make([]int, 0, days),
	}
	for _, d := range order {
		series.Labels = append(series.Labels, d.Format("Jan 02"))
		series.Data = append(series.Data, roundedMean(buckets[d.Format("2006-01-02")]))
	}
	return series
}

// SkillsRadar pools all present field values per category across every
// assessment and computes one percentage score over the pooled values.
func SkillsRadar(assessments []*model.Assessment) *model.ChartSeries {
	series := &model.ChartSeries{
		Labels: make([]string, 0, len(radarCategories)),
		Data:   make([]int, 0, len(radarCategories)),
	}
	for _, cat := range radarCategories {
		var pooled []int
		for _, a := range assessments {
			pooled = append(pooled, scoring.CollectRatings(a.Data, cat.Fields)...)
		}
		series.Labels = append(series.Labels, cat.Label)
		series.Data = append(series.Data, scoring.PercentageScore(pooled, scoring.RatingScale))
	}
	return series
}

func roundedMean(values []int) int {
	if len(values) == 0 {
		return 0
	}
	sum := 0
	for _, v := range values {
		sum += v
	}
	return int(math.Round(float64(sum) / float64(len(values))))
}
