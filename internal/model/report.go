package model

// DashboardStats summarizes the current state of all tracked collections.
type DashboardStats struct {
	ActivePatients    int `json:"activePatients"`
	TodaysAssessments int `json:"todaysAssessments"`
	AverageProgress   int `json:"averageProgress"`
	HomeWorkouts      int `json:"homeWorkouts"`
}

// ChartSeries carries aligned label/value arrays for the chart endpoints.
type ChartSeries struct {
	Labels []string `json:"labels"`
	Data   []int    `json:"data"`
}

// SkillPerformance is one row of the per-category performance report.
type SkillPerformance struct {
	Skill    string `json:"skill"`
	Current  int    `json:"current"`
	Previous int    `json:"previous"`
	Goal     int    `json:"goal"`
	Status   string `json:"status"`
}

// SessionRecord is one row of the chronological session history.
type SessionRecord struct {
	Date       string `json:"date"`
	Patient    string `json:"patient"`
	PatientID  string `json:"patientId"`
	Age        *int   `json:"age"`
	Duration   int    `json:"duration"`
	Activities string `json:"activities"`
	Score      int    `json:"score"`
	Notes      string `json:"notes"`
}

// ReportRequest selects what the narrative report should cover and how it
// is delivered. Dates use the 2006-01-02 form.
type ReportRequest struct {
	PatientID  string `json:"patientId"`
	ReportType string `json:"reportType"`
	StartDate  string `json:"startDate"`
	EndDate    string `json:"endDate"`
	Format     string `json:"format"`
}
