package model

import "time"

// Assessment captures one therapy evaluation session. Data holds the raw
// form fields keyed by skill name; arbitrary keys beyond the known rating
// fields are permitted and preserved as-is.
type Assessment struct {
	ID        string    `json:"id"`
	PatientID string    `json:"patientId"`
	Timestamp time.Time `json:"timestamp"`
	Data      JSONMap   `json:"data"`
}

// AssessmentRecord is an Assessment enriched with patient details for list
// responses.
type AssessmentRecord struct {
	Assessment
	PatientName string `json:"patientName,omitempty"`
	PatientAge  *int   `json:"patientAge,omitempty"`
}
