package model

// Patient is a child enrolled in the rehabilitation program. Patients are
// immutable once created; there is no update endpoint.
type Patient struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Age  *int   `json:"age"`
}

type CreatePatientRequest struct {
	Name string `json:"name" binding:"required"`
	Age  *int   `json:"age"`
}
