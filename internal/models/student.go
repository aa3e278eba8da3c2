package models

// Student represents a learner enrolled in exactly one class.
type Student struct {
	ID                 string `json:"id"`
	Name               string `json:"name"`
	RegistrationNumber string `json:"registration_number"`
}
