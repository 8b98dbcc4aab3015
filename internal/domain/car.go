package domain

import "time"

// ImportState progress state of the parts import for a car
type ImportState string

const (
	ImportIdle      ImportState = "idle"
	ImportImporting ImportState = "importing"
	ImportFailed    ImportState = "failed"
)

// ImportProgress parts-import progress of a car
type ImportProgress struct {
	State     ImportState
	Processed int
	Total     int
	Error     *string
}

// InProgress returns true while the import is running
func (p ImportProgress) InProgress() bool {
	return p.State == ImportImporting
}

// Car client vehicle
type Car struct {
	ID                 string
	OwnerID            string
	RegistrationNumber string
	Make               string
	Model              string
	Year               int
	VIN                *string
	Mileage            *int
	Import             ImportProgress
	CreatedAt          time.Time
	UpdatedAt          time.Time
}
