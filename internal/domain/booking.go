package domain

import "time"

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending    BookingStatus = "pending"
	StatusPaid       BookingStatus = "paid"
	StatusInProgress BookingStatus = "in_progress"
	StatusCompleted  BookingStatus = "completed"
	StatusCancelled  BookingStatus = "cancelled"
)

// BookedJob job copied into a booking; price and duration are frozen at creation
type BookedJob struct {
	JobID    string
	Name     string
	Price    float64
	Duration int
}

// BookedPart part copied into a booking; price is frozen at creation
type BookedPart struct {
	PartItemID string
	Title      string
	Price      float64
}

// Booking persisted, price-snapshotted aggregation of jobs, parts and schedule for a car.
// It never references Job or PartItem records, later catalogue changes do not affect it.
type Booking struct {
	ID         string
	CarID      string
	UserID     string
	Jobs       []BookedJob
	Parts      []BookedPart
	Schedule   []TimeSlot
	PostalCode string
	Status     BookingStatus
	MechanicID *string
	TotalPrice float64
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// CanBePaid returns true if the booking is waiting for payment
func (b *Booking) CanBePaid() bool {
	return b.Status == StatusPending
}

// CanBeDeleted returns true if the booking has not started yet
func (b *Booking) CanBeDeleted() bool {
	return b.Status == StatusPending || b.Status == StatusPaid
}

// IsActive returns true if the booking still requires work or payment
func (b *Booking) IsActive() bool {
	for _, s := range ActiveStatuses {
		if b.Status == s {
			return true
		}
	}
	return false
}

// HasMechanic returns true if a mechanic is assigned
func (b *Booking) HasMechanic() bool {
	return b.MechanicID != nil && *b.MechanicID != ""
}
