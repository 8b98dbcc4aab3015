package domain

// Pricing constants
const (
	// DefaultVATRate fixed VAT applied by summary views
	DefaultVATRate = 0.20

	MinutesPerHour = 60
)

// Validation constants
const (
	MaxPostalCodeLength = 10
	MaxJobDuration      = 24 * 60 // minutes
	MaxTimeSlots        = 20
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// ActiveStatuses bookings that still require work or payment
var ActiveStatuses = []BookingStatus{
	StatusPending,
	StatusPaid,
	StatusInProgress,
}
