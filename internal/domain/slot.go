package domain

import (
	"fmt"

	"github.com/m04kA/SMC-FleetDesk/pkg/types"
)

// TimeSlot date and start time requested for a booking
type TimeSlot struct {
	Date types.DateString
	Time types.TimeString
}

// NewTimeSlot validates and creates a slot
func NewTimeSlot(date, startTime string) (TimeSlot, error) {
	d, err := types.NewDateStringFromString(date)
	if err != nil {
		return TimeSlot{}, fmt.Errorf("%w: %v", ErrInvalidTimeSlot, err)
	}
	t, err := types.NewTimeStringFromString(startTime)
	if err != nil {
		return TimeSlot{}, fmt.Errorf("%w: %v", ErrInvalidTimeSlot, err)
	}
	return TimeSlot{Date: d, Time: t}, nil
}

// String returns "YYYY-MM-DD HH:MM"
func (s TimeSlot) String() string {
	return s.Date.String() + " " + s.Time.String()
}
