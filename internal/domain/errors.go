package domain

import "errors"

var (
	// ErrDraftSubmitted returned on any change of an already submitted draft
	ErrDraftSubmitted = errors.New("draft already submitted")

	// ErrNoJobsSelected returned when the flow requires at least one job
	ErrNoJobsSelected = errors.New("at least one job must be selected")

	// ErrNoTimeSlots returned when the flow requires at least one time slot
	ErrNoTimeSlots = errors.New("at least one time slot is required")

	// ErrNotSelected returned when overriding an item that is not selected
	ErrNotSelected = errors.New("item is not selected")

	// ErrInvalidOverride returned for negative prices or non-positive durations
	ErrInvalidOverride = errors.New("invalid price override")

	// ErrInvalidTimeSlot returned for malformed date or time
	ErrInvalidTimeSlot = errors.New("invalid time slot")

	// ErrTooManySlots returned when the slot limit is reached
	ErrTooManySlots = errors.New("too many time slots")

	// ErrInvalidTransition returned for a wizard move that is not allowed
	ErrInvalidTransition = errors.New("invalid draft state transition")

	// ErrInvalidPostalCode returned for malformed postal codes
	ErrInvalidPostalCode = errors.New("invalid postal code")
)
