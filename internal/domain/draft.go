package domain

import (
	"fmt"
	"regexp"
	"slices"
	"strings"
	"time"
)

// DraftState step of the booking wizard
type DraftState string

const (
	StateSelectingJobs  DraftState = "selecting-jobs"
	StateSelectingParts DraftState = "selecting-parts"
	StateScheduling     DraftState = "scheduling"
	StateSummary        DraftState = "summary"
	StateSubmitted      DraftState = "submitted"
)

var draftStateOrder = []DraftState{
	StateSelectingJobs,
	StateSelectingParts,
	StateScheduling,
	StateSummary,
	StateSubmitted,
}

var rePostalCode = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9 -]*$`)

// JobOverride user-entered price and/or duration of a selected job
type JobOverride struct {
	Price    *float64
	Duration *int
}

// PartOverride user-entered price of a selected part
type PartOverride struct {
	Price *float64
}

// Draft transient booking selection of a single dialog session.
// Selection lists keep selection order; overrides exist only for selected ids.
type Draft struct {
	ID            string
	CarID         string
	State         DraftState
	JobIDs        []string
	JobOverrides  map[string]JobOverride
	PartIDs       []string
	PartOverrides map[string]PartOverride
	Slots         []TimeSlot
	PostalCode    string
	CreatedAt     time.Time
}

// NewDraft creates an empty draft in the job-selection step
func NewDraft(id, carID string, now time.Time) *Draft {
	return &Draft{
		ID:            id,
		CarID:         carID,
		State:         StateSelectingJobs,
		JobIDs:        []string{},
		JobOverrides:  map[string]JobOverride{},
		PartIDs:       []string{},
		PartOverrides: map[string]PartOverride{},
		Slots:         []TimeSlot{},
		CreatedAt:     now,
	}
}

func (d *Draft) ensureEditable() error {
	if d.State == StateSubmitted {
		return ErrDraftSubmitted
	}
	return nil
}

// IsJobSelected returns true if the job id is in the selection
func (d *Draft) IsJobSelected(id string) bool {
	return slices.Contains(d.JobIDs, id)
}

// IsPartSelected returns true if the part id is in the selection
func (d *Draft) IsPartSelected(id string) bool {
	return slices.Contains(d.PartIDs, id)
}

// SelectJob adds the job to the selection, selecting twice is a no-op
func (d *Draft) SelectJob(id string) error {
	if err := d.ensureEditable(); err != nil {
		return err
	}
	if !d.IsJobSelected(id) {
		d.JobIDs = append(d.JobIDs, id)
	}
	return nil
}

// DeselectJob removes the job and its override in the same step
func (d *Draft) DeselectJob(id string) error {
	if err := d.ensureEditable(); err != nil {
		return err
	}
	d.JobIDs = slices.DeleteFunc(d.JobIDs, func(v string) bool { return v == id })
	delete(d.JobOverrides, id)
	return nil
}

// ToggleJob flips the selection of a job and reports whether it is selected afterwards
func (d *Draft) ToggleJob(id string) (bool, error) {
	if d.IsJobSelected(id) {
		return false, d.DeselectJob(id)
	}
	return true, d.SelectJob(id)
}

// OverrideJob sets the user price and/or duration of a selected job.
// Nil fields fall back to the reference job values.
func (d *Draft) OverrideJob(id string, o JobOverride) error {
	if err := d.ensureEditable(); err != nil {
		return err
	}
	if !d.IsJobSelected(id) {
		return fmt.Errorf("%w: job %s", ErrNotSelected, id)
	}
	if o.Price != nil && *o.Price < 0 {
		return fmt.Errorf("%w: price must not be negative", ErrInvalidOverride)
	}
	if o.Duration != nil && (*o.Duration <= 0 || *o.Duration > MaxJobDuration) {
		return fmt.Errorf("%w: duration must be in (0, %d] minutes", ErrInvalidOverride, MaxJobDuration)
	}
	if o.Price == nil && o.Duration == nil {
		delete(d.JobOverrides, id)
		return nil
	}
	d.JobOverrides[id] = o
	return nil
}

// SelectPart adds the part to the selection, selecting twice is a no-op
func (d *Draft) SelectPart(id string) error {
	if err := d.ensureEditable(); err != nil {
		return err
	}
	if !d.IsPartSelected(id) {
		d.PartIDs = append(d.PartIDs, id)
	}
	return nil
}

// DeselectPart removes the part and its override in the same step
func (d *Draft) DeselectPart(id string) error {
	if err := d.ensureEditable(); err != nil {
		return err
	}
	d.PartIDs = slices.DeleteFunc(d.PartIDs, func(v string) bool { return v == id })
	delete(d.PartOverrides, id)
	return nil
}

// TogglePart flips the selection of a part and reports whether it is selected afterwards
func (d *Draft) TogglePart(id string) (bool, error) {
	if d.IsPartSelected(id) {
		return false, d.DeselectPart(id)
	}
	return true, d.SelectPart(id)
}

// OverridePart sets the user price of a selected part, nil price clears the override
func (d *Draft) OverridePart(id string, o PartOverride) error {
	if err := d.ensureEditable(); err != nil {
		return err
	}
	if !d.IsPartSelected(id) {
		return fmt.Errorf("%w: part %s", ErrNotSelected, id)
	}
	if o.Price == nil {
		delete(d.PartOverrides, id)
		return nil
	}
	if *o.Price < 0 {
		return fmt.Errorf("%w: price must not be negative", ErrInvalidOverride)
	}
	d.PartOverrides[id] = o
	return nil
}

// AddSlot appends a slot unless the exact (date, time) pair is already present.
// Returns false for duplicates.
func (d *Draft) AddSlot(slot TimeSlot) (bool, error) {
	if err := d.ensureEditable(); err != nil {
		return false, err
	}
	if slices.Contains(d.Slots, slot) {
		return false, nil
	}
	if len(d.Slots) >= MaxTimeSlots {
		return false, ErrTooManySlots
	}
	d.Slots = append(d.Slots, slot)
	return true, nil
}

// RemoveSlot removes the slot in any editable state, returns false if it was absent
func (d *Draft) RemoveSlot(slot TimeSlot) (bool, error) {
	if err := d.ensureEditable(); err != nil {
		return false, err
	}
	before := len(d.Slots)
	d.Slots = slices.DeleteFunc(d.Slots, func(s TimeSlot) bool { return s == slot })
	return len(d.Slots) != before, nil
}

// SetPostalCode validates and stores the postal code, empty value clears it
func (d *Draft) SetPostalCode(code string) error {
	if err := d.ensureEditable(); err != nil {
		return err
	}
	code = strings.TrimSpace(code)
	if code != "" {
		if err := ValidatePostalCode(code); err != nil {
			return err
		}
	}
	d.PostalCode = strings.ToUpper(code)
	return nil
}

// ValidatePostalCode checks a non-empty postal code
func ValidatePostalCode(code string) error {
	if code == "" || len(code) > MaxPostalCodeLength || !rePostalCode.MatchString(code) {
		return fmt.Errorf("%w: %q", ErrInvalidPostalCode, code)
	}
	return nil
}

// CanConfirm returns true once at least one job is selected, parts are optional
func (d *Draft) CanConfirm() bool {
	return len(d.JobIDs) > 0
}

// Next moves one step forward if the gating step is satisfied
func (d *Draft) Next() error {
	switch d.State {
	case StateSelectingJobs:
		if len(d.JobIDs) == 0 {
			return ErrNoJobsSelected
		}
		d.State = StateSelectingParts
	case StateSelectingParts:
		d.State = StateScheduling
	case StateScheduling:
		if len(d.Slots) == 0 {
			return ErrNoTimeSlots
		}
		d.State = StateSummary
	case StateSummary:
		return fmt.Errorf("%w: summary is finalized by submission", ErrInvalidTransition)
	case StateSubmitted:
		return ErrDraftSubmitted
	default:
		return fmt.Errorf("%w: unknown state %q", ErrInvalidTransition, d.State)
	}
	return nil
}

// Back moves one step backward; backward moves are unrestricted
func (d *Draft) Back() error {
	idx := slices.Index(draftStateOrder, d.State)
	switch {
	case d.State == StateSubmitted:
		return ErrDraftSubmitted
	case idx <= 0:
		return fmt.Errorf("%w: already at the first step", ErrInvalidTransition)
	}
	d.State = draftStateOrder[idx-1]
	return nil
}

// GoTo jumps back to an earlier step
func (d *Draft) GoTo(state DraftState) error {
	if d.State == StateSubmitted {
		return ErrDraftSubmitted
	}
	target := slices.Index(draftStateOrder, state)
	current := slices.Index(draftStateOrder, d.State)
	if target < 0 || target > current || state == StateSubmitted {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, d.State, state)
	}
	d.State = state
	return nil
}

// MarkSubmitted finalizes the draft after a successful submission
func (d *Draft) MarkSubmitted() error {
	if err := d.ensureEditable(); err != nil {
		return err
	}
	d.State = StateSubmitted
	return nil
}

// Clone returns a deep copy safe to hand out of the registry lock
func (d *Draft) Clone() *Draft {
	c := *d
	c.JobIDs = slices.Clone(d.JobIDs)
	c.PartIDs = slices.Clone(d.PartIDs)
	c.Slots = slices.Clone(d.Slots)
	c.JobOverrides = make(map[string]JobOverride, len(d.JobOverrides))
	for k, v := range d.JobOverrides {
		c.JobOverrides[k] = v
	}
	c.PartOverrides = make(map[string]PartOverride, len(d.PartOverrides))
	for k, v := range d.PartOverrides {
		c.PartOverrides[k] = v
	}
	return &c
}
