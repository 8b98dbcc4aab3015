// Package pricing derives booking price lines and totals from a selection.
// Lines are always computed on read from the selection, the reference data and
// the overrides, so there is no second list to keep in sync with the selection.
package pricing

import (
	"math"

	"github.com/m04kA/SMC-FleetDesk/internal/domain"
)

// VATMode tells whether a total is shown with VAT.
// The job-selection running total is pre-VAT, summary cards include VAT.
type VATMode int

const (
	ExcludeVAT VATMode = iota
	IncludeVAT
)

// JobLine derived price of a selected job
type JobLine struct {
	ID         string
	Name       string
	Price      float64
	Duration   int
	Overridden bool
}

// PartLine derived price of a selected part
type PartLine struct {
	ID         string
	Title      string
	Price      float64
	Overridden bool
}

// Totals aggregated amounts of a selection
type Totals struct {
	Jobs     float64
	Parts    float64
	Subtotal float64
	VAT      float64
	Total    float64
	VATMode  VATMode
}

// Round2 rounds half away from zero to 2 decimals
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// JobPrice default price of a job for the given duration: hourly rate / 60 * minutes
func JobPrice(pricePerHour float64, duration int) float64 {
	return Round2(pricePerHour / domain.MinutesPerHour * float64(duration))
}

// JobLines builds one line per selected job that exists in the reference list.
// Ids without a reference record are skipped (they stay selected in the draft).
func JobLines(selected []string, reference []domain.Job, overrides map[string]domain.JobOverride) []JobLine {
	byID := make(map[string]domain.Job, len(reference))
	for _, job := range reference {
		byID[job.ID] = job
	}

	lines := make([]JobLine, 0, len(selected))
	for _, id := range selected {
		job, ok := byID[id]
		if !ok {
			continue
		}

		line := JobLine{ID: job.ID, Name: job.Name, Duration: job.Duration}
		override, hasOverride := overrides[id]
		if hasOverride && override.Duration != nil {
			line.Duration = *override.Duration
			line.Overridden = true
		}

		if hasOverride && override.Price != nil {
			line.Price = Round2(*override.Price)
			line.Overridden = true
		} else {
			line.Price = JobPrice(job.PricePerHour, line.Duration)
		}

		lines = append(lines, line)
	}

	return lines
}

// PartLines builds one line per selected part that exists in the reference list.
// The default price is the consumer price.
func PartLines(selected []string, reference []domain.PartItem, overrides map[string]domain.PartOverride) []PartLine {
	byID := make(map[string]domain.PartItem, len(reference))
	for _, part := range reference {
		byID[part.ID] = part
	}

	lines := make([]PartLine, 0, len(selected))
	for _, id := range selected {
		part, ok := byID[id]
		if !ok {
			continue
		}

		line := PartLine{ID: part.ID, Title: part.Title, Price: Round2(part.PriceForConsumer)}
		if override, ok := overrides[id]; ok && override.Price != nil {
			line.Price = Round2(*override.Price)
			line.Overridden = true
		}

		lines = append(lines, line)
	}

	return lines
}

// Total sums lines rounded one by one, then rounds the sum.
// This can drift by a cent from rounding the raw sum once; bookings already rely on it.
func Total(jobs []JobLine, parts []PartLine) float64 {
	return Round2(sumJobs(jobs) + sumParts(parts))
}

// Summarize computes totals with or without VAT
func Summarize(jobs []JobLine, parts []PartLine, mode VATMode, vatRate float64) Totals {
	t := Totals{
		Jobs:     Round2(sumJobs(jobs)),
		Parts:    Round2(sumParts(parts)),
		Subtotal: Total(jobs, parts),
		VATMode:  mode,
	}

	t.Total = t.Subtotal
	if mode == IncludeVAT {
		t.Total = Round2(t.Subtotal * (1 + vatRate))
		t.VAT = Round2(t.Total - t.Subtotal)
	}

	return t
}

func sumJobs(jobs []JobLine) float64 {
	var sum float64
	for _, line := range jobs {
		sum += Round2(line.Price)
	}
	return sum
}

func sumParts(parts []PartLine) float64 {
	var sum float64
	for _, line := range parts {
		sum += Round2(line.Price)
	}
	return sum
}

// ToBookedJobs copies job lines into booking snapshots
func ToBookedJobs(lines []JobLine) []domain.BookedJob {
	result := make([]domain.BookedJob, len(lines))
	for i, line := range lines {
		result[i] = domain.BookedJob{
			JobID:    line.ID,
			Name:     line.Name,
			Price:    line.Price,
			Duration: line.Duration,
		}
	}
	return result
}

// ToBookedParts copies part lines into booking snapshots
func ToBookedParts(lines []PartLine) []domain.BookedPart {
	result := make([]domain.BookedPart, len(lines))
	for i, line := range lines {
		result[i] = domain.BookedPart{
			PartItemID: line.ID,
			Title:      line.Title,
			Price:      line.Price,
		}
	}
	return result
}
