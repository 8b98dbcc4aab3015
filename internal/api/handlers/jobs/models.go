package jobs

import (
	"strings"

	"github.com/m04kA/SMC-FleetDesk/internal/integrations/fleetapi"
)

// CreateJobRequest HTTP request model
type CreateJobRequest struct {
	Name         string  `json:"name" validate:"required,max=200"`
	Duration     int     `json:"duration" validate:"gt=0,lte=1440"`
	PricePerHour float64 `json:"pricePerHour" validate:"gte=0"`
	Quality      *string `json:"quality,omitempty" validate:"omitempty,max=50"`
}

func (r *CreateJobRequest) toAPI() fleetapi.JobInput {
	return fleetapi.JobInput{
		Name:         strings.TrimSpace(r.Name),
		Duration:     r.Duration,
		PricePerHour: r.PricePerHour,
		Quality:      r.Quality,
	}
}
