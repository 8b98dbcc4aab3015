package cars

import (
	"strings"

	"github.com/m04kA/SMC-FleetDesk/internal/integrations/fleetapi"
)

// CarRequest HTTP request model для создания и изменения автомобиля
type CarRequest struct {
	RegistrationNumber string  `json:"registrationNumber" validate:"required,max=20"`
	Make               string  `json:"make" validate:"required,max=50"`
	Model              string  `json:"model" validate:"required,max=50"`
	Year               int     `json:"year" validate:"gte=1900,lte=2100"`
	VIN                *string `json:"vin,omitempty" validate:"omitempty,len=17,alphanum"`
	Mileage            *int    `json:"mileage,omitempty" validate:"omitempty,gte=0"`
}

func (r *CarRequest) toAPI() fleetapi.CarInput {
	input := fleetapi.CarInput{
		RegistrationNumber: strings.ToUpper(strings.TrimSpace(r.RegistrationNumber)),
		Make:               strings.TrimSpace(r.Make),
		Model:              strings.TrimSpace(r.Model),
		Year:               r.Year,
		Mileage:            r.Mileage,
	}
	if r.VIN != nil {
		vin := strings.ToUpper(*r.VIN)
		input.VIN = &vin
	}
	return input
}
