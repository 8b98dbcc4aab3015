package profile

import (
	"strings"

	"github.com/m04kA/SMC-FleetDesk/internal/integrations/fleetapi"
)

// UpdateProfileRequest HTTP request model
type UpdateProfileRequest struct {
	Name       *string `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	PostalCode *string `json:"postalCode,omitempty" validate:"omitempty,max=10"`
}

func (r *UpdateProfileRequest) toAPI() fleetapi.ProfileInput {
	var input fleetapi.ProfileInput
	if r.Name != nil {
		name := strings.TrimSpace(*r.Name)
		input.Name = &name
	}
	if r.PostalCode != nil {
		code := strings.ToUpper(strings.TrimSpace(*r.PostalCode))
		input.PostalCode = &code
	}
	return input
}
