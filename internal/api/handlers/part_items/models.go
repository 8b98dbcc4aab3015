package part_items

import (
	"strings"

	"github.com/m04kA/SMC-FleetDesk/internal/integrations/fleetapi"
)

// CreatePartItemRequest HTTP request model. Quantity -1 означает, что остаток не отслеживается.
type CreatePartItemRequest struct {
	Title            string  `json:"title" validate:"required,max=200"`
	Quality          string  `json:"quality" validate:"required,max=50"`
	Price            float64 `json:"price" validate:"gte=0"`
	PriceForConsumer float64 `json:"priceForConsumer" validate:"gte=0"`
	Quantity         int     `json:"quantity" validate:"gte=-1"`
	CarID            *string `json:"carId,omitempty"`
}

func (r *CreatePartItemRequest) toAPI() fleetapi.PartItemInput {
	return fleetapi.PartItemInput{
		Title:            strings.TrimSpace(r.Title),
		Quality:          strings.TrimSpace(r.Quality),
		Price:            r.Price,
		PriceForConsumer: r.PriceForConsumer,
		Quantity:         r.Quantity,
		CarID:            r.CarID,
	}
}
