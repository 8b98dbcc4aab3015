package create_booking

import (
	"github.com/m04kA/SMC-FleetDesk/internal/api/handlers"
	createBooking "github.com/m04kA/SMC-FleetDesk/internal/usecase/create_booking"
)

// SubmitResponse HTTP response model
type SubmitResponse struct {
	Booking    handlers.BookingResponse `json:"booking"`
	TotalPrice float64                  `json:"totalPrice"` // без НДС
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *SubmitResponse {
	return &SubmitResponse{
		Booking:    handlers.NewBookingResponse(resp.Booking),
		TotalPrice: resp.TotalPrice,
	}
}
