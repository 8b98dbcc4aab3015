package create_booking

import (
	"github.com/m04kA/SMC-FleetDesk/internal/domain"
)

// Request модель запроса на отправку черновика
type Request struct {
	DraftID string // ID открытого черновика
}

// Response модель ответа с созданным бронированием
type Response struct {
	Booking    domain.Booking // Бронирование в ответе fleet API
	TotalPrice float64        // Отправленный итог без НДС
}
