package bookings

import (
	"github.com/m04kA/SMC-FleetDesk/internal/domain"
	"github.com/m04kA/SMC-FleetDesk/internal/store"
)

// filter параметры фильтрации списка бронирований из query
type filter struct {
	status *domain.BookingStatus
	active bool
	carID  string
}

func (f filter) apply(snap store.Snapshot[domain.Booking]) store.Snapshot[domain.Booking] {
	if f.status == nil && !f.active && f.carID == "" {
		return snap
	}

	items := make([]domain.Booking, 0, len(snap.Items))
	for _, b := range snap.Items {
		if f.status != nil && b.Status != *f.status {
			continue
		}
		if f.active && !b.IsActive() {
			continue
		}
		if f.carID != "" && b.CarID != f.carID {
			continue
		}
		items = append(items, b)
	}
	snap.Items = items
	return snap
}
