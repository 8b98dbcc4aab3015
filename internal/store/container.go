package store

import (
	"context"

	"github.com/m04kA/SMC-FleetDesk/internal/domain"
)

// Container состояние клиента: сессия и кэши коллекций.
// Создается один раз в main и передается во все слои.
type Container struct {
	api API
	log Logger

	Session *Session

	Jobs          *Collection[domain.Job]
	PartItems     *PartItems
	AllPartItems  *Collection[domain.PartItem]
	Cars          *Collection[domain.Car]
	Bookings      *Collection[domain.Booking]
	AdminBookings *Collection[domain.Booking]
	AdminCars     *Collection[domain.Car]

	onReset []func()
}

// NewContainer создает контейнер состояния
func NewContainer(api API, session *Session, log Logger, metrics FetchObserver) *Container {
	return &Container{
		api:     api,
		log:     log,
		Session: session,

		Jobs:          NewCollection[domain.Job]("jobs", api.Jobs.List, log, metrics),
		PartItems:     newPartItems(api.PartItems, log, metrics),
		AllPartItems:  NewCollection[domain.PartItem]("all_part_items", api.PartItems.List, log, metrics),
		Cars:          NewCollection[domain.Car]("cars", api.Cars.List, log, metrics),
		Bookings:      NewCollection[domain.Booking]("bookings", api.Bookings.List, log, metrics),
		AdminBookings: NewCollection[domain.Booking]("admin_bookings", api.Bookings.ListAll, log, metrics),
		AdminCars:     NewCollection[domain.Car]("admin_cars", api.Cars.ListAll, log, metrics),
	}
}

// AdminCollections коллекции, которые периодически обновляются для администратора
func (c *Container) AdminCollections() []Refreshable {
	return []Refreshable{c.AdminBookings, c.AdminCars}
}

// OnReset регистрирует состояние вне контейнера, которое сбрасывается вместе с сессией
// (открытые черновики). Вызывается при сборке приложения, до обработки запросов.
func (c *Container) OnReset(fn func()) {
	c.onReset = append(c.onReset, fn)
}

// Reset очищает все коллекции и связанное состояние (выход из сессии)
func (c *Container) Reset() {
	c.Jobs.Clean()
	c.PartItems.Clean()
	c.AllPartItems.Clean()
	c.Cars.Clean()
	c.Bookings.Clean()
	c.AdminBookings.Clean()
	c.AdminCars.Clean()

	for _, fn := range c.onReset {
		fn()
	}
}

// HandleUnauthorized глобальный logout при 401 от fleet API
func (c *Container) HandleUnauthorized() {
	c.log.Warn("HandleUnauthorized: token rejected by fleet API, resetting session")

	if err := c.Session.clear(context.Background()); err != nil {
		c.log.Error("HandleUnauthorized: failed to clear stored session: %v", err)
	}
	c.Reset()
}
