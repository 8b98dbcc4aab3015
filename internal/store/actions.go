package store

import (
	"context"
	"slices"

	"github.com/m04kA/SMC-FleetDesk/internal/domain"
	"github.com/m04kA/SMC-FleetDesk/internal/integrations/fleetapi"
)

// Действия изменяют кэш только после успешного ответа fleet API

// CreateCar создает автомобиль и добавляет его в кэш
func (c *Container) CreateCar(ctx context.Context, input fleetapi.CarInput) (*domain.Car, error) {
	car, err := c.api.Cars.Create(ctx, input)
	if err != nil {
		c.log.Warn("CreateCar: failed: %v", err)
		return nil, err
	}

	c.Cars.Update(func(items []domain.Car) []domain.Car {
		return append(items, *car)
	})

	c.log.Info("CreateCar: car id=%s created", car.ID)
	return car, nil
}

// UpdateCar изменяет автомобиль и заменяет его в кэше
func (c *Container) UpdateCar(ctx context.Context, id string, input fleetapi.CarInput) (*domain.Car, error) {
	car, err := c.api.Cars.Update(ctx, id, input)
	if err != nil {
		c.log.Warn("UpdateCar: failed for car id=%s: %v", id, err)
		return nil, err
	}

	c.ReplaceCar(*car)
	c.log.Info("UpdateCar: car id=%s updated", car.ID)
	return car, nil
}

// DeleteCar удаляет автомобиль
func (c *Container) DeleteCar(ctx context.Context, id string) error {
	if err := c.api.Cars.Delete(ctx, id); err != nil {
		c.log.Warn("DeleteCar: failed for car id=%s: %v", id, err)
		return err
	}

	removeCar := func(items []domain.Car) []domain.Car {
		return slices.DeleteFunc(items, func(car domain.Car) bool { return car.ID == id })
	}
	c.Cars.Update(removeCar)
	c.AdminCars.Update(removeCar)
	c.PartItems.CleanCar(id)

	c.log.Info("DeleteCar: car id=%s deleted", id)
	return nil
}

// ReplaceCar заменяет автомобиль в кэшах (прогресс импорта, изменения)
func (c *Container) ReplaceCar(car domain.Car) {
	replace := func(items []domain.Car) []domain.Car {
		for i := range items {
			if items[i].ID == car.ID {
				items[i] = car
				return items
			}
		}
		return append(items, car)
	}

	c.Cars.Update(replace)
	c.AdminCars.Update(replace)
}

// FindCar ищет автомобиль в кэше, при пустом кэше загружает его
func (c *Container) FindCar(ctx context.Context, id string) (*domain.Car, error) {
	snap := c.Cars.Load(ctx)
	for _, car := range snap.Items {
		if car.ID == id {
			return &car, nil
		}
	}

	return c.api.Cars.Get(ctx, id)
}

// FetchCar получает актуальное состояние автомобиля с сервера и обновляет кэш
func (c *Container) FetchCar(ctx context.Context, id string) (*domain.Car, error) {
	car, err := c.api.Cars.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	c.ReplaceCar(*car)
	return car, nil
}

// CreateJob добавляет работу в справочник (администратор)
func (c *Container) CreateJob(ctx context.Context, input fleetapi.JobInput) (*domain.Job, error) {
	job, err := c.api.Jobs.Create(ctx, input)
	if err != nil {
		c.log.Warn("CreateJob: failed: %v", err)
		return nil, err
	}

	c.Jobs.Update(func(items []domain.Job) []domain.Job {
		return append(items, *job)
	})

	c.log.Info("CreateJob: job id=%s created", job.ID)
	return job, nil
}

// DeleteJob удаляет работу из справочника (администратор)
func (c *Container) DeleteJob(ctx context.Context, id string) error {
	if err := c.api.Jobs.Delete(ctx, id); err != nil {
		c.log.Warn("DeleteJob: failed for job id=%s: %v", id, err)
		return err
	}

	c.Jobs.Update(func(items []domain.Job) []domain.Job {
		return slices.DeleteFunc(items, func(job domain.Job) bool { return job.ID == id })
	})

	c.log.Info("DeleteJob: job id=%s deleted", id)
	return nil
}

// CreatePartItem добавляет запчасть на склад (администратор)
func (c *Container) CreatePartItem(ctx context.Context, input fleetapi.PartItemInput) (*domain.PartItem, error) {
	item, err := c.api.PartItems.Create(ctx, input)
	if err != nil {
		c.log.Warn("CreatePartItem: failed: %v", err)
		return nil, err
	}

	c.AllPartItems.Update(func(items []domain.PartItem) []domain.PartItem {
		return append(items, *item)
	})
	if item.CarID != nil && item.Available() {
		c.PartItems.UpdateCar(*item.CarID, func(items []domain.PartItem) []domain.PartItem {
			return append(items, *item)
		})
	}

	c.log.Info("CreatePartItem: part item id=%s created", item.ID)
	return item, nil
}

// DeletePartItem удаляет запчасть со склада (администратор)
func (c *Container) DeletePartItem(ctx context.Context, id string) error {
	if err := c.api.PartItems.Delete(ctx, id); err != nil {
		c.log.Warn("DeletePartItem: failed for part item id=%s: %v", id, err)
		return err
	}

	removeItem := func(items []domain.PartItem) []domain.PartItem {
		return slices.DeleteFunc(items, func(item domain.PartItem) bool { return item.ID == id })
	}
	c.AllPartItems.Update(removeItem)
	c.PartItems.Remove(id)

	c.log.Info("DeletePartItem: part item id=%s deleted", id)
	return nil
}

// DeleteBooking удаляет бронирование
func (c *Container) DeleteBooking(ctx context.Context, id string) error {
	if err := c.api.Bookings.Delete(ctx, id); err != nil {
		c.log.Warn("DeleteBooking: failed for booking id=%s: %v", id, err)
		return err
	}

	removeBooking := func(items []domain.Booking) []domain.Booking {
		return slices.DeleteFunc(items, func(b domain.Booking) bool { return b.ID == id })
	}
	c.Bookings.Update(removeBooking)
	c.AdminBookings.Update(removeBooking)

	c.log.Info("DeleteBooking: booking id=%s deleted", id)
	return nil
}

// PayBooking оплачивает бронирование, новый статус применяется на месте
func (c *Container) PayBooking(ctx context.Context, id string) (*domain.Booking, error) {
	booking, err := c.api.Bookings.Pay(ctx, id)
	if err != nil {
		c.log.Warn("PayBooking: failed for booking id=%s: %v", id, err)
		return nil, err
	}

	replace := func(items []domain.Booking) []domain.Booking {
		for i := range items {
			if items[i].ID == booking.ID {
				items[i] = *booking
			}
		}
		return items
	}
	c.Bookings.Update(replace)
	c.AdminBookings.Update(replace)

	c.log.Info("PayBooking: booking id=%s status=%s", booking.ID, booking.Status)
	return booking, nil
}

// AppendBooking добавляет созданное бронирование в кэш
func (c *Container) AppendBooking(booking domain.Booking) {
	c.Bookings.Update(func(items []domain.Booking) []domain.Booking {
		return append(items, booking)
	})
}
