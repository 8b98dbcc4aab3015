package fleetapi

import (
	"time"

	"github.com/m04kA/SMC-FleetDesk/internal/domain"
	"github.com/m04kA/SMC-FleetDesk/pkg/types"
)

// LoginRequest учетные данные для входа
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest регистрация клиента или механика
type RegisterRequest struct {
	Email      string  `json:"email"`
	Password   string  `json:"password"`
	Name       string  `json:"name"`
	PostalCode *string `json:"postalCode,omitempty"`
}

// CarInput данные для создания/обновления автомобиля
type CarInput struct {
	RegistrationNumber string  `json:"registrationNumber"`
	Make               string  `json:"make"`
	Model              string  `json:"model"`
	Year               int     `json:"year"`
	VIN                *string `json:"vin,omitempty"`
	Mileage            *int    `json:"mileage,omitempty"`
}

// JobInput данные новой работы
type JobInput struct {
	Name         string  `json:"name"`
	Duration     int     `json:"duration"`
	PricePerHour float64 `json:"pricePerHour"`
	Quality      *string `json:"quality,omitempty"`
}

// PartItemInput данные новой запчасти
type PartItemInput struct {
	Title            string  `json:"title"`
	Quality          string  `json:"quality"`
	Price            float64 `json:"price"`
	PriceForConsumer float64 `json:"priceForConsumer"`
	Quantity         int     `json:"quantity"`
	CarID            *string `json:"carId,omitempty"`
}

// ProfileInput изменение профиля
type ProfileInput struct {
	Name       *string `json:"name,omitempty"`
	PostalCode *string `json:"postalCode,omitempty"`
}

// CreateBookingRequest атомарное создание бронирования со снимком цен
type CreateBookingRequest struct {
	CarID      string
	Jobs       []domain.BookedJob
	Parts      []domain.BookedPart
	Schedule   []domain.TimeSlot
	PostalCode string
	TotalPrice float64
}

// DTO модели API

type authResponse struct {
	Token string  `json:"token"`
	User  userDTO `json:"user"`
}

type userDTO struct {
	ID         string  `json:"id"`
	Email      string  `json:"email"`
	Name       string  `json:"name"`
	Role       string  `json:"role"`
	PostalCode *string `json:"postalCode,omitempty"`
}

type jobDTO struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Duration     int     `json:"duration"`
	PricePerHour float64 `json:"pricePerHour"`
	Quality      *string `json:"quality,omitempty"`
}

type partItemDTO struct {
	ID               string  `json:"id"`
	Title            string  `json:"title"`
	Quality          string  `json:"quality"`
	Price            float64 `json:"price"`
	PriceForConsumer float64 `json:"priceForConsumer"`
	InStock          bool    `json:"inStock"`
	Quantity         int     `json:"quantity"`
	CarID            *string `json:"carId,omitempty"`
}

type importStatusDTO struct {
	State     string  `json:"state"`
	Processed int     `json:"processed"`
	Total     int     `json:"total"`
	Error     *string `json:"error,omitempty"`
}

type carDTO struct {
	ID                 string           `json:"id"`
	OwnerID            string           `json:"ownerId"`
	RegistrationNumber string           `json:"registrationNumber"`
	Make               string           `json:"make"`
	Model              string           `json:"model"`
	Year               int              `json:"year"`
	VIN                *string          `json:"vin,omitempty"`
	Mileage            *int             `json:"mileage,omitempty"`
	ImportStatus       *importStatusDTO `json:"importStatus,omitempty"`
	CreatedAt          time.Time        `json:"createdAt"`
	UpdatedAt          time.Time        `json:"updatedAt"`
}

type bookedJobDTO struct {
	JobID    string  `json:"jobId"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Duration int     `json:"duration"`
}

type bookedPartDTO struct {
	PartItemID string  `json:"partItemId"`
	Title      string  `json:"title"`
	Price      float64 `json:"price"`
}

type slotDTO struct {
	Date string `json:"date"`
	Time string `json:"time"`
}

type bookingDTO struct {
	ID         string          `json:"id"`
	CarID      string          `json:"carId"`
	UserID     string          `json:"userId"`
	Jobs       []bookedJobDTO  `json:"jobs"`
	Parts      []bookedPartDTO `json:"parts"`
	Schedule   []slotDTO       `json:"schedule"`
	PostalCode string          `json:"postalCode"`
	Status     string          `json:"status"`
	MechanicID *string         `json:"mechanicId,omitempty"`
	TotalPrice float64         `json:"totalPrice"`
	CreatedAt  time.Time       `json:"createdAt"`
	UpdatedAt  time.Time       `json:"updatedAt"`
}

type createBookingDTO struct {
	CarID      string          `json:"carId"`
	Jobs       []bookedJobDTO  `json:"jobs"`
	Parts      []bookedPartDTO `json:"parts"`
	Schedule   []slotDTO       `json:"schedule"`
	PostalCode string          `json:"postalCode"`
	TotalPrice float64         `json:"totalPrice"`
}

// Методы конвертации

func (d userDTO) toDomain() domain.User {
	return domain.User{
		ID:         d.ID,
		Email:      d.Email,
		Name:       d.Name,
		Role:       domain.Role(d.Role),
		PostalCode: d.PostalCode,
	}
}

func (d jobDTO) toDomain() domain.Job {
	return domain.Job{
		ID:           d.ID,
		Name:         d.Name,
		Duration:     d.Duration,
		PricePerHour: d.PricePerHour,
		Quality:      d.Quality,
	}
}

func (d partItemDTO) toDomain() domain.PartItem {
	return domain.PartItem{
		ID:               d.ID,
		Title:            d.Title,
		Quality:          d.Quality,
		Price:            d.Price,
		PriceForConsumer: d.PriceForConsumer,
		InStock:          d.InStock,
		Quantity:         d.Quantity,
		CarID:            d.CarID,
	}
}

func (d carDTO) toDomain() domain.Car {
	car := domain.Car{
		ID:                 d.ID,
		OwnerID:            d.OwnerID,
		RegistrationNumber: d.RegistrationNumber,
		Make:               d.Make,
		Model:              d.Model,
		Year:               d.Year,
		VIN:                d.VIN,
		Mileage:            d.Mileage,
		Import:             domain.ImportProgress{State: domain.ImportIdle},
		CreatedAt:          d.CreatedAt,
		UpdatedAt:          d.UpdatedAt,
	}

	if d.ImportStatus != nil {
		state := domain.ImportState(d.ImportStatus.State)
		if state == "" {
			state = domain.ImportIdle
		}
		car.Import = domain.ImportProgress{
			State:     state,
			Processed: d.ImportStatus.Processed,
			Total:     d.ImportStatus.Total,
			Error:     d.ImportStatus.Error,
		}
	}

	return car
}

func (d bookingDTO) toDomain() domain.Booking {
	b := domain.Booking{
		ID:         d.ID,
		CarID:      d.CarID,
		UserID:     d.UserID,
		Jobs:       make([]domain.BookedJob, len(d.Jobs)),
		Parts:      make([]domain.BookedPart, len(d.Parts)),
		Schedule:   make([]domain.TimeSlot, len(d.Schedule)),
		PostalCode: d.PostalCode,
		Status:     domain.BookingStatus(d.Status),
		MechanicID: d.MechanicID,
		TotalPrice: d.TotalPrice,
		CreatedAt:  d.CreatedAt,
		UpdatedAt:  d.UpdatedAt,
	}

	for i, j := range d.Jobs {
		b.Jobs[i] = domain.BookedJob{JobID: j.JobID, Name: j.Name, Price: j.Price, Duration: j.Duration}
	}
	for i, p := range d.Parts {
		b.Parts[i] = domain.BookedPart{PartItemID: p.PartItemID, Title: p.Title, Price: p.Price}
	}
	for i, s := range d.Schedule {
		b.Schedule[i] = domain.TimeSlot{Date: types.DateString(s.Date), Time: types.TimeString(s.Time)}
	}

	return b
}

func newCreateBookingDTO(req *CreateBookingRequest) createBookingDTO {
	dto := createBookingDTO{
		CarID:      req.CarID,
		Jobs:       make([]bookedJobDTO, len(req.Jobs)),
		Parts:      make([]bookedPartDTO, len(req.Parts)),
		Schedule:   make([]slotDTO, len(req.Schedule)),
		PostalCode: req.PostalCode,
		TotalPrice: req.TotalPrice,
	}

	for i, j := range req.Jobs {
		dto.Jobs[i] = bookedJobDTO{JobID: j.JobID, Name: j.Name, Price: j.Price, Duration: j.Duration}
	}
	for i, p := range req.Parts {
		dto.Parts[i] = bookedPartDTO{PartItemID: p.PartItemID, Title: p.Title, Price: p.Price}
	}
	for i, s := range req.Schedule {
		dto.Schedule[i] = slotDTO{Date: s.Date.String(), Time: s.Time.String()}
	}

	return dto
}

func convertList[D any, T any](items []D, convert func(D) T) []T {
	result := make([]T, len(items))
	for i, item := range items {
		result[i] = convert(item)
	}
	return result
}
