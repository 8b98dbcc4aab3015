package handlers

import (
	"time"

	"github.com/m04kA/SMC-FleetDesk/internal/domain"
	"github.com/m04kA/SMC-FleetDesk/internal/integrations/fleetapi"
	"github.com/m04kA/SMC-FleetDesk/internal/store"
)

const msgFetchFailed = "не удалось загрузить данные"

// UserResponse HTTP модель пользователя
type UserResponse struct {
	ID         string  `json:"id"`
	Email      string  `json:"email"`
	Name       string  `json:"name"`
	Role       string  `json:"role"`
	PostalCode *string `json:"postalCode,omitempty"`
}

// ImportProgressResponse HTTP модель прогресса импорта запчастей
type ImportProgressResponse struct {
	State     string  `json:"state"`
	Processed int     `json:"processed"`
	Total     int     `json:"total"`
	Error     *string `json:"error,omitempty"`
}

// CarResponse HTTP модель автомобиля
type CarResponse struct {
	ID                 string                 `json:"id"`
	OwnerID            string                 `json:"ownerId"`
	RegistrationNumber string                 `json:"registrationNumber"`
	Make               string                 `json:"make"`
	Model              string                 `json:"model"`
	Year               int                    `json:"year"`
	VIN                *string                `json:"vin,omitempty"`
	Mileage            *int                   `json:"mileage,omitempty"`
	Import             ImportProgressResponse `json:"import"`
	CreatedAt          string                 `json:"createdAt"`
	UpdatedAt          string                 `json:"updatedAt"`
}

// JobResponse HTTP модель работы
type JobResponse struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Duration     int     `json:"duration"`
	PricePerHour float64 `json:"pricePerHour"`
	Quality      *string `json:"quality,omitempty"`
}

// PartItemResponse HTTP модель запчасти
type PartItemResponse struct {
	ID               string  `json:"id"`
	Title            string  `json:"title"`
	Quality          string  `json:"quality"`
	Price            float64 `json:"price"`
	PriceForConsumer float64 `json:"priceForConsumer"`
	InStock          bool    `json:"inStock"`
	Quantity         int     `json:"quantity"`
	CarID            *string `json:"carId,omitempty"`
}

// SlotResponse HTTP модель временного слота
type SlotResponse struct {
	Date string `json:"date"`
	Time string `json:"time"`
}

// BookedJobResponse работа в составе бронирования
type BookedJobResponse struct {
	JobID    string  `json:"jobId"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Duration int     `json:"duration"`
}

// BookedPartResponse запчасть в составе бронирования
type BookedPartResponse struct {
	PartItemID string  `json:"partItemId"`
	Title      string  `json:"title"`
	Price      float64 `json:"price"`
}

// BookingResponse HTTP модель бронирования
type BookingResponse struct {
	ID         string               `json:"id"`
	CarID      string               `json:"carId"`
	UserID     string               `json:"userId"`
	Jobs       []BookedJobResponse  `json:"jobs"`
	Parts      []BookedPartResponse `json:"parts"`
	Schedule   []SlotResponse       `json:"schedule"`
	PostalCode string               `json:"postalCode"`
	Status     string               `json:"status"`
	MechanicID *string              `json:"mechanicId,omitempty"`
	TotalPrice float64              `json:"totalPrice"`
	CanBePaid  bool                 `json:"canBePaid"`
	CreatedAt  string               `json:"createdAt"`
	UpdatedAt  string               `json:"updatedAt"`
}

// CollectionResponse состояние клиентской коллекции
type CollectionResponse[T any] struct {
	Items     []T     `json:"items"`
	Loaded    bool    `json:"loaded"`
	Fetching  bool    `json:"fetching"`
	Error     *string `json:"error,omitempty"`
	FetchedAt *string `json:"fetchedAt,omitempty"`
}

// Методы конвертации

func NewUserResponse(u domain.User) UserResponse {
	return UserResponse{
		ID:         u.ID,
		Email:      u.Email,
		Name:       u.Name,
		Role:       string(u.Role),
		PostalCode: u.PostalCode,
	}
}

func NewCarResponse(c domain.Car) CarResponse {
	return CarResponse{
		ID:                 c.ID,
		OwnerID:            c.OwnerID,
		RegistrationNumber: c.RegistrationNumber,
		Make:               c.Make,
		Model:              c.Model,
		Year:               c.Year,
		VIN:                c.VIN,
		Mileage:            c.Mileage,
		Import: ImportProgressResponse{
			State:     string(c.Import.State),
			Processed: c.Import.Processed,
			Total:     c.Import.Total,
			Error:     c.Import.Error,
		},
		CreatedAt: formatTime(c.CreatedAt),
		UpdatedAt: formatTime(c.UpdatedAt),
	}
}

func NewJobResponse(j domain.Job) JobResponse {
	return JobResponse{
		ID:           j.ID,
		Name:         j.Name,
		Duration:     j.Duration,
		PricePerHour: j.PricePerHour,
		Quality:      j.Quality,
	}
}

func NewPartItemResponse(p domain.PartItem) PartItemResponse {
	return PartItemResponse{
		ID:               p.ID,
		Title:            p.Title,
		Quality:          p.Quality,
		Price:            p.Price,
		PriceForConsumer: p.PriceForConsumer,
		InStock:          p.InStock,
		Quantity:         p.Quantity,
		CarID:            p.CarID,
	}
}

func NewSlotResponse(s domain.TimeSlot) SlotResponse {
	return SlotResponse{Date: s.Date.String(), Time: s.Time.String()}
}

func NewBookingResponse(b domain.Booking) BookingResponse {
	resp := BookingResponse{
		ID:         b.ID,
		CarID:      b.CarID,
		UserID:     b.UserID,
		Jobs:       make([]BookedJobResponse, len(b.Jobs)),
		Parts:      make([]BookedPartResponse, len(b.Parts)),
		Schedule:   ConvertList(b.Schedule, NewSlotResponse),
		PostalCode: b.PostalCode,
		Status:     string(b.Status),
		MechanicID: b.MechanicID,
		TotalPrice: b.TotalPrice,
		CanBePaid:  b.CanBePaid(),
		CreatedAt:  formatTime(b.CreatedAt),
		UpdatedAt:  formatTime(b.UpdatedAt),
	}

	for i, j := range b.Jobs {
		resp.Jobs[i] = BookedJobResponse{JobID: j.JobID, Name: j.Name, Price: j.Price, Duration: j.Duration}
	}
	for i, p := range b.Parts {
		resp.Parts[i] = BookedPartResponse{PartItemID: p.PartItemID, Title: p.Title, Price: p.Price}
	}

	return resp
}

// NewCollectionResponse конвертирует снимок коллекции
func NewCollectionResponse[T any, R any](snap store.Snapshot[T], convert func(T) R) CollectionResponse[R] {
	resp := CollectionResponse[R]{
		Items:    ConvertList(snap.Items, convert),
		Loaded:   snap.Loaded,
		Fetching: snap.Fetching,
	}

	if snap.Err != nil {
		msg := ErrorMessage(snap.Err)
		resp.Error = &msg
	}
	if !snap.FetchedAt.IsZero() {
		at := formatTime(snap.FetchedAt)
		resp.FetchedAt = &at
	}

	return resp
}

// ErrorMessage сообщение ошибки загрузки для клиента
func ErrorMessage(err error) string {
	if msg, ok := fleetapi.UserMessage(err); ok {
		return msg
	}
	return msgFetchFailed
}

// ConvertList применяет convert к каждому элементу, nil превращается в пустой список
func ConvertList[T any, R any](items []T, convert func(T) R) []R {
	result := make([]R, len(items))
	for i, item := range items {
		result[i] = convert(item)
	}
	return result
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}
