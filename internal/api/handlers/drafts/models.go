package drafts

import (
	"time"

	"github.com/m04kA/SMC-FleetDesk/internal/api/handlers"
	"github.com/m04kA/SMC-FleetDesk/internal/domain"
	draftsService "github.com/m04kA/SMC-FleetDesk/internal/service/drafts"
	"github.com/m04kA/SMC-FleetDesk/internal/service/pricing"
)

// OpenDraftRequest HTTP request model
type OpenDraftRequest struct {
	CarID string `json:"carId" validate:"required"`
}

// JobOverrideRequest цена и/или длительность работы, null сбрасывает значение к справочному
type JobOverrideRequest struct {
	Price    *float64 `json:"price" validate:"omitempty,gte=0"`
	Duration *int     `json:"duration" validate:"omitempty,gt=0,lte=1440"`
}

// PartOverrideRequest цена запчасти, null сбрасывает значение к справочному
type PartOverrideRequest struct {
	Price *float64 `json:"price" validate:"omitempty,gte=0"`
}

// SlotRequest дата и время начала
type SlotRequest struct {
	Date string `json:"date" validate:"required"` // "2025-10-15"
	Time string `json:"time" validate:"required"` // "10:00"
}

// PostalCodeRequest почтовый индекс, пустая строка - индекс из профиля
type PostalCodeRequest struct {
	PostalCode string `json:"postalCode" validate:"max=10"`
}

// GoToRequest переход на предыдущий шаг
type GoToRequest struct {
	State string `json:"state" validate:"required,oneof=selecting-jobs selecting-parts scheduling summary"`
}

// JobLineResponse строка цены работы
type JobLineResponse struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Price      float64 `json:"price"`
	Duration   int     `json:"duration"`
	Overridden bool    `json:"overridden"`
}

// PartLineResponse строка цены запчасти
type PartLineResponse struct {
	ID         string  `json:"id"`
	Title      string  `json:"title"`
	Price      float64 `json:"price"`
	Overridden bool    `json:"overridden"`
}

// TotalsResponse итоги черновика
type TotalsResponse struct {
	Jobs       float64 `json:"jobs"`
	Parts      float64 `json:"parts"`
	Subtotal   float64 `json:"subtotal"`
	VAT        float64 `json:"vat"`
	Total      float64 `json:"total"`
	IncludeVAT bool    `json:"includeVat"`
}

// DraftResponse HTTP response model
type DraftResponse struct {
	ID              string                  `json:"id"`
	CarID           string                  `json:"carId"`
	State           string                  `json:"state"`
	SelectedJobIDs  []string                `json:"selectedJobIds"`
	SelectedPartIDs []string                `json:"selectedPartIds"`
	Jobs            []JobLineResponse       `json:"jobs"`
	Parts           []PartLineResponse      `json:"parts"`
	Slots           []handlers.SlotResponse `json:"slots"`
	PostalCode      string                  `json:"postalCode,omitempty"`
	Totals          TotalsResponse          `json:"totals"`
	CanConfirm      bool                    `json:"canConfirm"`
	JobsFetching    bool                    `json:"jobsFetching"`
	PartsFetching   bool                    `json:"partsFetching"`
	JobsError       *string                 `json:"jobsError,omitempty"`
	PartsError      *string                 `json:"partsError,omitempty"`
	CreatedAt       string                  `json:"createdAt"`
}

func (r *JobOverrideRequest) toDomain() domain.JobOverride {
	return domain.JobOverride{Price: r.Price, Duration: r.Duration}
}

func (r *PartOverrideRequest) toDomain() domain.PartOverride {
	return domain.PartOverride{Price: r.Price}
}

// FromView конвертирует представление черновика в HTTP response
func FromView(v *draftsService.View) *DraftResponse {
	d := v.Draft
	resp := &DraftResponse{
		ID:              d.ID,
		CarID:           d.CarID,
		State:           string(d.State),
		SelectedJobIDs:  append([]string{}, d.JobIDs...),
		SelectedPartIDs: append([]string{}, d.PartIDs...),
		Jobs:            handlers.ConvertList(v.Jobs, newJobLineResponse),
		Parts:           handlers.ConvertList(v.Parts, newPartLineResponse),
		Slots:           handlers.ConvertList(d.Slots, handlers.NewSlotResponse),
		PostalCode:      d.PostalCode,
		Totals: TotalsResponse{
			Jobs:       v.Totals.Jobs,
			Parts:      v.Totals.Parts,
			Subtotal:   v.Totals.Subtotal,
			VAT:        v.Totals.VAT,
			Total:      v.Totals.Total,
			IncludeVAT: v.Totals.VATMode == pricing.IncludeVAT,
		},
		CanConfirm:    v.CanConfirm,
		JobsFetching:  v.JobsFetching,
		PartsFetching: v.PartsFetching,
		CreatedAt:     d.CreatedAt.Format(time.RFC3339),
	}

	if v.JobsError != nil {
		msg := handlers.ErrorMessage(v.JobsError)
		resp.JobsError = &msg
	}
	if v.PartsError != nil {
		msg := handlers.ErrorMessage(v.PartsError)
		resp.PartsError = &msg
	}

	return resp
}

func newJobLineResponse(l pricing.JobLine) JobLineResponse {
	return JobLineResponse{ID: l.ID, Name: l.Name, Price: l.Price, Duration: l.Duration, Overridden: l.Overridden}
}

func newPartLineResponse(l pricing.PartLine) PartLineResponse {
	return PartLineResponse{ID: l.ID, Title: l.Title, Price: l.Price, Overridden: l.Overridden}
}
