package part_items

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-FleetDesk/internal/api/handlers"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidCarID       = "некорректный ID автомобиля"
	msgInvalidPartItemID  = "некорректный ID запчасти"
)

type Handler struct {
	carParts CarPartsCollection
	allParts PartsCollection
	service  PartItemsService
	logger   Logger
}

func NewHandler(carParts CarPartsCollection, allParts PartsCollection, service PartItemsService, logger Logger) *Handler {
	return &Handler{
		carParts: carParts,
		allParts: allParts,
		service:  service,
		logger:   logger,
	}
}

// ListForCar GET /api/v1/cars/{carId}/part-items
func (h *Handler) ListForCar(w http.ResponseWriter, r *http.Request) {
	carID := mux.Vars(r)["carId"]
	if carID == "" {
		handlers.RespondBadRequest(w, msgInvalidCarID)
		return
	}

	snap := h.carParts.ForCar(r.Context(), carID)
	if snap.Err != nil {
		h.logger.Warn("GET /cars/{carId}/part-items - Parts fetch failed: car_id=%s, error=%v", carID, snap.Err)
	}

	handlers.RespondJSON(w, http.StatusOK, handlers.NewCollectionResponse(snap, handlers.NewPartItemResponse))
}

// RetryForCar POST /api/v1/cars/{carId}/part-items/retry
func (h *Handler) RetryForCar(w http.ResponseWriter, r *http.Request) {
	carID := mux.Vars(r)["carId"]
	if carID == "" {
		handlers.RespondBadRequest(w, msgInvalidCarID)
		return
	}

	snap := h.carParts.RetryForCar(r.Context(), carID)

	h.logger.Info("POST /cars/{carId}/part-items/retry - Parts refetched: car_id=%s, count=%d, failed=%t", carID, len(snap.Items), snap.Err != nil)
	handlers.RespondJSON(w, http.StatusOK, handlers.NewCollectionResponse(snap, handlers.NewPartItemResponse))
}

// Clean POST /api/v1/part-items/clean
func (h *Handler) Clean(w http.ResponseWriter, r *http.Request) {
	h.carParts.Clean()

	h.logger.Info("POST /part-items/clean - Car parts cache cleaned")
	handlers.RespondNoContent(w)
}

// List GET /api/v1/part-items
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	snap := h.allParts.Load(r.Context())
	if snap.Err != nil {
		h.logger.Warn("GET /part-items - Parts fetch failed: %v", snap.Err)
	}

	handlers.RespondJSON(w, http.StatusOK, handlers.NewCollectionResponse(snap, handlers.NewPartItemResponse))
}

// RetryAll POST /api/v1/part-items/retry
func (h *Handler) RetryAll(w http.ResponseWriter, r *http.Request) {
	snap := h.allParts.Retry(r.Context())

	h.logger.Info("POST /part-items/retry - Parts refetched: count=%d, failed=%t", len(snap.Items), snap.Err != nil)
	handlers.RespondJSON(w, http.StatusOK, handlers.NewCollectionResponse(snap, handlers.NewPartItemResponse))
}

// Create POST /api/v1/part-items
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreatePartItemRequest
	if err := handlers.DecodeAndValidate(r, &req); err != nil {
		h.logger.Warn("POST /part-items - Invalid request body: %v", err)
		if msg, ok := handlers.ValidationMessage(err); ok {
			handlers.RespondBadRequest(w, msg)
			return
		}
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	item, err := h.service.CreatePartItem(r.Context(), req.toAPI())
	if err != nil {
		h.logger.Error("POST /part-items - Failed to create part item: title=%s, error=%v", req.Title, err)
		handlers.RespondAPIError(w, err)
		return
	}

	h.logger.Info("POST /part-items - Part item created: part_item_id=%s", item.ID)
	handlers.RespondJSON(w, http.StatusCreated, handlers.NewPartItemResponse(*item))
}

// Delete DELETE /api/v1/part-items/{partItemId}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["partItemId"]
	if id == "" {
		handlers.RespondBadRequest(w, msgInvalidPartItemID)
		return
	}

	if err := h.service.DeletePartItem(r.Context(), id); err != nil {
		h.logger.Error("DELETE /part-items/{partItemId} - Failed to delete: part_item_id=%s, error=%v", id, err)
		handlers.RespondAPIError(w, err)
		return
	}

	h.logger.Info("DELETE /part-items/{partItemId} - Part item deleted: part_item_id=%s", id)
	handlers.RespondNoContent(w)
}
