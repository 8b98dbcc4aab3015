package cars

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-FleetDesk/internal/api/handlers"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidCarID       = "некорректный ID автомобиля"
)

type Handler struct {
	cars      CarsCollection
	adminCars CarsCollection
	service   CarsService
	logger    Logger
}

func NewHandler(cars, adminCars CarsCollection, service CarsService, logger Logger) *Handler {
	return &Handler{
		cars:      cars,
		adminCars: adminCars,
		service:   service,
		logger:    logger,
	}
}

// List GET /api/v1/cars
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	snap := h.cars.Load(r.Context())
	if snap.Err != nil {
		h.logger.Warn("GET /cars - Cars fetch failed: %v", snap.Err)
	}

	handlers.RespondJSON(w, http.StatusOK, handlers.NewCollectionResponse(snap, handlers.NewCarResponse))
}

// ListAll GET /api/v1/admin/cars
func (h *Handler) ListAll(w http.ResponseWriter, r *http.Request) {
	snap := h.adminCars.Load(r.Context())
	if snap.Err != nil {
		h.logger.Warn("GET /admin/cars - Cars fetch failed: %v", snap.Err)
	}

	handlers.RespondJSON(w, http.StatusOK, handlers.NewCollectionResponse(snap, handlers.NewCarResponse))
}

// Retry POST /api/v1/cars/retry
func (h *Handler) Retry(w http.ResponseWriter, r *http.Request) {
	h.retry(w, r, "POST /cars/retry", h.cars)
}

// RetryAll POST /api/v1/admin/cars/retry
func (h *Handler) RetryAll(w http.ResponseWriter, r *http.Request) {
	h.retry(w, r, "POST /admin/cars/retry", h.adminCars)
}

func (h *Handler) retry(w http.ResponseWriter, r *http.Request, route string, cars CarsCollection) {
	snap := cars.Retry(r.Context())

	h.logger.Info("%s - Cars refetched: count=%d, failed=%t", route, len(snap.Items), snap.Err != nil)
	handlers.RespondJSON(w, http.StatusOK, handlers.NewCollectionResponse(snap, handlers.NewCarResponse))
}

// Create POST /api/v1/cars
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CarRequest
	if !h.decode(w, r, "POST /cars", &req) {
		return
	}

	car, err := h.service.CreateCar(r.Context(), req.toAPI())
	if err != nil {
		h.logger.Error("POST /cars - Failed to create car: registration=%s, error=%v", req.RegistrationNumber, err)
		handlers.RespondAPIError(w, err)
		return
	}

	h.logger.Info("POST /cars - Car created: car_id=%s", car.ID)
	handlers.RespondJSON(w, http.StatusCreated, handlers.NewCarResponse(*car))
}

// Update PUT /api/v1/cars/{carId}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	carID := mux.Vars(r)["carId"]
	if carID == "" {
		handlers.RespondBadRequest(w, msgInvalidCarID)
		return
	}

	var req CarRequest
	if !h.decode(w, r, "PUT /cars/{carId}", &req) {
		return
	}

	car, err := h.service.UpdateCar(r.Context(), carID, req.toAPI())
	if err != nil {
		h.logger.Error("PUT /cars/{carId} - Failed to update car: car_id=%s, error=%v", carID, err)
		handlers.RespondAPIError(w, err)
		return
	}

	h.logger.Info("PUT /cars/{carId} - Car updated: car_id=%s", car.ID)
	handlers.RespondJSON(w, http.StatusOK, handlers.NewCarResponse(*car))
}

// Delete DELETE /api/v1/cars/{carId}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	carID := mux.Vars(r)["carId"]
	if carID == "" {
		handlers.RespondBadRequest(w, msgInvalidCarID)
		return
	}

	if err := h.service.DeleteCar(r.Context(), carID); err != nil {
		h.logger.Error("DELETE /cars/{carId} - Failed to delete car: car_id=%s, error=%v", carID, err)
		handlers.RespondAPIError(w, err)
		return
	}

	h.logger.Info("DELETE /cars/{carId} - Car deleted: car_id=%s", carID)
	handlers.RespondNoContent(w)
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, route string, req *CarRequest) bool {
	if err := handlers.DecodeAndValidate(r, req); err != nil {
		h.logger.Warn("%s - Invalid request body: %v", route, err)
		if msg, ok := handlers.ValidationMessage(err); ok {
			handlers.RespondBadRequest(w, msg)
			return false
		}
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return false
	}
	return true
}
