package bookings

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-FleetDesk/internal/api/handlers"
	"github.com/m04kA/SMC-FleetDesk/internal/domain"
)

const (
	msgInvalidBookingID = "некорректный ID бронирования"
	msgInvalidStatus    = "некорректный статус бронирования"
	msgInvalidActive    = "параметр active должен быть true или false"
)

var knownStatuses = map[domain.BookingStatus]struct{}{
	domain.StatusPending:    {},
	domain.StatusPaid:       {},
	domain.StatusInProgress: {},
	domain.StatusCompleted:  {},
	domain.StatusCancelled:  {},
}

type Handler struct {
	bookings      BookingsCollection
	adminBookings BookingsCollection
	service       BookingsService
	logger        Logger
}

func NewHandler(bookings, adminBookings BookingsCollection, service BookingsService, logger Logger) *Handler {
	return &Handler{
		bookings:      bookings,
		adminBookings: adminBookings,
		service:       service,
		logger:        logger,
	}
}

// List GET /api/v1/bookings
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, "GET /bookings", h.bookings)
}

// ListAll GET /api/v1/admin/bookings
func (h *Handler) ListAll(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, "GET /admin/bookings", h.adminBookings)
}

// Retry POST /api/v1/bookings/retry
func (h *Handler) Retry(w http.ResponseWriter, r *http.Request) {
	h.retry(w, r, "POST /bookings/retry", h.bookings)
}

// RetryAll POST /api/v1/admin/bookings/retry
func (h *Handler) RetryAll(w http.ResponseWriter, r *http.Request) {
	h.retry(w, r, "POST /admin/bookings/retry", h.adminBookings)
}

// Delete DELETE /api/v1/bookings/{bookingId}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	bookingID := mux.Vars(r)["bookingId"]
	if bookingID == "" {
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	if err := h.service.DeleteBooking(r.Context(), bookingID); err != nil {
		h.logger.Error("DELETE /bookings/{bookingId} - Failed to delete booking: booking_id=%s, error=%v", bookingID, err)
		handlers.RespondAPIError(w, err)
		return
	}

	h.logger.Info("DELETE /bookings/{bookingId} - Booking deleted: booking_id=%s", bookingID)
	handlers.RespondNoContent(w)
}

// Pay POST /api/v1/bookings/{bookingId}/pay
func (h *Handler) Pay(w http.ResponseWriter, r *http.Request) {
	bookingID := mux.Vars(r)["bookingId"]
	if bookingID == "" {
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	booking, err := h.service.PayBooking(r.Context(), bookingID)
	if err != nil {
		h.logger.Error("POST /bookings/{bookingId}/pay - Failed to pay booking: booking_id=%s, error=%v", bookingID, err)
		handlers.RespondAPIError(w, err)
		return
	}

	h.logger.Info("POST /bookings/{bookingId}/pay - Booking paid: booking_id=%s, status=%s", booking.ID, booking.Status)
	handlers.RespondJSON(w, http.StatusOK, handlers.NewBookingResponse(*booking))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request, route string, bookings BookingsCollection) {
	f, msg, ok := parseFilter(r)
	if !ok {
		h.logger.Warn("%s - Invalid filter: %s", route, r.URL.RawQuery)
		handlers.RespondBadRequest(w, msg)
		return
	}

	snap := bookings.Load(r.Context())
	if snap.Err != nil {
		h.logger.Warn("%s - Bookings fetch failed: %v", route, snap.Err)
	}

	handlers.RespondJSON(w, http.StatusOK, handlers.NewCollectionResponse(f.apply(snap), handlers.NewBookingResponse))
}

func (h *Handler) retry(w http.ResponseWriter, r *http.Request, route string, bookings BookingsCollection) {
	snap := bookings.Retry(r.Context())

	h.logger.Info("%s - Bookings refetched: count=%d, failed=%t", route, len(snap.Items), snap.Err != nil)
	handlers.RespondJSON(w, http.StatusOK, handlers.NewCollectionResponse(snap, handlers.NewBookingResponse))
}

func parseFilter(r *http.Request) (filter, string, bool) {
	var f filter
	q := r.URL.Query()

	// Получаем status из query параметров (опционально)
	if s := q.Get("status"); s != "" {
		status := domain.BookingStatus(s)
		if _, ok := knownStatuses[status]; !ok {
			return filter{}, msgInvalidStatus, false
		}
		f.status = &status
	}

	if a := q.Get("active"); a != "" {
		active, err := strconv.ParseBool(a)
		if err != nil {
			return filter{}, msgInvalidActive, false
		}
		f.active = active
	}

	f.carID = q.Get("carId")
	return f, "", true
}
