package http

import (
	"net/http"
	"time"

	"github.com/seatwise/seatwise/internal/domain/reservation"
	"github.com/seatwise/seatwise/internal/service"
)

// Handlers bundles the HTTP handlers and the services they call.
type Handlers struct {
	Restaurants *service.RestaurantService
	Bookings    *service.BookingService
}

func NewHandlers(restaurants *service.RestaurantService, bookings *service.BookingService) *Handlers {
	return &Handlers{Restaurants: restaurants, Bookings: bookings}
}

// handleAvailability returns per-slot availability for a restaurant on a day.
// GET /api/v1/restaurants/{id}/availability?date=YYYY-MM-DD
func (h *Handlers) handleAvailability(w http.ResponseWriter, r *http.Request) {
	id := urlParam(r, "id")

	day, err := reservation.ParseDate(r.URL.Query().Get("date"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "date parameter must be YYYY-MM-DD")
		return
	}

	slots, err := h.Bookings.Availability(r.Context(), id, day)
	if err != nil {
		writeDomainError(w, err, "restaurant not found")
		return
	}
	writeJSON(w, http.StatusOK, slots)
}

// handleCreateReservation admits a reservation against slot capacity.
// POST /api/v1/restaurants/{id}/reservations
func (h *Handlers) handleCreateReservation(w http.ResponseWriter, r *http.Request) {
	id := urlParam(r, "id")

	req, ok := readJSON[reservation.CreateRequest](w, r)
	if !ok {
		return
	}

	res, err := h.Bookings.CreateReservation(r.Context(), id, req)
	if err != nil {
		writeDomainError(w, err, "restaurant not found")
		return
	}
	writeJSON(w, http.StatusCreated, res)
}

// handleListReservations lists confirmed reservations, optionally for one day.
// GET /api/v1/restaurants/{id}/reservations?date=YYYY-MM-DD
func (h *Handlers) handleListReservations(w http.ResponseWriter, r *http.Request) {
	id := urlParam(r, "id")

	var day *time.Time
	if raw := r.URL.Query().Get("date"); raw != "" {
		d, err := reservation.ParseDate(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "date parameter must be YYYY-MM-DD")
			return
		}
		day = &d
	}

	list, err := h.Bookings.ListReservations(r.Context(), id, day)
	if err != nil {
		writeDomainError(w, err, "restaurant not found")
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// handleCancelReservation cancels a reservation by ID.
// POST /api/v1/reservations/{id}/cancel
func (h *Handlers) handleCancelReservation(w http.ResponseWriter, r *http.Request) {
	id := urlParam(r, "id")

	res, err := h.Bookings.Cancel(r.Context(), id)
	if err != nil {
		writeDomainError(w, err, "reservation not found")
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// handleCancelByToken cancels a reservation using its opaque cancel token.
// The token is the sole credential; no other auth is required.
// POST /api/v1/reservations/cancel/{token}
func (h *Handlers) handleCancelByToken(w http.ResponseWriter, r *http.Request) {
	token := urlParam(r, "token")

	res, err := h.Bookings.CancelByToken(r.Context(), token)
	if err != nil {
		writeDomainError(w, err, "reservation not found")
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// handleHealth reports liveness.
func (h *Handlers) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
