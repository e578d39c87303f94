package http

import (
	"net/http"

	"github.com/seatwise/seatwise/internal/domain/restaurant"
)

// handleListRestaurants lists all restaurants.
// GET /api/v1/restaurants
func (h *Handlers) handleListRestaurants(w http.ResponseWriter, r *http.Request) {
	list, err := h.Restaurants.List(r.Context())
	if err != nil {
		writeDomainError(w, err, "failed to list restaurants")
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// handleGetRestaurant returns one restaurant with its settings.
// GET /api/v1/restaurants/{id}
func (h *Handlers) handleGetRestaurant(w http.ResponseWriter, r *http.Request) {
	rest, err := h.Restaurants.Get(r.Context(), urlParam(r, "id"))
	if err != nil {
		writeDomainError(w, err, "restaurant not found")
		return
	}
	writeJSON(w, http.StatusOK, rest)
}

// handleCreateRestaurant registers a new restaurant.
// POST /api/v1/restaurants
func (h *Handlers) handleCreateRestaurant(w http.ResponseWriter, r *http.Request) {
	req, ok := readJSON[restaurant.CreateRequest](w, r)
	if !ok {
		return
	}

	rest, err := h.Restaurants.Create(r.Context(), &req)
	if err != nil {
		writeDomainError(w, err, "failed to create restaurant")
		return
	}
	writeJSON(w, http.StatusCreated, rest)
}

// handleUpdateRestaurant applies a partial update to a restaurant.
// PUT /api/v1/restaurants/{id}
func (h *Handlers) handleUpdateRestaurant(w http.ResponseWriter, r *http.Request) {
	req, ok := readJSON[restaurant.UpdateRequest](w, r)
	if !ok {
		return
	}

	rest, err := h.Restaurants.Update(r.Context(), urlParam(r, "id"), req)
	if err != nil {
		writeDomainError(w, err, "restaurant not found")
		return
	}
	writeJSON(w, http.StatusOK, rest)
}

// handleUpdateSettings replaces a restaurant's booking settings wholesale.
// PUT /api/v1/restaurants/{id}/settings
func (h *Handlers) handleUpdateSettings(w http.ResponseWriter, r *http.Request) {
	settings, ok := readJSON[restaurant.Settings](w, r)
	if !ok {
		return
	}

	rest, err := h.Restaurants.UpdateSettings(r.Context(), urlParam(r, "id"), settings)
	if err != nil {
		writeDomainError(w, err, "restaurant not found")
		return
	}
	writeJSON(w, http.StatusOK, rest)
}
