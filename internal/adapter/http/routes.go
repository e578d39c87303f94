package http

import (
	"github.com/go-chi/chi/v5"
)

// MountRoutes registers all API routes on the router.
func MountRoutes(r chi.Router, h *Handlers) {
	r.Get("/health", h.handleHealth)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/restaurants", func(r chi.Router) {
			r.Get("/", h.handleListRestaurants)
			r.Post("/", h.handleCreateRestaurant)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", h.handleGetRestaurant)
				r.Put("/", h.handleUpdateRestaurant)
				r.Put("/settings", h.handleUpdateSettings)
				r.Get("/availability", h.handleAvailability)
				r.Get("/reservations", h.handleListReservations)
				r.Post("/reservations", h.handleCreateReservation)
			})
		})

		r.Route("/reservations", func(r chi.Router) {
			r.Post("/{id}/cancel", h.handleCancelReservation)
			r.Post("/cancel/{token}", h.handleCancelByToken)
		})
	})
}
