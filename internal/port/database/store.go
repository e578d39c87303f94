// Package database defines the database store port (interface).
package database

import (
	"context"
	"time"

	"github.com/seatwise/seatwise/internal/domain/reservation"
	"github.com/seatwise/seatwise/internal/domain/restaurant"
)

// Store is the port interface for database operations.
//
// AdmitReservation and CancelReservation carry the engine's atomicity
// requirements: each must run as a single transaction so that two concurrent
// bookings cannot both pass the capacity check, and two concurrent cancels
// cannot both flip the status.
type Store interface {
	// Restaurants
	ListRestaurants(ctx context.Context) ([]restaurant.Restaurant, error)
	GetRestaurant(ctx context.Context, id string) (*restaurant.Restaurant, error)
	FindRestaurantByName(ctx context.Context, name string) (*restaurant.Restaurant, error)
	CreateRestaurant(ctx context.Context, req *restaurant.CreateRequest) (*restaurant.Restaurant, error)
	// UpdateRestaurant replaces the stored record, including its settings
	// (replace-on-write). Returns domain.ErrConflict when the version does
	// not match the stored one.
	UpdateRestaurant(ctx context.Context, r *restaurant.Restaurant) error

	// Reservations
	//
	// ListReservations returns confirmed reservations for a restaurant,
	// optionally narrowed to one UTC calendar day, ordered by time.
	ListReservations(ctx context.Context, restaurantID string, day *time.Time) ([]reservation.Reservation, error)
	GetReservation(ctx context.Context, id string) (*reservation.Reservation, error)
	FindReservationByToken(ctx context.Context, token string) (*reservation.Reservation, error)

	// AdmitReservation atomically checks remaining capacity and persists the
	// reservation. Covers are summed over confirmed reservations at
	// (res.RestaurantID, res.Date) whose time falls in window; if the sum
	// plus res.GroupSize exceeds ceiling the insert does not happen and
	// domain.ErrConflict is returned.
	AdmitReservation(ctx context.Context, res *reservation.Reservation, window reservation.Window, ceiling int) error

	// CancelReservation atomically flips a confirmed reservation to
	// cancelled and returns the updated entity. Returns domain.ErrNotFound
	// when absent and domain.ErrAlreadyCancelled when already cancelled.
	CancelReservation(ctx context.Context, id string) (*reservation.Reservation, error)
}
