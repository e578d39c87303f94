// Package restaurant defines the Restaurant entity and its booking settings.
package restaurant

import "time"

// Restaurant represents a venue that accepts table reservations.
type Restaurant struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Logo         string    `json:"logo,omitempty"`
	PrimaryColor string    `json:"primary_color,omitempty"`
	Settings     Settings  `json:"settings"`
	Version      int       `json:"version"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// CreateRequest holds the fields needed to create a new restaurant.
type CreateRequest struct {
	Name         string    `json:"name"`
	Logo         string    `json:"logo,omitempty"`
	PrimaryColor string    `json:"primary_color,omitempty"`
	Settings     *Settings `json:"settings,omitempty"`
}

// UpdateRequest holds partial updates for a restaurant. Nil fields are left
// untouched; a non-nil Settings replaces the stored settings wholesale.
type UpdateRequest struct {
	Name         *string   `json:"name,omitempty"`
	Logo         *string   `json:"logo,omitempty"`
	PrimaryColor *string   `json:"primary_color,omitempty"`
	Settings     *Settings `json:"settings,omitempty"`
}
