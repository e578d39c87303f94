// Package reservation defines the Reservation entity and its status machine.
package reservation

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"
)

// Status represents the lifecycle state of a reservation. The only legal
// transition is confirmed -> cancelled; cancelled is terminal.
type Status string

const (
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
)

// Reservation is a confirmed or cancelled booking. Reservations are never
// deleted; cancellation is a status flip, which keeps historical capacity
// accounting and audit intact.
//
// Date is the UTC-midnight calendar day; Time is the "HH:MM" slot start.
// CancelToken is the sole credential for unauthenticated self-service
// cancellation, so it never appears in JSON responses.
type Reservation struct {
	ID            string    `json:"id"`
	RestaurantID  string    `json:"restaurant_id"`
	Date          time.Time `json:"date"`
	Time          string    `json:"time"`
	CustomerName  string    `json:"customer_name"`
	CustomerEmail string    `json:"customer_email"`
	GroupSize     int       `json:"group_size"`
	Status        Status    `json:"status"`
	CancelToken   string    `json:"-"`
	CreatedAt     time.Time `json:"created_at"`
}

// CreateRequest holds the fields needed to request a new reservation.
// Date is an ISO-8601 instant; its UTC calendar day is what gets booked.
type CreateRequest struct {
	Date          string `json:"date"`
	Time          string `json:"time"`
	CustomerName  string `json:"customer_name"`
	CustomerEmail string `json:"customer_email"`
	GroupSize     int    `json:"group_size"`
}

// Window is the capacity accounting range for an admission check. A matching
// slot yields its [From, To) range; without a slot the window collapses to
// the exact requested time (Exact reports that case).
type Window struct {
	From string
	To   string
}

// Exact reports whether the window matches a single time value instead of a
// half-open range.
func (w Window) Exact() bool { return w.From == w.To }

// Contains reports whether the "HH:MM" time falls inside the window.
func (w Window) Contains(hhmm string) bool {
	if w.Exact() {
		return hhmm == w.From
	}
	return hhmm >= w.From && hhmm < w.To
}

// NewCancelToken returns a fresh 32-character hex token from a
// cryptographically strong source. The token is assigned once per
// reservation and never rotated.
func NewCancelToken() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate cancel token: %w", err)
	}
	return hex.EncodeToString(b), nil
}
