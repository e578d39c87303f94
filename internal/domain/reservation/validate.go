package reservation

import (
	"fmt"
	"strings"
	"time"

	"github.com/seatwise/seatwise/internal/domain"
	"github.com/seatwise/seatwise/internal/domain/restaurant"
)

// Validate checks the shape of a creation request and returns the parsed
// reservation day (UTC midnight). Temporal and capacity rules are enforced
// later by the admission gate, not here.
func (req *CreateRequest) Validate() (time.Time, error) {
	req.CustomerName = strings.TrimSpace(req.CustomerName)
	if req.CustomerName == "" {
		return time.Time{}, fmt.Errorf("%w: customer_name is required", domain.ErrValidation)
	}

	req.CustomerEmail = strings.TrimSpace(strings.ToLower(req.CustomerEmail))
	if !validEmail(req.CustomerEmail) {
		return time.Time{}, fmt.Errorf("%w: customer_email is not a valid email address", domain.ErrValidation)
	}

	if req.GroupSize < 1 {
		return time.Time{}, fmt.Errorf("%w: group_size must be at least 1", domain.ErrValidation)
	}

	if !restaurant.ValidTime(req.Time) {
		return time.Time{}, fmt.Errorf("%w: time must be HH:MM", domain.ErrValidation)
	}

	day, err := ParseDay(req.Date)
	if err != nil {
		return time.Time{}, err
	}
	return day, nil
}

// ParseDay parses an ISO-8601 date or instant and normalizes it to the UTC
// midnight of its calendar day. A bare "YYYY-MM-DD" is treated as UTC.
// Request bodies accept either form; query parameters use ParseDate.
func ParseDay(s string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return restaurant.Day(t), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: date must be ISO-8601 (YYYY-MM-DD or RFC 3339)", domain.ErrValidation)
}

// ParseDate parses a calendar date in strict "YYYY-MM-DD" form. Instants
// with a time component are rejected.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date must be YYYY-MM-DD", domain.ErrValidation)
	}
	return restaurant.Day(t), nil
}

// validEmail does a basic structural check without external dependencies.
func validEmail(email string) bool {
	parts := strings.Split(email, "@")
	if len(parts) != 2 {
		return false
	}
	return len(parts[0]) > 0 && strings.Contains(parts[1], ".")
}
