// Package domain provides shared domain-level sentinel errors.
package domain

import "errors"

// ErrNotFound indicates the requested entity does not exist.
var ErrNotFound = errors.New("not found")

// ErrConflict indicates the request lost to existing state: the slot has no
// remaining capacity, a name is already taken, or another writer got there
// first (optimistic locking).
var ErrConflict = errors.New("conflict")

// ErrValidation indicates malformed input. Wrap it with field detail:
// fmt.Errorf("%w: slots[2].from must be before to", domain.ErrValidation).
var ErrValidation = errors.New("validation failed")

// ErrPastDate indicates the requested reservation instant has already elapsed.
var ErrPastDate = errors.New("reservation date is in the past")

// ErrClosed indicates the restaurant is closed at the requested date and time.
var ErrClosed = errors.New("restaurant closed at the requested time")

// ErrAlreadyCancelled indicates a cancel request for a reservation that is
// already cancelled. The transition is confirmed -> cancelled, exactly once.
var ErrAlreadyCancelled = errors.New("reservation already cancelled")
