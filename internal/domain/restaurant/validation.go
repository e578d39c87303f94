package restaurant

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/seatwise/seatwise/internal/domain"
)

var (
	hhmmRe = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)
	ymdRe  = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
)

// ValidTime reports whether s is a zero-padded 24-hour "HH:MM" string.
func ValidTime(s string) bool {
	return hhmmRe.MatchString(s)
}

// ValidateCreateRequest checks a restaurant creation request.
func ValidateCreateRequest(req *CreateRequest) error {
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if len(req.Name) > 255 {
		return fmt.Errorf("%w: name exceeds 255 characters", domain.ErrValidation)
	}
	if req.Settings != nil {
		return req.Settings.Validate()
	}
	return nil
}

// Validate checks the structural invariants of a settings value. It is called
// on the owner update path only; the booking path trusts persisted settings.
func (s Settings) Validate() error {
	for i, slot := range s.Slots {
		if !ValidTime(slot.From) || !ValidTime(slot.To) {
			return fmt.Errorf("%w: slots[%d]: times must be HH:MM", domain.ErrValidation, i)
		}
		if slot.From >= slot.To {
			return fmt.Errorf("%w: slots[%d]: from must be before to", domain.ErrValidation, i)
		}
		if slot.Capacity < 1 {
			return fmt.Errorf("%w: slots[%d]: capacity must be at least 1", domain.ErrValidation, i)
		}
	}

	if err := validateSlotOverlap(s.Slots); err != nil {
		return err
	}

	for i, cw := range s.ClosedWeekly {
		if cw.Weekday < 0 || cw.Weekday > 6 {
			return fmt.Errorf("%w: closedWeekly[%d]: weekday must be 0..6", domain.ErrValidation, i)
		}
		if err := validateClosureRange(cw.From, cw.To, fmt.Sprintf("closedWeekly[%d]", i)); err != nil {
			return err
		}
	}

	for i, cd := range s.ClosedDates {
		if !ymdRe.MatchString(cd.Date) {
			return fmt.Errorf("%w: closedDates[%d]: date must be YYYY-MM-DD", domain.ErrValidation, i)
		}
		if err := validateClosureRange(cd.From, cd.To, fmt.Sprintf("closedDates[%d]", i)); err != nil {
			return err
		}
	}

	return nil
}

// validateSlotOverlap sorts slots by opening time and requires each slot to
// start at or after the previous slot's end.
func validateSlotOverlap(slots []Slot) error {
	if len(slots) < 2 {
		return nil
	}
	sorted := make([]Slot, len(slots))
	copy(sorted, slots)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].From < sorted[j].From })

	for i := 1; i < len(sorted); i++ {
		if sorted[i].From < sorted[i-1].To {
			return fmt.Errorf("%w: slots must not overlap (%s-%s and %s-%s)",
				domain.ErrValidation,
				sorted[i-1].From, sorted[i-1].To, sorted[i].From, sorted[i].To)
		}
	}
	return nil
}

// validateClosureRange checks the optional from/to pair of a closure entry.
// Both bounds are optional; when both are present from must precede to.
func validateClosureRange(from, to, field string) error {
	if from != "" && !ValidTime(from) {
		return fmt.Errorf("%w: %s: from must be HH:MM", domain.ErrValidation, field)
	}
	if to != "" && !ValidTime(to) {
		return fmt.Errorf("%w: %s: to must be HH:MM", domain.ErrValidation, field)
	}
	if from != "" && to != "" && from >= to {
		return fmt.Errorf("%w: %s: from must be before to", domain.ErrValidation, field)
	}
	return nil
}
