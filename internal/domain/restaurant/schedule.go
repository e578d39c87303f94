package restaurant

import (
	"time"
)

// Schedule predicates are pure functions over a restaurant's Settings. All
// date arithmetic is UTC; time-of-day values are "HH:MM" strings compared
// lexically.

// DayKey returns the "YYYY-MM-DD" UTC calendar day of the given instant.
func DayKey(date time.Time) string {
	return date.UTC().Format("2006-01-02")
}

// Day truncates an instant to UTC midnight of its calendar day.
func Day(date time.Time) time.Time {
	d := date.UTC()
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
}

// At combines a calendar day with an "HH:MM" time-of-day into a UTC instant.
func At(date time.Time, hhmm string) time.Time {
	d := Day(date)
	if len(hhmm) != 5 {
		return d
	}
	h := int(hhmm[0]-'0')*10 + int(hhmm[1]-'0')
	m := int(hhmm[3]-'0')*10 + int(hhmm[4]-'0')
	return d.Add(time.Duration(h)*time.Hour + time.Duration(m)*time.Minute)
}

// TimeInRange reports whether hhmm falls in [from, to). An empty bound is
// unconstrained on that side; both empty means the whole day matches.
func TimeInRange(hhmm, from, to string) bool {
	if from == "" && to == "" {
		return true
	}
	if from != "" && hhmm < from {
		return false
	}
	if to != "" && hhmm >= to {
		return false
	}
	return true
}

// IsPastDay reports whether date's UTC calendar day is strictly before now's.
func IsPastDay(date, now time.Time) bool {
	return Day(date).Before(Day(now))
}

// IsPastInstant reports whether the combined date+time instant is not at
// least lead ahead of now. It subsumes IsPastDay for booking admission: a
// same-day slot whose start time has already elapsed is rejected too.
func IsPastInstant(date time.Time, hhmm string, now time.Time, lead time.Duration) bool {
	return !At(date, hhmm).After(now.UTC().Add(lead))
}

// IsClosedAt reports whether the restaurant is closed at the given day and
// "HH:MM" time. Date-specific and weekly closures are independent OR
// conditions; either one matching closes the instant.
func IsClosedAt(s Settings, date time.Time, hhmm string) bool {
	dmy := DayKey(date)
	for _, cd := range s.ClosedDates {
		if cd.Date == dmy && TimeInRange(hhmm, cd.From, cd.To) {
			return true
		}
	}

	wd := int(date.UTC().Weekday())
	for _, cw := range s.ClosedWeekly {
		if cw.Weekday == wd && TimeInRange(hhmm, cw.From, cw.To) {
			return true
		}
	}

	return false
}
