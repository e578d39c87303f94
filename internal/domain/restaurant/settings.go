package restaurant

// Slot is a capacity-bounded time-of-day window in which reservations are
// accepted. From and To are zero-padded 24-hour "HH:MM" strings, so plain
// string comparison orders them correctly.
type Slot struct {
	From     string `json:"from" yaml:"from"`
	To       string `json:"to" yaml:"to"`
	Capacity int    `json:"capacity" yaml:"capacity"`
}

// ClosedWeekly marks a recurring weekly closure. Weekday follows time.Weekday
// numbering (0 = Sunday). Empty From and To mean closed all day.
type ClosedWeekly struct {
	Weekday int    `json:"weekday" yaml:"weekday"`
	From    string `json:"from,omitempty" yaml:"from,omitempty"`
	To      string `json:"to,omitempty" yaml:"to,omitempty"`
}

// ClosedDate marks a one-off closure on a specific "YYYY-MM-DD" calendar
// date, such as a holiday or a private event. Empty From and To mean closed
// all day.
type ClosedDate struct {
	Date string `json:"date" yaml:"date"`
	From string `json:"from,omitempty" yaml:"from,omitempty"`
	To   string `json:"to,omitempty" yaml:"to,omitempty"`
}

// Settings holds a restaurant's booking configuration. Settings are replaced
// wholesale on update; the booking engine only ever reads them.
//
// Closures stack: a date-specific closure and a weekly closure can both apply
// to the same instant, and either one closes it. There is no "open override"
// that reopens a normally-closed window for a single date.
type Settings struct {
	Slots        []Slot         `json:"slots,omitempty" yaml:"slots,omitempty"`
	ClosedWeekly []ClosedWeekly `json:"closedWeekly,omitempty" yaml:"closed_weekly,omitempty"`
	ClosedDates  []ClosedDate   `json:"closedDates,omitempty" yaml:"closed_dates,omitempty"`
}

// FindSlot returns the first slot containing the given "HH:MM" time, using
// inclusive-from / exclusive-to bounds, or nil when no slot matches.
func (s Settings) FindSlot(hhmm string) *Slot {
	for i := range s.Slots {
		if hhmm >= s.Slots[i].From && hhmm < s.Slots[i].To {
			return &s.Slots[i]
		}
	}
	return nil
}
