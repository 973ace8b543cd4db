package schema

import "time"

// DayLayout is the textual layout of a CalendarDay.
const DayLayout = "2006-01-02"

// CalendarDay is a UTC calendar day formatted as YYYY-MM-DD. Values of this
// layout sort lexically in chronological order.
type CalendarDay string

// DayOf returns the UTC calendar day containing t.
func DayOf(t time.Time) CalendarDay {
	return CalendarDay(t.UTC().Format(DayLayout))
}

// StartOfDay returns midnight UTC of the day containing t.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Time returns midnight UTC of the day. An unparsable day yields the zero time.
func (d CalendarDay) Time() time.Time {
	t, err := time.Parse(DayLayout, string(d))
	if err != nil {
		return time.Time{}
	}
	return t
}

// AddDays returns the day n days after d (n may be negative).
func (d CalendarDay) AddDays(n int) CalendarDay {
	return DayOf(d.Time().AddDate(0, 0, n))
}

// Before reports whether d is strictly earlier than other.
func (d CalendarDay) Before(other CalendarDay) bool {
	return d < other
}

// String implements fmt.Stringer.
func (d CalendarDay) String() string {
	return string(d)
}

// Window is a closed range of calendar days.
type Window struct {
	From CalendarDay `json:"from"`
	To   CalendarDay `json:"to"`
}

// Start is the first instant of the window.
func (w Window) Start() time.Time {
	return w.From.Time()
}

// End is the first instant after the window, so [Start, End) covers it.
func (w Window) End() time.Time {
	return w.To.Time().AddDate(0, 0, 1)
}

// WindowsFor returns the current window of windowDays days ending on the day
// of now, and the prior window of equal length that ends the day before it.
func WindowsFor(now time.Time, windowDays int) (current, prior Window) {
	today := DayOf(now)
	current = Window{From: today.AddDays(-(windowDays - 1)), To: today}
	prior = Window{From: current.From.AddDays(-windowDays), To: current.From.AddDays(-1)}
	return current, prior
}
