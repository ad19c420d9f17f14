package booking

import "time"

// DateLayout is the wire format of booking dates
const DateLayout = "2006-01-02"

// storageHour is the neutral hour at which a booking day is stored
const storageHour = 12

// NormalizeDate reduces t to its calendar day (as seen in t's own location)
// and returns that day at 12:00:00 UTC. NormalizeDate(NormalizeDate(t)) ==
// NormalizeDate(t).
func NormalizeDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, storageHour, 0, 0, 0, time.UTC)
}

// NormalizeIn normalizes the calendar day of t as observed in loc
func NormalizeIn(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	return NormalizeDate(t.In(loc))
}

// ParseDate parses a YYYY-MM-DD string into its normalized storage value
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, err
	}
	return NormalizeDate(t), nil
}

// FormatDate renders a stored date as YYYY-MM-DD
func FormatDate(t time.Time) string {
	return NormalizeDate(t.UTC()).Format(DateLayout)
}

// DayBounds returns the inclusive start (00:00:00.000) and inclusive end
// (23:59:59.999) of the normalized day containing t, in UTC.
func DayBounds(t time.Time) (time.Time, time.Time) {
	y, m, d := NormalizeDate(t).Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	end := start.Add(24*time.Hour - time.Millisecond)
	return start, end
}
