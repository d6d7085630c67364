package util

import "time"

const dateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD calendar date into midnight UTC.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(dateLayout, s)
}

// FormatDate renders a date as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(dateLayout)
}

// MonthKey returns the YYYY-MM bucket key for a date.
func MonthKey(t time.Time) string {
	return t.Format("2006-01")
}

// MonthLabel returns the human-readable label for a month, e.g. "January 2024".
func MonthLabel(t time.Time) string {
	return t.Format("January 2006")
}

// MonthStart returns the first day of t's month at midnight UTC.
func MonthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// AddMonths shifts a month start by n calendar months.
func AddMonths(t time.Time, n int) time.Time {
	return MonthStart(t).AddDate(0, n, 0)
}

// WindowMonths returns the n month starts ending at now's month inclusive,
// in chronological order.
func WindowMonths(now time.Time, n int) []time.Time {
	months := make([]time.Time, n)
	first := AddMonths(now, -(n - 1))
	for i := 0; i < n; i++ {
		months[i] = AddMonths(first, i)
	}
	return months
}
