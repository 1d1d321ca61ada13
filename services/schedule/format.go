package schedule

import "time"

// fallbackDisplayDate is shown whenever a date cannot be parsed or is unset.
// Display helpers never propagate a fault for a malformed date.
const fallbackDisplayDate = "Date to be confirmed"

// FormatDate renders a date for display, en-GB style ("Monday 2 January
// 2006"). The zero value yields the fallback string.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return fallbackDisplayDate
	}
	return t.Format("Monday 2 January 2006")
}

// FormatDateString parses a wire-format date and renders it for display,
// falling back for anything unparseable.
func FormatDateString(s string) string {
	t, err := ParseDate(s)
	if err != nil {
		return fallbackDisplayDate
	}
	return FormatDate(t)
}

// ParseDate parses a calendar date in the wire format.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}
