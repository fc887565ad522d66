package calendar

import (
	"fmt"
	"time"
)

// DateLayout is the only accepted textual date form.
const DateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD string into a civil date at 00:00 UTC.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing date %q: %w", s, err)
	}
	return t, nil
}

// FormatDate renders t's civil date as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return civil(t).Format(DateLayout)
}

// Date returns the civil date for year, month and day at 00:00 UTC.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// civil drops the clock and zone from t, keeping the year/month/day it
// shows in its own location.
func civil(t time.Time) time.Time {
	return Date(t.Year(), t.Month(), t.Day())
}

// FormatBool renders b as "True" or "False", the form the command-line
// tools print.
func FormatBool(b bool) string {
	if b {
		return "True"
	}
	return "False"
}
