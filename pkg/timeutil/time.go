// Package timeutil holds the UTC clock and month arithmetic used for card
// expiry dates.
package timeutil

import "time"

// Now returns the current time in UTC
// Always use this instead of time.Now() to ensure timezone consistency
func Now() time.Time {
	return time.Now().UTC()
}

// StartOfMonth returns midnight UTC on the first day of t's month
func StartOfMonth(t time.Time) time.Time {
	year, month, _ := t.UTC().Date()
	return time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
}

// EndOfMonth returns the last nanosecond of the given month in UTC. A card
// marked MM/YY stays usable until this instant.
func EndOfMonth(year int, month time.Month) time.Time {
	return time.Date(year, month+1, 1, 0, 0, 0, 0, time.UTC).Add(-time.Nanosecond)
}

// MonthExpired reports whether the month has fully passed at now
func MonthExpired(year int, month time.Month, now time.Time) bool {
	return EndOfMonth(year, month).Before(now.UTC())
}
