// Package calendar resolves booking dates on the club's weekly planning.
// The planning runs Monday to Friday; Saturday and Sunday are reference
// days only and roll the active week forward to the next Monday.
package calendar

import (
	"errors"
	"time"
)

// Weekday indexes used across the planning (0=Monday .. 4=Friday).
const (
	Monday = iota
	Tuesday
	Wednesday
	Thursday
	Friday
)

// ErrInvalidWeekday is returned when a weekday index falls outside the
// bookable Monday..Friday range.
var ErrInvalidWeekday = errors.New("weekday index out of range (want 0..4)")

// Week identifies one concrete occurrence of a recurring weekly slot by
// its ISO 8601 week number and year.
type Week struct {
	Number int `json:"week_number"`
	Year   int `json:"iso_year"`
}

// CurrentWeek returns the week a booking made at `now` targets. On
// Saturday and Sunday the planning of the elapsed week is closed, so the
// identity rolls forward to the ISO week containing next Monday.
func CurrentWeek(now time.Time) Week {
	switch now.Weekday() {
	case time.Saturday:
		now = now.AddDate(0, 0, 2)
	case time.Sunday:
		now = now.AddDate(0, 0, 1)
	}
	y, w := now.ISOWeek()
	return Week{Number: w, Year: y}
}

// ResolveDate converts a (year, ISO week, weekday index) triple to the
// concrete calendar date of that slot occurrence, at midnight in loc.
// Weekday indices outside 0..4 are rejected with ErrInvalidWeekday.
func ResolveDate(week Week, weekday int, loc *time.Location) (time.Time, error) {
	if weekday < Monday || weekday > Friday {
		return time.Time{}, ErrInvalidWeekday
	}
	// January 4 is always inside ISO week 1. Walk back to that week's
	// Monday, then forward to the requested week and weekday.
	jan4 := time.Date(week.Year, time.January, 4, 0, 0, 0, 0, loc)
	week1Monday := jan4.AddDate(0, 0, -isoIndex(jan4))
	return week1Monday.AddDate(0, 0, (week.Number-1)*7+weekday), nil
}

// isoIndex maps time.Weekday to the 0=Monday .. 6=Sunday convention.
func isoIndex(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}
