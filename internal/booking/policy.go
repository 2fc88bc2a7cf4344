package booking

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/kimLalilo/boxe-reventin-planning/internal/calendar"
)

// DefaultCutoff is the minimum lead time before a slot starts during
// which booking and cancellation of a confirmed seat are refused.
const DefaultCutoff = 2 * time.Hour

// Policy decides whether acting on a slot occurrence is currently
// permitted. All comparisons happen in the club's local timezone.
type Policy struct {
	Cutoff   time.Duration
	Location *time.Location
}

// NewPolicy returns a Policy with the given cutoff and club timezone.
// A zero or negative cutoff falls back to DefaultCutoff.
func NewPolicy(cutoff time.Duration, loc *time.Location) *Policy {
	if cutoff <= 0 {
		cutoff = DefaultCutoff
	}
	if loc == nil {
		loc = time.UTC
	}
	return &Policy{Cutoff: cutoff, Location: loc}
}

// BookingAllowed reports whether booking (or cancelling a confirmed
// seat) is permitted at `now` for a slot on `weekday` starting at
// startTime ("HH:MM"). Rules, in priority order:
//
//  1. On Saturday and Sunday every weekday is bookable — the member is
//     acting on next week's occurrence.
//  2. A later weekday this week is bookable unconditionally.
//  3. An earlier weekday has already elapsed: refused.
//  4. Today's slot is bookable only while its start is still at least
//     the cutoff away.
//
// Out-of-range weekdays and malformed times yield ErrInvalidArgument.
func (p *Policy) BookingAllowed(now time.Time, weekday int, startTime string) (bool, error) {
	if weekday < calendar.Monday || weekday > calendar.Friday {
		return false, fmt.Errorf("%w: weekday %d", ErrInvalidArgument, weekday)
	}
	hour, minute, err := parseClock(startTime)
	if err != nil {
		return false, err
	}

	now = now.In(p.Location)
	if wd := now.Weekday(); wd == time.Saturday || wd == time.Sunday {
		return true, nil
	}
	today := (int(now.Weekday()) + 6) % 7
	switch {
	case weekday > today:
		return true, nil
	case weekday < today:
		return false, nil
	}
	start := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, p.Location)
	return start.After(now) && start.Sub(now) >= p.Cutoff, nil
}

// parseClock parses a wall-clock "HH:MM" string.
func parseClock(s string) (hour, minute int, err error) {
	parts := strings.SplitN(strings.TrimSpace(s), ":", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("%w: slot time %q", ErrInvalidArgument, s)
	}
	hour, err = strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, fmt.Errorf("%w: slot time %q", ErrInvalidArgument, s)
	}
	minute, err = strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("%w: slot time %q", ErrInvalidArgument, s)
	}
	return hour, minute, nil
}
