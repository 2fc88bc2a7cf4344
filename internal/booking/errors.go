// Package booking implements the reservation-eligibility and
// capacity-allocation engine: when a booking or cancellation is
// permitted, whether a new reservation is confirmed or waitlisted, and
// how weekly quotas are enforced. The engine talks to the persistence
// layer only through the Store interface so tests can substitute an
// in-memory fake.
package booking

import "errors"

// Sentinel errors returned by the engine. All of them except
// ErrInvalidArgument and ErrStoreUnavailable are recoverable business
// rejections: the member retries with different input or waits. Handlers
// translate them into HTTP statuses via Reason.
var (
	// ErrInvalidArgument flags malformed input such as an out-of-range
	// weekday or an unparseable slot time.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrAlreadyReserved is returned when the member already holds an
	// active seat or waitlist position for this slot occurrence.
	ErrAlreadyReserved = errors.New("already reserved for this week")

	// ErrOutsideWindow is returned when the cutoff rules forbid acting
	// on this slot occurrence right now.
	ErrOutsideWindow = errors.New("outside the booking window")

	// ErrHolidayClosure is returned when the target date is a public
	// holiday and the class does not run.
	ErrHolidayClosure = errors.New("class does not run on a public holiday")

	// ErrQuotaExceeded is returned when confirming the seat would push
	// the member past their weekly formula.
	ErrQuotaExceeded = errors.New("weekly quota reached")

	// ErrNotReserved is returned by Cancel when no active reservation
	// exists; cancelling an already-cancelled reservation lands here,
	// which keeps cancellation idempotent from the store's perspective.
	ErrNotReserved = errors.New("no active reservation")

	// ErrStoreUnavailable wraps transient persistence failures. Callers
	// surface it as a generic retryable failure; the engine itself never
	// retries to preserve at-most-once semantics.
	ErrStoreUnavailable = errors.New("store unavailable")
)

// Reason maps an engine error to a short machine-readable token for
// inclusion in API responses. Unknown errors map to "internal".
func Reason(err error) string {
	switch {
	case errors.Is(err, ErrInvalidArgument):
		return "invalid_argument"
	case errors.Is(err, ErrAlreadyReserved):
		return "already_reserved"
	case errors.Is(err, ErrOutsideWindow):
		return "outside_window"
	case errors.Is(err, ErrHolidayClosure):
		return "holiday_closure"
	case errors.Is(err, ErrQuotaExceeded):
		return "quota_exceeded"
	case errors.Is(err, ErrNotReserved):
		return "not_reserved"
	case errors.Is(err, ErrStoreUnavailable):
		return "store_unavailable"
	default:
		return "internal"
	}
}
