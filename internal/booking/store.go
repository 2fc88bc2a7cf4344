package booking

import (
	"context"

	"github.com/kimLalilo/boxe-reventin-planning/internal/calendar"
	"github.com/kimLalilo/boxe-reventin-planning/internal/model"
)

// Store is the persistence contract the engine drives. The MySQL
// implementation lives in internal/repository; tests use an in-memory
// fake. Every decision maps to at most one conditional write so no
// operation needs multi-call rollback.
type Store interface {
	// FindActiveReservation returns the member's non-cancelled
	// reservation (confirmed or waitlisted) for the slot occurrence, or
	// nil when none exists.
	FindActiveReservation(ctx context.Context, memberID, slotID uint64, week calendar.Week) (*model.Reservation, error)

	// CountConfirmed returns the number of active confirmed seats taken
	// on the slot occurrence.
	CountConfirmed(ctx context.Context, slotID uint64, week calendar.Week) (int, error)

	// CountMemberConfirmed returns how many active confirmed seats the
	// member holds across all slots for the given week. Waitlist entries
	// never count.
	CountMemberConfirmed(ctx context.Context, memberID uint64, week calendar.Week) (int, error)

	// InsertConfirmed inserts a confirmed reservation only if the slot
	// still has a free seat at commit time; the capacity re-check and
	// the insert are one atomic statement. It reports inserted=false
	// when the slot filled up concurrently.
	InsertConfirmed(ctx context.Context, memberID, slotID uint64, week calendar.Week, capacity int) (id uint64, inserted bool, err error)

	// InsertWaitlisted appends the member to the slot's waitlist.
	InsertWaitlisted(ctx context.Context, memberID, slotID uint64, week calendar.Week) (uint64, error)

	// MarkCancelled flips the cancelled flag on a confirmed reservation.
	MarkCancelled(ctx context.Context, reservationID uint64) error

	// DeleteReservation removes a waitlist row entirely; an unconfirmed
	// placeholder leaves no trace once withdrawn.
	DeleteReservation(ctx context.Context, reservationID uint64) error
}
