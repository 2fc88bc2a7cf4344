package booking

import (
	"context"
	"fmt"
	"time"

	"github.com/kimLalilo/boxe-reventin-planning/internal/calendar"
	"github.com/kimLalilo/boxe-reventin-planning/internal/model"
)

// Outcome of a successful booking decision.
type Outcome string

const (
	Confirmed  Outcome = "confirmed"
	Waitlisted Outcome = "waitlisted"
)

// Allocator applies the capacity and quota rules on top of the
// eligibility Policy and drives the Store. Now is injectable so tests
// can pin the clock; when nil, time.Now is used.
type Allocator struct {
	Store  Store
	Policy *Policy
	Now    func() time.Time
}

// NewAllocator wires an Allocator. Store and policy must be non-nil.
func NewAllocator(store Store, policy *Policy) *Allocator {
	if store == nil || policy == nil {
		panic("nil store or policy passed to NewAllocator")
	}
	return &Allocator{Store: store, Policy: policy}
}

func (a *Allocator) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

// Book attempts to reserve a seat on the slot's occurrence in the
// currently bookable week. Preconditions are checked in order: duplicate
// reservation, eligibility window, holiday closure, then capacity. A
// free seat is confirmed subject to the member's weekly quota; a full
// slot always waitlists without touching the quota, since a member may
// legitimately queue beyond their formula hoping a seat frees up.
func (a *Allocator) Book(ctx context.Context, member model.Member, slot model.ClassSlot) (Outcome, model.Reservation, error) {
	now := a.now().In(a.Policy.Location)
	week := calendar.CurrentWeek(now)

	existing, err := a.Store.FindActiveReservation(ctx, member.ID, slot.ID, week)
	if err != nil {
		return "", model.Reservation{}, storeErr("find reservation", err)
	}
	if existing != nil {
		return "", model.Reservation{}, ErrAlreadyReserved
	}

	allowed, err := a.Policy.BookingAllowed(now, slot.Weekday, slot.StartTime)
	if err != nil {
		return "", model.Reservation{}, err
	}
	if !allowed {
		return "", model.Reservation{}, ErrOutsideWindow
	}

	date, err := calendar.ResolveDate(week, slot.Weekday, a.Policy.Location)
	if err != nil {
		return "", model.Reservation{}, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}
	if calendar.IsPublicHoliday(date) {
		return "", model.Reservation{}, ErrHolidayClosure
	}

	confirmed, err := a.Store.CountConfirmed(ctx, slot.ID, week)
	if err != nil {
		return "", model.Reservation{}, storeErr("count confirmed", err)
	}
	if confirmed < slot.Capacity {
		used, err := a.Store.CountMemberConfirmed(ctx, member.ID, week)
		if err != nil {
			return "", model.Reservation{}, storeErr("count member confirmed", err)
		}
		if used >= member.WeeklyQuota {
			return "", model.Reservation{}, ErrQuotaExceeded
		}
		id, inserted, err := a.Store.InsertConfirmed(ctx, member.ID, slot.ID, week, slot.Capacity)
		if err != nil {
			return "", model.Reservation{}, storeErr("insert confirmed", err)
		}
		if inserted {
			return Confirmed, reservation(id, member.ID, slot.ID, week, false), nil
		}
		// Lost the race for the last seat; fall through to the waitlist.
	}

	id, err := a.Store.InsertWaitlisted(ctx, member.ID, slot.ID, week)
	if err != nil {
		return "", model.Reservation{}, storeErr("insert waitlisted", err)
	}
	return Waitlisted, reservation(id, member.ID, slot.ID, week, true), nil
}

// Cancel withdraws the member's active reservation on the slot's
// occurrence in the currently bookable week. A waitlist position is
// removable at any time: an unconfirmed placeholder carries no planning
// cost for the club. A confirmed seat obeys the same cutoff as booking,
// so late dropouts cannot dodge the window. Cancelling when no active
// reservation exists (including one already cancelled) yields
// ErrNotReserved and mutates nothing. The freed seat is not handed to
// the first waitlisted member automatically; promotion is an admin
// concern.
func (a *Allocator) Cancel(ctx context.Context, member model.Member, slot model.ClassSlot) error {
	now := a.now().In(a.Policy.Location)
	week := calendar.CurrentWeek(now)

	res, err := a.Store.FindActiveReservation(ctx, member.ID, slot.ID, week)
	if err != nil {
		return storeErr("find reservation", err)
	}
	if res == nil {
		return ErrNotReserved
	}
	if res.Waitlisted {
		if err := a.Store.DeleteReservation(ctx, res.ID); err != nil {
			return storeErr("delete waitlisted", err)
		}
		return nil
	}

	allowed, err := a.Policy.BookingAllowed(now, slot.Weekday, slot.StartTime)
	if err != nil {
		return err
	}
	if !allowed {
		return ErrOutsideWindow
	}
	if err := a.Store.MarkCancelled(ctx, res.ID); err != nil {
		return storeErr("mark cancelled", err)
	}
	return nil
}

func reservation(id, memberID, slotID uint64, week calendar.Week, waitlisted bool) model.Reservation {
	return model.Reservation{
		ID:         id,
		MemberID:   memberID,
		SlotID:     slotID,
		Waitlisted: waitlisted,
		Week:       week,
	}
}

func storeErr(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrStoreUnavailable, op, err)
}
