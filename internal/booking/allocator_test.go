package booking_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/kimLalilo/boxe-reventin-planning/internal/booking"
	"github.com/kimLalilo/boxe-reventin-planning/internal/calendar"
	"github.com/kimLalilo/boxe-reventin-planning/internal/model"
)

// fakeStore is an in-memory booking.Store. Its InsertConfirmed re-checks
// capacity before inserting, mirroring the conditional write of the MySQL
// implementation. stealSeat, when set, books a competing confirmed seat
// right before the re-check so tests can exercise the lost-race path.
type fakeStore struct {
	nextID       uint64
	reservations map[uint64]*model.Reservation
	stealSeat    func()
}

func newFakeStore() *fakeStore {
	return &fakeStore{reservations: map[uint64]*model.Reservation{}}
}

func (s *fakeStore) add(memberID, slotID uint64, week calendar.Week, waitlisted bool) *model.Reservation {
	s.nextID++
	r := &model.Reservation{
		ID: s.nextID, MemberID: memberID, SlotID: slotID,
		Waitlisted: waitlisted, Week: week,
	}
	s.reservations[r.ID] = r
	return r
}

func (s *fakeStore) FindActiveReservation(_ context.Context, memberID, slotID uint64, week calendar.Week) (*model.Reservation, error) {
	for _, r := range s.reservations {
		if r.MemberID == memberID && r.SlotID == slotID && r.Week == week && !r.Cancelled {
			return r, nil
		}
	}
	return nil, nil
}

func (s *fakeStore) CountConfirmed(_ context.Context, slotID uint64, week calendar.Week) (int, error) {
	return s.countConfirmed(slotID, week), nil
}

func (s *fakeStore) countConfirmed(slotID uint64, week calendar.Week) int {
	n := 0
	for _, r := range s.reservations {
		if r.SlotID == slotID && r.Week == week && !r.Cancelled && !r.Waitlisted {
			n++
		}
	}
	return n
}

func (s *fakeStore) CountMemberConfirmed(_ context.Context, memberID uint64, week calendar.Week) (int, error) {
	n := 0
	for _, r := range s.reservations {
		if r.MemberID == memberID && r.Week == week && !r.Cancelled && !r.Waitlisted {
			n++
		}
	}
	return n, nil
}

func (s *fakeStore) InsertConfirmed(_ context.Context, memberID, slotID uint64, week calendar.Week, capacity int) (uint64, bool, error) {
	if s.stealSeat != nil {
		s.stealSeat()
		s.stealSeat = nil
	}
	if s.countConfirmed(slotID, week) >= capacity {
		return 0, false, nil
	}
	return s.add(memberID, slotID, week, false).ID, true, nil
}

func (s *fakeStore) InsertWaitlisted(_ context.Context, memberID, slotID uint64, week calendar.Week) (uint64, error) {
	return s.add(memberID, slotID, week, true).ID, nil
}

func (s *fakeStore) MarkCancelled(_ context.Context, reservationID uint64) error {
	r, ok := s.reservations[reservationID]
	if !ok {
		return errors.New("no such reservation")
	}
	r.Cancelled = true
	return nil
}

func (s *fakeStore) DeleteReservation(_ context.Context, reservationID uint64) error {
	if _, ok := s.reservations[reservationID]; !ok {
		return errors.New("no such reservation")
	}
	delete(s.reservations, reservationID)
	return nil
}

// Fixtures: 2024-04-08 is the Monday of ISO week 15, an ordinary week
// with no public holiday Monday through Friday.
var (
	monday = time.Date(2024, 4, 8, 9, 0, 0, 0, paris)
	week15 = calendar.Week{Number: 15, Year: 2024}

	fridaySlot = model.ClassSlot{ID: 1, Title: "Boxe loisir", Weekday: calendar.Friday, StartTime: "18:00", EndTime: "19:30", Capacity: 10}
	alice      = model.Member{ID: 7, Email: "alice@club.fr", Name: "Alice", Role: model.RoleMember, WeeklyQuota: 2}
)

func newAllocator(store *fakeStore, now time.Time) *booking.Allocator {
	a := booking.NewAllocator(store, booking.NewPolicy(2*time.Hour, paris))
	a.Now = func() time.Time { return now }
	return a
}

func TestBookConfirmsWhenSeatAndQuotaAvailable(t *testing.T) {
	store := newFakeStore()
	for i := 0; i < 9; i++ { // 9 of 10 seats taken by other members
		store.add(uint64(100+i), fridaySlot.ID, week15, false)
	}
	a := newAllocator(store, monday)

	outcome, res, err := a.Book(context.Background(), alice, fridaySlot)
	if err != nil {
		t.Fatalf("Book() error = %v", err)
	}
	if outcome != booking.Confirmed {
		t.Errorf("outcome = %v, want Confirmed", outcome)
	}
	if res.Waitlisted || res.Week != week15 || res.MemberID != alice.ID {
		t.Errorf("unexpected reservation %+v", res)
	}
}

func TestBookWaitlistsFullSlotWithoutQuotaCheck(t *testing.T) {
	store := newFakeStore()
	for i := 0; i < 10; i++ {
		store.add(uint64(100+i), fridaySlot.ID, week15, false)
	}
	// Alice already exhausted her formula elsewhere this week; the
	// waitlist must still accept her.
	store.add(alice.ID, 50, week15, false)
	store.add(alice.ID, 51, week15, false)
	a := newAllocator(store, monday)

	outcome, res, err := a.Book(context.Background(), alice, fridaySlot)
	if err != nil {
		t.Fatalf("Book() error = %v", err)
	}
	if outcome != booking.Waitlisted {
		t.Errorf("outcome = %v, want Waitlisted", outcome)
	}
	if !res.Waitlisted {
		t.Errorf("reservation not flagged waitlisted: %+v", res)
	}
}

func TestBookRejectsDuplicate(t *testing.T) {
	store := newFakeStore()
	store.add(alice.ID, fridaySlot.ID, week15, true) // waitlist entries count too
	a := newAllocator(store, monday)

	_, _, err := a.Book(context.Background(), alice, fridaySlot)
	if !errors.Is(err, booking.ErrAlreadyReserved) {
		t.Errorf("Book() error = %v, want ErrAlreadyReserved", err)
	}
}

func TestBookRejectsOutsideWindow(t *testing.T) {
	store := newFakeStore()
	// Tuesday 09:00 booking a Tuesday 10:30 slot: 90 minutes of lead
	// time against a 2h cutoff.
	now := time.Date(2024, 4, 9, 9, 0, 0, 0, paris)
	slot := model.ClassSlot{ID: 2, Weekday: calendar.Tuesday, StartTime: "10:30", EndTime: "12:00", Capacity: 10}
	a := newAllocator(store, now)

	_, _, err := a.Book(context.Background(), alice, slot)
	if !errors.Is(err, booking.ErrOutsideWindow) {
		t.Errorf("Book() error = %v, want ErrOutsideWindow", err)
	}
}

func TestBookRejectsHolidayClosure(t *testing.T) {
	store := newFakeStore()
	// Saturday 2024-03-30 rolls the week forward to week 14, whose
	// Monday is 2024-04-01 — Easter Monday.
	now := time.Date(2024, 3, 30, 10, 0, 0, 0, paris)
	slot := model.ClassSlot{ID: 3, Weekday: calendar.Monday, StartTime: "18:00", EndTime: "19:30", Capacity: 10}
	a := newAllocator(store, now)

	_, _, err := a.Book(context.Background(), alice, slot)
	if !errors.Is(err, booking.ErrHolidayClosure) {
		t.Errorf("Book() error = %v, want ErrHolidayClosure", err)
	}
}

func TestBookRejectsQuotaExceeded(t *testing.T) {
	store := newFakeStore()
	store.add(alice.ID, 50, week15, false)
	store.add(alice.ID, 51, week15, false) // quota of 2 used up
	a := newAllocator(store, monday)

	_, _, err := a.Book(context.Background(), alice, fridaySlot)
	if !errors.Is(err, booking.ErrQuotaExceeded) {
		t.Errorf("Book() error = %v, want ErrQuotaExceeded", err)
	}
}

func TestBookQuotaNeverExceeded(t *testing.T) {
	store := newFakeStore()
	a := newAllocator(store, monday)
	slots := []model.ClassSlot{
		{ID: 10, Weekday: calendar.Tuesday, StartTime: "18:00", Capacity: 10},
		{ID: 11, Weekday: calendar.Wednesday, StartTime: "18:00", Capacity: 10},
		{ID: 12, Weekday: calendar.Thursday, StartTime: "18:00", Capacity: 10},
	}

	confirmed := 0
	for _, slot := range slots {
		outcome, _, err := a.Book(context.Background(), alice, slot)
		if err == nil && outcome == booking.Confirmed {
			confirmed++
		} else if !errors.Is(err, booking.ErrQuotaExceeded) {
			t.Fatalf("Book(slot %d) unexpected result %v, %v", slot.ID, outcome, err)
		}
	}
	if confirmed != alice.WeeklyQuota {
		t.Errorf("confirmed %d reservations, quota is %d", confirmed, alice.WeeklyQuota)
	}
}

func TestBookLostRaceFallsBackToWaitlist(t *testing.T) {
	store := newFakeStore()
	for i := 0; i < 9; i++ {
		store.add(uint64(100+i), fridaySlot.ID, week15, false)
	}
	// A competing session grabs the last seat between the capacity read
	// and the conditional insert.
	store.stealSeat = func() { store.add(999, fridaySlot.ID, week15, false) }
	a := newAllocator(store, monday)

	outcome, _, err := a.Book(context.Background(), alice, fridaySlot)
	if err != nil {
		t.Fatalf("Book() error = %v", err)
	}
	if outcome != booking.Waitlisted {
		t.Errorf("outcome = %v, want Waitlisted after losing the race", outcome)
	}
	if n := store.countConfirmed(fridaySlot.ID, week15); n != fridaySlot.Capacity {
		t.Errorf("confirmed count = %d, capacity = %d", n, fridaySlot.Capacity)
	}
}

func TestCancelWaitlistedIgnoresCutoff(t *testing.T) {
	store := newFakeStore()
	// Friday 17:30, slot starts 18:00 — well inside the cutoff.
	now := time.Date(2024, 4, 12, 17, 30, 0, 0, paris)
	res := store.add(alice.ID, fridaySlot.ID, week15, true)
	a := newAllocator(store, now)

	if err := a.Cancel(context.Background(), alice, fridaySlot); err != nil {
		t.Fatalf("Cancel() error = %v", err)
	}
	if _, ok := store.reservations[res.ID]; ok {
		t.Error("waitlist row still present after cancel")
	}
}

func TestCancelConfirmedInsideCutoffRejected(t *testing.T) {
	store := newFakeStore()
	now := time.Date(2024, 4, 12, 17, 30, 0, 0, paris)
	res := store.add(alice.ID, fridaySlot.ID, week15, false)
	a := newAllocator(store, now)

	err := a.Cancel(context.Background(), alice, fridaySlot)
	if !errors.Is(err, booking.ErrOutsideWindow) {
		t.Errorf("Cancel() error = %v, want ErrOutsideWindow", err)
	}
	if store.reservations[res.ID].Cancelled {
		t.Error("reservation was cancelled despite the cutoff")
	}
}

func TestCancelConfirmedOutsideCutoff(t *testing.T) {
	store := newFakeStore()
	res := store.add(alice.ID, fridaySlot.ID, week15, false)
	a := newAllocator(store, monday)

	if err := a.Cancel(context.Background(), alice, fridaySlot); err != nil {
		t.Fatalf("Cancel() error = %v", err)
	}
	if !store.reservations[res.ID].Cancelled {
		t.Error("reservation not marked cancelled")
	}

	// A second cancel finds no active reservation and changes nothing.
	err := a.Cancel(context.Background(), alice, fridaySlot)
	if !errors.Is(err, booking.ErrNotReserved) {
		t.Errorf("second Cancel() error = %v, want ErrNotReserved", err)
	}
}

func TestCancelWithoutReservation(t *testing.T) {
	a := newAllocator(newFakeStore(), monday)
	err := a.Cancel(context.Background(), alice, fridaySlot)
	if !errors.Is(err, booking.ErrNotReserved) {
		t.Errorf("Cancel() error = %v, want ErrNotReserved", err)
	}
}
