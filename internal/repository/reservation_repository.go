package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/kimLalilo/boxe-reventin-planning/internal/calendar"
	"github.com/kimLalilo/boxe-reventin-planning/internal/model"
)

// ReservationRepo persists reservations keyed by (member, slot, ISO
// week). It is the MySQL implementation of booking.Store plus the read
// queries the planning and roster views need.
type ReservationRepo struct{ DB *sql.DB }

func NewReservationRepo(db *sql.DB) *ReservationRepo { return &ReservationRepo{DB: db} }

const reservationColumns = "id,member_id,slot_id,cancelled,waitlisted,week_number,iso_year,created_at,updated_at"

func (r *ReservationRepo) FindActiveReservation(ctx context.Context, memberID, slotID uint64, week calendar.Week) (*model.Reservation, error) {
	row := r.DB.QueryRowContext(ctx,
		"SELECT "+reservationColumns+" FROM reservations WHERE member_id=? AND slot_id=? AND week_number=? AND iso_year=? AND cancelled=FALSE LIMIT 1",
		memberID, slotID, week.Number, week.Year)
	res, err := scanReservation(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *ReservationRepo) CountConfirmed(ctx context.Context, slotID uint64, week calendar.Week) (int, error) {
	var n int
	err := r.DB.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM reservations WHERE slot_id=? AND week_number=? AND iso_year=? AND cancelled=FALSE AND waitlisted=FALSE",
		slotID, week.Number, week.Year).Scan(&n)
	return n, err
}

func (r *ReservationRepo) CountMemberConfirmed(ctx context.Context, memberID uint64, week calendar.Week) (int, error) {
	var n int
	err := r.DB.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM reservations WHERE member_id=? AND week_number=? AND iso_year=? AND cancelled=FALSE AND waitlisted=FALSE",
		memberID, week.Number, week.Year).Scan(&n)
	return n, err
}

// InsertConfirmed re-checks remaining capacity inside the INSERT itself
// so two concurrent bookings for the last seat cannot both land. The
// SELECT source makes the row conditional; zero rows affected means the
// slot filled up between the caller's read and this write.
func (r *ReservationRepo) InsertConfirmed(ctx context.Context, memberID, slotID uint64, week calendar.Week, capacity int) (uint64, bool, error) {
	res, err := r.DB.ExecContext(ctx,
		`INSERT INTO reservations (member_id, slot_id, cancelled, waitlisted, week_number, iso_year)
		 SELECT ?, ?, FALSE, FALSE, ?, ?
		 FROM DUAL
		 WHERE (SELECT COUNT(*) FROM reservations
		        WHERE slot_id=? AND week_number=? AND iso_year=? AND cancelled=FALSE AND waitlisted=FALSE) < ?`,
		memberID, slotID, week.Number, week.Year,
		slotID, week.Number, week.Year, capacity)
	if err != nil {
		return 0, false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, false, err
	}
	if affected == 0 {
		return 0, false, nil
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, false, err
	}
	return uint64(id), true, nil
}

func (r *ReservationRepo) InsertWaitlisted(ctx context.Context, memberID, slotID uint64, week calendar.Week) (uint64, error) {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO reservations (member_id, slot_id, cancelled, waitlisted, week_number, iso_year) VALUES (?,?,FALSE,TRUE,?,?)",
		memberID, slotID, week.Number, week.Year)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

func (r *ReservationRepo) MarkCancelled(ctx context.Context, reservationID uint64) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE reservations SET cancelled=TRUE WHERE id=? AND cancelled=FALSE", reservationID)
	return affectedOrNotFound(res, err)
}

func (r *ReservationRepo) DeleteReservation(ctx context.Context, reservationID uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM reservations WHERE id=?", reservationID)
	return affectedOrNotFound(res, err)
}

// SlotCounts carries the confirmed and waitlisted totals of one slot
// occurrence, for the planning view.
type SlotCounts struct {
	Confirmed  int
	Waitlisted int
}

// CountsForWeek aggregates active reservations per slot for one week in
// a single query instead of two COUNTs per displayed slot.
func (r *ReservationRepo) CountsForWeek(ctx context.Context, week calendar.Week) (map[uint64]SlotCounts, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT slot_id, waitlisted, COUNT(*) FROM reservations
		 WHERE week_number=? AND iso_year=? AND cancelled=FALSE
		 GROUP BY slot_id, waitlisted`,
		week.Number, week.Year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	counts := make(map[uint64]SlotCounts)
	for rows.Next() {
		var slotID uint64
		var waitlisted bool
		var n int
		if err := rows.Scan(&slotID, &waitlisted, &n); err != nil {
			return nil, err
		}
		c := counts[slotID]
		if waitlisted {
			c.Waitlisted = n
		} else {
			c.Confirmed = n
		}
		counts[slotID] = c
	}
	return counts, rows.Err()
}

// MemberStateForWeek maps slot IDs onto the member's own active
// reservation for the week, so the planning view can flag which classes
// the caller already holds, and whether as a seat or a waitlist spot.
func (r *ReservationRepo) MemberStateForWeek(ctx context.Context, memberID uint64, week calendar.Week) (map[uint64]bool, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT slot_id, waitlisted FROM reservations WHERE member_id=? AND week_number=? AND iso_year=? AND cancelled=FALSE",
		memberID, week.Number, week.Year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	state := make(map[uint64]bool)
	for rows.Next() {
		var slotID uint64
		var waitlisted bool
		if err := rows.Scan(&slotID, &waitlisted); err != nil {
			return nil, err
		}
		state[slotID] = waitlisted
	}
	return state, rows.Err()
}

// MemberReservation is one row of a member's reservation history, with
// the class details joined in.
type MemberReservation struct {
	ID         uint64        `json:"id"`
	SlotID     uint64        `json:"slot_id"`
	Title      string        `json:"title"`
	Category   string        `json:"category"`
	Weekday    int           `json:"weekday"`
	StartTime  string        `json:"start_time"`
	EndTime    string        `json:"end_time"`
	Waitlisted bool          `json:"waitlisted"`
	Week       calendar.Week `json:"week"`
	CreatedAt  time.Time     `json:"created_at"`
}

// ListForMemberWeek returns the member's active reservations for one
// week, soonest class first.
func (r *ReservationRepo) ListForMemberWeek(ctx context.Context, memberID uint64, week calendar.Week) ([]MemberReservation, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT r.id, s.id, s.title, s.category, s.weekday, s.start_time, s.end_time, r.waitlisted, r.week_number, r.iso_year, r.created_at
		 FROM reservations r JOIN class_slots s ON s.id = r.slot_id
		 WHERE r.member_id=? AND r.week_number=? AND r.iso_year=? AND r.cancelled=FALSE
		 ORDER BY s.weekday, s.start_time`,
		memberID, week.Number, week.Year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]MemberReservation, 0)
	for rows.Next() {
		var m MemberReservation
		if err := rows.Scan(&m.ID, &m.SlotID, &m.Title, &m.Category, &m.Weekday,
			&m.StartTime, &m.EndTime, &m.Waitlisted, &m.Week.Number, &m.Week.Year, &m.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// RosterEntry is one attendee line on a coach's slot roster.
type RosterEntry struct {
	MemberID   uint64    `json:"member_id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Waitlisted bool      `json:"waitlisted"`
	ReservedAt time.Time `json:"reserved_at"`
}

// RosterForSlot lists who booked a slot occurrence, confirmed seats
// first, each group in booking order.
func (r *ReservationRepo) RosterForSlot(ctx context.Context, slotID uint64, week calendar.Week) ([]RosterEntry, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT m.id, m.name, m.email, r.waitlisted, r.created_at
		 FROM reservations r JOIN members m ON m.id = r.member_id
		 WHERE r.slot_id=? AND r.week_number=? AND r.iso_year=? AND r.cancelled=FALSE
		 ORDER BY r.waitlisted, r.created_at`,
		slotID, week.Number, week.Year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]RosterEntry, 0)
	for rows.Next() {
		var e RosterEntry
		if err := rows.Scan(&e.MemberID, &e.Name, &e.Email, &e.Waitlisted, &e.ReservedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func scanReservation(row rowScanner) (model.Reservation, error) {
	var res model.Reservation
	err := row.Scan(&res.ID, &res.MemberID, &res.SlotID, &res.Cancelled, &res.Waitlisted,
		&res.Week.Number, &res.Week.Year, &res.CreatedAt, &res.UpdatedAt)
	if err != nil {
		return model.Reservation{}, err
	}
	return res, nil
}
