package model

import (
	"time"

	"github.com/kimLalilo/boxe-reventin-planning/internal/calendar"
)

// Reservation records that a member holds (or held) a seat or waitlist
// position for one occurrence of a class slot. The Week field scopes the
// reservation to a single calendar occurrence of the recurring slot; at
// most one active (non-cancelled) reservation may exist per
// (member, slot, week) tuple.
//
// Fields:
//  ID         – primary key identifier.
//  MemberID   – member who booked.
//  SlotID     – class slot being booked.
//  Cancelled  – true once the seat has been given up.
//  Waitlisted – true when the slot was full at booking time; waitlist
//               entries do not consume capacity or the weekly quota.
//  Week       – ISO week identity of the occurrence.
//  CreatedAt  – timestamp of creation.
//  UpdatedAt  – timestamp of last update.
type Reservation struct {
	ID         uint64        // reservations.id
	MemberID   uint64        // reservations.member_id
	SlotID     uint64        // reservations.slot_id
	Cancelled  bool          // reservations.cancelled
	Waitlisted bool          // reservations.waitlisted
	Week       calendar.Week // reservations.week_number + reservations.iso_year
	CreatedAt  time.Time     // reservations.created_at
	UpdatedAt  time.Time     // reservations.updated_at
}
