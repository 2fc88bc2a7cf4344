// Package queue defines the message payloads exchanged over the broker
// and the background consumer that turns them into the attendance log.
package queue

import "github.com/kimLalilo/boxe-reventin-planning/internal/calendar"

// ReservationConfirmedEvent is published whenever a member lands a
// confirmed seat. It carries enough detail for downstream consumers to
// log or notify without querying the primary database. EventID makes
// redeliveries detectable.
type ReservationConfirmedEvent struct {
	EventID       string        `json:"event_id"`
	ReservationID uint64        `json:"reservation_id"`
	MemberID      uint64        `json:"member_id"`
	MemberName    string        `json:"member_name"`
	SlotID        uint64        `json:"slot_id"`
	SlotTitle     string        `json:"slot_title"`
	Category      string        `json:"category"`
	Weekday       int           `json:"weekday"`
	StartTime     string        `json:"start_time"`
	Week          calendar.Week `json:"week"`
	ConfirmedAt   string        `json:"confirmed_at"`
}
