package model

import "time"

// ClassSlot describes one recurring weekly class on the club planning.
// A slot runs every week on the same weekday at the same wall-clock time
// (club-local); individual occurrences are identified by pairing the
// slot with a calendar.Week.
//
// Fields:
//  ID        – primary key identifier.
//  Title     – class title shown on the planning.
//  Category  – slot category, matched against Member.RestrictedCategory.
//  Weekday   – 0=Monday .. 4=Friday; weekends are never bookable.
//  StartTime – wall-clock start "HH:MM" in club-local time.
//  EndTime   – wall-clock end "HH:MM".
//  Capacity  – number of confirmed seats; extra members go on the waitlist.
//  CreatedAt – timestamp of creation.
//  UpdatedAt – timestamp of last update.
type ClassSlot struct {
	ID        uint64    // class_slots.id
	Title     string    // class_slots.title
	Category  string    // class_slots.category
	Weekday   int       // class_slots.weekday
	StartTime string    // class_slots.start_time
	EndTime   string    // class_slots.end_time
	Capacity  int       // class_slots.capacity
	CreatedAt time.Time // class_slots.created_at
	UpdatedAt time.Time // class_slots.updated_at
}
