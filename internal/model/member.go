package model

import "time"

// Member roles as stored in the members.role column. Coaches see rosters,
// admins additionally manage members and the class schedule.
const (
	RoleMember = "member"
	RoleCoach  = "coach"
	RoleAdmin  = "admin"
)

// Quota bounds for the weekly formula.
const (
	MinWeeklyQuota = 1
	MaxWeeklyQuota = 5
)

// Member represents a club member record as stored in the `members`
// table. The weekly quota ("formule") caps how many confirmed seats the
// member may hold per ISO week. RestrictedCategory, when set, limits the
// planning to slots of that category (e.g. a kids-only membership).
//
// Fields:
//  ID                 – primary key identifier.
//  Email              – unique email address, stored lowercase.
//  Name               – display name.
//  PasswordHash       – credential digest (see utils.VerifyPassword for accepted formats).
//  Role               – one of RoleMember, RoleCoach, RoleAdmin.
//  WeeklyQuota        – confirmed reservations allowed per week (1..5).
//  RestrictedCategory – slot category filter (nil means unrestricted).
//  CreatedAt          – timestamp of creation.
//  UpdatedAt          – timestamp of last update.
type Member struct {
	ID                 uint64    // members.id
	Email              string    // members.email
	Name               string    // members.name
	PasswordHash       string    // members.password_hash
	Role               string    // members.role
	WeeklyQuota        int       // members.weekly_quota
	RestrictedCategory *string   // members.restricted_category (nullable)
	CreatedAt          time.Time // members.created_at
	UpdatedAt          time.Time // members.updated_at
}
