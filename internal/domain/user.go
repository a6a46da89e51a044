package domain

import "time"

// Role represents the user's permission level in the system.
type Role string

const (
	// RoleAdmin grants access to the moderation surface.
	RoleAdmin Role = "admin"
	// RoleMember grants standard user access.
	RoleMember Role = "member"
)

// User represents an account in the system.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Username     string    `json:"username"` // Unique, lowercase
	Name         string    `json:"name"`
	PasswordHash string    `json:"password_hash,omitempty"` // Stored hashed, filter from API responses
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Suspension state. Invariant: Suspended implies SuspendDate is set;
	// not Suspended implies both SuspendReason and SuspendDate are nil.
	Suspended     bool       `json:"suspended"`
	SuspendReason *string    `json:"suspend_reason,omitempty"`
	SuspendDate   *time.Time `json:"suspend_date,omitempty"` // Midnight UTC on the reactivation day
}

// IsAdmin returns true if the user has moderation privileges.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Suspend marks the user suspended until the given date.
// The date is normalized to midnight UTC so the daily sweep can match it
// by equality.
func (u *User) Suspend(until time.Time, reason string) {
	date := MidnightUTC(until)
	u.Suspended = true
	u.SuspendDate = &date
	if reason != "" {
		u.SuspendReason = &reason
	} else {
		u.SuspendReason = nil
	}
}

// Unsuspend clears all suspension fields.
func (u *User) Unsuspend() {
	u.Suspended = false
	u.SuspendReason = nil
	u.SuspendDate = nil
}

// MidnightUTC truncates a time to the start of its UTC day.
func MidnightUTC(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Touch updates the UpdatedAt timestamp.
func (u *User) Touch() {
	u.UpdatedAt = time.Now().UTC()
}
