package models

import "time"

// LoginAttempt tracks consecutive failed logins for a username.
// At most one record exists per username; the record is deleted on a
// successful login and a lockout becomes inert once LockedUntil passes.
type LoginAttempt struct {
	Username    string
	FailedCount int
	LockedUntil *time.Time
	UpdatedAt   time.Time
}

// Locked reports whether the username is locked out at the given time.
func (a *LoginAttempt) Locked(now time.Time) bool {
	return a.LockedUntil != nil && now.Before(*a.LockedUntil)
}
