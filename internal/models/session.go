package models

import "time"

// Session is a server-held record tying a cookie token to a user.
// Only a SHA-256 hash of the token is stored; the raw token lives in the
// client cookie and is never persisted.
type Session struct {
	TokenHash string
	UserID    string
	IPAddress string
	UserAgent string
	ExpiresAt time.Time
	CreatedAt time.Time
}

// Expired reports whether the session has passed its expiry.
func (s *Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}
