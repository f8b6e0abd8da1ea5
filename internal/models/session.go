package models

import "time"

// Session is an authenticated actor's login session. Sessions live in Redis
// with a TTL, not in the relational store; the ID doubles as the bearer
// token handed to the client.
//
// The login flow behind it is a placeholder credential check, not a
// security mechanism.
type Session struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired reports whether the session has passed its expiry.
func (s *Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}
