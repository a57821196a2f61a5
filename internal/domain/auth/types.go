package auth

// Package auth contains domain-level types for authentication and sessions.
// It is pure and free of framework/adapter concerns.

import "time"

// Principal is the resolved authenticated identity for a single request.
// It carries display attributes and no secret material. A nil *Principal
// means the request is anonymous.
type Principal struct {
	ID       string
	Username string
	Name     string
}

// Session is the server-side record persisted for an authenticated user.
// ID is an opaque session key (random UUID) transported via cookie; only the
// principal's identifier is stored, never the principal itself.
type Session struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired reports whether the session's expiry has passed at the given time.
func (s Session) Expired(now time.Time) bool { return now.After(s.ExpiresAt) }
