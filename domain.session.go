package main

import (
	"context"
	"errors"
	"time"
)

// ErrSessionNotFound reports a session identifier unknown to the session store.
var ErrSessionNotFound = errors.New("session not found")

// Session represents an authenticated session record as kept by the
// session store and referenced by the cookie-carried session identifier.
type Session struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Login     string    `json:"login"`
	CreatedAt time.Time `json:"createdAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Expired tells whether the session is past its expiry time. A zero
// expiry means the session never expires on its own.
func (s Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && now.After(s.ExpiresAt)
}

// SessionStore defines possible operations on session records. The auth
// gate only consumes Get; Put and Delete exist for the session lifecycle
// owned by the identity layer.
type SessionStore interface {
	Get(ctx context.Context, id string) (Session, error)
	Put(ctx context.Context, session Session) error
	Delete(ctx context.Context, id string) error
}
