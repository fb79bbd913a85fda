package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrSessionNotFound indicates that the session token is unknown.
	ErrSessionNotFound = errors.New("session not found")
	// ErrExpiredSession indicates that the session countdown ran out.
	ErrExpiredSession = errors.New("expired session")
)

// Session is the ephemeral "currently authenticated account" handle.
// It is never persisted; it lives only in the session registry.
type Session struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
}
