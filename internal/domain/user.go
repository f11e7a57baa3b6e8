package domain

import (
	"time"

	"github.com/google/uuid"
)

// User is the identity record for one tenant of the tracker.
// The password hash never leaves this layer; API responses are built
// from projections that omit it.
type User struct {
	ID           uuid.UUID
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
