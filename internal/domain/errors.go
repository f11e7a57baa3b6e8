package domain

import "errors"

var (
	// ErrEmailTaken is returned when registration hits an email that
	// already identifies a user. The users table carries a unique index
	// on email as the backstop for concurrent registrations.
	ErrEmailTaken = errors.New("user email already exists")
	// ErrUserNotFound covers both an unknown login email and a bearer
	// token whose email no longer resolves to a user.
	ErrUserNotFound = errors.New("user not found")
	// ErrInvalidCredentials hides which part of the credential failed.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrTaskNotFound is scoped to the acting owner: a task that exists
	// but belongs to someone else maps to this same error.
	ErrTaskNotFound      = errors.New("task not found")
	ErrInvalidInput      = errors.New("invalid input")
	ErrUnauthorized      = errors.New("unauthorized")
)
