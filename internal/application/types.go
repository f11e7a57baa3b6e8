package application

import (
	"time"

	"github.com/google/uuid"
)

// Config carries the application-level tunables threaded in from
// bootstrap. The signing secret itself lives with the token signer,
// not here.
type Config struct {
	TokenTTL time.Duration
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserResponse is the public projection of a user. There is no
// password field on purpose.
type UserResponse struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Token string `json:"jwt"`
}

type TaskCreateRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

type TaskUpdateRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Status  string `json:"status"`
}

// TaskResponse is the wire form of a task. ParentID is omitted for
// top-level tasks.
type TaskResponse struct {
	ID       uuid.UUID  `json:"id"`
	Title    string     `json:"title"`
	Content  string     `json:"content"`
	Status   string     `json:"status"`
	UserID   uuid.UUID  `json:"userId"`
	ParentID *uuid.UUID `json:"parentId,omitempty"`
}
