package postgres

import (
	"time"

	"github.com/google/uuid"
)

type userModel struct {
	ID           uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name         string    `gorm:"column:name"`
	Email        string    `gorm:"column:email"`
	PasswordHash string    `gorm:"column:password_hash"`
	CreatedAt    time.Time `gorm:"column:created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

func (userModel) TableName() string { return "users" }

type taskModel struct {
	ID        uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Title     string     `gorm:"column:title"`
	Content   string     `gorm:"column:content"`
	Status    string     `gorm:"column:status"`
	UserID    uuid.UUID  `gorm:"column:user_id"`
	ParentID  *uuid.UUID `gorm:"column:parent_id"`
	CreatedAt time.Time  `gorm:"column:created_at"`
	UpdatedAt time.Time  `gorm:"column:updated_at"`
}

func (taskModel) TableName() string { return "tasks" }
