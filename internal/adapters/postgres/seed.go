package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/tasknest/taskd/internal/ports"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Well-known seed ids so local clients and docs can reference stable
// records across resets.
var (
	seedUserID = uuid.MustParse("da500959-00cc-4c5f-8fc8-b82242fee018")
	seedTaskID = uuid.MustParse("3f8a2c44-9d1e-4b7a-8c35-5f0f2b9a6e21")
)

// Seed inserts the development fixtures: one known user (password
// "123456") with a task and a subtask. Inserts are conflict-tolerant
// so repeated boots leave existing rows alone.
func Seed(ctx context.Context, db *gorm.DB, hasher ports.PasswordHasher) error {
	passwordHash, err := hasher.Hash("123456")
	if err != nil {
		return fmt.Errorf("hash seed password: %w", err)
	}

	seededAt := time.Date(2021, 10, 10, 0, 0, 0, 0, time.UTC)
	user := userModel{
		ID:           seedUserID,
		Name:         "John Doe",
		Email:        "john@doe.com",
		PasswordHash: passwordHash,
		CreatedAt:    seededAt,
		UpdatedAt:    seededAt,
	}
	if err := db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&user).Error; err != nil {
		return fmt.Errorf("seed user: %w", err)
	}

	parent := taskModel{
		ID:        seedTaskID,
		Title:     "Main Task 1",
		Content:   "Content of the main task",
		Status:    "PENDING",
		UserID:    seedUserID,
		CreatedAt: seededAt,
		UpdatedAt: seededAt,
	}
	child := taskModel{
		ID:        uuid.MustParse("7c1d0b6e-2a4f-4e9b-9d58-1e3c8a0f4b72"),
		Title:     "Subtask 1",
		Content:   "Content of the subtask",
		Status:    "PENDING",
		UserID:    seedUserID,
		ParentID:  &parent.ID,
		CreatedAt: seededAt,
		UpdatedAt: seededAt,
	}
	for _, task := range []taskModel{parent, child} {
		rec := task
		if err := db.WithContext(ctx).
			Clauses(clause.OnConflict{DoNothing: true}).
			Create(&rec).Error; err != nil {
			return fmt.Errorf("seed task %s: %w", rec.ID, err)
		}
	}

	slog.Default().InfoContext(ctx, "seed data applied",
		"module", "postgres",
		"layer", "adapter",
		"operation", "seed",
		"outcome", "success",
	)
	return nil
}
