package postgres

import (
	"errors"

	"github.com/tasknest/taskd/internal/ports"
	"gorm.io/gorm"
)

type Repositories struct {
	Users ports.UserRepository
	Tasks ports.TaskRepository
}

func NewRepositories(db *gorm.DB) Repositories {
	return Repositories{
		Users: &userRepository{db: db},
		Tasks: &taskRepository{db: db},
	}
}

func isUniqueViolation(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
