package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/tasknest/taskd/internal/domain"
	"github.com/tasknest/taskd/internal/ports"
	"gorm.io/gorm"
)

type taskRepository struct {
	db *gorm.DB
}

func (r *taskRepository) Create(ctx context.Context, task domain.Task) (domain.Task, error) {
	rec := toTaskModel(task)
	if err := r.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return domain.Task{}, err
	}
	return toDomainTask(rec), nil
}

func (r *taskRepository) ListTopLevel(ctx context.Context, userID uuid.UUID) ([]domain.Task, error) {
	var rows []taskModel
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Where("parent_id IS NULL").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return toDomainTasks(rows), nil
}

func (r *taskRepository) ListByParent(ctx context.Context, parentID, userID uuid.UUID) ([]domain.Task, error) {
	var rows []taskModel
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Where("parent_id = ?", parentID).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return toDomainTasks(rows), nil
}

func (r *taskRepository) GetByID(ctx context.Context, id, userID uuid.UUID) (domain.Task, error) {
	var rec taskModel
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		Where("user_id = ?", userID).
		Take(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Task{}, domain.ErrTaskNotFound
		}
		return domain.Task{}, err
	}
	return toDomainTask(rec), nil
}

// Update is scoped by id and owner so one user can never touch
// another's task by guessing ids.
func (r *taskRepository) Update(ctx context.Context, id, userID uuid.UUID, params ports.TaskUpdateParams) (domain.Task, error) {
	res := r.db.WithContext(ctx).
		Model(&taskModel{}).
		Where("id = ?", id).
		Where("user_id = ?", userID).
		Updates(map[string]any{
			"title":      params.Title,
			"content":    params.Content,
			"status":     string(params.Status),
			"updated_at": gorm.Expr("now()"),
		})
	if res.Error != nil {
		return domain.Task{}, res.Error
	}
	if res.RowsAffected == 0 {
		return domain.Task{}, domain.ErrTaskNotFound
	}
	return r.GetByID(ctx, id, userID)
}

// Delete matching zero rows is not an error; the end state is the
// same either way.
func (r *taskRepository) Delete(ctx context.Context, id, userID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Where("user_id = ?", userID).
		Delete(&taskModel{}).Error
}
