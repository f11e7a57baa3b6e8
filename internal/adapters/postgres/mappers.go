package postgres

import "github.com/tasknest/taskd/internal/domain"

func toUserModel(user domain.User) userModel {
	return userModel{
		ID:           user.ID,
		Name:         user.Name,
		Email:        user.Email,
		PasswordHash: user.PasswordHash,
		CreatedAt:    user.CreatedAt,
		UpdatedAt:    user.UpdatedAt,
	}
}

func toDomainUser(row userModel) domain.User {
	return domain.User{
		ID:           row.ID,
		Name:         row.Name,
		Email:        row.Email,
		PasswordHash: row.PasswordHash,
		CreatedAt:    row.CreatedAt,
		UpdatedAt:    row.UpdatedAt,
	}
}

func toTaskModel(task domain.Task) taskModel {
	return taskModel{
		ID:        task.ID,
		Title:     task.Title,
		Content:   task.Content,
		Status:    string(task.Status),
		UserID:    task.UserID,
		ParentID:  task.ParentID,
		CreatedAt: task.CreatedAt,
		UpdatedAt: task.UpdatedAt,
	}
}

func toDomainTask(row taskModel) domain.Task {
	return domain.Task{
		ID:        row.ID,
		Title:     row.Title,
		Content:   row.Content,
		Status:    domain.TaskStatus(row.Status),
		UserID:    row.UserID,
		ParentID:  row.ParentID,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}

func toDomainTasks(rows []taskModel) []domain.Task {
	result := make([]domain.Task, 0, len(rows))
	for _, row := range rows {
		result = append(result, toDomainTask(row))
	}
	return result
}
