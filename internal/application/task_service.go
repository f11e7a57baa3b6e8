package application

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tasknest/taskd/internal/domain"
	"github.com/tasknest/taskd/internal/ports"
)

// TaskService orchestrates task and subtask CRUD. Every operation
// resolves the acting user by the email carried in the verified token
// claims before touching the task store; task queries are then scoped
// by the resolved user id.
type TaskService struct {
	users ports.UserRepository
	tasks ports.TaskRepository
	nowFn func() time.Time
}

type TaskServiceDeps struct {
	Users ports.UserRepository
	Tasks ports.TaskRepository
}

func NewTaskService(deps TaskServiceDeps) *TaskService {
	return &TaskService{
		users: deps.Users,
		tasks: deps.Tasks,
		nowFn: func() time.Time { return time.Now().UTC() },
	}
}

// resolveOwner is the sole authorization step: the claims' email must
// still name an existing user.
func (s *TaskService) resolveOwner(ctx context.Context, email string) (domain.User, error) {
	user, err := s.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return domain.User{}, err
	}
	return user, nil
}

// CreateTask persists a new top-level task in PENDING state.
func (s *TaskService) CreateTask(ctx context.Context, req TaskCreateRequest, ownerEmail string) (TaskResponse, error) {
	owner, err := s.resolveOwner(ctx, ownerEmail)
	if err != nil {
		return TaskResponse{}, err
	}
	if err := validateTaskBody(req.Title, req.Content); err != nil {
		return TaskResponse{}, err
	}

	task, err := s.persistTask(ctx, req, owner, nil)
	if err != nil {
		return TaskResponse{}, err
	}
	return toTaskResponse(task), nil
}

// CreateSubtask persists a new task under parentID. The parent must
// exist and belong to the same owner.
func (s *TaskService) CreateSubtask(ctx context.Context, req TaskCreateRequest, ownerEmail string, parentID uuid.UUID) (TaskResponse, error) {
	owner, err := s.resolveOwner(ctx, ownerEmail)
	if err != nil {
		return TaskResponse{}, err
	}
	if err := validateTaskBody(req.Title, req.Content); err != nil {
		return TaskResponse{}, err
	}

	if _, err := s.tasks.GetByID(ctx, parentID, owner.ID); err != nil {
		return TaskResponse{}, err
	}

	task, err := s.persistTask(ctx, req, owner, &parentID)
	if err != nil {
		return TaskResponse{}, err
	}
	return toTaskResponse(task), nil
}

// ListTasks returns the owner's top-level tasks. Subtasks never appear
// here; they are reachable only through ListSubtasks.
func (s *TaskService) ListTasks(ctx context.Context, ownerEmail string) ([]TaskResponse, error) {
	owner, err := s.resolveOwner(ctx, ownerEmail)
	if err != nil {
		return nil, err
	}

	tasks, err := s.tasks.ListTopLevel(ctx, owner.ID)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return toTaskResponses(tasks), nil
}

// ListSubtasks returns the owner's tasks whose parent equals parentID.
func (s *TaskService) ListSubtasks(ctx context.Context, parentID uuid.UUID, ownerEmail string) ([]TaskResponse, error) {
	owner, err := s.resolveOwner(ctx, ownerEmail)
	if err != nil {
		return nil, err
	}

	tasks, err := s.tasks.ListByParent(ctx, parentID, owner.ID)
	if err != nil {
		return nil, fmt.Errorf("list subtasks: %w", err)
	}
	return toTaskResponses(tasks), nil
}

// UpdateTask overwrites title, content and status on the task matching
// id and owner.
func (s *TaskService) UpdateTask(ctx context.Context, id uuid.UUID, req TaskUpdateRequest, ownerEmail string) (TaskResponse, error) {
	owner, err := s.resolveOwner(ctx, ownerEmail)
	if err != nil {
		return TaskResponse{}, err
	}
	if err := validateTaskBody(req.Title, req.Content); err != nil {
		return TaskResponse{}, err
	}
	status, err := domain.ParseTaskStatus(req.Status)
	if err != nil {
		return TaskResponse{}, err
	}

	task, err := s.tasks.Update(ctx, id, owner.ID, ports.TaskUpdateParams{
		Title:   strings.TrimSpace(req.Title),
		Content: req.Content,
		Status:  status,
	})
	if err != nil {
		return TaskResponse{}, err
	}
	return toTaskResponse(task), nil
}

// DeleteTask removes the task matching id and owner. A delete that
// matches nothing still succeeds.
func (s *TaskService) DeleteTask(ctx context.Context, id uuid.UUID, ownerEmail string) error {
	owner, err := s.resolveOwner(ctx, ownerEmail)
	if err != nil {
		return err
	}
	if err := s.tasks.Delete(ctx, id, owner.ID); err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	return nil
}

func (s *TaskService) persistTask(ctx context.Context, req TaskCreateRequest, owner domain.User, parentID *uuid.UUID) (domain.Task, error) {
	now := s.nowFn()
	task, err := s.tasks.Create(ctx, domain.Task{
		ID:        uuid.New(),
		Title:     strings.TrimSpace(req.Title),
		Content:   req.Content,
		Status:    domain.StatusPending,
		UserID:    owner.ID,
		ParentID:  parentID,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return domain.Task{}, fmt.Errorf("create task: %w", err)
	}

	slog.InfoContext(ctx, "task created",
		"operation", "create_task",
		"outcome", "success",
		"task_id", task.ID.String(),
		"user_id", owner.ID.String(),
		"subtask", task.IsSubtask(),
	)
	return task, nil
}

func validateTaskBody(title, content string) error {
	if strings.TrimSpace(title) == "" {
		return fmt.Errorf("%w: title is required", domain.ErrInvalidInput)
	}
	if strings.TrimSpace(content) == "" {
		return fmt.Errorf("%w: content is required", domain.ErrInvalidInput)
	}
	return nil
}

func toTaskResponse(task domain.Task) TaskResponse {
	return TaskResponse{
		ID:       task.ID,
		Title:    task.Title,
		Content:  task.Content,
		Status:   string(task.Status),
		UserID:   task.UserID,
		ParentID: task.ParentID,
	}
}

func toTaskResponses(tasks []domain.Task) []TaskResponse {
	result := make([]TaskResponse, 0, len(tasks))
	for _, task := range tasks {
		result = append(result, toTaskResponse(task))
	}
	return result
}
