package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/tasknest/taskd/internal/domain"
	"github.com/tasknest/taskd/internal/ports"
)

// memUserRepo is an in-memory ports.UserRepository keeping insertion
// semantics close to the SQL adapter: unique email, not-found sentinels.
type memUserRepo struct {
	mu    sync.Mutex
	users []domain.User
}

func (r *memUserRepo) Create(_ context.Context, user domain.User) (domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Email == user.Email {
			return domain.User{}, domain.ErrEmailTaken
		}
	}
	r.users = append(r.users, user)
	return user, nil
}

func (r *memUserRepo) GetByEmail(_ context.Context, email string) (domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Email == email {
			return user, nil
		}
	}
	return domain.User{}, domain.ErrUserNotFound
}

func (r *memUserRepo) GetByID(_ context.Context, id uuid.UUID) (domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.ID == id {
			return user, nil
		}
	}
	return domain.User{}, domain.ErrUserNotFound
}

// memTaskRepo is an in-memory ports.TaskRepository. Tasks keep
// insertion order so list assertions stay deterministic.
type memTaskRepo struct {
	mu    sync.Mutex
	tasks []domain.Task
}

func (r *memTaskRepo) Create(_ context.Context, task domain.Task) (domain.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tasks = append(r.tasks, task)
	return task, nil
}

func (r *memTaskRepo) ListTopLevel(_ context.Context, userID uuid.UUID) ([]domain.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Task
	for _, task := range r.tasks {
		if task.UserID == userID && task.ParentID == nil {
			out = append(out, task)
		}
	}
	return out, nil
}

func (r *memTaskRepo) ListByParent(_ context.Context, parentID, userID uuid.UUID) ([]domain.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Task
	for _, task := range r.tasks {
		if task.UserID == userID && task.ParentID != nil && *task.ParentID == parentID {
			out = append(out, task)
		}
	}
	return out, nil
}

func (r *memTaskRepo) GetByID(_ context.Context, id, userID uuid.UUID) (domain.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, task := range r.tasks {
		if task.ID == id && task.UserID == userID {
			return task, nil
		}
	}
	return domain.Task{}, domain.ErrTaskNotFound
}

func (r *memTaskRepo) Update(_ context.Context, id, userID uuid.UUID, params ports.TaskUpdateParams) (domain.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, task := range r.tasks {
		if task.ID == id && task.UserID == userID {
			task.Title = params.Title
			task.Content = params.Content
			task.Status = params.Status
			task.UpdatedAt = time.Now().UTC()
			r.tasks[i] = task
			return task, nil
		}
	}
	return domain.Task{}, domain.ErrTaskNotFound
}

func (r *memTaskRepo) Delete(_ context.Context, id, userID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, task := range r.tasks {
		if task.ID == id && task.UserID == userID {
			r.tasks = append(r.tasks[:i], r.tasks[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *memTaskRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.tasks)
}

// plainHasher is a reversible stand-in so service tests stay fast; the
// real bcrypt adapter has its own tests.
type plainHasher struct{}

func (plainHasher) Hash(password string) (string, error) {
	return "hashed:" + password, nil
}

func (plainHasher) Compare(hash, password string) error {
	if hash != "hashed:"+password {
		return errors.New("hash mismatch")
	}
	return nil
}

// staticSigner emits a decodable fake token carrying the claim fields.
type staticSigner struct{}

func (staticSigner) Sign(claims ports.TokenClaims) (string, error) {
	return fmt.Sprintf("token|%s|%s|%d", claims.Name, claims.Email, claims.ExpiresAt.Unix()), nil
}

func (staticSigner) Verify(token string) (ports.TokenClaims, error) {
	parts := strings.Split(token, "|")
	if len(parts) != 4 || parts[0] != "token" {
		return ports.TokenClaims{}, errors.New("bad token")
	}
	return ports.TokenClaims{Name: parts[1], Email: parts[2]}, nil
}

type serviceFixture struct {
	users   *memUserRepo
	tasks   *memTaskRepo
	userSvc *UserService
	taskSvc *TaskService
	now     time.Time
}

func newServiceFixture() *serviceFixture {
	users := &memUserRepo{}
	tasks := &memTaskRepo{}
	now := time.Date(2024, 5, 20, 12, 0, 0, 0, time.UTC)

	userSvc := NewUserService(UserServiceDeps{
		Config: Config{TokenTTL: 24 * time.Hour},
		Users:  users,
		Hasher: plainHasher{},
		Signer: staticSigner{},
	})
	userSvc.nowFn = func() time.Time { return now }

	taskSvc := NewTaskService(TaskServiceDeps{Users: users, Tasks: tasks})
	taskSvc.nowFn = func() time.Time { return now }

	return &serviceFixture{users: users, tasks: tasks, userSvc: userSvc, taskSvc: taskSvc, now: now}
}

func (f *serviceFixture) register(ctx context.Context, name, email, password string) (UserResponse, error) {
	return f.userSvc.Register(ctx, RegisterRequest{Name: name, Email: email, Password: password})
}
