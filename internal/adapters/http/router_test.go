package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/tasknest/taskd/internal/adapters/security"
	"github.com/tasknest/taskd/internal/application"
	"github.com/tasknest/taskd/internal/domain"
	"github.com/tasknest/taskd/internal/metrics"
	"github.com/tasknest/taskd/internal/ports"
)

type userStore struct {
	mu    sync.Mutex
	users []domain.User
}

func (s *userStore) Create(_ context.Context, user domain.User) (domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.users {
		if existing.Email == user.Email {
			return domain.User{}, domain.ErrEmailTaken
		}
	}
	s.users = append(s.users, user)
	return user, nil
}

func (s *userStore) GetByEmail(_ context.Context, email string) (domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, user := range s.users {
		if user.Email == email {
			return user, nil
		}
	}
	return domain.User{}, domain.ErrUserNotFound
}

func (s *userStore) GetByID(_ context.Context, id uuid.UUID) (domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, user := range s.users {
		if user.ID == id {
			return user, nil
		}
	}
	return domain.User{}, domain.ErrUserNotFound
}

type taskStore struct {
	mu    sync.Mutex
	tasks []domain.Task
}

func (s *taskStore) Create(_ context.Context, task domain.Task) (domain.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks = append(s.tasks, task)
	return task, nil
}

func (s *taskStore) ListTopLevel(_ context.Context, userID uuid.UUID) ([]domain.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.Task
	for _, task := range s.tasks {
		if task.UserID == userID && task.ParentID == nil {
			out = append(out, task)
		}
	}
	return out, nil
}

func (s *taskStore) ListByParent(_ context.Context, parentID, userID uuid.UUID) ([]domain.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.Task
	for _, task := range s.tasks {
		if task.UserID == userID && task.ParentID != nil && *task.ParentID == parentID {
			out = append(out, task)
		}
	}
	return out, nil
}

func (s *taskStore) GetByID(_ context.Context, id, userID uuid.UUID) (domain.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, task := range s.tasks {
		if task.ID == id && task.UserID == userID {
			return task, nil
		}
	}
	return domain.Task{}, domain.ErrTaskNotFound
}

func (s *taskStore) Update(_ context.Context, id, userID uuid.UUID, params ports.TaskUpdateParams) (domain.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, task := range s.tasks {
		if task.ID == id && task.UserID == userID {
			task.Title = params.Title
			task.Content = params.Content
			task.Status = params.Status
			task.UpdatedAt = time.Now().UTC()
			s.tasks[i] = task
			return task, nil
		}
	}
	return domain.Task{}, domain.ErrTaskNotFound
}

func (s *taskStore) Delete(_ context.Context, id, userID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, task := range s.tasks {
		if task.ID == id && task.UserID == userID {
			s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
			return nil
		}
	}
	return nil
}

// fastHasher keeps handler tests quick; the bcrypt adapter is
// exercised in its own package.
type fastHasher struct{}

func (fastHasher) Hash(password string) (string, error) { return "h:" + password, nil }
func (fastHasher) Compare(hash, password string) error {
	if hash != "h:"+password {
		return domain.ErrInvalidCredentials
	}
	return nil
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	signer, err := security.NewJWTSigner("test-secret")
	if err != nil {
		t.Fatalf("new signer: %v", err)
	}
	users := &userStore{}
	tasks := &taskStore{}

	userSvc := application.NewUserService(application.UserServiceDeps{
		Config: application.Config{TokenTTL: time.Hour},
		Users:  users,
		Hasher: fastHasher{},
		Signer: signer,
	})
	taskSvc := application.NewTaskService(application.TaskServiceDeps{Users: users, Tasks: tasks})

	registry := prometheus.NewRegistry()
	collector := metrics.NewCollector(registry)
	return NewRouter(NewHandler(userSvc, taskSvc, signer), collector, registry)
}

func doJSON(t *testing.T, router http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var payload *bytes.Buffer
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		payload = bytes.NewBuffer(raw)
	} else {
		payload = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, payload)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeInto(t *testing.T, rec *httptest.ResponseRecorder, dst any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), dst); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
}

func errorDescription(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		ErrorDescription string `json:"errorDescription"`
	}
	decodeInto(t, rec, &body)
	return body.ErrorDescription
}

func registerAndLogin(t *testing.T, router http.Handler, name, email, password string) string {
	t.Helper()

	rec := doJSON(t, router, http.MethodPost, "/user/create", "", map[string]string{
		"name": name, "email": email, "password": password,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("register status = %d, body %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, router, http.MethodPost, "/user/login", "", map[string]string{
		"email": email, "password": password,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("login status = %d, body %s", rec.Code, rec.Body.String())
	}
	var login struct {
		Token string `json:"jwt"`
	}
	decodeInto(t, rec, &login)
	if login.Token == "" {
		t.Fatal("login response carries no token")
	}
	return login.Token
}

func TestRootAndHealth(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/", "", nil)
	if rec.Code != http.StatusOK || rec.Body.String() != "Hello World" {
		t.Fatalf("root = %d %q", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, router, http.MethodGet, "/healthz", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("healthz status = %d", rec.Code)
	}
}

func TestRequestIDEchoed(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("X-Request-Id", "req-42")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if got := rec.Header().Get("X-Request-Id"); got != "req-42" {
		t.Fatalf("X-Request-Id = %q, want req-42", got)
	}

	rec = doJSON(t, router, http.MethodGet, "/healthz", "", nil)
	if rec.Header().Get("X-Request-Id") == "" {
		t.Fatal("expected a generated X-Request-Id")
	}
}

func TestMetricsEndpoint(t *testing.T) {
	router := newTestRouter(t)

	doJSON(t, router, http.MethodGet, "/healthz", "", nil)
	rec := doJSON(t, router, http.MethodGet, "/metrics", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("metrics status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "taskd_http_requests_total") {
		t.Fatalf("metrics body missing request counter: %s", rec.Body.String())
	}
}

func TestUserErrorShapes(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/user/create", "", map[string]string{
		"name": "Fulano", "email": "fulano@email.com", "password": "123456",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("register status = %d", rec.Code)
	}

	rec = doJSON(t, router, http.MethodPost, "/user/create", "", map[string]string{
		"name": "Fulano", "email": "fulano@email.com", "password": "123456",
	})
	if rec.Code != http.StatusBadRequest || errorDescription(t, rec) != "User already exists" {
		t.Fatalf("duplicate = %d %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, router, http.MethodPost, "/user/login", "", map[string]string{
		"email": "fulano@email.com", "password": "wrong1",
	})
	if rec.Code != http.StatusBadRequest || errorDescription(t, rec) != "Incorrect password" {
		t.Fatalf("wrong password = %d %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, router, http.MethodPost, "/user/login", "", map[string]string{
		"email": "ghost@email.com", "password": "123456",
	})
	if rec.Code != http.StatusNotFound || errorDescription(t, rec) != "User Not Found" {
		t.Fatalf("unknown user = %d %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, router, http.MethodPost, "/user/create", "", map[string]string{
		"name": "Fulano", "email": "other@email.com", "password": "123456", "role": "admin",
	})
	if rec.Code != http.StatusBadRequest || errorDescription(t, rec) != "Bad Request" {
		t.Fatalf("unknown field = %d %s", rec.Code, rec.Body.String())
	}
}

func TestTaskRoutesRequireToken(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/task", "", nil)
	if rec.Code != http.StatusUnauthorized || errorDescription(t, rec) != "Token not provided" {
		t.Fatalf("missing token = %d %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, router, http.MethodGet, "/task", "not-a-real-token", nil)
	if rec.Code != http.StatusUnauthorized || errorDescription(t, rec) != "Invalid token" {
		t.Fatalf("invalid token = %d %s", rec.Code, rec.Body.String())
	}
}

func TestTaskLifecycle(t *testing.T) {
	router := newTestRouter(t)
	token := registerAndLogin(t, router, "Fulano", "fulano@email.com", "123456")

	rec := doJSON(t, router, http.MethodPost, "/task", token, map[string]string{
		"title": "task 1", "content": "content 1",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body %s", rec.Code, rec.Body.String())
	}
	var created application.TaskResponse
	decodeInto(t, rec, &created)
	if created.Status != "PENDING" {
		t.Fatalf("created status = %q, want PENDING", created.Status)
	}

	rec = doJSON(t, router, http.MethodGet, "/task", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list status = %d", rec.Code)
	}
	var listed []application.TaskResponse
	decodeInto(t, rec, &listed)
	if len(listed) != 1 || listed[0].ID != created.ID {
		t.Fatalf("listed = %+v", listed)
	}

	rec = doJSON(t, router, http.MethodPut, "/task/"+created.ID.String(), token, map[string]string{
		"title": "Task 1", "content": "content 1", "status": "DONE",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("update status = %d, body %s", rec.Code, rec.Body.String())
	}
	var updated application.TaskResponse
	decodeInto(t, rec, &updated)
	if updated.ID != created.ID || updated.Title != "Task 1" || updated.Status != "DONE" {
		t.Fatalf("updated = %+v", updated)
	}

	rec = doJSON(t, router, http.MethodPost, "/task/"+created.ID.String()+"/subtasks", token, map[string]string{
		"title": "sub", "content": "c",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create subtask status = %d, body %s", rec.Code, rec.Body.String())
	}
	var sub application.TaskResponse
	decodeInto(t, rec, &sub)
	if sub.ParentID == nil || *sub.ParentID != created.ID {
		t.Fatalf("subtask parent = %v, want %s", sub.ParentID, created.ID)
	}

	rec = doJSON(t, router, http.MethodGet, "/task/"+created.ID.String()+"/subtasks", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list subtasks status = %d", rec.Code)
	}
	var subs []application.TaskResponse
	decodeInto(t, rec, &subs)
	if len(subs) != 1 || subs[0].ID != sub.ID {
		t.Fatalf("subtasks = %+v", subs)
	}

	// Subtasks never surface in the top-level listing.
	rec = doJSON(t, router, http.MethodGet, "/task", token, nil)
	decodeInto(t, rec, &listed)
	if len(listed) != 1 {
		t.Fatalf("top-level after subtask = %+v", listed)
	}

	rec = doJSON(t, router, http.MethodDelete, "/task/"+sub.ID.String(), token, nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d", rec.Code)
	}
	rec = doJSON(t, router, http.MethodDelete, "/task/"+sub.ID.String(), token, nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("repeat delete status = %d", rec.Code)
	}
}

func TestTaskErrorShapes(t *testing.T) {
	router := newTestRouter(t)
	token := registerAndLogin(t, router, "Fulano", "fulano@email.com", "123456")

	rec := doJSON(t, router, http.MethodPut, "/task/not-a-uuid", token, map[string]string{
		"title": "t", "content": "c", "status": "DONE",
	})
	if rec.Code != http.StatusBadRequest || errorDescription(t, rec) != "Bad Request" {
		t.Fatalf("bad id = %d %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, router, http.MethodPut, "/task/"+uuid.NewString(), token, map[string]string{
		"title": "t", "content": "c", "status": "DONE",
	})
	if rec.Code != http.StatusNotFound || errorDescription(t, rec) != "Task Not Found" {
		t.Fatalf("missing task = %d %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, router, http.MethodPost, "/task/"+uuid.NewString()+"/subtasks", token, map[string]string{
		"title": "t", "content": "c",
	})
	if rec.Code != http.StatusNotFound || errorDescription(t, rec) != "Task Not Found" {
		t.Fatalf("missing parent = %d %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, router, http.MethodPost, "/task", token, map[string]string{
		"title": "", "content": "c",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("blank title status = %d", rec.Code)
	}
}

func TestTasksAreScopedPerUser(t *testing.T) {
	router := newTestRouter(t)
	fulano := registerAndLogin(t, router, "Fulano", "fulano@email.com", "123456")
	beltrano := registerAndLogin(t, router, "Beltrano", "beltrano@email.com", "123456")

	rec := doJSON(t, router, http.MethodPost, "/task", fulano, map[string]string{
		"title": "mine", "content": "c",
	})
	var created application.TaskResponse
	decodeInto(t, rec, &created)

	rec = doJSON(t, router, http.MethodGet, "/task", beltrano, nil)
	var listed []application.TaskResponse
	decodeInto(t, rec, &listed)
	if len(listed) != 0 {
		t.Fatalf("beltrano sees %d tasks, want 0", len(listed))
	}

	rec = doJSON(t, router, http.MethodPut, "/task/"+created.ID.String(), beltrano, map[string]string{
		"title": "stolen", "content": "c", "status": "DONE",
	})
	if rec.Code != http.StatusNotFound || errorDescription(t, rec) != "Task Not Found" {
		t.Fatalf("cross-owner update = %d %s", rec.Code, rec.Body.String())
	}
}
