package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/tasknest/taskd/internal/application"
	"github.com/tasknest/taskd/internal/metrics"
	"github.com/tasknest/taskd/internal/ports"
)

// Handler is the HTTP adapter entrypoint. It holds only application
// services and the token verifier the auth middleware needs.
type Handler struct {
	users  *application.UserService
	tasks  *application.TaskService
	signer ports.TokenSigner
}

func NewHandler(users *application.UserService, tasks *application.TaskService, signer ports.TokenSigner) *Handler {
	return &Handler{users: users, tasks: tasks, signer: signer}
}

// NewRouter registers all routes and the middleware stack. Task routes
// share one auth group so the bearer check cannot be forgotten on a
// new endpoint.
func NewRouter(handler *Handler, collector *metrics.Collector, gatherer prometheus.Gatherer) http.Handler {
	r := chi.NewRouter()
	r.Use(requestIDMiddleware)
	r.Use(recoverMiddleware)
	r.Use(loggingMiddleware(collector))

	r.Get("/", handler.root)
	r.Get("/healthz", handler.healthz)
	r.Method(http.MethodGet, "/metrics", metrics.Handler(gatherer))

	r.Route("/user", func(r chi.Router) {
		r.Post("/create", handler.createUser)
		r.Post("/login", handler.login)
	})

	r.Route("/task", func(r chi.Router) {
		r.Use(handler.authMiddleware)
		r.Get("/", handler.listTasks)
		r.Post("/", handler.createTask)
		r.Put("/{id}", handler.updateTask)
		r.Delete("/{id}", handler.deleteTask)
		r.Get("/{id}/subtasks", handler.listSubtasks)
		r.Post("/{id}/subtasks", handler.createSubtask)
	})

	return r
}
