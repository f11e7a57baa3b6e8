package http

import (
	"net/http"

	"github.com/tasknest/taskd/internal/application"
)

func (h *Handler) listTasks(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFromContext(r.Context())
	if !ok {
		writeDomainError(w, http.StatusUnauthorized, "Token not provided")
		return
	}

	tasks, err := h.tasks.ListTasks(r.Context(), claims.Email)
	if err != nil {
		writeMappedError(r.Context(), w, "list_tasks", err)
		return
	}
	writeJSON(w, http.StatusOK, tasks)
}

func (h *Handler) createTask(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFromContext(r.Context())
	if !ok {
		writeDomainError(w, http.StatusUnauthorized, "Token not provided")
		return
	}

	var req application.TaskCreateRequest
	if err := decodeBody(r, &req); err != nil {
		writeValidationError(r.Context(), w, "create_task", err)
		return
	}

	task, err := h.tasks.CreateTask(r.Context(), req, claims.Email)
	if err != nil {
		writeMappedError(r.Context(), w, "create_task", err)
		return
	}
	writeJSON(w, http.StatusCreated, task)
}

func (h *Handler) updateTask(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFromContext(r.Context())
	if !ok {
		writeDomainError(w, http.StatusUnauthorized, "Token not provided")
		return
	}

	id, err := taskIDParam(r)
	if err != nil {
		writeValidationError(r.Context(), w, "update_task", err)
		return
	}
	var req application.TaskUpdateRequest
	if err := decodeBody(r, &req); err != nil {
		writeValidationError(r.Context(), w, "update_task", err)
		return
	}

	task, err := h.tasks.UpdateTask(r.Context(), id, req, claims.Email)
	if err != nil {
		writeMappedError(r.Context(), w, "update_task", err)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

func (h *Handler) listSubtasks(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFromContext(r.Context())
	if !ok {
		writeDomainError(w, http.StatusUnauthorized, "Token not provided")
		return
	}

	id, err := taskIDParam(r)
	if err != nil {
		writeValidationError(r.Context(), w, "list_subtasks", err)
		return
	}

	subtasks, err := h.tasks.ListSubtasks(r.Context(), id, claims.Email)
	if err != nil {
		writeMappedError(r.Context(), w, "list_subtasks", err)
		return
	}
	writeJSON(w, http.StatusOK, subtasks)
}

func (h *Handler) createSubtask(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFromContext(r.Context())
	if !ok {
		writeDomainError(w, http.StatusUnauthorized, "Token not provided")
		return
	}

	id, err := taskIDParam(r)
	if err != nil {
		writeValidationError(r.Context(), w, "create_subtask", err)
		return
	}
	var req application.TaskCreateRequest
	if err := decodeBody(r, &req); err != nil {
		writeValidationError(r.Context(), w, "create_subtask", err)
		return
	}

	task, err := h.tasks.CreateSubtask(r.Context(), req, claims.Email, id)
	if err != nil {
		writeMappedError(r.Context(), w, "create_subtask", err)
		return
	}
	writeJSON(w, http.StatusCreated, task)
}

func (h *Handler) deleteTask(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFromContext(r.Context())
	if !ok {
		writeDomainError(w, http.StatusUnauthorized, "Token not provided")
		return
	}

	id, err := taskIDParam(r)
	if err != nil {
		writeValidationError(r.Context(), w, "delete_task", err)
		return
	}

	if err := h.tasks.DeleteTask(r.Context(), id, claims.Email); err != nil {
		writeMappedError(r.Context(), w, "delete_task", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
