package http

import (
	"net/http"

	"github.com/tasknest/taskd/internal/application"
)

func (h *Handler) createUser(w http.ResponseWriter, r *http.Request) {
	var req application.RegisterRequest
	if err := decodeBody(r, &req); err != nil {
		writeValidationError(r.Context(), w, "create_user", err)
		return
	}

	res, err := h.users.Register(r.Context(), req)
	if err != nil {
		writeMappedError(r.Context(), w, "create_user", err)
		return
	}
	writeJSON(w, http.StatusCreated, res)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req application.LoginRequest
	if err := decodeBody(r, &req); err != nil {
		writeValidationError(r.Context(), w, "login", err)
		return
	}

	res, err := h.users.Login(r.Context(), req)
	if err != nil {
		writeMappedError(r.Context(), w, "login", err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}
