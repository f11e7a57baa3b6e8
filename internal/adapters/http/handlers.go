package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

func (h *Handler) root(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("Hello World"))
}

func (h *Handler) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func decodeBody(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return err
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return errors.New("request body must contain a single JSON value")
	}
	return nil
}

// taskIDParam parses the {id} route segment; anything that is not a
// UUID is a 400 per the route contract.
func taskIDParam(r *http.Request) (uuid.UUID, error) {
	return uuid.Parse(chi.URLParam(r, "id"))
}

func writeMappedError(ctx context.Context, w http.ResponseWriter, operation string, err error) {
	status, description, known := mapDomainError(err)
	if !known {
		logHTTPOperationError(ctx, operation, status, "internal error", err)
		writeInternalError(w)
		return
	}
	logHTTPOperationError(ctx, operation, status, description, err)
	writeDomainError(w, status, description)
}

func writeValidationError(ctx context.Context, w http.ResponseWriter, operation string, err error) {
	logHTTPOperationError(ctx, operation, http.StatusBadRequest, "bad request", err)
	writeDomainError(w, http.StatusBadRequest, "Bad Request")
}
