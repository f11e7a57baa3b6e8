package http

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tasknest/taskd/internal/domain"
	"github.com/tasknest/taskd/internal/metrics"
	"github.com/tasknest/taskd/internal/ports"
)

type ctxKey string

const (
	ctxKeyRequestID ctxKey = "request_id"
	ctxKeyClaims    ctxKey = "session_claims"
)

func requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := r.Header.Get("X-Request-Id")
		if reqID == "" {
			reqID = uuid.NewString()
		}
		w.Header().Set("X-Request-Id", reqID)
		ctx := context.WithValue(r.Context(), ctxKeyRequestID, reqID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func recoverMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				httpLogger().ErrorContext(r.Context(), "panic recovered",
					"operation", "http_panic_recovery",
					"outcome", "failure",
					"request_id", requestIDFromContext(r.Context()),
					"method", r.Method,
					"path", r.URL.Path,
					"panic", rec,
				)
				writeInternalError(w)
			}
		}()
		next.ServeHTTP(w, r)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	statusCode int
	bytes      int
}

func (r *statusRecorder) WriteHeader(statusCode int) {
	r.statusCode = statusCode
	r.ResponseWriter.WriteHeader(statusCode)
}

func (r *statusRecorder) Write(payload []byte) (int, error) {
	if r.statusCode == 0 {
		r.statusCode = http.StatusOK
	}
	n, err := r.ResponseWriter.Write(payload)
	r.bytes += n
	return n, err
}

func loggingMiddleware(collector *metrics.Collector) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			recorder := &statusRecorder{ResponseWriter: w}
			next.ServeHTTP(recorder, r)

			statusCode := recorder.statusCode
			if statusCode == 0 {
				statusCode = http.StatusOK
			}
			duration := time.Since(start)
			if collector != nil {
				collector.RecordRequest(r.Method, statusCode, duration)
			}

			outcome := "success"
			if statusCode >= 400 {
				outcome = "failure"
			}
			fields := []any{
				"operation", "http_request",
				"outcome", outcome,
				"method", r.Method,
				"path", r.URL.Path,
				"status_code", statusCode,
				"bytes", recorder.bytes,
				"duration_ms", duration.Milliseconds(),
				"request_id", requestIDFromContext(r.Context()),
			}
			switch {
			case statusCode >= 500:
				httpLogger().ErrorContext(r.Context(), "http request completed", fields...)
			case statusCode >= 400:
				httpLogger().WarnContext(r.Context(), "http request completed", fields...)
			default:
				httpLogger().InfoContext(r.Context(), "http request completed", fields...)
			}
		})
	}
}

// authMiddleware gates every task route. Both the missing-header and
// the failed-verification cases answer 401: a bad credential is an
// authentication failure, not a malformed request.
func (h *Handler) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, err := bearerTokenFromHeader(r.Header.Get("Authorization"))
		if err != nil {
			logHTTPOperationError(r.Context(), "authorize", http.StatusUnauthorized, "token not provided", err)
			writeDomainError(w, http.StatusUnauthorized, "Token not provided")
			return
		}

		claims, err := h.signer.Verify(raw)
		if err != nil {
			logHTTPOperationError(r.Context(), "authorize", http.StatusUnauthorized, "invalid token", err)
			writeDomainError(w, http.StatusUnauthorized, "Invalid token")
			return
		}

		ctx := context.WithValue(r.Context(), ctxKeyClaims, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func requestIDFromContext(ctx context.Context) string {
	v := ctx.Value(ctxKeyRequestID)
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}

func claimsFromContext(ctx context.Context) (ports.TokenClaims, bool) {
	v := ctx.Value(ctxKeyClaims)
	claims, ok := v.(ports.TokenClaims)
	return claims, ok
}

func bearerTokenFromHeader(header string) (string, error) {
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return "", errors.New("missing bearer token")
	}
	token := strings.TrimSpace(strings.TrimPrefix(header, prefix))
	if token == "" {
		return "", errors.New("missing bearer token")
	}
	return token, nil
}

// mapDomainError translates sentinel errors to the status code carried
// by their kind. Anything unclassified falls through to a generic 500.
func mapDomainError(err error) (int, string, bool) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, err.Error(), true
	case errors.Is(err, domain.ErrEmailTaken):
		return http.StatusBadRequest, "User already exists", true
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusBadRequest, "Incorrect password", true
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, "User Not Found", true
	case errors.Is(err, domain.ErrTaskNotFound):
		return http.StatusNotFound, "Task Not Found", true
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized, "Token not provided", true
	default:
		return http.StatusInternalServerError, "", false
	}
}
