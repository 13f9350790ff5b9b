// Package respond holds the JSON writing and error mapping shared by the
// HTTP handlers.
package respond

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"zonewatch/pkg/e"

	chimw "github.com/go-chi/chi/v5/middleware"
)

type ErrorBody struct {
	Error  string `json:"error"`
	Field  string `json:"field,omitempty"`
	Reason string `json:"reason,omitempty"`
}

// Logger returns base annotated with the chi request id, when there is one.
func Logger(r *http.Request, base *slog.Logger) *slog.Logger {
	reqID := chimw.GetReqID(r.Context())
	if reqID == "" {
		return base
	}
	return base.With(slog.String("request_id", reqID))
}

func JSON(w http.ResponseWriter, logger *slog.Logger, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("json encode failed", slog.Any("error", err))
	}
}

// Status maps a service error to its HTTP status and body.
func Status(err error) (int, ErrorBody) {
	var fe *e.FieldError
	switch {
	case errors.As(err, &fe):
		return http.StatusBadRequest, ErrorBody{Error: "invalid_input", Field: fe.Field, Reason: fe.Reason}
	case errors.Is(err, e.ErrInvalidInput):
		return http.StatusBadRequest, ErrorBody{Error: "invalid_input"}
	case errors.Is(err, e.ErrNotOwner):
		return http.StatusForbidden, ErrorBody{Error: "not_owner"}
	case errors.Is(err, e.ErrForbidden):
		return http.StatusUnauthorized, ErrorBody{Error: "forbidden"}
	case errors.Is(err, e.ErrNotFound):
		return http.StatusNotFound, ErrorBody{Error: "not_found"}
	case errors.Is(err, e.ErrConflict):
		return http.StatusConflict, ErrorBody{Error: "conflict"}
	case errors.Is(err, e.ErrStoreUnavailable):
		return http.StatusServiceUnavailable, ErrorBody{Error: "unavailable"}
	default:
		return http.StatusInternalServerError, ErrorBody{Error: "internal error"}
	}
}

func Error(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	l := Logger(r, logger)
	code, body := Status(err)

	attrs := []any{
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.Int("status", code),
		slog.Any("error", err),
	}
	if code >= http.StatusInternalServerError {
		l.Error("handler error", attrs...)
	} else {
		l.Warn("request rejected", attrs...)
	}

	if code == http.StatusServiceUnavailable {
		w.Header().Set("Retry-After", "5")
	}
	JSON(w, logger, code, body)
}
