package system

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSystemHealth(t *testing.T) {
	t.Parallel()
	logger := slog.New(slog.NewTextHandler(bytes.NewBuffer(nil), nil))

	tests := []struct {
		name   string
		checks map[string]Check
		code   int
		status string
	}{
		{"no checks", nil, http.StatusOK, "ok"},
		{"all up", map[string]Check{"postgres": func(context.Context) error { return nil }}, http.StatusOK, "ok"},
		{"redis down", map[string]Check{
			"postgres": func(context.Context) error { return nil },
			"redis":    func(context.Context) error { return errors.New("dial tcp: refused") },
		}, http.StatusServiceUnavailable, "degraded"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			rr := httptest.NewRecorder()
			NewHandler(logger, tt.checks).SystemHealth(rr, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))

			if rr.Code != tt.code {
				t.Fatalf("expected %d got %d", tt.code, rr.Code)
			}
			var got HealthResponse
			if err := json.Unmarshal(rr.Body.Bytes(), &got); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if got.Status != tt.status {
				t.Fatalf("status = %q", got.Status)
			}
		})
	}
}
