package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func decodeSuccess(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var response map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if success, ok := response["success"].(bool); !ok || !success {
		t.Fatalf("expected success=true, got %v", response["success"])
	}
	data, ok := response["data"].(map[string]any)
	if !ok {
		t.Fatalf("expected data object, got %T", response["data"])
	}
	return data
}

func TestAPIHandlers_HandleSummary(t *testing.T) {
	env := newTestEnv(staticLoader{records: testRecords})
	handlers := NewAPIHandlers(env.analytics, env.dashboard, env.sessions, env.logger)

	w := serve(handlers.HandleSummary, httptest.NewRequest(http.MethodGet, "/api/summary", nil))
	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("before the first load: expected status %d, got %d", http.StatusServiceUnavailable, w.Code)
	}

	sess, _ := env.sessions.GetOrCreate("")
	if _, err := env.dashboard.Update(context.Background(), sess, dashboardWidths); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	w = serve(handlers.HandleSummary, httptest.NewRequest(http.MethodGet, "/api/summary", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}
	if cc := w.Header().Get("Cache-Control"); cc != "private, max-age=30" {
		t.Errorf("unexpected Cache-Control %q", cc)
	}

	data := decodeSuccess(t, w)
	if got := data["record_count"]; got != float64(3) {
		t.Errorf("record_count = %v, want 3", got)
	}
	if got := data["source"]; got != "static" {
		t.Errorf("source = %v, want static", got)
	}
}

func TestAPIHandlers_HandleSelection(t *testing.T) {
	env := newTestEnv(staticLoader{records: testRecords})
	handlers := NewAPIHandlers(env.analytics, env.dashboard, env.sessions, env.logger)

	req, sess := env.withSession(httptest.NewRequest(http.MethodGet, "/api/selection", nil))
	sess.Toggle("Laptop")

	data := decodeSuccess(t, serve(handlers.HandleSelection, req))
	if data["selected"] != "Laptop" {
		t.Errorf("selected = %v, want Laptop", data["selected"])
	}
	if data["session_id"] != sess.ID {
		t.Errorf("session_id = %v, want %s", data["session_id"], sess.ID)
	}

	w := serve(handlers.HandleSelection, httptest.NewRequest(http.MethodGet, "/api/selection", nil))
	if w.Code != http.StatusBadRequest {
		t.Errorf("without a session: expected status %d, got %d", http.StatusBadRequest, w.Code)
	}
}

func TestAPIHandlers_HandleHealth(t *testing.T) {
	env := newTestEnv(staticLoader{records: testRecords})
	handlers := NewAPIHandlers(env.analytics, env.dashboard, env.sessions, env.logger)

	w := serve(handlers.HandleHealth, httptest.NewRequest(http.MethodGet, "/health", nil))
	if w.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected content-type 'application/json', got %q", ct)
	}

	data := decodeSuccess(t, w)
	if data["status"] != "healthy" {
		t.Errorf("expected status 'healthy', got %v", data["status"])
	}
	for _, field := range []string{"timestamp", "version"} {
		if _, exists := data[field]; !exists {
			t.Errorf("expected health data to contain field %q", field)
		}
	}
}

func TestAPIHandlers_HandleStats(t *testing.T) {
	env := newTestEnv(staticLoader{records: testRecords})
	handlers := NewAPIHandlers(env.analytics, env.dashboard, env.sessions, env.logger)

	sess, _ := env.sessions.GetOrCreate("")
	for i := 0; i < 2; i++ {
		if _, err := env.dashboard.Update(context.Background(), sess, dashboardWidths); err != nil {
			t.Fatalf("Update() error = %v", err)
		}
	}

	data := decodeSuccess(t, serve(handlers.HandleStats, httptest.NewRequest(http.MethodGet, "/api/stats", nil)))

	tests := []struct {
		key  string
		want any
	}{
		{"loads", float64(2)},
		{"load_failures", float64(0)},
		{"render_passes", float64(2)},
		{"renders_superseded", float64(0)},
		{"sessions", float64(1)},
		{"products", float64(2)},
		{"months", float64(2)},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			if got := data[tt.key]; got != tt.want {
				t.Errorf("%s = %v, want %v", tt.key, got, tt.want)
			}
		})
	}
}
