package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"sales-dashboard/internal/errors"
)

func TestSSEHandlers_HandleDashboard(t *testing.T) {
	env := newTestEnv(staticLoader{records: testRecords})
	handlers := NewSSEHandlers(env.dashboard, env.logger)

	req, _ := env.withSession(httptest.NewRequest(http.MethodGet, "/sse/dashboard", nil))
	w := serve(handlers.HandleDashboard, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, w.Code)
	}

	// Check SSE headers (DataStar sets these)
	if ct := w.Header().Get("Content-Type"); !strings.Contains(ct, "text/event-stream") {
		t.Errorf("expected content-type to contain 'text/event-stream', got %q", ct)
	}

	body := w.Body.String()
	expectedContent := []string{
		"datastar-patch-elements",
		"datastar-patch-signals",
		`id="kpi-summary"`,
		`id="bar-chart-area"`,
		`id="bubble-chart-area"`,
		`id="donut-chart-area"`,
		"Mouse (20)",
		`"generation":1`,
	}
	for _, content := range expectedContent {
		if !strings.Contains(body, content) {
			t.Errorf("expected stream to contain %q", content)
		}
	}

	// No chart renderer is configured, so the revenue chart is skipped.
	if strings.Contains(body, `id="chart-area"`) {
		t.Error("revenue chart should be skipped without a renderer")
	}
}

func TestSSEHandlers_HandleDashboard_UsesWidthSignals(t *testing.T) {
	env := newTestEnv(staticLoader{records: testRecords})
	handlers := NewSSEHandlers(env.dashboard, env.logger)

	target := `/sse/dashboard?datastar=` + `%7B%22barWidth%22%3A500%2C%22donutWidth%22%3A400%7D`
	req, _ := env.withSession(httptest.NewRequest(http.MethodGet, target, nil))
	body := serve(handlers.HandleDashboard, req).Body.String()

	if !strings.Contains(body, `width="500"`) {
		t.Error("bar chart should use the measured width")
	}
}

func TestSSEHandlers_HandleSelect(t *testing.T) {
	env := newTestEnv(staticLoader{records: testRecords})
	handlers := NewSSEHandlers(env.dashboard, env.logger)

	req, sess := env.withSession(httptest.NewRequest(http.MethodPost, "/sse/select?product=Mouse", strings.NewReader("{}")))
	body := serve(handlers.HandleSelect, req).Body.String()

	if got := sess.Selected(); got != "Mouse" {
		t.Errorf("Selected() = %q, want Mouse", got)
	}
	for _, content := range []string{`"selected":"Mouse"`, "Mouse (20)", "VENTA TOTAL (MOUSE)"} {
		if !strings.Contains(body, content) {
			t.Errorf("expected stream to contain %q", content)
		}
	}

	// Selecting the same product again clears the selection.
	req = httptest.NewRequest(http.MethodPost, "/sse/select?product=Mouse", strings.NewReader("{}"))
	req = req.WithContext(withSessionContext(req, sess))
	body = serve(handlers.HandleSelect, req).Body.String()

	if got := sess.Selected(); got != "" {
		t.Errorf("Selected() after second toggle = %q, want none", got)
	}
	if !strings.Contains(body, "VENTA TOTAL GENERAL") {
		t.Error("cleared selection should show the general KPIs")
	}
}

func TestSSEHandlers_HandleSelect_MissingProduct(t *testing.T) {
	env := newTestEnv(staticLoader{records: testRecords})
	handlers := NewSSEHandlers(env.dashboard, env.logger)

	req, sess := env.withSession(httptest.NewRequest(http.MethodPost, "/sse/select", nil))
	w := serve(handlers.HandleSelect, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status %d, got %d", http.StatusBadRequest, w.Code)
	}
	if sess.Generation() != 0 {
		t.Error("rejected request must not start a render pass")
	}
}

func TestSSEHandlers_LoadErrorFrame(t *testing.T) {
	env := newTestEnv(staticLoader{err: errors.Load(http.ErrHandlerTimeout, "fetch dataset")})
	handlers := NewSSEHandlers(env.dashboard, env.logger)

	req, _ := env.withSession(httptest.NewRequest(http.MethodGet, "/sse/dashboard", nil))
	body := serve(handlers.HandleDashboard, req).Body.String()

	for _, content := range []string{
		"Error crítico al cargar los datos JSON.",
		"Error crítico al cargar los datos.",
		`id="chart-area"`,
	} {
		if !strings.Contains(body, content) {
			t.Errorf("expected stream to contain %q", content)
		}
	}
}

func TestSSEHandlers_NoSession(t *testing.T) {
	env := newTestEnv(staticLoader{records: testRecords})
	handlers := NewSSEHandlers(env.dashboard, env.logger)

	tests := []struct {
		name    string
		handler http.HandlerFunc
		method  string
		target  string
	}{
		{"dashboard", handlers.HandleDashboard, http.MethodGet, "/sse/dashboard"},
		{"select", handlers.HandleSelect, http.MethodPost, "/sse/select?product=Laptop"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(tt.handler, httptest.NewRequest(tt.method, tt.target, nil))
			if w.Code != http.StatusBadRequest {
				t.Errorf("expected status %d, got %d", http.StatusBadRequest, w.Code)
			}
		})
	}
}
