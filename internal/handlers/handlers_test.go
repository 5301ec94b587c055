package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"time"

	"sales-dashboard/internal/dashboard"
	"sales-dashboard/internal/loader"
	"sales-dashboard/internal/models"
	"sales-dashboard/internal/services"
	"sales-dashboard/internal/views"
)

type staticLoader struct {
	records []models.SalesRecord
	err     error
}

func (l staticLoader) Load(ctx context.Context) (*loader.Result, error) {
	if l.err != nil {
		return nil, l.err
	}
	return &loader.Result{Records: l.records, Source: "static", Fetched: time.Now()}, nil
}

func (l staticLoader) Source() string { return "static" }

var testRecords = []models.SalesRecord{
	{Month: "Enero", Product: "Laptop", UnitsSold: 10, Revenue: 9999.90},
	{Month: "Enero", Product: "Mouse", UnitsSold: 20, Revenue: 599.80},
	{Month: "Febrero", Product: "Laptop", UnitsSold: 5, Revenue: 4999.95},
}

type testEnv struct {
	analytics *services.Analytics
	dashboard *dashboard.Dashboard
	sessions  *dashboard.Sessions
	logger    *slog.Logger
}

func newTestEnv(l loader.Loader) *testEnv {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	analytics := services.NewAnalytics(logger)
	d := dashboard.New(l, analytics, nil, dashboard.Options{
		LoadTimeout:  time.Second,
		ChartWarmup:  time.Second,
		DefaultWidth: dashboard.Widths{Bar: 960, Donut: 560},
	}, logger)
	sessions, err := dashboard.NewSessions(8, views.DefaultLayout)
	if err != nil {
		panic(err)
	}
	return &testEnv{analytics: analytics, dashboard: d, sessions: sessions, logger: logger}
}

// withSession attaches a fresh session the way the session middleware does.
func (e *testEnv) withSession(req *http.Request) (*http.Request, *dashboard.Session) {
	sess, _ := e.sessions.GetOrCreate("")
	return req.WithContext(dashboard.WithSession(req.Context(), sess)), sess
}

func serve(h http.HandlerFunc, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	h(w, req)
	return w
}

func withSessionContext(req *http.Request, sess *dashboard.Session) context.Context {
	return dashboard.WithSession(req.Context(), sess)
}

var dashboardWidths = dashboard.Widths{Bar: 960, Donut: 560}
