package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"sales-dashboard/internal/dashboard"
	"sales-dashboard/internal/errors"
	"sales-dashboard/internal/observability"
	"sales-dashboard/internal/services"
)

type APIHandlers struct {
	analytics *services.Analytics
	dashboard *dashboard.Dashboard
	sessions  *dashboard.Sessions
	logger    *slog.Logger
}

func NewAPIHandlers(analytics *services.Analytics, d *dashboard.Dashboard, sessions *dashboard.Sessions, logger *slog.Logger) *APIHandlers {
	return &APIHandlers{
		analytics: analytics,
		dashboard: d,
		sessions:  sessions,
		logger:    logger,
	}
}

// HandleSummary returns the aggregates of the most recent successful load.
func (h *APIHandlers) HandleSummary(w http.ResponseWriter, r *http.Request) {
	snapshot := h.analytics.Latest()
	if snapshot == nil {
		errors.WriteError(w, h.logger, errors.ServiceUnavailable("No dataset loaded yet"), observability.GetRequestID(r.Context()))
		return
	}

	headers := map[string]string{
		"Cache-Control": "private, max-age=30",
	}

	errors.WriteSuccessWithHeaders(w, snapshot, headers)
}

// HandleSelection reports the caller's current selection.
func (h *APIHandlers) HandleSelection(w http.ResponseWriter, r *http.Request) {
	sess := dashboard.SessionFrom(r.Context())
	if sess == nil {
		errors.WriteError(w, h.logger, errors.BadRequest("No session"), observability.GetRequestID(r.Context()))
		return
	}

	errors.WriteSuccess(w, map[string]any{
		"session_id": sess.ID,
		"selected":   sess.Selected(),
		"generation": sess.Generation(),
	})
}

func (h *APIHandlers) HandleHealth(w http.ResponseWriter, r *http.Request) {

	healthData := map[string]string{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
		"version":   "1.0.0",
	}

	errors.WriteSuccess(w, healthData)
}

func (h *APIHandlers) HandleStats(w http.ResponseWriter, r *http.Request) {

	stats := h.analytics.Stats()
	for k, v := range h.dashboard.Stats() {
		stats[k] = v
	}
	stats["sessions"] = h.sessions.Len()

	errors.WriteSuccess(w, stats)
}
