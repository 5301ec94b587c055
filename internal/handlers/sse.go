package handlers

import (
	"log/slog"
	"net/http"

	"github.com/starfederation/datastar-go/datastar"

	"sales-dashboard/internal/dashboard"
	"sales-dashboard/internal/errors"
	"sales-dashboard/internal/observability"
)

// widthSignals are the container widths the page measures before every
// dashboard request.
type widthSignals struct {
	BarWidth   float64 `json:"barWidth"`
	DonutWidth float64 `json:"donutWidth"`
	ChartWidth float64 `json:"chartWidth"`
}

type SSEHandlers struct {
	dashboard *dashboard.Dashboard
	logger    *slog.Logger
}

func NewSSEHandlers(d *dashboard.Dashboard, logger *slog.Logger) *SSEHandlers {
	return &SSEHandlers{
		dashboard: d,
		logger:    logger,
	}
}

// HandleDashboard runs a render pass for the caller's session and streams
// every container fragment. It serves both the first load and refreshes.
func (h *SSEHandlers) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	sess := dashboard.SessionFrom(r.Context())
	if sess == nil {
		errors.WriteError(w, h.logger, errors.BadRequest("No session"), observability.GetRequestID(r.Context()))
		return
	}
	h.stream(w, r, sess)
}

// HandleSelect toggles the selection for the product query parameter, then
// re-renders like HandleDashboard.
func (h *SSEHandlers) HandleSelect(w http.ResponseWriter, r *http.Request) {
	requestID := observability.GetRequestID(r.Context())
	sess := dashboard.SessionFrom(r.Context())
	if sess == nil {
		errors.WriteError(w, h.logger, errors.BadRequest("No session"), requestID)
		return
	}

	product := r.URL.Query().Get("product")
	if product == "" {
		errors.WriteError(w, h.logger, errors.Validation("product is required"), requestID)
		return
	}

	selected := sess.Toggle(product)
	observability.LoggerFrom(r.Context(), h.logger).Debug("selection toggled",
		"product", product,
		"selected", selected,
	)
	h.stream(w, r, sess)
}

func (h *SSEHandlers) stream(w http.ResponseWriter, r *http.Request, sess *dashboard.Session) {
	logger := observability.LoggerFrom(r.Context(), h.logger)

	// Signals must be read before the SSE response starts.
	var signals widthSignals
	if err := datastar.ReadSignals(r, &signals); err != nil {
		logger.Debug("no width signals, using defaults", "error", err)
	}

	sse := datastar.NewSSE(w, r)

	frame, err := h.dashboard.Update(r.Context(), sess, dashboard.Widths{
		Bar:   signals.BarWidth,
		Donut: signals.DonutWidth,
		Chart: signals.ChartWidth,
	})
	if err != nil {
		if errors.HasCode(err, errors.CodeSuperseded) {
			return
		}
		logger.Error("render pass failed", "error", err)
		return
	}

	for _, frag := range frame.Fragments {
		if err := sse.PatchElements(frag.HTML); err != nil {
			logger.Warn("patch elements", "container", frag.Container, "error", err)
			return
		}
	}

	if err := sse.MarshalAndPatchSignals(map[string]any{
		"selected":   frame.Selected,
		"generation": frame.Generation,
	}); err != nil {
		logger.Warn("patch signals", "error", err)
		return
	}

	if f, ok := w.(http.Flusher); ok {
		f.Flush()
	}
}
