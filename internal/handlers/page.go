package handlers

import (
	"log/slog"
	"net/http"

	"sales-dashboard/internal/errors"
	"sales-dashboard/internal/observability"
	"sales-dashboard/internal/ui/templates"
)

type PageHandler struct {
	page   templates.PageData
	logger *slog.Logger
}

func NewPageHandler(page templates.PageData, logger *slog.Logger) *PageHandler {
	return &PageHandler{page: page, logger: logger}
}

// ServeHTTP renders the page shell. The containers fill in once the page
// requests its first render pass.
func (h *PageHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := templates.Dashboard(h.page).Render(r.Context(), w); err != nil {
		errors.WriteError(w, h.logger, errors.InternalWrap(err, "render page"), observability.GetRequestID(r.Context()))
	}
}
