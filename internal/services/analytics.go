package services

import (
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"sales-dashboard/internal/errors"
	"sales-dashboard/internal/loader"
	"sales-dashboard/internal/models"
)

// Snapshot is the most recent successfully loaded dataset.
type Snapshot struct {
	Summary     models.Summary `json:"summary"`
	RecordCount int            `json:"record_count"`
	Issues      []loader.Issue `json:"issues,omitempty"`
	Source      string         `json:"source"`
	LoadedAt    time.Time      `json:"loaded_at"`
}

// Analytics remembers the latest load so the JSON API and the stats
// endpoint can answer without refetching. Render passes never read from it.
type Analytics struct {
	mu       sync.RWMutex
	snapshot *Snapshot
	logger   *slog.Logger

	loads        atomic.Int64
	loadFailures atomic.Int64
	rowsRejected atomic.Int64
}

func NewAnalytics(logger *slog.Logger) *Analytics {
	if logger == nil {
		logger = slog.Default()
	}
	return &Analytics{logger: logger}
}

// Record stores a successful load and logs every rejected row.
func (a *Analytics) Record(result *loader.Result, summary models.Summary) {
	a.loads.Add(1)
	a.rowsRejected.Add(int64(len(result.Issues)))

	for _, issue := range result.Issues {
		a.logger.Warn("rejected dataset row",
			"error_code", errors.CodeDataQuality,
			"row", issue.Row,
			"field", issue.Field,
			"value", issue.Value,
			"reason", issue.Reason,
			"source", result.Source,
		)
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	a.snapshot = &Snapshot{
		Summary:     summary,
		RecordCount: len(result.Records),
		Issues:      result.Issues,
		Source:      result.Source,
		LoadedAt:    result.Fetched,
	}
}

func (a *Analytics) RecordFailure(err error) {
	a.loads.Add(1)
	a.loadFailures.Add(1)
	a.logger.Error("dataset load failed", "error_code", errors.CodeOf(err), "error", err)
}

// Latest returns the last successful snapshot, or nil before the first one.
func (a *Analytics) Latest() *Snapshot {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.snapshot
}

func (a *Analytics) Stats() map[string]any {
	stats := map[string]any{
		"loads":         a.loads.Load(),
		"load_failures": a.loadFailures.Load(),
		"rows_rejected": a.rowsRejected.Load(),
	}

	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.snapshot != nil {
		stats["record_count"] = a.snapshot.RecordCount
		stats["products"] = len(a.snapshot.Summary.Products)
		stats["months"] = len(a.snapshot.Summary.MonthOrder)
		stats["last_loaded"] = a.snapshot.LoadedAt
		stats["source"] = a.snapshot.Source
	}
	return stats
}
