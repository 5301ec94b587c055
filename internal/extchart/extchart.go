// Package extchart renders the monthly revenue bar chart with go-chart. The
// renderer becomes usable once its one-time font warm-up has finished.
package extchart

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"sales-dashboard/internal/format"
	"sales-dashboard/internal/models"
)

var ErrNotReady = errors.New("extchart: renderer not ready")

const (
	DefaultColor  = "#1f77b4"
	DefaultHeight = 400
	minWidth      = 320
)

// Config is the per-draw chart configuration.
type Config struct {
	Title  string
	Color  string
	XTitle string
	YTitle string
	Width  int
	Height int
}

// Options builds the configuration for the current selection. accent is
// the selected product's color and is ignored without a selection.
func Options(selected, accent string, width int) Config {
	cfg := Config{
		Title:  "Ingresos Mensuales Totales",
		Color:  DefaultColor,
		XTitle: "Mes",
		YTitle: "Ingresos",
		Width:  width,
		Height: DefaultHeight,
	}
	if selected != "" {
		cfg.Title = "Ingresos Mensuales del Producto: " + selected
		cfg.Color = accent
	}
	return cfg
}

// Table converts month revenue into the header-first two-column table
// Draw consumes.
func Table(rows []models.MonthRevenue) [][]any {
	table := make([][]any, 0, len(rows)+1)
	table = append(table, []any{"Mes", "Ingresos"})
	for _, r := range rows {
		table = append(table, []any{r.Month, r.TotalRevenue})
	}
	return table
}

// Bridge guards the renderer behind its asynchronous warm-up.
type Bridge struct {
	warmup func() error
	logger *slog.Logger

	once      sync.Once
	mu        sync.Mutex
	settled   bool
	ready     bool
	err       error
	callbacks []func()
}

func NewBridge(logger *slog.Logger) *Bridge {
	return &Bridge{warmup: loadFont, logger: logger}
}

// loadFont parses go-chart's embedded font, which every draw needs.
func loadFont() error {
	_, err := chart.GetDefaultFont()
	return err
}

// Load starts the warm-up. Only the first call has any effect.
func (b *Bridge) Load() {
	b.once.Do(func() {
		go b.run()
	})
}

func (b *Bridge) run() {
	err := b.warmup()

	b.mu.Lock()
	b.settled = true
	b.ready = err == nil
	b.err = err
	callbacks := b.callbacks
	b.callbacks = nil
	b.mu.Unlock()

	if err != nil {
		b.logger.Error("chart renderer failed to load, revenue chart disabled", "error", err)
	} else {
		b.logger.Info("chart renderer ready")
	}
	for _, fn := range callbacks {
		fn()
	}
}

// OnReady runs fn once the warm-up has settled, immediately if it already
// has. A failed warm-up still runs fn; Ready then stays false.
func (b *Bridge) OnReady(fn func()) {
	b.mu.Lock()
	if !b.settled {
		b.callbacks = append(b.callbacks, fn)
		b.mu.Unlock()
		return
	}
	b.mu.Unlock()
	fn()
}

// Wait blocks until the warm-up has settled or ctx is done.
func (b *Bridge) Wait(ctx context.Context) error {
	done := make(chan struct{})
	b.OnReady(func() { close(done) })
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (b *Bridge) Ready() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.ready
}

// Err returns the warm-up failure, if any.
func (b *Bridge) Err() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.err
}

// Draw renders table as an SVG bar chart. The first row is the header.
func (b *Bridge) Draw(table [][]any, cfg Config) (string, error) {
	if !b.Ready() {
		return "", ErrNotReady
	}

	bars, top, err := values(table, cfg.Color)
	if err != nil {
		return "", err
	}
	if len(bars) == 0 {
		return placeholder(cfg), nil
	}

	width := max(cfg.Width, minWidth)
	height := cfg.Height
	if height <= 0 {
		height = DefaultHeight
	}
	slot := float64(width-160) / float64(len(bars))
	barWidth := max(4, int(slot*0.6))

	graph := chart.BarChart{
		Title:  cfg.Title,
		Width:  width,
		Height: height,
		Background: chart.Style{
			Padding: chart.Box{Top: 50, Left: 20, Right: 20, Bottom: 20},
		},
		BarWidth:   barWidth,
		BarSpacing: max(1, int(slot*0.4)),
		XAxis: chart.Style{
			FontSize: 10,
		},
		YAxis: chart.YAxis{
			Name: cfg.YTitle,
			// A fixed range keeps a single bar or all-zero revenue drawable.
			Range: &chart.ContinuousRange{Min: 0, Max: max(top*1.1, 1)},
			ValueFormatter: func(v any) string {
				if f, ok := v.(float64); ok {
					return format.Currency(f)
				}
				return ""
			},
		},
		Bars: bars,
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.SVG, &buf); err != nil {
		return "", fmt.Errorf("render revenue chart: %w", err)
	}
	return buf.String(), nil
}

func values(table [][]any, color string) ([]chart.Value, float64, error) {
	if len(table) == 0 {
		return nil, 0, nil
	}
	fill := drawing.ColorFromHex(strings.TrimPrefix(color, "#"))
	bars := make([]chart.Value, 0, len(table)-1)
	var top float64
	for i, row := range table[1:] {
		if len(row) != 2 {
			return nil, 0, fmt.Errorf("row %d: want 2 columns, got %d", i+1, len(row))
		}
		label, ok := row[0].(string)
		if !ok {
			return nil, 0, fmt.Errorf("row %d: label is %T, want string", i+1, row[0])
		}
		v, ok := row[1].(float64)
		if !ok {
			return nil, 0, fmt.Errorf("row %d: value is %T, want float64", i+1, row[1])
		}
		top = max(top, v)
		bars = append(bars, chart.Value{
			Label: label,
			Value: v,
			Style: chart.Style{FillColor: fill, StrokeColor: fill, StrokeWidth: 1},
		})
	}
	return bars, top, nil
}

func placeholder(cfg Config) string {
	width := max(cfg.Width, minWidth)
	return fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d">`+
		`<text x="%d" y="%d" text-anchor="middle" font-size="14px" fill="#666">Sin ingresos registrados</text></svg>`,
		width, DefaultHeight, width/2, DefaultHeight/2)
}
