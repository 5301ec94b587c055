package dashboard

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"sales-dashboard/internal/errors"
	"sales-dashboard/internal/extchart"
	"sales-dashboard/internal/loader"
	"sales-dashboard/internal/models"
	"sales-dashboard/internal/observability"
	"sales-dashboard/internal/scale"
	"sales-dashboard/internal/scene"
	"sales-dashboard/internal/services"
	"sales-dashboard/internal/ui/templates"
	"sales-dashboard/internal/views"
)

// ChartRenderer draws the external revenue chart once it is ready.
type ChartRenderer interface {
	Ready() bool
	Wait(ctx context.Context) error
	Draw(table [][]any, cfg extchart.Config) (string, error)
}

// Widths are the measured pixel widths of the responsive containers.
type Widths struct {
	Bar   float64
	Donut float64
	Chart float64
}

// Fragment is the replacement markup of one page container.
type Fragment struct {
	Container string
	HTML      string
}

// Frame is the outcome of a render pass. Either every container has its
// view, or, when Err is set, every container shows the error message.
type Frame struct {
	Generation uint64
	Selected   string
	Fragments  []Fragment
	Err        error
}

type Options struct {
	LoadTimeout  time.Duration
	ChartWarmup  time.Duration
	DefaultWidth Widths
}

// Dashboard sequences render passes for sessions.
type Dashboard struct {
	loader    loader.Loader
	analytics *services.Analytics
	chart     ChartRenderer
	opts      Options
	logger    *slog.Logger
	now       func() time.Time

	passes     atomic.Int64
	superseded atomic.Int64
	failed     atomic.Int64
}

// New builds a Dashboard. chart may be nil, in which case the revenue chart
// is never drawn.
func New(l loader.Loader, analytics *services.Analytics, chart ChartRenderer, opts Options, logger *slog.Logger) *Dashboard {
	return &Dashboard{
		loader:    l,
		analytics: analytics,
		chart:     chart,
		opts:      opts,
		logger:    logger,
		now:       time.Now,
	}
}

// Update runs one render pass for sess. Load failures are not returned as
// errors: they produce an error Frame. The returned error is a
// SUPERSEDED error when a newer pass for the same session started while
// this one was loading, or the context's error.
func (d *Dashboard) Update(ctx context.Context, sess *Session, widths Widths) (*Frame, error) {
	gen := sess.generation.Add(1)
	d.passes.Add(1)

	ctx, span := observability.StartSpan(ctx, "dashboard.update")
	span.SetTag("session_id", sess.ID)
	defer span.End(d.logger)
	logger := observability.LoggerFrom(ctx, d.logger).With("generation", gen)

	if err := d.awaitChart(ctx, sess, logger); err != nil {
		span.SetError(err)
		return nil, err
	}

	loadCtx, cancel := context.WithTimeout(ctx, d.opts.LoadTimeout)
	result, loadErr := d.loader.Load(loadCtx)
	cancel()

	sess.mu.Lock()
	defer sess.mu.Unlock()

	if sess.generation.Load() != gen {
		d.superseded.Add(1)
		logger.Debug("render pass superseded", "latest", sess.generation.Load())
		return nil, errors.Superseded()
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	selected := sess.selection.Current()
	if loadErr != nil {
		d.failed.Add(1)
		d.analytics.RecordFailure(loadErr)
		span.SetError(loadErr)
		return d.errorFrame(ctx, gen, selected, loadErr)
	}

	summary := services.Aggregate(result.Records)
	d.analytics.Record(result, summary)
	filtered := services.Filter(result.Records, summary, selected)

	frame, err := d.render(ctx, sess, gen, summary, filtered, d.widths(widths), logger)
	if err != nil {
		span.SetError(err)
		return nil, err
	}
	sess.rendered = true
	return frame, nil
}

// awaitChart holds a session's first pass until the chart renderer has
// settled. Later passes never wait; an unready renderer only costs them
// the revenue chart.
func (d *Dashboard) awaitChart(ctx context.Context, sess *Session, logger *slog.Logger) error {
	sess.mu.Lock()
	first := !sess.rendered
	sess.mu.Unlock()
	if !first || d.chart == nil {
		return nil
	}

	waitCtx, cancel := context.WithTimeout(ctx, d.opts.ChartWarmup)
	defer cancel()
	if err := d.chart.Wait(waitCtx); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		logger.Warn("chart renderer still loading, rendering without it", "waited", d.opts.ChartWarmup)
	}
	return nil
}

func (d *Dashboard) widths(w Widths) Widths {
	if w.Bar <= 0 {
		w.Bar = d.opts.DefaultWidth.Bar
	}
	if w.Donut <= 0 {
		w.Donut = d.opts.DefaultWidth.Donut
	}
	if w.Chart <= 0 {
		w.Chart = w.Bar
	}
	return w
}

func (d *Dashboard) render(ctx context.Context, sess *Session, gen uint64, summary models.Summary, filtered models.Filtered, w Widths, logger *slog.Logger) (*Frame, error) {
	colors := scale.NewOrdinal(summary.ProductNames, scale.Set1)
	in := views.Input{
		Summary:    summary,
		Filtered:   filtered,
		Colors:     colors,
		Generation: gen,
		Now:        d.now(),
	}

	// Each view owns its element sets, so the views build in parallel over
	// the same read-only aggregates.
	var bar, bubble, donut *scene.Node
	var kpiHTML, chartHTML string
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		vin := in
		vin.Width = w.Bar
		bar = sess.bar.Render(vin)
		return nil
	})
	g.Go(func() error {
		bubble = sess.bubble.Render(in)
		return nil
	})
	g.Go(func() error {
		vin := in
		vin.Width = w.Donut
		donut = sess.donut.Render(vin)
		return nil
	})
	g.Go(func() error {
		var err error
		kpis := views.KPIs(summary, filtered, colors)
		kpiHTML, err = templates.String(gctx, templates.KPIPanel(views.KPIContainer, kpis))
		return err
	})
	g.Go(func() error {
		chartHTML = d.drawChart(gctx, filtered, colors, w.Chart, logger)
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, errors.InternalWrap(err, "render dashboard")
	}

	frame := &Frame{
		Generation: gen,
		Selected:   filtered.Selected,
		Fragments: []Fragment{
			{Container: views.KPIContainer, HTML: kpiHTML},
			{Container: views.BarContainer, HTML: bar.String()},
			{Container: views.BubbleContainer, HTML: bubble.String()},
			{Container: views.DonutContainer, HTML: donut.String()},
		},
	}
	if chartHTML != "" {
		frame.Fragments = append(frame.Fragments, Fragment{Container: views.ChartContainer, HTML: chartHTML})
	}
	return frame, nil
}

// drawChart returns the revenue chart fragment, or "" when the renderer is
// not ready. A failed draw still replaces the container, so it never keeps
// a chart from an earlier selection.
func (d *Dashboard) drawChart(ctx context.Context, filtered models.Filtered, colors *scale.Ordinal, width float64, logger *slog.Logger) string {
	if d.chart == nil || !d.chart.Ready() {
		logger.Debug("revenue chart skipped, renderer not ready")
		return ""
	}

	cfg := extchart.Options(filtered.Selected, colors.Color(filtered.Selected), int(width))
	svg, err := d.chart.Draw(extchart.Table(filtered.MonthRevenue), cfg)
	if err == nil {
		var html string
		if html, err = templates.String(ctx, templates.ChartBlock(views.ChartContainer, svg)); err == nil {
			return html
		}
	}

	logger.Warn("revenue chart failed", "error", err)
	html, err := templates.String(ctx, templates.ErrorBlock(views.ChartContainer, views.ChartFailedMessage))
	if err != nil {
		return ""
	}
	return html
}

func (d *Dashboard) errorFrame(ctx context.Context, gen uint64, selected string, cause error) (*Frame, error) {
	noData := errors.HasCode(cause, errors.CodeNoData)
	frame := &Frame{Generation: gen, Selected: selected, Err: cause}
	for _, c := range views.Containers {
		html, err := templates.String(ctx, templates.ErrorBlock(c, views.ErrorMessage(c, noData)))
		if err != nil {
			return nil, errors.InternalWrap(err, "render error frame")
		}
		frame.Fragments = append(frame.Fragments, Fragment{Container: c, HTML: html})
	}
	return frame, nil
}

// Stats reports render pass counters.
func (d *Dashboard) Stats() map[string]any {
	return map[string]any{
		"render_passes":      d.passes.Load(),
		"renders_superseded": d.superseded.Load(),
		"renders_failed":     d.failed.Load(),
	}
}
