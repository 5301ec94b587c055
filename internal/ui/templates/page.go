package templates

import (
	"context"
	"encoding/json"
	"io"
	"strings"

	"github.com/a-h/templ"
)

const datastarScript = "https://cdn.jsdelivr.net/gh/starfederation/datastar@1.0.0-RC.6/bundles/datastar.js"

// PageData configures the page shell.
type PageData struct {
	Title      string
	Containers []string
	BarWidth   int
	DonutWidth int
}

// Signals is the initial Datastar signal set. Container widths are measured
// in the browser before every dashboard request.
func (p PageData) Signals() string {
	signals := map[string]any{
		"tooltip":        "",
		"tooltipX":       0,
		"tooltipY":       0,
		"tooltipVisible": false,
		"barWidth":       p.BarWidth,
		"donutWidth":     p.DonutWidth,
		"chartWidth":     p.BarWidth,
		"selected":       "",
		"generation":     0,
	}
	b, err := json.Marshal(signals)
	if err != nil {
		return "{}"
	}
	return string(b)
}

// measure stores the live width of each responsive container.
const measure = "$barWidth = document.getElementById('bar-chart-area').clientWidth; " +
	"$donutWidth = document.getElementById('donut-chart-area').clientWidth; " +
	"$chartWidth = document.getElementById('chart-area').clientWidth"

// Refresh is the expression behind the refresh button and the first load.
const Refresh = measure + "; @get('/sse/dashboard')"

// Dashboard renders the full page: containers, the refresh control and the
// floating tooltip driven by signals.
func Dashboard(p PageData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString(`<!DOCTYPE html><html lang="es"><head><meta charset="utf-8">`)
		b.WriteString(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		b.WriteString(`<title>` + templ.EscapeString(p.Title) + `</title>`)
		b.WriteString(`<script type="module" src="` + datastarScript + `"></script>`)
		b.WriteString(`<style>` + stylesheet + `</style></head><body>`)

		b.WriteString(`<main id="dashboard" data-signals="` + templ.EscapeString(p.Signals()) + `"`)
		b.WriteString(` data-init="` + templ.EscapeString(Refresh) + `"`)
		b.WriteString(` data-on:resize__window__debounce.300ms="` + templ.EscapeString(Refresh) + `">`)

		b.WriteString(`<header><h1>` + templ.EscapeString(p.Title) + `</h1>`)
		b.WriteString(`<button id="update-button" type="button" data-on:click="` + templ.EscapeString(Refresh) + `">Actualizar datos</button></header>`)

		for _, id := range p.Containers {
			b.WriteString(`<section class="panel">`)
			if err := Pending(id, "Cargando…").Render(ctx, &b); err != nil {
				return err
			}
			b.WriteString(`</section>`)
		}

		b.WriteString(`<div class="tooltip" data-show="$tooltipVisible" data-text="$tooltip"`)
		b.WriteString(` data-style:left="$tooltipX + 'px'" data-style:top="$tooltipY + 'px'"></div>`)
		b.WriteString(`</main></body></html>`)

		_, err := io.WriteString(w, b.String())
		return err
	})
}

const stylesheet = `
body { font-family: sans-serif; margin: 0; background: #f4f6f8; color: #333; }
header { display: flex; align-items: center; justify-content: space-between; padding: 16px 24px; }
.panel { background: white; margin: 16px 24px; padding: 12px; border-radius: 8px; overflow-x: auto; }
.kpi-grid { display: grid; grid-template-columns: repeat(auto-fit, minmax(200px, 1fr)); gap: 12px; }
.kpi-card { padding: 16px; border-radius: 6px; background: #fafafa; box-shadow: 0 1px 3px rgba(0,0,0,.1); }
.kpi-label { font-size: 12px; color: #666; letter-spacing: .05em; }
.kpi-value { font-size: 28px; font-weight: bold; margin-top: 8px; }
.chart-error { padding: 20px; text-align: center; color: red; }
.chart-pending { padding: 20px; text-align: center; color: #999; }
.tooltip { position: absolute; white-space: pre-line; pointer-events: none; background-color: white;
  border: solid 1px; border-radius: 5px; padding: 10px; opacity: .9; }
`
