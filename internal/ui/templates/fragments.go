// Package templates holds the page shell and the HTML fragments streamed
// into it.
package templates

import (
	"context"
	"io"
	"strings"

	"github.com/a-h/templ"

	"sales-dashboard/internal/models"
)

// KPIPanel renders the four summary cards into the KPI container.
func KPIPanel(container string, kpis []models.KPI) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString(`<div id="` + templ.EscapeString(container) + `" class="kpi-grid">`)
		for _, k := range kpis {
			b.WriteString(`<div class="kpi-card ` + templ.EscapeString(k.Class) + `" data-kpi="` + templ.EscapeString(k.ID) + `">`)
			b.WriteString(`<div class="kpi-label">` + templ.EscapeString(k.Label) + `</div>`)
			b.WriteString(`<div class="kpi-value" style="color: ` + templ.EscapeString(k.Accent) + `">` + templ.EscapeString(k.Value) + `</div>`)
			b.WriteString(`</div>`)
		}
		b.WriteString(`</div>`)
		_, err := io.WriteString(w, b.String())
		return err
	})
}

// ErrorBlock replaces a container with an inline error message.
func ErrorBlock(container, message string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, `<div id="`+templ.EscapeString(container)+`">`+
			`<div class="chart-error">`+templ.EscapeString(message)+`</div></div>`)
		return err
	})
}

// ChartBlock wraps markup produced by the chart renderer. svg is trusted
// renderer output and written as is.
func ChartBlock(container, svg string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<div id="`+templ.EscapeString(container)+`">`); err != nil {
			return err
		}
		if err := templ.Raw(svg).Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, `</div>`)
		return err
	})
}

// Pending marks a container whose content is still being prepared.
func Pending(container, message string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, `<div id="`+templ.EscapeString(container)+`">`+
			`<div class="chart-pending">`+templ.EscapeString(message)+`</div></div>`)
		return err
	})
}

// String renders c into a string.
func String(ctx context.Context, c templ.Component) (string, error) {
	var b strings.Builder
	if err := c.Render(ctx, &b); err != nil {
		return "", err
	}
	return b.String(), nil
}
