// Package views turns aggregates into the SVG fragments of each chart,
// reconciling every render against the elements the previous render left
// behind.
package views

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	"sales-dashboard/internal/format"
	"sales-dashboard/internal/models"
	"sales-dashboard/internal/scale"
	"sales-dashboard/internal/scene"
)

// SelectPath is the endpoint a click on any product element posts to.
const SelectPath = "/sse/select"

// Input is everything one render pass hands to the views. Aggregates are
// read-only for the duration of the pass.
type Input struct {
	Summary    models.Summary
	Filtered   models.Filtered
	Colors     *scale.Ordinal
	Width      float64
	Generation uint64
	Now        time.Time
}

func (in Input) selected() string { return in.Filtered.Selected }

// dimmed reports whether product is de-emphasized by the current selection.
func (in Input) dimmed(product string) bool {
	s := in.selected()
	return s != "" && s != product
}

func (in Input) opacity(l Layout, product string) float64 {
	if in.dimmed(product) {
		return l.DimOpacity
	}
	return 1
}

func svgID(prefix string, gen uint64) string {
	return fmt.Sprintf("%s-svg-%d", prefix, gen)
}

// SelectAction is the Datastar expression that toggles product.
func SelectAction(product string) string {
	return fmt.Sprintf("@post('%s?product=%s')", SelectPath, url.QueryEscape(product))
}

func selectable(n *scene.Node, product string) *scene.Node {
	return n.Set("data-on:click", SelectAction(product)).Set("cursor", "pointer")
}

// hover wires the shared tooltip. enter and leave are extra statements run
// on the hovered element.
func hover(n *scene.Node, lines []string, enter, leave string) *scene.Node {
	show := "$tooltip = " + jsString(strings.Join(lines, "\n")) +
		"; $tooltipX = evt.pageX + 10; $tooltipY = evt.pageY - 28; $tooltipVisible = true"
	return n.Set("data-on:mouseenter", show+enter).
		Set("data-on:mouseleave", "$tooltipVisible = false"+leave)
}

// strokeSwap returns hover statements that outline the element.
func strokeSwap(color, width, restoreColor, restoreWidth string) (string, string) {
	set := func(c, w string) string {
		return fmt.Sprintf("; el.setAttribute('stroke', '%s'); el.setAttribute('stroke-width', '%s')", c, w)
	}
	return set(color, width), set(restoreColor, restoreWidth)
}

func jsString(s string) string {
	b, err := json.Marshal(s)
	if err != nil {
		return `""`
	}
	return string(b)
}

func translate(x, y float64) string {
	return "translate(" + scene.Num(x) + "," + scene.Num(y) + ")"
}

// bandAxis draws a bottom axis for a band scale at height y.
func bandAxis(b *scale.Band, y float64, fontSize string, domainLine bool) *scene.Node {
	g := scene.El("g", "class", "x axis", "transform", translate(0, y),
		"fill", "none", "font-size", fontSize, "font-family", "sans-serif", "text-anchor", "middle")
	if domainLine {
		r0, r1 := b.Range()
		g.Append(scene.El("path", "class", "domain", "stroke", "currentColor",
			"d", "M"+scene.Num(r0)+",6V0H"+scene.Num(r1)+"V6"))
	}
	for _, key := range b.Domain() {
		c, _ := b.Center(key)
		g.Append(scene.El("g", "class", "tick", "transform", translate(c, 0)).Append(
			scene.El("line", "stroke", "currentColor", "y2", "6"),
			scene.El("text", "fill", "currentColor", "y", "10", "dy", "0.71em").Text(key),
		))
	}
	return g
}

// valueAxis draws a left axis with gridlines spanning width. The domain
// line is omitted.
func valueAxis(y *scale.Linear, ticks, width float64) *scene.Node {
	g := scene.El("g", "class", "y axis",
		"fill", "none", "font-size", "10", "font-family", "sans-serif", "text-anchor", "end")
	for _, t := range y.Ticks(int(ticks)) {
		g.Append(scene.El("g", "class", "tick", "transform", translate(0, y.Scale(t))).Append(
			scene.El("line", "stroke", "currentColor", "stroke-opacity", "0.4", "x2", scene.Num(width)),
			scene.El("text", "fill", "currentColor", "x", "-3", "dy", "0.32em").Text(format.Tick(t)),
		))
	}
	return g
}

func axisLabel(x, y float64, text string, rotate bool) *scene.Node {
	n := scene.El("text", "class", "axis-label", "font-size", "22px", "text-anchor", "middle")
	n.Num("x", x).Num("y", y).Text(text)
	if rotate {
		n.Set("transform", "rotate(-90)")
	}
	return n
}

func title(x float64, text string) *scene.Node {
	n := scene.El("text", "class", "title", "font-size", "20px", "text-anchor", "middle")
	return n.Num("x", x).Num("y", -20).Text(text)
}

type swatch int

const (
	squareSwatch swatch = iota
	circleSwatch
)

// legend reconciles one row per product. Rows keep their slot by key and
// fade with the selection; clickable rows toggle their product.
func legend(set *scene.Set, l Layout, in Input, class string, sw swatch, clickable bool) *scene.Node {
	g := scene.El("g", "class", "legend")
	set.Join(in.Summary.ProductNames)
	for i, product := range set.Keys() {
		el, _ := set.Get(product)
		el.Jump("y", float64(i)*l.LegendRowHeight)

		row := scene.El("g", "class", class, "transform", translate(0, el.Value("y", in.Now)))
		row.Num("opacity", in.opacity(l, product))
		color := in.Colors.Color(product)
		if sw == circleSwatch {
			row.Append(scene.El("circle", "cx", "5", "cy", "5", "r", "5", "fill", color))
		} else {
			row.Append(scene.El("rect", "width", "10", "height", "10", "fill", color))
		}
		row.Append(scene.El("text", "x", "15", "y", "9", "font-size", "14px", "fill", "#333").Text(product))
		if clickable {
			selectable(row, product)
		}
		g.Append(row)
	}
	return g
}
