package views

import (
	"sales-dashboard/internal/format"
	"sales-dashboard/internal/scale"
	"sales-dashboard/internal/scene"
	"sales-dashboard/internal/services"
)

// DonutView shows the full market composition. It always reads the
// unfiltered aggregates: selection changes the center text and opacity,
// never the slices.
type DonutView struct {
	layout Layout
	slices *scene.Set
	legend *scene.Set
}

func NewDonutView(l Layout) *DonutView {
	return &DonutView{layout: l, slices: scene.NewSet(), legend: scene.NewSet()}
}

func (v *DonutView) Render(in Input) *scene.Node {
	l := v.layout
	geo := l.Donut(in.Width)
	ring := scene.Ring{Inner: geo.InnerRadius, Outer: geo.Radius}
	grand := in.Summary.TotalUnits

	values := make([]float64, len(in.Summary.Products))
	keys := make([]string, len(in.Summary.Products))
	for i, p := range in.Summary.Products {
		values[i] = p.TotalUnits
		keys[i] = p.Product
	}
	angles := scene.Pie(values)
	join := v.slices.Join(keys)

	svg := scene.El("svg", "id", svgID("donut", in.Generation), "class", "chart")
	svg.Num("width", in.Width).Num("height", l.DonutHeight)

	g := scene.El("g", "class", "donut", "transform", translate(geo.CenterX, geo.CenterY))
	labels := make([]*scene.Node, 0, len(keys))

	for i, p := range in.Summary.Products {
		el, _ := v.slices.Get(p.Product)
		arc := el.ArcTo(angles[i], scene.DonutTransition, in.Now)
		color := in.Colors.Color(p.Product)
		opacity := in.opacity(l, p.Product)

		path := scene.El("path", "class", "slice", "fill", color, "stroke", "white", "stroke-width", "2px")
		path.Num("opacity", opacity)
		path.AnimateArc("d", arc, ring)
		selectable(path, p.Product)
		enter, leave := strokeSwap(scale.Darker(color, 0.5), "4px", "white", "2px")
		hover(path, []string{
			"Producto: " + p.Product,
			"Ventas Totales: " + format.Units(p.TotalUnits),
			"Participación: " + format.Percent(p.TotalUnits/grand),
		}, enter, leave)
		g.Append(path)

		cx, cy := ring.Centroid(angles[i])
		label := scene.El("text", "class", "arc-label", "text-anchor", "middle", "fill", "white", "pointer-events", "none")
		label.Num("opacity", opacity)
		if _, ok := el.Tween("lx"); !ok {
			el.Jump("lx", cx)
			el.Jump("ly", cy)
		}
		label.Animate("x", el.To("lx", cx, scene.DefaultTransition, in.Now))
		label.Animate("y", el.To("ly", cy, scene.DefaultTransition, in.Now))
		label.Text(format.Percent(p.TotalUnits / grand))
		labels = append(labels, label)
	}

	// Slices leaving fade to grey at their last angles.
	for _, el := range join.Exit {
		arc, ok := el.Arc()
		if !ok {
			continue
		}
		path := scene.El("path", "class", "slice exiting", "fill", in.Colors.Color(el.Key), "stroke", "white", "stroke-width", "2px")
		path.Set("d", ring.Path(arc.At(in.Now)))
		path.AnimateValues("fill", []string{in.Colors.Color(el.Key), "#ccc"}, scene.DefaultTransition)
		g.Append(path)
	}

	g.Append(labels...)

	centerValue, centerLabel := format.Units(grand), "Venta Total"
	if s := in.selected(); s != "" {
		centerValue = format.Units(services.ProductTotals(in.Summary.Products, s).TotalUnits)
		centerLabel = s
	}
	g.Append(
		scene.El("text", "class", "center-text-value", "text-anchor", "middle", "font-size", "22px", "y", "-5").Text(centerValue),
		scene.El("text", "class", "center-text-label", "text-anchor", "middle", "font-size", "14px", "fill", "#666", "y", "20").Text(centerLabel),
	)

	lg := legend(v.legend, l, in, "legend-item-donut", squareSwatch, true)
	lg.Set("transform", translate(geo.LegendX, geo.LegendY))

	svg.Append(g, lg)
	return scene.El("div", "id", DonutContainer).Append(svg)
}

// Snapshot returns each slice's resting angles and label position.
func (v *DonutView) Snapshot() []scene.State {
	return v.slices.Snapshot()
}
