package views

import (
	"time"

	"sales-dashboard/internal/format"
	"sales-dashboard/internal/scale"
	"sales-dashboard/internal/scene"
)

var bubbleExit = scene.Transition{Duration: 750 * time.Millisecond, Ease: scene.CubicInOut, Frames: 15}

// BubbleView draws one bubble per product of the full dataset. Selection
// only fades the other bubbles; slots, sizes and colors never move.
type BubbleView struct {
	layout  Layout
	bubbles *scene.Set
	legend  *scene.Set
}

func NewBubbleView(l Layout) *BubbleView {
	return &BubbleView{layout: l, bubbles: scene.NewSet(), legend: scene.NewSet()}
}

func (v *BubbleView) Render(in Input) *scene.Node {
	l := v.layout
	w, h := l.bubblePlot()

	var maxUnits float64
	keys := make([]string, 0, len(in.Summary.Products))
	for _, p := range in.Summary.Products {
		maxUnits = max(maxUnits, p.TotalUnits)
		keys = append(keys, p.Product)
	}
	x := scale.NewBand(in.Summary.ProductNames, 0, w).Padding(0.4)
	yMax := maxUnits * 1.15
	if yMax <= 0 {
		yMax = 1
	}
	y := scale.NewLinear(0, yMax, h, 0)
	r := scale.NewLinear(0, maxUnits, 5, w/15)
	radius := func(units float64) float64 {
		if maxUnits <= 0 {
			return 5
		}
		return r.Scale(units)
	}

	join := v.bubbles.Join(keys)
	for _, el := range join.Enter {
		el.Init("cy", h)
		el.Init("r", 0)
		el.Init("ty", h+5)
	}

	svg := scene.El("svg", "id", svgID("bubble", in.Generation), "class", "chart")
	svg.Num("width", l.BubbleWidth).Num("height", l.BubbleHeight)

	plotTitle := "Ventas Totales por Producto"
	if s := in.selected(); s != "" {
		plotTitle = "Ventas Totales: " + s
	}
	g := scene.El("g", "transform", translate(l.BubbleMargin.Left, l.BubbleMargin.Top))
	g.Append(
		bandAxis(x, h, "14px", false),
		valueAxis(y, 5, w),
		axisLabel(w/2, h+65, "Producto", false),
		axisLabel(-h/2, -80, "Ventas (Unidades)", true),
		title(w/2, plotTitle),
	)

	for _, p := range in.Summary.Products {
		el, _ := v.bubbles.Get(p.Product)
		cx, _ := x.Center(p.Product)
		el.Jump("cx", cx)

		grp := scene.El("g", "class", "bubble-group", "transform", translate(cx, 0))
		grp.Num("opacity", in.opacity(l, p.Product))
		if in.dimmed(p.Product) {
			grp.Set("pointer-events", "none")
		} else {
			grp.Set("pointer-events", "all")
		}

		color := in.Colors.Color(p.Product)
		circle := scene.El("circle", "class", "bubble", "fill", color, "fill-opacity", "0.8")
		circle.Animate("cy", el.To("cy", y.Scale(p.TotalUnits), scene.BubbleTransition, in.Now))
		circle.Animate("r", el.To("r", radius(p.TotalUnits), scene.BubbleTransition, in.Now))
		selectable(circle, p.Product)
		enter, leave := strokeSwap(scale.Darker(color, 0.5), "3", "none", "0")
		hover(circle, []string{
			"Producto: " + p.Product,
			"Ventas Totales: " + format.Units(p.TotalUnits),
			"Ingresos Totales: " + format.CurrencyCents(p.TotalRevenue),
		}, enter+"; el.setAttribute('fill-opacity', '1')", leave+"; el.setAttribute('fill-opacity', '0.8')")

		label := scene.El("text", "text-anchor", "middle", "font-size", "12px", "fill", "white", "pointer-events", "none")
		label.Animate("y", el.To("ty", y.Scale(p.TotalUnits)+5, scene.BubbleTransition, in.Now))
		label.Text(format.Units(p.TotalUnits))

		g.Append(grp.Append(circle, label))
	}

	for _, el := range join.Exit {
		grp := scene.El("g", "class", "bubble-group exiting", "transform", translate(el.Value("cx", in.Now), 0))
		circle := scene.El("circle", "class", "bubble", "fill", in.Colors.Color(el.Key), "fill-opacity", "0.8")
		circle.Num("cy", el.Value("cy", in.Now))
		circle.Animate("r", el.To("r", 0, bubbleExit, in.Now))
		g.Append(grp.Append(circle))
	}

	lg := legend(v.legend, l, in, "legend-item-bubble", circleSwatch, false)
	lg.Set("transform", translate(w+20, 20))
	g.Append(lg)

	svg.Append(g)
	return scene.El("div", "id", BubbleContainer).Append(svg)
}

func (v *BubbleView) Snapshot() []scene.State {
	return v.bubbles.Snapshot()
}
