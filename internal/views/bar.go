package views

import (
	"strings"

	"sales-dashboard/internal/format"
	"sales-dashboard/internal/scale"
	"sales-dashboard/internal/scene"
)

const dropShadowID = "bar-dropshadow"

// BarView is the grouped bar chart: one group per month of the full
// dataset, one bar per product with sales in that month.
type BarView struct {
	layout Layout
	groups *scene.Set
	bars   *scene.Set
	legend *scene.Set
}

func NewBarView(l Layout) *BarView {
	return &BarView{
		layout: l,
		groups: scene.NewSet(),
		bars:   scene.NewSet(),
		legend: scene.NewSet(),
	}
}

type barDatum struct {
	key     string
	month   string
	product string
	units   float64
}

func barKey(month, product string) string { return month + "|" + product }

// barData groups the filtered records by month. Rows repeating a
// month/product pair are summed into one bar.
func barData(in Input) (map[string][]*barDatum, []string) {
	byMonth := make(map[string][]*barDatum)
	byKey := make(map[string]*barDatum)
	var keys []string
	for _, rec := range in.Filtered.Records {
		key := barKey(rec.Month, rec.Product)
		if d, ok := byKey[key]; ok {
			d.units += rec.UnitsSold
			continue
		}
		d := &barDatum{key: key, month: rec.Month, product: rec.Product, units: rec.UnitsSold}
		byKey[key] = d
		byMonth[rec.Month] = append(byMonth[rec.Month], d)
	}
	for _, m := range in.Summary.MonthOrder {
		for _, d := range byMonth[m] {
			keys = append(keys, d.key)
		}
	}
	return byMonth, keys
}

func (v *BarView) Render(in Input) *scene.Node {
	l := v.layout
	w, h := l.barPlot(in.Width)

	x0 := scale.NewBand(in.Summary.MonthOrder, 0, w).PaddingInner(0.1)
	products := in.Summary.ProductNames
	if s := in.selected(); s != "" {
		products = []string{s}
	}
	x1 := scale.NewBand(products, 0, x0.Bandwidth()).Padding(0.05)
	yMax := in.Summary.MaxUnitsSold * 1.10
	if yMax <= 0 {
		yMax = 1
	}
	y := scale.NewLinear(0, yMax, h, 0)

	byMonth, keys := barData(in)
	v.groups.Join(in.Summary.MonthOrder)
	join := v.bars.Join(keys)
	for _, el := range join.Enter {
		el.Init("y", h)
		el.Init("height", 0)
	}

	svg := scene.El("svg", "id", svgID("bar", in.Generation), "class", "chart")
	svg.Num("width", in.Width).Num("height", l.BarHeight)
	svg.Append(scene.El("defs").Append(
		scene.El("filter", "id", dropShadowID).Append(
			scene.El("feDropShadow", "dx", "1", "dy", "1", "stdDeviation", "1.5", "flood-opacity", "0.4"),
		),
	))

	plotTitle := "Ventas Mensuales por Producto"
	if s := in.selected(); s != "" {
		plotTitle = "Ventas Mensuales: " + s
	}
	g := scene.El("g", "transform", translate(l.BarMargin.Left, l.BarMargin.Top))
	g.Append(
		bandAxis(x0, h, "10", true),
		valueAxis(y, 5, w),
		axisLabel(w/2, h+50, "Mes", false),
		axisLabel(-h/2, -40, "Ventas (Unidades)", true),
		title(w/2, plotTitle),
	)

	groups := make(map[string]*scene.Node, v.groups.Len())
	for _, month := range v.groups.Keys() {
		x, _ := x0.Pos(month)
		gm := scene.El("g", "class", "month-group", "transform", translate(x, 0))
		groups[month] = gm
		g.Append(gm)

		for _, d := range byMonth[month] {
			el, _ := v.bars.Get(d.key)
			bx, _ := x1.Pos(d.product)
			el.Jump("x", bx)
			el.Jump("width", x1.Bandwidth())
			ty := y.Scale(d.units)
			gm.Append(v.bar(in, el, d, ty, h-ty))
		}
	}

	// Bars leaving collapse to the baseline. Their month group may be gone
	// too, in which case they go with it.
	for _, el := range join.Exit {
		month, product, _ := strings.Cut(el.Key, "|")
		gm, ok := groups[month]
		if !ok {
			continue
		}
		rect := scene.El("rect", "class", "bar exiting", "fill", in.Colors.Color(product))
		rect.Num("x", el.Value("x", in.Now)).Num("width", el.Value("width", in.Now))
		rect.Animate("y", el.To("y", h, scene.DefaultTransition, in.Now))
		rect.Animate("height", el.To("height", 0, scene.DefaultTransition, in.Now))
		gm.Append(rect)
	}

	lg := legend(v.legend, l, in, "legend-item", squareSwatch, false)
	lg.Set("transform", translate(w+5, 20))
	g.Append(lg)

	svg.Append(g)
	return scene.El("div", "id", BarContainer).Append(svg)
}

func (v *BarView) bar(in Input, el *scene.Element, d *barDatum, y, height float64) *scene.Node {
	rect := scene.El("rect", "class", "bar", "fill", in.Colors.Color(d.product))
	rect.Num("x", el.Value("x", in.Now)).Num("width", el.Value("width", in.Now))
	rect.Num("opacity", in.opacity(v.layout, d.product))
	if in.selected() == d.product {
		rect.Set("filter", "url(#"+dropShadowID+")")
	}
	rect.Animate("y", el.To("y", y, scene.DefaultTransition, in.Now))
	rect.Animate("height", el.To("height", height, scene.DefaultTransition, in.Now))

	selectable(rect, d.product)
	hover(rect, []string{
		"Mes: " + d.month,
		"Producto: " + d.product,
		"Ventas: " + format.Units(d.units),
	}, "", "")
	return rect
}

// Snapshot returns the resting state of every bar, keyed month|product.
func (v *BarView) Snapshot() []scene.State {
	return v.bars.Snapshot()
}
