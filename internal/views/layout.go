package views

// Margins are the gaps between an SVG edge and its plot area.
type Margins struct {
	Left, Right, Top, Bottom float64
}

// Layout holds every pixel constant of the three in-core charts. An
// alternative page arrangement is a different Layout value.
type Layout struct {
	BarMargin Margins
	BarHeight float64

	BubbleMargin Margins
	BubbleWidth  float64
	BubbleHeight float64

	DonutMargin      Margins
	DonutHeight      float64
	DonutLegendWidth float64
	DonutLegendGap   float64
	DonutMinDiameter float64
	DonutInnerRatio  float64

	LegendRowHeight float64
	DimOpacity      float64
}

var DefaultLayout = Layout{
	BarMargin: Margins{Left: 60, Right: 180, Top: 50, Bottom: 130},
	BarHeight: 400,

	BubbleMargin: Margins{Left: 120, Right: 150, Top: 50, Bottom: 100},
	BubbleWidth:  850,
	BubbleHeight: 550,

	DonutMargin:      Margins{Left: 10, Right: 10, Top: 50, Bottom: 10},
	DonutHeight:      360,
	DonutLegendWidth: 150,
	DonutLegendGap:   30,
	DonutMinDiameter: 200,
	DonutInnerRatio:  0.6,

	LegendRowHeight: 20,
	DimOpacity:      0.3,
}

// Container ids of the page the fragments are patched into.
const (
	BarContainer    = "bar-chart-area"
	BubbleContainer = "bubble-chart-area"
	DonutContainer  = "donut-chart-area"
	ChartContainer  = "chart-area"
	KPIContainer    = "kpi-summary"
)

// Containers lists every container a render pass fills, in page order.
var Containers = []string{KPIContainer, BarContainer, BubbleContainer, DonutContainer, ChartContainer}

// DonutGeometry is the slice ring and placement derived from the measured
// container width.
type DonutGeometry struct {
	Diameter    float64
	Radius      float64
	InnerRadius float64
	CenterX     float64
	CenterY     float64
	LegendX     float64
	LegendY     float64
}

func (l Layout) Donut(containerWidth float64) DonutGeometry {
	avail := containerWidth - l.DonutMargin.Left - l.DonutMargin.Right
	d := max(l.DonutMinDiameter, avail-l.DonutLegendWidth-l.DonutLegendGap)
	return DonutGeometry{
		Diameter:    d,
		Radius:      d / 2,
		InnerRadius: d / 2 * l.DonutInnerRatio,
		CenterX:     l.DonutMargin.Left + d/2,
		CenterY:     l.DonutHeight / 2,
		LegendX:     l.DonutMargin.Left + d + l.DonutLegendGap,
		LegendY:     l.DonutMargin.Top,
	}
}

// barPlot returns the inner plot size of the bar chart.
func (l Layout) barPlot(containerWidth float64) (float64, float64) {
	w := max(0, containerWidth-l.BarMargin.Left-l.BarMargin.Right)
	h := l.BarHeight - l.BarMargin.Top - l.BarMargin.Bottom
	return w, h
}

func (l Layout) bubblePlot() (float64, float64) {
	return l.BubbleWidth - l.BubbleMargin.Left - l.BubbleMargin.Right,
		l.BubbleHeight - l.BubbleMargin.Top - l.BubbleMargin.Bottom
}
