package scene

import (
	"math"
	"strings"
)

// Pie lays values out as consecutive slices around the full circle, in
// input order. When every value is zero all slices are empty.
func Pie(values []float64) []Angles {
	var total float64
	for _, v := range values {
		if v > 0 {
			total += v
		}
	}
	k := 0.0
	if total > 0 {
		k = 2 * math.Pi / total
	}

	out := make([]Angles, len(values))
	a := 0.0
	for i, v := range values {
		span := math.Max(0, v) * k
		out[i] = Angles{Start: a, End: a + span}
		a += span
	}
	return out
}

// Ring is an annulus; slice paths and label positions are computed on it.
type Ring struct {
	Inner, Outer float64
}

func point(r, a float64) (float64, float64) {
	return r * math.Sin(a), -r * math.Cos(a)
}

// Path returns the SVG path of the slice a on the ring. Each edge is drawn
// as two half arcs, so every slice, including a full circle, has the same
// command structure and its frames interpolate cleanly.
func (rg Ring) Path(a Angles) string {
	mid := (a.Start + a.End) / 2
	var b strings.Builder

	x, y := point(rg.Outer, a.Start)
	b.WriteString("M" + num(x) + "," + num(y))
	for _, t := range []float64{mid, a.End} {
		x, y = point(rg.Outer, t)
		b.WriteString("A" + num(rg.Outer) + "," + num(rg.Outer) + ",0,0,1," + num(x) + "," + num(y))
	}

	x, y = point(rg.Inner, a.End)
	b.WriteString("L" + num(x) + "," + num(y))
	for _, t := range []float64{mid, a.Start} {
		x, y = point(rg.Inner, t)
		b.WriteString("A" + num(rg.Inner) + "," + num(rg.Inner) + ",0,0,0," + num(x) + "," + num(y))
	}
	b.WriteString("Z")
	return b.String()
}

// Centroid is the midpoint of the slice, halfway between the radii.
func (rg Ring) Centroid(a Angles) (float64, float64) {
	return point((rg.Inner+rg.Outer)/2, (a.Start+a.End)/2)
}
