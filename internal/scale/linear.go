package scale

import "math"

// Linear maps a numeric domain onto a numeric range.
type Linear struct {
	d0, d1 float64
	r0, r1 float64
}

func NewLinear(d0, d1, r0, r1 float64) *Linear {
	return &Linear{d0: d0, d1: d1, r0: r0, r1: r1}
}

// Scale maps v into the range. A degenerate domain maps everything to the
// middle of the range.
func (l *Linear) Scale(v float64) float64 {
	span := l.d1 - l.d0
	if span == 0 || math.IsNaN(span) {
		return l.r0 + (l.r1-l.r0)/2
	}
	return l.r0 + (v-l.d0)/span*(l.r1-l.r0)
}

func (l *Linear) Domain() (float64, float64) { return l.d0, l.d1 }

func (l *Linear) Range() (float64, float64) { return l.r0, l.r1 }

// Ticks returns roughly count evenly spaced round values inside the domain,
// using steps of 1, 2 or 5 times a power of ten.
func (l *Linear) Ticks(count int) []float64 {
	lo, hi := l.d0, l.d1
	if hi < lo {
		lo, hi = hi, lo
	}
	if count <= 0 || hi == lo || math.IsNaN(hi-lo) || math.IsInf(hi-lo, 0) {
		if hi == lo && !math.IsNaN(lo) {
			return []float64{lo}
		}
		return nil
	}

	step := tickStep(lo, hi, count)
	first := math.Ceil(lo / step)
	last := math.Floor(hi / step)
	ticks := make([]float64, 0, int(last-first)+1)
	for i := first; i <= last; i++ {
		// Multiplying the index avoids accumulated float error; dividing by
		// the inverse keeps fractional steps exact.
		if step < 1 {
			ticks = append(ticks, i/math.Round(1/step))
		} else {
			ticks = append(ticks, i*step)
		}
	}
	return ticks
}

var (
	e10 = math.Sqrt(50)
	e5  = math.Sqrt(10)
	e2  = math.Sqrt(2)
)

func tickStep(lo, hi float64, count int) float64 {
	raw := (hi - lo) / float64(count)
	power := math.Pow(10, math.Floor(math.Log10(raw)))
	ratio := raw / power
	switch {
	case ratio >= e10:
		power *= 10
	case ratio >= e5:
		power *= 5
	case ratio >= e2:
		power *= 2
	}
	return power
}
