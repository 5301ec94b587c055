// Package scene keeps the retained, keyed element state of each chart and
// serializes it to SVG with eased transitions.
package scene

import (
	"math"
	"time"
)

// Ease maps normalized time in [0,1] to progress. Progress may leave [0,1]
// for overshooting curves.
type Ease func(t float64) float64

func Linear(t float64) float64 { return t }

func CubicInOut(t float64) float64 {
	t *= 2
	if t <= 1 {
		return t * t * t / 2
	}
	t -= 2
	return (t*t*t + 2) / 2
}

// tpmt is 2^(-10t) rescaled so that tpmt(0) == 1 and tpmt(1) == 0.
func tpmt(x float64) float64 {
	return (math.Pow(2, -10*x) - 0.0009765625) * 1.0009775171065494
}

func ExpInOut(t float64) float64 {
	t *= 2
	if t <= 1 {
		return tpmt(1-t) / 2
	}
	return (2 - tpmt(t-1)) / 2
}

const (
	elasticAmplitude = 1.0
	elasticPeriod    = 0.3 / (2 * math.Pi)
)

// ElasticOut overshoots the target and settles with a decaying oscillation.
func ElasticOut(t float64) float64 {
	s := math.Asin(1/elasticAmplitude) * elasticPeriod
	return 1 - elasticAmplitude*tpmt(t)*math.Sin((t+s)/elasticPeriod)
}

// Transition describes how an attribute moves to a new value. Frames is the
// number of eased samples written out per animation.
type Transition struct {
	Duration time.Duration
	Ease     Ease
	Frames   int
}

var (
	DefaultTransition = Transition{Duration: 500 * time.Millisecond, Ease: CubicInOut, Frames: 20}
	BubbleTransition  = Transition{Duration: 1500 * time.Millisecond, Ease: ElasticOut, Frames: 40}
	DonutTransition   = Transition{Duration: 1000 * time.Millisecond, Ease: ExpInOut, Frames: 30}
)

func (tr Transition) ease() Ease {
	if tr.Ease == nil {
		return CubicInOut
	}
	return tr.Ease
}

func (tr Transition) frames() int {
	if tr.Frames < 2 {
		return 2
	}
	return tr.Frames
}

// progress returns the eased progress of a transition started at start.
func (tr Transition) progress(start, now time.Time) float64 {
	if tr.Duration <= 0 {
		return 1
	}
	p := float64(now.Sub(start)) / float64(tr.Duration)
	switch {
	case p <= 0:
		return 0
	case p >= 1:
		return 1
	}
	return tr.ease()(p)
}

// keyTimes returns the normalized sample instants 0..1.
func (tr Transition) keyTimes() []float64 {
	n := tr.frames()
	out := make([]float64, n)
	for i := range out {
		out[i] = float64(i) / float64(n-1)
	}
	return out
}
