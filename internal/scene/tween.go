package scene

import "time"

// Tween is a numeric attribute in motion from From to To.
type Tween struct {
	From, To   float64
	Start      time.Time
	Transition Transition
}

// At returns the value at now. Before Start it is From; after the
// transition ends it is exactly To.
func (tw Tween) At(now time.Time) float64 {
	p := tw.Transition.progress(tw.Start, now)
	if p == 1 {
		return tw.To
	}
	return tw.From + (tw.To-tw.From)*p
}

// Moving reports whether the tween changes the value at all.
func (tw Tween) Moving() bool { return tw.From != tw.To }

// Samples returns the eased values at each key time.
func (tw Tween) Samples() []float64 {
	ease := tw.Transition.ease()
	times := tw.Transition.keyTimes()
	out := make([]float64, len(times))
	for i, t := range times {
		out[i] = tw.From + (tw.To-tw.From)*ease(t)
	}
	out[len(out)-1] = tw.To
	return out
}

// Angles is the angular extent of a pie slice, in radians clockwise from
// twelve o'clock.
type Angles struct {
	Start, End float64
}

func (a Angles) lerp(b Angles, p float64) Angles {
	return Angles{
		Start: a.Start + (b.Start-a.Start)*p,
		End:   a.End + (b.End-a.End)*p,
	}
}

// ArcTween interpolates a slice between its previous and next angles. The
// slice path is regenerated from the interpolated angles for every frame.
type ArcTween struct {
	Prev, Next Angles
	Start      time.Time
	Transition Transition
}

func (at ArcTween) At(now time.Time) Angles {
	p := at.Transition.progress(at.Start, now)
	if p == 1 {
		return at.Next
	}
	return at.Prev.lerp(at.Next, p)
}

func (at ArcTween) Moving() bool { return at.Prev != at.Next }

func (at ArcTween) Samples() []Angles {
	ease := at.Transition.ease()
	times := at.Transition.keyTimes()
	out := make([]Angles, len(times))
	for i, t := range times {
		out[i] = at.Prev.lerp(at.Next, ease(t))
	}
	out[len(out)-1] = at.Next
	return out
}
