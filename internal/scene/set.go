package scene

import "time"

// Element is the retained state of one keyed visual element: the tweens
// of its numeric attributes and, for pie slices, its arc tween.
type Element struct {
	Key    string
	tweens map[string]Tween
	arc    *ArcTween
}

func newElement(key string) *Element {
	return &Element{Key: key, tweens: make(map[string]Tween)}
}

// Init places an attribute at v without animation, unless the attribute
// already has state. Entering elements use it for their neutral start.
func (e *Element) Init(name string, v float64) {
	if _, ok := e.tweens[name]; ok {
		return
	}
	e.tweens[name] = Tween{From: v, To: v}
}

// Jump places an attribute at v immediately, dropping any tween in flight.
func (e *Element) Jump(name string, v float64) {
	e.tweens[name] = Tween{From: v, To: v}
}

// To starts a tween of name toward target. It starts from wherever the
// attribute is at now, so a tween still in flight is superseded rather than
// restarted from its original origin.
func (e *Element) To(name string, target float64, tr Transition, now time.Time) Tween {
	from := target
	if cur, ok := e.tweens[name]; ok {
		from = cur.At(now)
	}
	tw := Tween{From: from, To: target, Start: now, Transition: tr}
	e.tweens[name] = tw
	return tw
}

func (e *Element) Tween(name string) (Tween, bool) {
	tw, ok := e.tweens[name]
	return tw, ok
}

// Value returns the attribute's value at now, or 0 if it was never set.
func (e *Element) Value(name string, now time.Time) float64 {
	return e.tweens[name].At(now)
}

// Targets returns the resting value of every attribute.
func (e *Element) Targets() map[string]float64 {
	out := make(map[string]float64, len(e.tweens))
	for name, tw := range e.tweens {
		out[name] = tw.To
	}
	return out
}

// ArcTo moves the slice toward next. A slice without prior angles appears
// at next directly.
func (e *Element) ArcTo(next Angles, tr Transition, now time.Time) ArcTween {
	prev := next
	if e.arc != nil {
		prev = e.arc.At(now)
	}
	at := ArcTween{Prev: prev, Next: next, Start: now, Transition: tr}
	e.arc = &at
	return at
}

func (e *Element) Arc() (ArcTween, bool) {
	if e.arc == nil {
		return ArcTween{}, false
	}
	return *e.arc, true
}

// Join is the outcome of matching a new key list against a Set.
type Join struct {
	Enter  []*Element
	Update []*Element
	Exit   []*Element
}

// Set is the retained element set of one view, keyed by a stable identity.
type Set struct {
	elements map[string]*Element
	order    []string
}

func NewSet() *Set {
	return &Set{elements: make(map[string]*Element)}
}

// Join reconciles the set against keys. New keys create elements, known
// keys are kept with their state, and keys that disappeared are returned
// in Exit one last time and dropped from the set. Duplicate keys count once.
func (s *Set) Join(keys []string) Join {
	var j Join
	next := make(map[string]*Element, len(keys))
	order := make([]string, 0, len(keys))

	for _, key := range keys {
		if _, dup := next[key]; dup {
			continue
		}
		el, ok := s.elements[key]
		if ok {
			j.Update = append(j.Update, el)
		} else {
			el = newElement(key)
			j.Enter = append(j.Enter, el)
		}
		next[key] = el
		order = append(order, key)
	}

	for _, key := range s.order {
		if _, ok := next[key]; !ok {
			j.Exit = append(j.Exit, s.elements[key])
		}
	}

	s.elements = next
	s.order = order
	return j
}

// Get returns the live element for key.
func (s *Set) Get(key string) (*Element, bool) {
	el, ok := s.elements[key]
	return el, ok
}

// Keys returns the live keys in join order.
func (s *Set) Keys() []string {
	return append([]string(nil), s.order...)
}

func (s *Set) Len() int { return len(s.order) }

// State is the resting state of one element, used to compare renders.
type State struct {
	Key    string
	Attrs  map[string]float64
	Angles Angles
	HasArc bool
}

// Snapshot returns the resting state of every live element in key order.
func (s *Set) Snapshot() []State {
	out := make([]State, 0, len(s.order))
	for _, key := range s.order {
		el := s.elements[key]
		st := State{Key: key, Attrs: el.Targets()}
		if el.arc != nil {
			st.Angles = el.arc.Next
			st.HasArc = true
		}
		out = append(out, st)
	}
	return out
}
