// Package scale maps data values to pixel positions, sizes and colors.
package scale

import "math"

// Band divides a continuous range into uniform bands, one per domain key.
type Band struct {
	domain       []string
	index        map[string]int
	r0, r1       float64
	paddingInner float64
	paddingOuter float64
	align        float64

	step      float64
	bandwidth float64
	start     float64
}

func NewBand(domain []string, r0, r1 float64) *Band {
	b := &Band{
		domain: append([]string(nil), domain...),
		index:  make(map[string]int, len(domain)),
		r0:     r0,
		r1:     r1,
		align:  0.5,
	}
	for i, key := range b.domain {
		if _, dup := b.index[key]; !dup {
			b.index[key] = i
		}
	}
	b.rescale()
	return b
}

// PaddingInner sets the fraction of each step left empty between bands.
func (b *Band) PaddingInner(p float64) *Band {
	b.paddingInner = math.Min(1, math.Max(0, p))
	b.rescale()
	return b
}

// Padding sets both inner and outer padding.
func (b *Band) Padding(p float64) *Band {
	b.paddingInner = math.Min(1, math.Max(0, p))
	b.paddingOuter = math.Max(0, p)
	b.rescale()
	return b
}

// rescale follows the d3 band layout: the range is split into n steps plus
// outer padding, and bands are centered within the leftover space.
func (b *Band) rescale() {
	n := float64(len(b.domain))
	width := b.r1 - b.r0
	b.step = width / math.Max(1, n-b.paddingInner+b.paddingOuter*2)
	b.start = b.r0 + (width-b.step*(n-b.paddingInner))*b.align
	b.bandwidth = b.step * (1 - b.paddingInner)
}

// Pos returns the start of key's band. ok is false for keys outside the
// domain.
func (b *Band) Pos(key string) (float64, bool) {
	i, ok := b.index[key]
	if !ok {
		return 0, false
	}
	return b.start + b.step*float64(i), true
}

// Center returns the midpoint of key's band.
func (b *Band) Center(key string) (float64, bool) {
	p, ok := b.Pos(key)
	return p + b.bandwidth/2, ok
}

func (b *Band) Bandwidth() float64 { return b.bandwidth }

func (b *Band) Step() float64 { return b.step }

func (b *Band) Range() (float64, float64) { return b.r0, b.r1 }

func (b *Band) Domain() []string {
	return append([]string(nil), b.domain...)
}
