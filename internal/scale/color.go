package scale

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Set1 is the nine-color qualitative palette products are drawn with.
var Set1 = []string{
	"#e41a1c", "#377eb8", "#4daf4a", "#984ea3", "#ff7f00",
	"#ffff33", "#a65628", "#f781bf", "#999999",
}

// Ordinal assigns palette colors to keys in domain order, cycling when the
// domain is longer than the palette.
type Ordinal struct {
	palette []string
	index   map[string]int
	domain  []string
}

func NewOrdinal(domain []string, palette []string) *Ordinal {
	o := &Ordinal{
		palette: palette,
		index:   make(map[string]int, len(domain)),
	}
	for _, key := range domain {
		o.add(key)
	}
	return o
}

func (o *Ordinal) add(key string) {
	if _, ok := o.index[key]; ok {
		return
	}
	o.index[key] = len(o.domain)
	o.domain = append(o.domain, key)
}

// Color returns key's color. An unknown key gets the color the next
// domain entry would get; the Ordinal itself is never modified, so it is
// safe for concurrent use once built.
func (o *Ordinal) Color(key string) string {
	if len(o.palette) == 0 {
		return "#000000"
	}
	i, ok := o.index[key]
	if !ok {
		i = len(o.domain)
	}
	return o.palette[i%len(o.palette)]
}

// Darker scales each RGB channel of a #rrggbb color by 0.7^k.
func Darker(hex string, k float64) string {
	r, g, b, err := parseHex(hex)
	if err != nil {
		return hex
	}
	f := math.Pow(0.7, k)
	return fmt.Sprintf("#%02x%02x%02x", clamp(float64(r)*f), clamp(float64(g)*f), clamp(float64(b)*f))
}

func parseHex(hex string) (uint8, uint8, uint8, error) {
	s := strings.TrimPrefix(hex, "#")
	if len(s) != 6 {
		return 0, 0, 0, fmt.Errorf("color %q is not #rrggbb", hex)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("color %q: %w", hex, err)
	}
	return uint8(v >> 16), uint8(v >> 8), uint8(v), nil
}

func clamp(v float64) uint8 {
	return uint8(math.Max(0, math.Min(255, math.Round(v))))
}
