package scale

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func approx() cmp.Option {
	return cmpopts.EquateApprox(0, 1e-9)
}

func TestBand_PaddingInner(t *testing.T) {
	b := NewBand([]string{"Enero", "Febrero", "Marzo"}, 0, 300).PaddingInner(0.1)

	// step = 300 / (3 - 0.1) ; bands start after half the leftover space.
	step := 300 / 2.9
	if math.Abs(b.Step()-step) > 1e-9 {
		t.Errorf("step = %v, want %v", b.Step(), step)
	}
	if math.Abs(b.Bandwidth()-step*0.9) > 1e-9 {
		t.Errorf("bandwidth = %v, want %v", b.Bandwidth(), step*0.9)
	}

	got := []float64{}
	for _, key := range b.Domain() {
		p, ok := b.Pos(key)
		if !ok {
			t.Fatalf("Pos(%q) not found", key)
		}
		got = append(got, p)
	}
	want := []float64{0, step, 2 * step}
	if diff := cmp.Diff(want, got, approx()); diff != "" {
		t.Errorf("positions mismatch (-want +got):\n%s", diff)
	}

	if _, ok := b.Pos("Abril"); ok {
		t.Error("Pos of a key outside the domain should report !ok")
	}
}

func TestBand_Padding(t *testing.T) {
	b := NewBand([]string{"A", "B"}, 0, 580).Padding(0.4)

	// n - inner + 2*outer = 2 - 0.4 + 0.8 = 2.4
	step := 580 / 2.4
	start := (580 - step*1.6) / 2
	p, _ := b.Pos("A")
	if math.Abs(p-start) > 1e-9 {
		t.Errorf("Pos(A) = %v, want %v", p, start)
	}
	c, _ := b.Center("B")
	if math.Abs(c-(start+step+step*0.3)) > 1e-9 {
		t.Errorf("Center(B) = %v", c)
	}
}

func TestBand_Empty(t *testing.T) {
	b := NewBand(nil, 0, 100)
	if b.Bandwidth() != 100 {
		t.Errorf("empty band bandwidth = %v, want full range", b.Bandwidth())
	}
}

func TestLinear(t *testing.T) {
	y := NewLinear(0, 22, 220, 0)
	if got := y.Scale(11); got != 110 {
		t.Errorf("Scale(11) = %v, want 110", got)
	}
	if got := y.Scale(0); got != 220 {
		t.Errorf("Scale(0) = %v, want 220", got)
	}

	flat := NewLinear(5, 5, 0, 100)
	if got := flat.Scale(5); got != 50 {
		t.Errorf("degenerate domain Scale = %v, want 50", got)
	}
}

func TestLinear_Ticks(t *testing.T) {
	tests := []struct {
		name   string
		d0, d1 float64
		count  int
		want   []float64
	}{
		{"round", 0, 100, 5, []float64{0, 20, 40, 60, 80, 100}},
		{"headroom", 0, 22, 5, []float64{0, 5, 10, 15, 20}},
		{"large", 0, 1150, 5, []float64{0, 200, 400, 600, 800, 1000}},
		{"fractional", 0, 1, 5, []float64{0, 0.2, 0.4, 0.6, 0.8, 1}},
		{"flat", 3, 3, 5, []float64{3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewLinear(tt.d0, tt.d1, 0, 1).Ticks(tt.count)
			if diff := cmp.Diff(tt.want, got, approx()); diff != "" {
				t.Errorf("Ticks mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestOrdinal_Stable(t *testing.T) {
	o := NewOrdinal([]string{"A", "B", "C"}, Set1)

	if o.Color("A") != "#e41a1c" || o.Color("B") != "#377eb8" {
		t.Errorf("unexpected colors %s %s", o.Color("A"), o.Color("B"))
	}
	if o.Color("Z") != Set1[3] {
		t.Errorf("unknown key color = %s, want next palette entry", o.Color("Z"))
	}
	if o.Color("A") != "#e41a1c" {
		t.Error("asking for an unknown key must not shift known keys")
	}

	many := make([]string, 10)
	for i := range many {
		many[i] = string(rune('a' + i))
	}
	cyc := NewOrdinal(many, Set1)
	if cyc.Color("j") != cyc.Color("a") {
		t.Error("palette should cycle after nine colors")
	}
}

func TestDarker(t *testing.T) {
	if got := Darker("#ffffff", 1); got != "#b3b3b3" {
		t.Errorf("Darker(white, 1) = %s, want #b3b3b3", got)
	}
	if got := Darker("#e41a1c", 0); got != "#e41a1c" {
		t.Errorf("Darker(k=0) = %s", got)
	}
	if got := Darker("red", 1); got != "red" {
		t.Errorf("unparsable colors pass through, got %s", got)
	}
}
