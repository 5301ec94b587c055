package format

import "testing"

func TestFormatters(t *testing.T) {
	tests := []struct {
		name string
		got  string
		want string
	}{
		{"units small", Units(30), "30"},
		{"units thousands", Units(1234567), "1,234,567"},
		{"currency", Currency(12500), "$12,500"},
		{"currency cents", CurrencyCents(1234.5), "$1,234.50"},
		{"negative currency", Currency(-250), "-$250"},
		{"percent", Percent(1.0 / 3.0), "33.3%"},
		{"percent whole", Percent(1), "100.0%"},
		{"percent nan", Percent(0.0 / zero()), "0.0%"},
		{"tick zero", Tick(0), "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %q, want %q", tt.got, tt.want)
			}
		})
	}
}

func zero() float64 { return 0 }
