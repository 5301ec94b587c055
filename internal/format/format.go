// Package format renders numbers the way the dashboard labels them.
package format

import (
	"math"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
)

// Units formats a count with thousands separators and no forced decimals.
func Units(v float64) string {
	return humanize.Commaf(v)
}

// Currency formats whole dollars: $1,235.
func Currency(v float64) string {
	return money("#,###.", v)
}

// CurrencyCents formats dollars with two decimals: $1,234.50.
func CurrencyCents(v float64) string {
	return money("#,###.##", v)
}

func money(pattern string, v float64) string {
	if v < 0 {
		return "-$" + humanize.FormatFloat(pattern, math.Abs(v))
	}
	return "$" + humanize.FormatFloat(pattern, v)
}

// Percent formats a ratio with one decimal: 0.3333 -> 33.3%.
func Percent(ratio float64) string {
	if math.IsNaN(ratio) || math.IsInf(ratio, 0) {
		return "0.0%"
	}
	return strconv.FormatFloat(ratio*100, 'f', 1, 64) + "%"
}

// Tick formats an axis tick compactly with an SI suffix: 1500 -> 1.5k.
func Tick(v float64) string {
	if v == 0 {
		return "0"
	}
	return strings.ReplaceAll(humanize.SIWithDigits(v, 1, ""), " ", "")
}
