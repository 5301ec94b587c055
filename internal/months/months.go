// Package months holds the canonical Spanish month sequence used to order
// month labels regardless of data arrival order.
package months

import "slices"

var canonical = [12]string{
	"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
	"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
}

// Canonical returns a copy of the twelve month names in calendar order.
func Canonical() []string {
	return slices.Clone(canonical[:])
}

// Index returns the calendar position of name, or -1 when name is not a
// canonical month.
func Index(name string) int {
	return slices.Index(canonical[:], name)
}

func Valid(name string) bool {
	return Index(name) >= 0
}

// Sort orders names in place by calendar position. Unknown names sort
// after every canonical month, keeping their relative order.
func Sort(names []string) {
	slices.SortStableFunc(names, func(a, b string) int {
		return rank(a) - rank(b)
	})
}

func rank(name string) int {
	if i := Index(name); i >= 0 {
		return i
	}
	return len(canonical)
}
