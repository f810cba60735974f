// Package: wareflow/builder
//
// id_fn.go - flag naming schemes.

package builder

import (
	"fmt"
	"strconv"
)

// IDFn names the flag created at a zero-based build index. It must be pure.
type IDFn func(idx int) string

// DefaultIDFn returns the decimal index, 0→"0", 42→"42".
func DefaultIDFn(idx int) string {
	return strconv.Itoa(idx)
}

// ExcelColumnIDFn returns spreadsheet column names, 0→"A", 25→"Z", 26→"AA".
// Scenario files use it for short flag names. Panics if idx < 0.
func ExcelColumnIDFn(idx int) string {
	if idx < 0 {
		panic(fmt.Sprintf("ExcelColumnIDFn: idx must be ≥ 0, got %d", idx))
	}
	// Bijective base 26, filled from the last letter.
	var buf [16]byte
	pos := len(buf)
	for n := idx + 1; n > 0; n = (n - 1) / 26 {
		pos--
		buf[pos] = byte('A' + (n-1)%26)
	}

	return string(buf[pos:])
}

// SymbolNumberIDFn returns prefix + decimal index, "f0", "f1", ...
// The returned IDFn panics if idx < 0.
func SymbolNumberIDFn(prefix string) IDFn {
	return func(idx int) string {
		if idx < 0 {
			panic(fmt.Sprintf("SymbolNumberIDFn: idx must be ≥ 0, got %d", idx))
		}
		return prefix + strconv.Itoa(idx)
	}
}
