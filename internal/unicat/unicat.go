// Package unicat classifies codepoints by Unicode general category.
//
// Categories are reported as a bitmask so callers can test membership in a
// group (all letters, all numbers) with a single AND.
package unicat

import "unicode"

// Mask is a set of general categories, one bit per category.
type Mask uint32

// Category bits. The order is stable: Index reports positions in it.
const (
	Lu Mask = 1 << iota
	Ll
	Lt
	Lm
	Lo
	Mn
	Mc
	Me
	Nd
	Nl
	No
	Pc
	Pd
	Ps
	Pe
	Pi
	Pf
	Po
	Sm
	Sc
	Sk
	So
	Zs
	Zl
	Zp
	Cc
	Cf
	Cs
	Co
	Cn
)

// Groups.
const (
	L = Lu | Ll | Lt | Lm | Lo
	M = Mn | Mc | Me
	N = Nd | Nl | No
	P = Pc | Pd | Ps | Pe | Pi | Pf | Po
	S = Sm | Sc | Sk | So
	Z = Zs | Zl | Zp
	C = Cc | Cf | Cs | Co | Cn
)

// Count is the number of distinct categories.
const Count = 30

var tables = [Count]*unicode.RangeTable{
	unicode.Lu, unicode.Ll, unicode.Lt, unicode.Lm, unicode.Lo,
	unicode.Mn, unicode.Mc, unicode.Me,
	unicode.Nd, unicode.Nl, unicode.No,
	unicode.Pc, unicode.Pd, unicode.Ps, unicode.Pe, unicode.Pi, unicode.Pf, unicode.Po,
	unicode.Sm, unicode.Sc, unicode.Sk, unicode.So,
	unicode.Zs, unicode.Zl, unicode.Zp,
	unicode.Cc, unicode.Cf, unicode.Cs, unicode.Co,
	nil, // Cn: anything unassigned
}

// ascii caches the category of every ASCII codepoint.
var ascii [128]Mask

func init() {
	for r := range rune(128) {
		ascii[r] = lookup(r)
	}
}

// Of returns the single-bit mask of the general category of r.
func Of(r rune) Mask {
	if r >= 0 && r < 128 {
		return ascii[r]
	}
	return lookup(r)
}

func lookup(r rune) Mask {
	if r < 0 || r > unicode.MaxRune {
		return Cn
	}
	for i, t := range tables {
		if t != nil && unicode.Is(t, r) {
			return 1 << i
		}
	}
	return Cn
}

// Is reports whether the category of r is in m.
func Is(r rune, m Mask) bool {
	return Of(r)&m != 0
}

// debruijn maps the top five bits of (bit * 0x077CB531) to the bit position.
var debruijn = [32]int{
	0, 1, 28, 2, 29, 14, 24, 3, 30, 22, 20, 15, 25, 17, 4, 8,
	31, 27, 13, 23, 21, 19, 16, 7, 26, 12, 18, 6, 11, 5, 10, 9,
}

// Index returns the position of the single category bit in m.
// The result is unspecified when m has more than one bit set.
func Index(m Mask) int {
	return debruijn[(uint32(m)*0x077CB531)>>27]
}

// IsUpper reports whether r is an uppercase letter (Lu).
func IsUpper(r rune) bool { return Of(r) == Lu }

// IsLower reports whether r is a lowercase letter (Ll).
func IsLower(r rune) bool { return Of(r) == Ll }

// IsDigit reports whether r is in any numeric category.
func IsDigit(r rune) bool { return Is(r, N) }

// IsSpace reports whether r is a space separator, line separator or
// paragraph separator.
func IsSpace(r rune) bool { return Is(r, Z) }
