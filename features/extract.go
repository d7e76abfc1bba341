// Package features turns a token context into the set of active
// classifier features.
package features

import (
	"github.com/jamesainslie/go-sbd/internal/unicat"
	"github.com/jamesainslie/go-sbd/textview"
)

// Visitor receives the active features of a context. Token and WordClass
// are called once per non-empty offset; the receiver resolves the token at
// that offset against its own tables.
type Visitor interface {
	Token(offset int)
	Global(g Global)
	WordClass(offset int)
}

// Extract reports every active feature of w to v.
func Extract(w *Window, v Visitor) {
	for _, off := range Offsets {
		if w.At(off).IsEmpty() {
			continue
		}
		v.Token(off)
		v.WordClass(off)
	}

	prev, next := w.At(-1), w.At(1)

	prevCap := false
	if !prev.IsEmpty() {
		switch {
		case unicat.IsUpper(prev.First()):
			prevCap = true
			v.Global(PrevCap)
			if isCapDotCap(prev) {
				v.Global(PrevCapDotCap)
			}
		case prev.AllMatch(unicat.N):
			v.Global(PrevDigits)
			if isYearLength(prev) {
				v.Global(PrevYear)
				extractPrevPrev(w.At(-2), v)
			}
		}
	}

	nextCap := false
	if !next.IsEmpty() {
		switch {
		case unicat.IsUpper(next.First()):
			nextCap = true
			v.Global(NextCap)
		case next.AllMatch(unicat.N):
			v.Global(NextDigits)
			if isYearLength(next) {
				v.Global(NextYear)
			}
		}
	}

	if prevCap && nextCap && w.At(0).IsSingle('.') && prev.CodepointCount() == 1 {
		if next.CodepointCount() == 1 {
			v.Global(Initials)
		} else {
			v.Global(FirstInitial)
		}
	}
}

func extractPrevPrev(tok textview.View, v Visitor) {
	if tok.IsEmpty() {
		return
	}
	switch {
	case unicat.IsUpper(tok.First()):
		v.Global(PrevPrevCap)
	case tok.AllMatch(unicat.N):
		v.Global(PrevPrevDigits)
		if isYearLength(tok) {
			v.Global(PrevPrevYear)
		}
	}
}

func isYearLength(tok textview.View) bool {
	n := tok.CodepointCount()
	return n == 3 || n == 4
}

// isCapDotCap reports whether tok is an uppercase letter, a period and
// another uppercase letter, as in "U.S".
func isCapDotCap(tok textview.View) bool {
	var rs [3]rune
	n := 0
	for _, r := range tok.Runes() {
		if n == len(rs) {
			return false
		}
		rs[n] = r
		n++
	}
	return n == 3 && unicat.IsUpper(rs[0]) && rs[1] == '.' && unicat.IsUpper(rs[2])
}
