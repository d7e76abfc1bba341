// Package textview provides borrowed byte ranges over a UTF-8 buffer.
//
// A View never copies: it records the source string and a half-open
// [start, end) range into it. Codepoints are decoded on each access. The
// buffer must outlive every View derived from it.
package textview

import (
	"iter"

	"github.com/jamesainslie/go-sbd/internal/unicat"
)

// View is an immutable [start, end) byte range over a source string.
// The zero value is the empty view.
type View struct {
	src        string
	start, end int
}

// New returns a view over all of s.
func New(s string) View {
	return View{src: s, start: 0, end: len(s)}
}

// Sub returns the view of bytes [from, to) relative to the start of v.
func (v View) Sub(from, to int) View {
	if from < 0 || to < from || v.start+to > v.end {
		panic("textview: range out of bounds")
	}
	return View{src: v.src, start: v.start + from, end: v.start + to}
}

// Start returns the offset of the first byte of v in its source.
func (v View) Start() int { return v.start }

// End returns the offset one past the last byte of v in its source.
func (v View) End() int { return v.end }

// Len returns the byte length of v.
func (v View) Len() int { return v.end - v.start }

// IsEmpty reports whether v spans no bytes.
func (v View) IsEmpty() bool { return v.end == v.start }

// String returns the bytes of v. It shares memory with the source.
func (v View) String() string { return v.src[v.start:v.end] }

// Source returns the whole buffer v points into.
func (v View) Source() string { return v.src }

// Gap returns the source bytes between the end of v and the start of next.
// It returns "" when next is empty, starts before v ends, or points into a
// different buffer.
func (v View) Gap(next View) string {
	if next.IsEmpty() || next.start < v.end || next.src != v.src {
		return ""
	}
	return v.src[v.end:next.start]
}

// Runes yields the byte offset (relative to v) and codepoint of every
// codepoint in v.
func (v View) Runes() iter.Seq2[int, rune] {
	return func(yield func(int, rune) bool) {
		s := v.String()
		for i := 0; i < len(s); {
			r, w := DecodeRune(s, i)
			if !yield(i, r) {
				return
			}
			i += w
		}
	}
}

// CodepointCount decodes v and returns the number of codepoints.
func (v View) CodepointCount() int {
	n := 0
	for range v.Runes() {
		n++
	}
	return n
}

// AllMatch reports whether every codepoint of v has a general category in
// mask. It is vacuously true for the empty view.
func (v View) AllMatch(mask unicat.Mask) bool {
	for _, r := range v.Runes() {
		if !unicat.Is(r, mask) {
			return false
		}
	}
	return true
}

// First returns the first codepoint of v, or 0 if v is empty.
func (v View) First() rune {
	r, _ := DecodeRune(v.String(), 0)
	return r
}

// Last returns the last codepoint of v, or 0 if v is empty.
func (v View) Last() rune {
	s := v.String()
	if s == "" {
		return 0
	}
	r, _ := DecodeRune(s, lastRuneStart(s))
	return r
}

// IsSingle reports whether v holds exactly the one codepoint r.
func (v View) IsSingle(r rune) bool {
	s := v.String()
	if s == "" {
		return false
	}
	c, w := DecodeRune(s, 0)
	return w == len(s) && c == r
}
