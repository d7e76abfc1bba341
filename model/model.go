// Package model implements the sentence boundary classifier: a sparse
// linear model over token identity, token shape and word class features of
// a four-token context.
//
// A Model is immutable once trained or loaded and may be shared between
// goroutines.
package model

import (
	"math/bits"

	"github.com/jamesainslie/go-sbd/features"
	"github.com/jamesainslie/go-sbd/textview"
)

// MaxWordClasses is the number of classes a token's class mask can hold.
const MaxWordClasses = 32

// Model is a trained boundary classifier.
type Model struct {
	eosChars  []rune
	eosFilter [256]bool
	bias      float64
	global    [features.NumGlobal]float64
	classes   [][features.Size]float64
	table     *FeatureTable
}

func newModel(eosChars []rune, numClasses int) *Model {
	m := &Model{
		classes: make([][features.Size]float64, numClasses),
		table:   NewFeatureTable(),
	}
	m.setEOSChars(eosChars)
	return m
}

func (m *Model) setEOSChars(chars []rune) {
	m.eosChars = append([]rune(nil), chars...)
	m.eosFilter = [256]bool{}
	for _, c := range chars {
		m.eosFilter[c&0xFF] = true
	}
}

// EOSChars returns the end-of-sentence characters, most frequent first.
func (m *Model) EOSChars() []rune {
	return append([]rune(nil), m.eosChars...)
}

// Bias returns the bias weight.
func (m *Model) Bias() float64 { return m.bias }

// GlobalWeight returns the weight of a global indicator.
func (m *Model) GlobalWeight(g features.Global) float64 { return m.global[g] }

// NumClasses returns the number of word classes.
func (m *Model) NumClasses() int { return len(m.classes) }

// NumTokens returns the number of tokens with weights or class membership.
func (m *Model) NumTokens() int { return m.table.Len() }

// Token returns what the model stores for tok.
func (m *Model) Token(tok string) (TokenFeature, bool) {
	id, ok := m.table.Lookup(tok)
	if !ok {
		return TokenFeature{}, false
	}
	return m.table.Entry(id), true
}

// IsCandidate reports whether tok ends in an end-of-sentence character.
func (m *Model) IsCandidate(tok textview.View) bool {
	if tok.IsEmpty() {
		return false
	}
	c := tok.Last()
	if !m.eosFilter[c&0xFF] {
		return false
	}
	for _, e := range m.eosChars {
		if e == c {
			return true
		}
	}
	return false
}

// Score returns the weighted sum of the active features of w. Unknown
// tokens contribute nothing.
func (m *Model) Score(w *features.Window) float64 {
	s := scorer{m: m}
	for i, off := range features.Offsets {
		s.ids[i] = -1
		if tok := w.At(off); !tok.IsEmpty() {
			if id, ok := m.table.Lookup(tok.String()); ok {
				s.ids[i] = id
			}
		}
	}
	features.Extract(w, &s)
	return s.sum + m.bias
}

// Decide reports whether the current token of w ends a sentence.
func (m *Model) Decide(w *features.Window) bool {
	return m.DecideWithThreshold(w, 0)
}

// DecideWithThreshold is Decide with the score compared against threshold
// instead of zero.
func (m *Model) DecideWithThreshold(w *features.Window, threshold float64) bool {
	return m.IsCandidate(w.At(0)) && m.Score(w) > threshold
}

type scorer struct {
	m   *Model
	ids [features.Size]int32
	sum float64
}

func (s *scorer) Token(offset int) {
	slot := features.Slot(offset)
	if id := s.ids[slot]; id >= 0 {
		s.sum += s.m.table.entry(id).Weights[slot]
	}
}

func (s *scorer) Global(g features.Global) {
	s.sum += s.m.global[g]
}

func (s *scorer) WordClass(offset int) {
	slot := features.Slot(offset)
	id := s.ids[slot]
	if id < 0 {
		return
	}
	for mask := s.m.table.entry(id).ClassMask; mask != 0; mask &= mask - 1 {
		bit := bits.TrailingZeros32(mask)
		if bit < len(s.m.classes) {
			s.sum += s.m.classes[bit][slot]
		}
	}
}
