package tokenizer

import (
	"github.com/jamesainslie/go-sbd/internal/unicat"
	"github.com/jamesainslie/go-sbd/textview"
)

// symbol is a remapped input unit: an ASCII byte stands for itself and any
// other codepoint for 128 plus the index of its general category. Symbol 0
// marks both end of input and a literal NUL byte.
type symbol uint8

const symEnd symbol = 0

var symControl = catSymbol(unicat.Cc)

func catSymbol(bit unicat.Mask) symbol {
	return symbol(128 + unicat.Index(bit))
}

// input is the remaining text of a token scan. Positions are byte offsets
// into s.
type input struct {
	s string
}

// at returns the symbol starting at byte i and its width in bytes.
// The width is 0 only at end of input.
func (in *input) at(i int) (symbol, int) {
	if i >= len(in.s) {
		return symEnd, 0
	}
	if b := in.s[i]; b < 0x80 {
		return symbol(b), 1
	}
	r, w := textview.DecodeRune(in.s, i)
	if r == 0 {
		// Malformed bytes behave like control characters.
		return symControl, w
	}
	return catSymbol(unicat.Of(r)), w
}

// symbolSet is a 256-bit membership set.
type symbolSet [4]uint64

func (s *symbolSet) has(c symbol) bool {
	return s[c>>6]&(1<<(c&63)) != 0
}

func (s *symbolSet) add(c symbol) {
	s[c>>6] |= 1 << (c & 63)
}

func chars(cs string) symbolSet {
	var s symbolSet
	for i := 0; i < len(cs); i++ {
		s.add(symbol(cs[i]))
	}
	return s
}

func span(lo, hi byte) symbolSet {
	var s symbolSet
	for c := int(lo); c <= int(hi); c++ {
		s.add(symbol(c))
	}
	return s
}

func cats(m unicat.Mask) symbolSet {
	var s symbolSet
	for i := range unicat.Count {
		if bit := unicat.Mask(1) << i; m&bit != 0 {
			s.add(catSymbol(bit))
		}
	}
	return s
}

func union(sets ...symbolSet) symbolSet {
	var s symbolSet
	for _, o := range sets {
		for i := range s {
			s[i] |= o[i]
		}
	}
	return s
}

var (
	setLetter = union(span('a', 'z'), span('A', 'Z'), cats(unicat.L))
	setDigit  = span('0', '9')

	setWordish = union(setLetter, setDigit)

	setPunct  = chars(".?!")
	setMidNum = chars(".,")
	setExp    = chars("eE")
	setSign   = chars("+-")

	setSchemeChar = span('a', 'z')
	setURIDomain  = union(span('a', 'z'), span('A', 'Z'), setDigit, chars("_-"))
	setURIPath    = union(span('a', 'z'), span('A', 'Z'), setDigit, chars("?=%!@#&_-"))

	// setURIFollow lists what may come right after a URL.
	setURIFollow = union(
		chars("\x00 \t\n\r.,();\"[]'"),
		cats(unicat.N|unicat.P|unicat.Z),
	)

	// setSpace is skipped between tokens.
	setSpace = union(span(0x01, 0x20), cats(unicat.Zs|unicat.Cc|unicat.Cf))
)
