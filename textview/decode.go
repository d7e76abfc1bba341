package textview

// DecodeRune decodes the codepoint starting at s[i].
//
// The sequence length comes from the leading byte alone and continuation
// bytes are not validated. A byte that cannot start a sequence decodes to 0
// with width 1. A sequence cut short by the end of s decodes to 0 and
// consumes the remaining bytes, so width is always at least 1 when i < len(s).
func DecodeRune(s string, i int) (r rune, width int) {
	if i >= len(s) {
		return 0, 0
	}
	b := s[i]
	switch {
	case b < 0x80:
		return rune(b), 1
	case b&0xE0 == 0xC0:
		width = 2
		r = rune(b & 0x1F)
	case b&0xF0 == 0xE0:
		width = 3
		r = rune(b & 0x0F)
	case b&0xF8 == 0xF0:
		width = 4
		r = rune(b & 0x07)
	default:
		return 0, 1
	}
	if i+width > len(s) {
		return 0, len(s) - i
	}
	for j := 1; j < width; j++ {
		r = r<<6 | rune(s[i+j]&0x3F)
	}
	return r, width
}

// lastRuneStart returns the offset of the sequence holding the final byte of
// s, walking back over at most three continuation bytes.
func lastRuneStart(s string) int {
	i := len(s) - 1
	for n := 0; n < 3 && i > 0 && s[i]&0xC0 == 0x80; n++ {
		i--
	}
	return i
}
