package model

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/jamesainslie/go-sbd/features"
	"github.com/jamesainslie/go-sbd/textview"
)

// Save writes m in the line-oriented text format:
//
//	eos characters, space separated, most frequent first
//	bias
//	15 global weights
//	number of word classes, then one line of 4 weights per class
//	number of weighted tokens, then one "token w0 w1 w2 w3" line each
//	one line per word class listing its member tokens
func (m *Model) Save(w io.Writer) error {
	bw := bufio.NewWriter(w)

	eos := make([]string, len(m.eosChars))
	for i, c := range m.eosChars {
		eos[i] = string(c)
	}
	fmt.Fprintln(bw, strings.Join(eos, " "))
	fmt.Fprintln(bw, formatFloat(m.bias))
	writeFloats(bw, m.global[:])

	fmt.Fprintln(bw, len(m.classes))
	for _, ws := range m.classes {
		writeFloats(bw, ws[:])
	}

	var weighted []int32
	for id := range m.table.entries {
		if hasWeights(&m.table.entries[id]) {
			weighted = append(weighted, int32(id))
		}
	}
	fmt.Fprintln(bw, len(weighted))
	for _, id := range weighted {
		e := m.table.entry(id)
		bw.WriteString(e.Token)
		for _, v := range e.Weights {
			bw.WriteByte(' ')
			bw.WriteString(formatFloat(v))
		}
		bw.WriteByte('\n')
	}

	for bit := range MaxWordClasses {
		var members []string
		for i := range m.table.entries {
			if e := &m.table.entries[i]; e.ClassMask&(1<<bit) != 0 {
				members = append(members, e.Token)
			}
		}
		if len(members) == 0 {
			break
		}
		fmt.Fprintln(bw, strings.Join(members, " "))
	}

	return bw.Flush()
}

func hasWeights(e *TokenFeature) bool {
	for _, v := range e.Weights {
		if v != 0 {
			return true
		}
	}
	return false
}

func writeFloats(w *bufio.Writer, vs []float64) {
	for i, v := range vs {
		if i > 0 {
			w.WriteByte(' ')
		}
		w.WriteString(formatFloat(v))
	}
	w.WriteByte('\n')
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// fields splits s on ASCII whitespace. Tokens never contain ASCII
// whitespace but may consist of other separators such as U+2028.
func fields(s string) []string {
	return strings.FieldsFunc(s, isASCIISpace)
}

func isASCIISpace(r rune) bool {
	switch r {
	case ' ', '\t', '\v', '\f', '\r':
		return true
	}
	return false
}

// fieldReader walks whitespace separated fields across lines.
type fieldReader struct {
	lines  []string
	line   int // next unread line
	fields []string
}

func (f *fieldReader) next(what string) (string, error) {
	for len(f.fields) == 0 {
		if f.line >= len(f.lines) {
			return "", fmt.Errorf("%w: expected %s, got end of file", ErrFormat, what)
		}
		f.fields = fields(f.lines[f.line])
		f.line++
	}
	s := f.fields[0]
	f.fields = f.fields[1:]
	return s, nil
}

func (f *fieldReader) float(what string) (float64, error) {
	s, err := f.next(what)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, fmt.Errorf("%w: %s: %q is not a number", ErrFormat, what, s)
	}
	return v, nil
}

func (f *fieldReader) count(what string) (int, error) {
	s, err := f.next(what)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: %s: %q is not a count", ErrFormat, what, s)
	}
	return n, nil
}

// Load reads a model written by Save. Any deviation from the format is an
// ErrFormat error and no model is returned.
func Load(r io.Reader) (*Model, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading model: %w", err)
	}
	lines := strings.Split(string(data), "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}

	var eos []rune
	for _, f := range fields(lines[0]) {
		eos = append(eos, textview.New(f).Last())
	}
	if len(eos) == 0 {
		return nil, fmt.Errorf("%w: no end-of-sentence characters", ErrFormat)
	}

	fr := &fieldReader{lines: lines, line: 1}

	bias, err := fr.float("bias")
	if err != nil {
		return nil, err
	}
	var global [features.NumGlobal]float64
	for i := range global {
		if global[i], err = fr.float("global weight"); err != nil {
			return nil, err
		}
	}

	nClasses, err := fr.count("word class count")
	if err != nil {
		return nil, err
	}
	if nClasses > MaxWordClasses {
		return nil, fmt.Errorf("%w: %d word classes", ErrFormat, nClasses)
	}

	m := newModel(eos, nClasses)
	m.bias = bias
	m.global = global
	for i := range m.classes {
		for j := range m.classes[i] {
			if m.classes[i][j], err = fr.float("word class weight"); err != nil {
				return nil, err
			}
		}
	}

	nTokens, err := fr.count("token count")
	if err != nil {
		return nil, err
	}
	for range nTokens {
		tok, err := fr.next("token")
		if err != nil {
			return nil, err
		}
		id, err := m.table.GetOrAdd(tok)
		if err != nil {
			return nil, err
		}
		e := m.table.entry(id)
		for j := range e.Weights {
			if e.Weights[j], err = fr.float("token weight"); err != nil {
				return nil, err
			}
		}
	}

	if len(fr.fields) != 0 {
		return nil, fmt.Errorf("%w: unexpected %q after token weights", ErrFormat, fr.fields[0])
	}

	// Word class members start on the line after the last token.
	for bit, line := 0, fr.line; line < len(lines); bit, line = bit+1, line+1 {
		members := fields(lines[line])
		if len(members) == 0 {
			break
		}
		if bit >= nClasses {
			return nil, fmt.Errorf("%w: member list for undeclared word class %d", ErrFormat, bit)
		}
		for _, tok := range members {
			id, err := m.table.GetOrAdd(tok)
			if err != nil {
				return nil, err
			}
			m.table.entry(id).ClassMask |= 1 << bit
		}
	}

	return m, nil
}
