package model

import (
	"fmt"
	"math"

	"google.golang.org/protobuf/encoding/protowire"

	"github.com/jamesainslie/go-sbd/features"
)

// Field numbers of the binary model encoding. The layout is that of this
// protobuf schema, encoded by hand:
//
//	message Model {
//	  repeated uint32 eos_char = 1;
//	  double bias = 2;
//	  repeated double global = 3;
//	  repeated WordClass word_class = 4;
//	  repeated Token token = 5;
//	}
//	message WordClass { repeated double weight = 1; }
//	message Token {
//	  string text = 1;
//	  repeated double weight = 2;
//	  uint32 class_mask = 3;
//	}
const (
	fieldEOSChar   protowire.Number = 1
	fieldBias      protowire.Number = 2
	fieldGlobal    protowire.Number = 3
	fieldWordClass protowire.Number = 4
	fieldToken     protowire.Number = 5

	fieldClassWeight protowire.Number = 1

	fieldTokenText   protowire.Number = 1
	fieldTokenWeight protowire.Number = 2
	fieldTokenMask   protowire.Number = 3
)

// MarshalBinary encodes m in the protobuf wire format. Unlike the text
// format it keeps every token, including class members without weights, in
// table order.
func (m *Model) MarshalBinary() ([]byte, error) {
	var b []byte
	for _, c := range m.eosChars {
		b = protowire.AppendTag(b, fieldEOSChar, protowire.VarintType)
		b = protowire.AppendVarint(b, uint64(c))
	}
	b = appendDouble(b, fieldBias, m.bias)
	for _, v := range m.global {
		b = appendDouble(b, fieldGlobal, v)
	}
	for _, ws := range m.classes {
		var msg []byte
		for _, v := range ws {
			msg = appendDouble(msg, fieldClassWeight, v)
		}
		b = protowire.AppendTag(b, fieldWordClass, protowire.BytesType)
		b = protowire.AppendBytes(b, msg)
	}
	for i := range m.table.entries {
		e := &m.table.entries[i]
		var msg []byte
		msg = protowire.AppendTag(msg, fieldTokenText, protowire.BytesType)
		msg = protowire.AppendString(msg, e.Token)
		for _, v := range e.Weights {
			msg = appendDouble(msg, fieldTokenWeight, v)
		}
		if e.ClassMask != 0 {
			msg = protowire.AppendTag(msg, fieldTokenMask, protowire.VarintType)
			msg = protowire.AppendVarint(msg, uint64(e.ClassMask))
		}
		b = protowire.AppendTag(b, fieldToken, protowire.BytesType)
		b = protowire.AppendBytes(b, msg)
	}
	return b, nil
}

func appendDouble(b []byte, num protowire.Number, v float64) []byte {
	b = protowire.AppendTag(b, num, protowire.Fixed64Type)
	return protowire.AppendFixed64(b, math.Float64bits(v))
}

type rawToken struct {
	text    string
	weights []float64
	mask    uint32
}

// DecodeBinary parses a model encoded by MarshalBinary.
func DecodeBinary(b []byte) (*Model, error) {
	var (
		eos     []rune
		bias    float64
		global  []float64
		classes [][]float64
		tokens  []rawToken
	)

	err := walkFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch {
		case num == fieldEOSChar && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			if n >= 0 {
				eos = append(eos, rune(v))
			}
			return n, nil
		case num == fieldBias && typ == protowire.Fixed64Type:
			v, n := protowire.ConsumeFixed64(b)
			bias = math.Float64frombits(v)
			return n, nil
		case num == fieldGlobal && typ == protowire.Fixed64Type:
			v, n := protowire.ConsumeFixed64(b)
			global = append(global, math.Float64frombits(v))
			return n, nil
		case num == fieldWordClass && typ == protowire.BytesType:
			msg, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return n, nil
			}
			ws, err := decodeWordClass(msg)
			classes = append(classes, ws)
			return n, err
		case num == fieldToken && typ == protowire.BytesType:
			msg, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return n, nil
			}
			tok, err := decodeToken(msg)
			tokens = append(tokens, tok)
			return n, err
		default:
			return protowire.ConsumeFieldValue(num, typ, b), nil
		}
	})
	if err != nil {
		return nil, err
	}

	switch {
	case len(eos) == 0:
		return nil, fmt.Errorf("%w: no end-of-sentence characters", ErrFormat)
	case len(global) != features.NumGlobal:
		return nil, fmt.Errorf("%w: %d global weights, want %d", ErrFormat, len(global), features.NumGlobal)
	case len(classes) > MaxWordClasses:
		return nil, fmt.Errorf("%w: %d word classes", ErrFormat, len(classes))
	}

	m := newModel(eos, len(classes))
	m.bias = bias
	copy(m.global[:], global)
	for i, ws := range classes {
		if len(ws) != features.Size {
			return nil, fmt.Errorf("%w: word class %d has %d weights", ErrFormat, i, len(ws))
		}
		copy(m.classes[i][:], ws)
	}
	for _, t := range tokens {
		if len(t.weights) != features.Size {
			return nil, fmt.Errorf("%w: token %q has %d weights", ErrFormat, t.text, len(t.weights))
		}
		if t.mask>>len(classes) != 0 {
			return nil, fmt.Errorf("%w: token %q in undeclared word class", ErrFormat, t.text)
		}
		id, err := m.table.GetOrAdd(t.text)
		if err != nil {
			return nil, err
		}
		e := m.table.entry(id)
		copy(e.Weights[:], t.weights)
		e.ClassMask = t.mask
	}
	return m, nil
}

func decodeWordClass(b []byte) ([]float64, error) {
	var ws []float64
	err := walkFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		if num == fieldClassWeight && typ == protowire.Fixed64Type {
			v, n := protowire.ConsumeFixed64(b)
			ws = append(ws, math.Float64frombits(v))
			return n, nil
		}
		return protowire.ConsumeFieldValue(num, typ, b), nil
	})
	return ws, err
}

func decodeToken(b []byte) (rawToken, error) {
	var t rawToken
	err := walkFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch {
		case num == fieldTokenText && typ == protowire.BytesType:
			s, n := protowire.ConsumeString(b)
			t.text = s
			return n, nil
		case num == fieldTokenWeight && typ == protowire.Fixed64Type:
			v, n := protowire.ConsumeFixed64(b)
			t.weights = append(t.weights, math.Float64frombits(v))
			return n, nil
		case num == fieldTokenMask && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			t.mask = uint32(v)
			return n, nil
		default:
			return protowire.ConsumeFieldValue(num, typ, b), nil
		}
	})
	return t, err
}

// walkFields calls fn for every field of a message. fn consumes the field
// value and returns its length, or a negative protowire error code.
func walkFields(b []byte, fn func(protowire.Number, protowire.Type, []byte) (int, error)) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return fmt.Errorf("%w: %w", ErrFormat, protowire.ParseError(n))
		}
		b = b[n:]
		m, err := fn(num, typ, b)
		if err != nil {
			return err
		}
		if m < 0 {
			return fmt.Errorf("%w: field %d: %w", ErrFormat, num, protowire.ParseError(m))
		}
		b = b[m:]
	}
	return nil
}
