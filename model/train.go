package model

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/jamesainslie/go-sbd/features"
	"github.com/jamesainslie/go-sbd/textview"
	"github.com/jamesainslie/go-sbd/tokenizer"
)

// TrainConfig controls training.
type TrainConfig struct {
	// Epochs is the number of passes over the examples.
	Epochs int
	// Lambda is the regularization strength.
	Lambda float64
	// MinFeatureFrequency drops features seen in fewer examples.
	MinFeatureFrequency int
	// MinEOSCount is how many lines a character must end to count as an
	// end-of-sentence character.
	MinEOSCount int
	// Shuffle visits examples in a new random order every epoch.
	Shuffle bool
	// Seed seeds the shuffle.
	Seed uint64
	// Normalize applies NFC normalization to every line before use.
	Normalize bool
	Logger    *slog.Logger
}

// DefaultTrainConfig returns the standard training settings.
func DefaultTrainConfig() TrainConfig {
	return TrainConfig{
		Epochs:              100,
		Lambda:              1e-4,
		MinFeatureFrequency: 5,
		MinEOSCount:         2,
		Shuffle:             true,
		Seed:                1,
		Logger:              slog.Default(),
	}
}

// example is one labeled training context: sorted feature indices and a
// label of +1 (boundary) or -1.
type example struct {
	feats []uint32
	label float64
}

// Train fits a model to corpus, a text with one sentence per line. Line
// breaks are the gold boundaries. classes may be nil.
func Train(ctx context.Context, corpus string, classes []WordClass, cfg TrainConfig) (*Model, error) {
	if len(classes) > MaxWordClasses {
		return nil, fmt.Errorf("%w: %d", ErrTooManyWordClasses, len(classes))
	}
	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}

	lines := splitLines(corpus, cfg.Normalize)
	eos := collectEOSChars(lines, cfg.MinEOSCount)
	if len(eos) == 0 {
		return nil, ErrNoEOSChars
	}
	log.Info("collected end-of-sentence characters", "lines", len(lines), "eos_chars", string(eos))

	// Class members are interned first so they take the lowest ids.
	scratch := newModel(eos, len(classes))
	for bit, wc := range classes {
		for _, tok := range wc.Tokens {
			id, err := scratch.table.GetOrAdd(tok)
			if err != nil {
				return nil, err
			}
			scratch.table.entry(id).ClassMask |= 1 << bit
		}
	}

	examples, err := scratch.examples(lines)
	if err != nil {
		return nil, err
	}
	kept := applyFrequencyFloor(examples, cfg.MinFeatureFrequency)
	log.Info("generated training examples",
		"examples", len(examples),
		"tokens", scratch.table.Len(),
		"kept_features", kept.GetCardinality())

	weights, err := fit(ctx, examples, cfg, log)
	if err != nil {
		return nil, err
	}

	m, err := scratch.scatter(weights)
	if err != nil {
		return nil, err
	}
	scratch.table.release()

	log.Info("trained model", "tokens", m.NumTokens(), "word_classes", m.NumClasses(), "bias", m.bias)
	return m, nil
}

func splitLines(corpus string, normalize bool) []string {
	corpus = strings.TrimSuffix(corpus, "\n")
	if corpus == "" {
		return nil
	}
	lines := strings.Split(corpus, "\n")
	for i, l := range lines {
		l = strings.TrimSuffix(l, "\r")
		if normalize {
			l = tokenizer.Normalize(l)
		}
		lines[i] = l
	}
	return lines
}

// collectEOSChars returns the characters ending at least minCount lines,
// most frequent first.
func collectEOSChars(lines []string, minCount int) []rune {
	counts := make(map[rune]int)
	for _, l := range lines {
		if l != "" {
			counts[textview.New(l).Last()]++
		}
	}

	type charCount struct {
		c rune
		n int
	}
	var ranked []charCount
	for c, n := range counts {
		if n >= minCount {
			ranked = append(ranked, charCount{c, n})
		}
	}
	slices.SortFunc(ranked, func(a, b charCount) int {
		if d := cmp.Compare(b.n, a.n); d != 0 {
			return d
		}
		return cmp.Compare(b.c, a.c)
	})

	out := make([]rune, len(ranked))
	for i, r := range ranked {
		out[i] = r.c
	}
	return out
}

// examples builds one example per end-of-sentence candidate. The window
// carries over between lines; a candidate is labeled +1 when it was the last
// token of its line. The final token of the corpus never reaches the center
// of the window and so yields no example.
func (m *Model) examples(lines []string) ([]example, error) {
	var (
		out    []example
		w      features.Window
		wasEOS bool
	)
	s := &sampler{m: m, w: &w}
	for _, line := range lines {
		for tok := range tokenizer.Tokens(textview.New(line)) {
			w.Push(tok)
			if m.IsCandidate(w.At(0)) {
				label := -1.0
				if wasEOS {
					label = 1
				}
				s.feats = []uint32{0}
				features.Extract(&w, s)
				if s.err != nil {
					return nil, s.err
				}
				slices.Sort(s.feats)
				out = append(out, example{feats: s.feats, label: label})
			}
			wasEOS = false
		}
		wasEOS = true
	}
	return out, nil
}

// Dense feature layout: bias, global indicators, word class weights per
// offset, then token weights per offset.
const globalBase = 1

func (m *Model) classBase() int { return globalBase + features.NumGlobal }

func (m *Model) tokenBase() int { return m.classBase() + len(m.classes)*features.Size }

// sampler collects the feature indices of one context, interning tokens as
// it goes.
type sampler struct {
	m     *Model
	w     *features.Window
	feats []uint32
	err   error
}

func (s *sampler) Token(offset int) {
	id, err := s.m.table.GetOrAdd(s.w.At(offset).String())
	if err != nil {
		s.err = err
		return
	}
	idx := s.m.tokenBase() + int(id)*features.Size + features.Slot(offset)
	s.feats = append(s.feats, uint32(idx))
}

func (s *sampler) Global(g features.Global) {
	s.feats = append(s.feats, uint32(globalBase+int(g)))
}

func (s *sampler) WordClass(offset int) {
	if len(s.m.classes) == 0 {
		return
	}
	id, ok := s.m.table.Lookup(s.w.At(offset).String())
	if !ok {
		return
	}
	for bit := range len(s.m.classes) {
		if s.m.table.entry(id).ClassMask&(1<<bit) != 0 {
			idx := s.m.classBase() + bit*features.Size + features.Slot(offset)
			s.feats = append(s.feats, uint32(idx))
		}
	}
}

// applyFrequencyFloor removes from every example the features that occur in
// fewer than minCount examples and returns the set of features kept.
func applyFrequencyFloor(examples []example, minCount int) *roaring.Bitmap {
	var counts []int
	for _, ex := range examples {
		for _, f := range ex.feats {
			if need := int(f) + 1; need > len(counts) {
				counts = append(counts, make([]int, need-len(counts))...)
			}
			counts[f]++
		}
	}

	kept := roaring.New()
	for f, n := range counts {
		if n >= minCount {
			kept.Add(uint32(f))
		}
	}

	for i := range examples {
		examples[i].feats = slices.DeleteFunc(examples[i].feats, func(f uint32) bool {
			return !kept.Contains(f)
		})
	}
	return kept
}

// scatter builds the final model from sparse weights, keeping only tokens
// that have a weight or a word class.
func (m *Model) scatter(weights []sparseWeight) (*Model, error) {
	out := newModel(m.eosChars, len(m.classes))
	classBase, tokenBase := m.classBase(), m.tokenBase()

	for _, sw := range weights {
		idx := int(sw.index)
		switch {
		case idx < globalBase:
			out.bias = sw.value
		case idx < classBase:
			out.global[idx-globalBase] = sw.value
		case idx < tokenBase:
			rel := idx - classBase
			out.classes[rel/features.Size][rel%features.Size] = sw.value
		default:
			rel := idx - tokenBase
			tok := m.table.entry(int32(rel / features.Size)).Token
			id, err := out.table.GetOrAdd(tok)
			if err != nil {
				return nil, err
			}
			out.table.entry(id).Weights[rel%features.Size] = sw.value
		}
	}

	for i := range m.table.entries {
		if e := &m.table.entries[i]; e.ClassMask != 0 {
			id, err := out.table.GetOrAdd(e.Token)
			if err != nil {
				return nil, err
			}
			out.table.entry(id).ClassMask = e.ClassMask
		}
	}
	return out, nil
}
