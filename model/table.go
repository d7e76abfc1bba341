package model

import (
	"github.com/jamesainslie/go-sbd/features"
	"github.com/jamesainslie/go-sbd/internal/arena"
)

// TokenFeature holds what the model knows about one token: a weight per
// context offset and the set of word classes it belongs to.
type TokenFeature struct {
	Token     string
	Weights   [features.Size]float64
	ClassMask uint32
}

// FeatureTable interns tokens and assigns them dense ids in first-seen
// order. Token text is copied into an arena, so callers may reuse or unmap
// the buffers they add from.
type FeatureTable struct {
	arena   *arena.Arena
	index   map[string]int32
	entries []TokenFeature
}

// NewFeatureTable returns an empty table.
func NewFeatureTable() *FeatureTable {
	return &FeatureTable{
		arena: arena.New(arena.DefaultBlockSize),
		index: make(map[string]int32),
	}
}

// GetOrAdd returns the id of tok, interning it if it is new.
func (t *FeatureTable) GetOrAdd(tok string) (int32, error) {
	if id, ok := t.index[tok]; ok {
		return id, nil
	}
	s, err := t.arena.Intern(tok)
	if err != nil {
		return 0, err
	}
	id := int32(len(t.entries))
	t.entries = append(t.entries, TokenFeature{Token: s})
	t.index[s] = id
	return id, nil
}

// Lookup returns the id of tok.
func (t *FeatureTable) Lookup(tok string) (int32, bool) {
	id, ok := t.index[tok]
	return id, ok
}

// Len returns the number of interned tokens.
func (t *FeatureTable) Len() int {
	return len(t.entries)
}

// Entry returns the token with the given id.
func (t *FeatureTable) Entry(id int32) TokenFeature {
	return t.entries[id]
}

func (t *FeatureTable) entry(id int32) *TokenFeature {
	return &t.entries[id]
}

// release frees the interned text. The table must not be used afterwards.
func (t *FeatureTable) release() {
	t.index = nil
	t.entries = nil
	t.arena.Free()
}
