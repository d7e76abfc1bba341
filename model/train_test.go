package model

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jamesainslie/go-sbd/features"
	"github.com/jamesainslie/go-sbd/textview"
	"github.com/jamesainslie/go-sbd/tokenizer"
)

var titleCorpus = strings.Repeat(strings.Join([]string{
	"Dr. Smith went home.",
	"He left early.",
	"Mr. Jones arrived late.",
	"She stayed.",
}, "\n")+"\n", 10)

func quietConfig() TrainConfig {
	cfg := DefaultTrainConfig()
	cfg.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	return cfg
}

func mustTrain(t *testing.T, corpus string, classes []WordClass) *Model {
	t.Helper()
	m, err := Train(context.Background(), corpus, classes, quietConfig())
	require.NoError(t, err)
	return m
}

func mustSave(t *testing.T, m *Model) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, m.Save(&buf))
	return buf.String()
}

// boundaries slides a window over text and returns the end offsets of the
// tokens m decides are sentence ends.
func boundaries(m *Model, text string) []int {
	var (
		w   features.Window
		out []int
	)
	check := func() {
		if m.Decide(&w) {
			out = append(out, w.At(0).End())
		}
	}
	for tok := range tokenizer.Tokens(textview.New(text)) {
		w.Push(tok)
		check()
	}
	w.Push(textview.View{})
	check()
	return out
}

func TestTrain_TitleIsNotABoundary(t *testing.T) {
	m := mustTrain(t, titleCorpus, nil)
	assert.Equal(t, []rune{'.'}, m.EOSChars())

	got := boundaries(m, "Dr. Smith went home. He left early.")
	assert.NotContains(t, got, 3, "split after Dr.")
	assert.Contains(t, got, 20, "no split after home.")
}

func TestTrain_TinyCorpus(t *testing.T) {
	// Every feature falls below the frequency floor, leaving an all-zero
	// model that never splits.
	m := mustTrain(t, "Dr. Smith went home.\nHe left early.\n", nil)
	assert.Equal(t, 0.0, m.Bias())
	assert.Empty(t, boundaries(m, "Dr. Smith went home. He left early."))
}

func TestTrain_WordClasses(t *testing.T) {
	classes := []WordClass{{Name: "title", Tokens: []string{"Dr", "Mr", "Prof"}}}
	m := mustTrain(t, titleCorpus, classes)

	require.Equal(t, 1, m.NumClasses())
	prof, ok := m.Token("Prof")
	require.True(t, ok, "class members are kept without weights")
	assert.Equal(t, uint32(1), prof.ClassMask)

	classLine := strings.Split(mustSave(t, m), "\n")[4]
	assert.NotEqual(t, "0 0 0 0", classLine)
}

func TestTrain_Deterministic(t *testing.T) {
	a := mustSave(t, mustTrain(t, titleCorpus, nil))
	b := mustSave(t, mustTrain(t, titleCorpus, nil))
	assert.Equal(t, a, b)
}

func TestTrain_NoEOSChars(t *testing.T) {
	_, err := Train(context.Background(), "one\ntwo\n", nil, quietConfig())
	assert.ErrorIs(t, err, ErrNoEOSChars)
}

func TestTrain_TooManyClasses(t *testing.T) {
	classes := make([]WordClass, MaxWordClasses+1)
	_, err := Train(context.Background(), titleCorpus, classes, quietConfig())
	assert.ErrorIs(t, err, ErrTooManyWordClasses)
}

func TestTrain_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Train(ctx, titleCorpus, nil, quietConfig())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCollectEOSChars(t *testing.T) {
	lines := []string{"a.", "b!", "c.", "d!", "e?", "f.", "g", ""}
	assert.Equal(t, []rune{'.', '!'}, collectEOSChars(lines, 2))
	// Equal counts rank the larger codepoint first.
	assert.Equal(t, []rune{'.', '!', 'g', '?'}, collectEOSChars(lines, 1))
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	classes := []WordClass{{Name: "title", Tokens: []string{"Dr", "Mr", "Prof"}}}
	m := mustTrain(t, titleCorpus, classes)
	text := mustSave(t, m)

	loaded := mustLoad(t, text)
	assert.Equal(t, text, mustSave(t, loaded))

	const sample = "Dr. Smith went home. He left early. Mr. Jones arrived late."
	assert.Equal(t, boundaries(m, sample), boundaries(loaded, sample))
}

func TestSaveLoad_LineSeparatorToken(t *testing.T) {
	m := mustTrain(t, strings.Repeat("He said\u2028yes.\nShe left.\n", 10), nil)
	_, ok := m.Token("\u2028")
	require.True(t, ok)

	text := mustSave(t, m)
	loaded, err := Load(strings.NewReader(text))
	require.NoError(t, err)

	_, ok = loaded.Token("\u2028")
	assert.True(t, ok)
	assert.Equal(t, text, mustSave(t, loaded))

	const sample = "He said\u2028yes. She left. He said\u2028yes."
	assert.Equal(t, boundaries(m, sample), boundaries(loaded, sample))
}

func TestBinary_RoundTrip(t *testing.T) {
	classes := []WordClass{{Name: "title", Tokens: []string{"Dr", "Mr", "Prof"}}}
	m := mustTrain(t, titleCorpus, classes)

	b, err := m.MarshalBinary()
	require.NoError(t, err)
	decoded, err := DecodeBinary(b)
	require.NoError(t, err)
	assert.Equal(t, mustSave(t, m), mustSave(t, decoded))
}

func TestDecodeBinary_Errors(t *testing.T) {
	m := mustLoad(t, handModel)
	b, err := m.MarshalBinary()
	require.NoError(t, err)

	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"truncated", b[:len(b)-3]},
		{"garbage", []byte{0xff, 0xff, 0xff}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := DecodeBinary(tc.data)
			assert.ErrorIs(t, err, ErrFormat)
		})
	}
}

func TestSaveFile_LoadFile(t *testing.T) {
	m := mustTrain(t, titleCorpus, []WordClass{{Name: "title", Tokens: []string{"Dr", "Mr"}}})
	want := mustSave(t, m)
	dir := t.TempDir()

	for _, name := range []string{"model.txt", "model.txt.zst", "model.txt.lz4", "model.pb", "model.pb.zst", "model.PB.LZ4"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			require.NoError(t, m.SaveFile(path))
			loaded, err := LoadFile(path)
			require.NoError(t, err)
			assert.Equal(t, want, mustSave(t, loaded))
		})
	}
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrFormat)
}
