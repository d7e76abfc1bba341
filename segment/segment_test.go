package segment

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jamesainslie/go-sbd/features"
	"github.com/jamesainslie/go-sbd/quotes"
	"github.com/jamesainslie/go-sbd/textview"
)

// periods ends a sentence at every lone period.
var periods = DeciderFunc(func(w *features.Window) bool {
	return w.At(0).IsSingle('.')
})

var never = DeciderFunc(func(*features.Window) bool { return false })

func split(text string, d Decider, opts ...Option) []string {
	var out []string
	for sent := range Sentences(textview.New(text), d, opts...) {
		out = append(out, sent.String())
	}
	return out
}

func mustRegistry(t *testing.T, spec string) *quotes.Registry {
	t.Helper()
	r, err := quotes.Parse(spec)
	require.NoError(t, err)
	return r
}

func TestSentences(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"empty", "", nil},
		{"whitespace only", "  \n\t ", nil},
		{"single sentence", "Hello world.", []string{"Hello world."}},
		{"no final period", "Hello world", []string{"Hello world"}},
		{"two sentences", "Hello world. How are you.", []string{"Hello world.", "How are you."}},
		{"surrounding space", "  One.   Two.  ", []string{"One.", "Two."}},
		{"single token", "x", []string{"x"}},
		{"lone period", ".", []string{"."}},
		{"stops at NUL", "One. Two.\x00Three.", []string{"One.", "Two."}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, split(tc.text, periods))
		})
	}
}

func TestSentences_SubView(t *testing.T) {
	src := "skip. One. Two."
	v := textview.New(src).Sub(6, len(src))

	var got []textview.View
	for sent := range Sentences(v, periods) {
		got = append(got, sent)
	}
	require.Len(t, got, 2)
	assert.Equal(t, "One.", got[0].String())
	assert.Equal(t, 6, got[0].Start())
	assert.Equal(t, "Two.", got[1].String())
	assert.Equal(t, len(src), got[1].End())
}

func TestSentences_StopEarly(t *testing.T) {
	seq := Sentences(textview.New("A. B. C."), periods)
	for sent := range seq {
		assert.Equal(t, "A.", sent.String())
		break
	}
	// The sequence restarts from the beginning.
	assert.Len(t, slices.Collect(seq), 3)
}

func TestSpans(t *testing.T) {
	text := "One. Two three."
	var got []Span
	for s := range Spans(text, periods) {
		got = append(got, s)
	}
	assert.Equal(t, []Span{{0, 4}, {5, 15}}, got)
	assert.Equal(t, "Two three.", got[1].Text(text))
}

func TestSentences_LeftContextCarriesOver(t *testing.T) {
	var prev []string
	d := DeciderFunc(func(w *features.Window) bool {
		if w.At(0).String() == "Two" {
			prev = append(prev, w.At(-1).String(), w.At(-2).String())
		}
		return w.At(0).IsSingle('.')
	})
	split("One. Two.", d)
	assert.Equal(t, []string{".", "One"}, prev)
}

func TestSentences_Quotes(t *testing.T) {
	tests := []struct {
		name string
		spec string
		text string
		want []string
	}{
		{
			name: "suppressed inside quotes",
			spec: "«»:20",
			text: "«He said. Then left.». Bye.",
			want: []string{"«He said. Then left.».", "Bye."},
		},
		{
			name: "splitting resumes after close mark",
			spec: "():20",
			text: "(One. Two.) Three.",
			want: []string{"(One. Two.) Three."},
		},
		{
			name: "abandoned after max distance",
			spec: "«»:2",
			text: "«He said. Then left. Bye.",
			want: []string{"«He said.", "Then left.", "Bye."},
		},
		{
			name: "abandoned on repeated open mark",
			spec: "«»:20",
			text: "«He said. «Then left. Bye.",
			want: []string{"«He said.", "«Then left.", "Bye."},
		},
		{
			name: "abandoned at end of input",
			spec: "«»:20",
			text: "«He said. Bye.",
			want: []string{"«He said.", "Bye."},
		},
		{
			name: "same open and close mark",
			spec: `"":20`,
			text: `"Go. Now." Done.`,
			want: []string{`"Go. Now." Done.`},
		},
		{
			name: "zero distance never suppresses",
			spec: "«»:0",
			text: "«A. B.",
			want: []string{"«A.", "B."},
		},
		{
			name: "unregistered marks",
			spec: "«»:20",
			text: "»A. B.",
			want: []string{"»A.", "B."},
		},
		{
			name: "open mark at end of input",
			spec: "«»:20",
			text: "A. «",
			want: []string{"A.", "«"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := split(tc.text, periods, WithQuotes(mustRegistry(t, tc.spec)))
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestSentences_AbandonedQuoteResumesAfterOpenMark(t *testing.T) {
	var seen []string
	d := DeciderFunc(func(w *features.Window) bool {
		seen = append(seen, w.At(0).String())
		return w.At(0).IsSingle('.')
	})
	split("«a b c d", d, WithQuotes(mustRegistry(t, "«»:2")))
	assert.Equal(t, []string{"«", "a", "b", "c", "d"}, seen)
}

func TestSentences_NilRegistry(t *testing.T) {
	got := split("«He said. Bye.", periods, WithQuotes(nil))
	assert.Equal(t, []string{"«He said.", "Bye."}, got)
}

func TestSentences_EOLModes(t *testing.T) {
	tests := []struct {
		name string
		mode EOLMode
		text string
		want []string
	}{
		{"single: lower case continues", SplitOnEOL, "Hello\nworld.", []string{"Hello\nworld."}},
		{"single: upper case breaks", SplitOnEOL, "Hello\nWorld.", []string{"Hello", "World."}},
		{"single: digit breaks", SplitOnEOL, "Total\n42", []string{"Total", "42"}},
		{"single: CRLF", SplitOnEOL, "Hello\r\nWorld", []string{"Hello", "World"}},
		{"multiple: blank line breaks", SplitOnMultipleEOLs, "Hello.\n\nWorld.", []string{"Hello.", "World."}},
		{"multiple: spaced blank line", SplitOnMultipleEOLs, "Hello\n  \nworld", []string{"Hello", "world"}},
		{"multiple: one newline", SplitOnMultipleEOLs, "Hello.\nWorld.", []string{"Hello.\nWorld."}},
		{"ignore", IgnoreEOL, "Hello.\n\nWorld.", []string{"Hello.\n\nWorld."}},
		{"trailing newlines", SplitOnMultipleEOLs, "Hello.\n\n\n", []string{"Hello."}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, split(tc.text, never, WithEOLMode(tc.mode)))
		})
	}
}

func TestSentences_ForcedBreakClearsContext(t *testing.T) {
	var left []string
	d := DeciderFunc(func(w *features.Window) bool {
		if w.At(0).String() == "World" {
			left = append(left, w.At(-2).String(), w.At(-1).String())
		}
		return false
	})
	split("Hello there.\n\nWorld.", d, WithEOLMode(SplitOnMultipleEOLs))
	assert.Equal(t, []string{"", ""}, left)
}

func TestSentences_ForcedBreakSkipsDecider(t *testing.T) {
	calls := 0
	d := DeciderFunc(func(*features.Window) bool {
		calls++
		return false
	})
	split("A\n\nB", d, WithEOLMode(SplitOnMultipleEOLs))
	// "A" is decided by the line break, only "B" reaches the decider.
	assert.Equal(t, 1, calls)
}

func TestEOLMode_String(t *testing.T) {
	for _, m := range []EOLMode{IgnoreEOL, SplitOnEOL, SplitOnMultipleEOLs} {
		parsed, err := ParseEOLMode(m.String())
		require.NoError(t, err)
		assert.Equal(t, m, parsed)
	}
	assert.Equal(t, "EOLMode(7)", EOLMode(7).String())

	m, err := ParseEOLMode("MULTIPLE")
	require.NoError(t, err)
	assert.Equal(t, SplitOnMultipleEOLs, m)

	_, err = ParseEOLMode("sometimes")
	assert.ErrorIs(t, err, ErrUnknownEOLMode)
}
