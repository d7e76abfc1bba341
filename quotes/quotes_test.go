package quotes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jamesainslie/go-sbd/textview"
)

func TestParse(t *testing.T) {
	r, err := Parse(`«»:200,"":20`)
	require.NoError(t, err)
	assert.Equal(t, []Spec{
		{Open: '«', Close: '»', MaxDistance: 200},
		{Open: '"', Close: '"', MaxDistance: 20},
	}, r.Specs())
	assert.Equal(t, `«»:200,"":20`, r.String())
}

func TestParse_BracketsAndGuillemets(t *testing.T) {
	r, err := Parse("«»:20,():50")
	require.NoError(t, err)
	assert.Equal(t, []Spec{
		{Open: '«', Close: '»', MaxDistance: 20},
		{Open: '(', Close: ')', MaxDistance: 50},
	}, r.Specs())
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		spec string
	}{
		{"empty", ""},
		{"missing distance", "«»"},
		{"empty distance", "«»:"},
		{"empty brackets", ":10"},
		{"extra colon", "«»:1:2"},
		{"one bracket", "«:10"},
		{"three brackets", "«»«:10"},
		{"not a number", "«»:ten"},
		{"negative", "«»:-1"},
		{"too far", "«»:1001"},
		{"trailing comma", "«»:10,"},
		{"space separated", "«»:20 ():50"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse(tc.spec)
			assert.ErrorIs(t, err, ErrInvalidSpec)
		})
	}
}

func TestParse_Bounds(t *testing.T) {
	r, err := Parse("():0,[]:1000")
	require.NoError(t, err)
	assert.Equal(t, 2, r.Len())
}

func TestRegistry_Lookup(t *testing.T) {
	r := NewRegistry(
		Spec{Open: '«', Close: '»', MaxDistance: 5},
		Spec{Open: '«', Close: '›', MaxDistance: 9},
		Spec{Open: '(', Close: ')', MaxDistance: 3},
	)

	spec, ok := r.Lookup(textview.New("«"))
	require.True(t, ok)
	assert.Equal(t, Spec{Open: '«', Close: '»', MaxDistance: 5}, spec, "first registered row wins")

	spec, ok = r.Lookup(textview.New("("))
	require.True(t, ok)
	assert.Equal(t, ')', spec.Close)

	for _, tok := range []string{"", "»", "((", "«a", "x"} {
		_, ok := r.Lookup(textview.New(tok))
		assert.False(t, ok, "token %q", tok)
	}
}

func TestRegistry_LookupLowByteCollision(t *testing.T) {
	// U+012B shares its low byte with '+'.
	r := NewRegistry(Spec{Open: 'ī', Close: '!', MaxDistance: 1})
	_, ok := r.Lookup(textview.New("+"))
	assert.False(t, ok)
	_, ok = r.Lookup(textview.New("ī"))
	assert.True(t, ok)
}

func TestRegistry_Nil(t *testing.T) {
	var r *Registry
	_, ok := r.Lookup(textview.New("«"))
	assert.False(t, ok)
	assert.Zero(t, r.Len())
}
