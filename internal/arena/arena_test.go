package arena

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArena_New(t *testing.T) {
	t.Run("default block size", func(t *testing.T) {
		a := New(0)
		assert.Equal(t, DefaultBlockSize, a.blockSize)
	})

	t.Run("custom block size", func(t *testing.T) {
		a := New(128)
		assert.Equal(t, 128, a.blockSize)
	})
}

func TestArena_Allocate(t *testing.T) {
	a := New(64)

	buf, err := a.Allocate(10, 1)
	require.NoError(t, err)
	assert.Len(t, buf, 10)

	for _, align := range []int{2, 4, 8, 16} {
		buf, err := a.Allocate(3, align)
		require.NoError(t, err)
		addr := uintptr(unsafe.Pointer(unsafe.SliceData(buf)))
		assert.Zero(t, addr%uintptr(align), "alignment %d", align)
	}

	stats := a.Stats()
	assert.Equal(t, 5, stats.TotalAllocs)
	assert.Equal(t, 22, stats.BytesUsed)
}

func TestArena_AllocateGrows(t *testing.T) {
	a := New(16)

	first, err := a.Allocate(12, 1)
	require.NoError(t, err)
	second, err := a.Allocate(12, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, a.Stats().Blocks)

	// A request larger than the block size gets a block of its own.
	big, err := a.Allocate(100, 8)
	require.NoError(t, err)
	assert.Len(t, big, 100)
	assert.Equal(t, 3, a.Stats().Blocks)
	assert.GreaterOrEqual(t, a.Stats().BytesReserved, 16+16+100)

	// Earlier allocations are untouched by growth.
	first[0], second[0] = 'a', 'b'
	assert.Equal(t, byte('a'), first[0])
	assert.Equal(t, byte('b'), second[0])
}

func TestArena_Errors(t *testing.T) {
	var zero Arena
	_, err := zero.Allocate(1, 1)
	assert.ErrorIs(t, err, ErrUninitialized)

	_, err = zero.Intern("x")
	assert.ErrorIs(t, err, ErrUninitialized)

	a := New(0)
	_, err = a.Allocate(1, 3)
	assert.ErrorIs(t, err, ErrBadAlignment)
}

func TestArena_Intern(t *testing.T) {
	a := New(32)
	src := []byte("hello")

	s, err := a.Intern(string(src))
	require.NoError(t, err)
	src[0] = 'j'
	assert.Equal(t, "hello", s)

	empty, err := a.Intern("")
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestArena_Free(t *testing.T) {
	a := New(32)
	_, err := a.Allocate(8, 8)
	require.NoError(t, err)

	a.Free()
	assert.Equal(t, Stats{}, a.Stats())

	_, err = a.Allocate(8, 8)
	require.NoError(t, err)
	assert.Equal(t, 1, a.Stats().Blocks)
}
