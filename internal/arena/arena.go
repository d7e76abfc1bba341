// Package arena provides a single-owner bump allocator.
//
// Memory is carved out of fixed-size blocks and never returned piecemeal;
// everything is released together by Free. An Arena is not safe for
// concurrent use.
package arena

import (
	"errors"
	"fmt"
	"unsafe"
)

var (
	// ErrUninitialized is returned when allocating from an arena with no block size.
	ErrUninitialized = errors.New("arena: zero block size")
	// ErrBadAlignment is returned for alignments that are not a power of two.
	ErrBadAlignment = errors.New("arena: alignment must be a power of two")
)

// DefaultBlockSize is the block size used by New(0).
const DefaultBlockSize = 32 * 1024

// Stats reports arena memory usage.
type Stats struct {
	Blocks        int // blocks obtained so far
	BytesReserved int // total capacity of all blocks
	BytesUsed     int // bytes handed out, excluding padding
	BytesWasted   int // alignment padding
	TotalAllocs   int
}

// Arena is a bump allocator over growable fixed-size blocks.
type Arena struct {
	blockSize int
	blocks    [][]byte
	cur       []byte // current block
	off       int    // bump cursor into cur
	stats     Stats
}

// New creates an arena with the given block size; 0 selects DefaultBlockSize.
func New(blockSize int) *Arena {
	if blockSize <= 0 {
		blockSize = DefaultBlockSize
	}
	return &Arena{blockSize: blockSize}
}

// Allocate returns size bytes whose address is a multiple of align.
// The returned slice stays valid until Free.
func (a *Arena) Allocate(size, align int) ([]byte, error) {
	if a == nil || a.blockSize == 0 {
		return nil, ErrUninitialized
	}
	if align <= 0 || align&(align-1) != 0 {
		return nil, fmt.Errorf("%w: %d", ErrBadAlignment, align)
	}
	if size < 0 {
		return nil, fmt.Errorf("arena: negative size %d", size)
	}

	pad := a.padding(align)
	if a.cur == nil || a.off+pad+size > len(a.cur) {
		a.grow(max(a.blockSize, size) + align - 1)
		pad = a.padding(align)
	}

	start := a.off + pad
	a.off = start + size
	a.stats.BytesUsed += size
	a.stats.BytesWasted += pad
	a.stats.TotalAllocs++
	return a.cur[start:a.off:a.off], nil
}

// Intern copies s into the arena and returns a string backed by arena memory.
func (a *Arena) Intern(s string) (string, error) {
	if s == "" {
		if a == nil || a.blockSize == 0 {
			return "", ErrUninitialized
		}
		return "", nil
	}
	buf, err := a.Allocate(len(s), 1)
	if err != nil {
		return "", err
	}
	copy(buf, s)
	return unsafe.String(unsafe.SliceData(buf), len(buf)), nil
}

// Stats returns current usage counters.
func (a *Arena) Stats() Stats {
	return a.stats
}

// Free drops every block. Memory handed out earlier must no longer be used.
func (a *Arena) Free() {
	a.blocks = nil
	a.cur = nil
	a.off = 0
	a.stats = Stats{}
}

// padding returns the bytes needed to align the cursor to align.
func (a *Arena) padding(align int) int {
	if a.cur == nil {
		return 0
	}
	p := uintptr(unsafe.Pointer(unsafe.SliceData(a.cur))) + uintptr(a.off)
	return int(-p & uintptr(align-1))
}

func (a *Arena) grow(n int) {
	block := make([]byte, n)
	a.blocks = append(a.blocks, block)
	a.cur = block
	a.off = 0
	a.stats.Blocks++
	a.stats.BytesReserved += n
}
