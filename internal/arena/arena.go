// Package arena implements a bump-allocated region allocator and an
// arena-backed growable array, mirroring the allocation discipline the
// rest of the compiler depends on: the AST nodes and duplicated strings
// the pipeline produces after lexing are owned by one Arena and
// reclaimed in bulk when the Arena is reset or destroyed. Scopes,
// symbols, and the token and statement buffers are ordinary Go values
// outside it.
//
// Unlike a C arena, Go's garbage collector is still the thing that
// actually frees memory; Arena does not do unsafe pointer arithmetic over
// raw buffers for typed values. Instead it tracks a chain of byte buffers
// for blob-shaped data (duplicated strings, growable array backing store)
// and exposes New/reset bookkeeping for typed allocations so the size and
// "next buffer" statistics spec.md §4.1 asks for stay meaningful. See
// DESIGN.md for why this repo does not attempt raw-pointer bump allocation
// of typed nodes.
package arena

import "fmt"

const (
	minBufferSize = 64 * 1024
	maxBufferSize = 16 * 1024 * 1024
	// Allocations at or above this fraction of maxBufferSize get a
	// dedicated buffer instead of crowding the active chain buffer.
	largeAllocFraction = 4
)

// DefaultAlignment is used when a caller requests alignment zero.
const DefaultAlignment = 16

type buffer struct {
	data   []byte
	offset int
	next   *buffer
}

func (b *buffer) remaining() int { return len(b.data) - b.offset }

// Arena is a linked list of buffers serving bump-allocated byte ranges.
type Arena struct {
	head       *buffer
	active     *buffer
	nextSize   int
	totalBytes int
	typedCount int
}

// New creates an Arena whose first buffer is sized startSize (rounded up
// to minBufferSize if smaller).
func New(startSize int) *Arena {
	if startSize < minBufferSize {
		startSize = minBufferSize
	}
	b := &buffer{data: make([]byte, startSize)}
	return &Arena{head: b, active: b, nextSize: growSize(startSize)}
}

func growSize(prev int) int {
	next := prev * 2
	if next > maxBufferSize {
		next = maxBufferSize
	}
	return next
}

func alignUp(offset, align int) int {
	return (offset + align - 1) &^ (align - 1)
}

// AllocBytes returns a zeroed byte slice of the given size, aligned within
// the active buffer to align (DefaultAlignment if zero). Allocations at or
// above one quarter of maxBufferSize are given a dedicated buffer threaded
// into the chain instead of being carved from the active buffer.
func (a *Arena) AllocBytes(size, align int) []byte {
	if align == 0 {
		align = DefaultAlignment
	}
	if size < 0 {
		panic("arena: negative allocation size")
	}
	a.totalBytes += size

	if size >= maxBufferSize/largeAllocFraction {
		nb := &buffer{data: make([]byte, size)}
		nb.next = a.head
		a.head = nb
		nb.offset = size
		return nb.data
	}

	start := alignUp(a.active.offset, align)
	if start+size > len(a.active.data) {
		a.advanceOrGrow(size, align)
		start = alignUp(a.active.offset, align)
	}
	a.active.offset = start + size
	return a.active.data[start : start+size]
}

// advanceOrGrow moves to the next buffer in the chain if one exists and
// has room, otherwise appends a freshly grown buffer.
func (a *Arena) advanceOrGrow(size, align int) {
	for b := a.active.next; b != nil; b = b.next {
		if alignUp(b.offset, align)+size <= len(b.data) {
			a.active = b
			return
		}
	}
	sz := a.nextSize
	if sz < size {
		sz = size
	}
	nb := &buffer{data: make([]byte, sz)}
	a.active.next = nb
	a.active = nb
	a.nextSize = growSize(sz)
}

// DupString copies s into the arena and returns a string backed by that
// copy, the arena-owned equivalent of C's strdup.
func (a *Arena) DupString(s string) string {
	if s == "" {
		return ""
	}
	buf := a.AllocBytes(len(s), 1)
	copy(buf, s)
	return string(buf)
}

// Stats reports aggregate allocator statistics.
type Stats struct {
	TotalBytes      int
	NextBufferSize  int
	TypedAllocCount int
}

func (a *Arena) Stats() Stats {
	return Stats{TotalBytes: a.totalBytes, NextBufferSize: a.nextSize, TypedAllocCount: a.typedCount}
}

// Reset reuses every buffer in the chain from the head, zeroing offsets.
func (a *Arena) Reset() {
	for b := a.head; b != nil; b = b.next {
		b.offset = 0
	}
	a.active = a.head
	a.totalBytes = 0
	a.typedCount = 0
}

// Destroy drops every buffer, returning them to the platform allocator's
// care (the Go GC). After Destroy the Arena must not be used again.
func (a *Arena) Destroy() {
	a.head = nil
	a.active = nil
}

// New allocates a typed value from the arena. Go's GC, not the arena,
// owns the actual backing memory (see package doc); New still charges the
// allocation against the arena's statistics and participates in Reset's
// bookkeeping semantics so callers that care about "how much did this
// compile cost" get an honest answer.
func New[T any](a *Arena) *T {
	a.typedCount++
	return new(T)
}

// NewSlice allocates a slice of n zero-valued T from the arena, counted
// the same way New is.
func NewSlice[T any](a *Arena, n int) []T {
	a.typedCount++
	return make([]T, n)
}

func (a *Arena) String() string {
	return fmt.Sprintf("arena{total=%d typed=%d next=%d}", a.totalBytes, a.typedCount, a.nextSize)
}
