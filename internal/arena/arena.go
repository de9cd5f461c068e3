// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

// Package arena implements the bump-pointer memory pools used by the parser.
//
// An Arena hands out byte slices carved from a growing list of blocks. Blocks
// are obtained from an Allocator and are released together when the arena is
// deleted; there is no way to free an individual allocation. Slices returned
// by an arena remain valid (and are never moved) until Delete is called.
package arena

import (
	"errors"
	"fmt"
)

// ErrOutOfMemory is reported when the Allocator backing an arena cannot
// supply a requested block.
var ErrOutOfMemory = errors.New("out of memory")

// An Allocator supplies and releases the blocks of memory used by an Arena.
//
// Allocate returns a slice of exactly size bytes, or nil if the request cannot
// be satisfied. Free is called exactly once for each non-nil slice returned by
// Allocate, when the arena that owns it is deleted.
type Allocator interface {
	Allocate(size int) []byte
	Free(buf []byte)
}

// DefaultAllocator is an Allocator that draws memory from the Go heap.
// Free is a no-op; blocks are reclaimed by the garbage collector once the
// arena that owns them is deleted.
var DefaultAllocator Allocator = heapAllocator{}

type heapAllocator struct{}

func (heapAllocator) Allocate(size int) []byte { return make([]byte, size) }
func (heapAllocator) Free([]byte)              {}

type block struct {
	mem  []byte // as returned by the allocator
	buf  []byte // mem truncated to the requested size
	used int
}

func (b *block) free() int { return len(b.buf) - b.used }

// An Arena is a bump allocator over a list of fixed-size blocks.
// An Arena is not safe for concurrent use.
type Arena struct {
	alloc     Allocator
	blocks    []*block
	cur       int // index of the block most recently allocated from
	blockSize int
	reserved  bool // a Reserve is outstanding
}

// New constructs an arena whose first block has blockSize bytes, drawn from
// alloc. If alloc == nil, DefaultAllocator is used. If the first block cannot
// be allocated, New reports ErrOutOfMemory.
func New(alloc Allocator, blockSize int) (*Arena, error) {
	if alloc == nil {
		alloc = DefaultAllocator
	}
	if blockSize <= 0 {
		return nil, fmt.Errorf("invalid block size %d", blockSize)
	}
	a := &Arena{alloc: alloc, blockSize: blockSize}
	if _, err := a.addBlock(blockSize); err != nil {
		return nil, err
	}
	return a, nil
}

// BlockSize reports the default size of blocks added to a.
func (a *Arena) BlockSize() int { return a.blockSize }

// Push allocates n bytes from a. The contents of the returned slice are
// zeroed only if the underlying block was freshly allocated; callers must
// overwrite what they use.
func (a *Arena) Push(n int) ([]byte, error) {
	if n < 0 {
		panic(fmt.Sprintf("arena: negative size %d", n))
	} else if a.reserved {
		panic("arena: push during an active reservation")
	}
	b, err := a.findBlock(n)
	if err != nil {
		return nil, err
	}
	p := b.used
	b.used += n
	return b.buf[p : p+n : p+n], nil
}

// Copy allocates a copy of data in a.
func (a *Arena) Copy(data []byte) ([]byte, error) {
	buf, err := a.Push(len(data))
	if err != nil {
		return nil, err
	}
	copy(buf, data)
	return buf, nil
}

// findBlock returns the first block at or after the current one with room
// for n bytes, adding a new block if there is none.
func (a *Arena) findBlock(n int) (*block, error) {
	if a.blocks == nil {
		return nil, errors.New("arena: use after delete")
	}
	for i := a.cur; i < len(a.blocks); i++ {
		if a.blocks[i].free() >= n {
			a.cur = i
			return a.blocks[i], nil
		}
	}
	return a.addBlock(max(a.blockSize, n))
}

func (a *Arena) addBlock(size int) (*block, error) {
	buf := a.alloc.Allocate(size)
	if buf == nil {
		return nil, ErrOutOfMemory
	} else if len(buf) < size {
		a.alloc.Free(buf)
		return nil, fmt.Errorf("allocator returned %d bytes, want %d: %w", len(buf), size, ErrOutOfMemory)
	}
	b := &block{mem: buf, buf: buf[:size:size]}
	a.blocks = append(a.blocks, b)
	a.cur = len(a.blocks) - 1
	return b, nil
}

// Delete releases every block of a back to its allocator. After Delete, any
// slice previously returned by a must not be used. Delete is idempotent.
func (a *Arena) Delete() {
	if a == nil || a.blocks == nil {
		return
	}
	for _, b := range a.blocks {
		a.alloc.Free(b.mem)
	}
	a.blocks, a.cur, a.reserved = nil, 0, false
}

// Stats describes the current occupancy of an arena.
type Stats struct {
	Blocks   int // number of blocks
	Used     int // bytes handed out
	Capacity int // total bytes in all blocks
}

// Stats reports the current occupancy of a.
func (a *Arena) Stats() Stats {
	var s Stats
	for _, b := range a.blocks {
		s.Blocks++
		s.Used += b.used
		s.Capacity += len(b.buf)
	}
	return s
}

// A Reserve is a contiguous region of an arena guaranteed to be available,
// but not yet committed. Use Push to carve bytes from the front of the region
// and End to commit what was used.
type Reserve struct {
	a    *Arena
	blk  *block
	size int
	used int
}

// BeginReserve guarantees that n contiguous bytes are available in a, without
// committing them. No other allocation may be made from a until End is called
// on the returned reservation.
func (a *Arena) BeginReserve(n int) (*Reserve, error) {
	if a.reserved {
		panic("arena: nested reservation")
	}
	b, err := a.findBlock(n)
	if err != nil {
		return nil, err
	}
	a.reserved = true
	return &Reserve{a: a, blk: b, size: n}, nil
}

// Push carves n bytes from the reserved region. It panics if the total pushed
// would exceed the size of the reservation.
func (r *Reserve) Push(n int) []byte {
	if r.used+n > r.size {
		panic(fmt.Sprintf("arena: reservation overrun (%d + %d > %d)", r.used, n, r.size))
	}
	p := r.blk.used + r.used
	r.used += n
	return r.blk.buf[p : p+n : p+n]
}

// Len reports the number of bytes pushed so far.
func (r *Reserve) Len() int { return r.used }

// Bytes returns a view of the bytes pushed so far.
func (r *Reserve) Bytes() []byte {
	p := r.blk.used
	return r.blk.buf[p : p+r.used : p+r.used]
}

// End commits the bytes pushed to r and returns them. The unused remainder of
// the reservation is available for subsequent allocations.
func (r *Reserve) End() []byte {
	out := r.Bytes()
	r.blk.used += r.used
	r.a.reserved = false
	r.size = r.used
	return out
}

// Abort abandons r without committing any of the bytes pushed to it.
func (r *Reserve) Abort() {
	r.a.reserved = false
	r.size, r.used = 0, 0
}
