// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package arena

// A Slab is an arena of values of type T. Values are allocated from
// fixed-capacity chunks that are never grown in place, so a pointer returned
// by New remains valid until the slab is reset.
//
// Go values containing pointers cannot live in the byte blocks of an Arena
// without hiding them from the garbage collector, so typed nodes get their
// own chunked store with the same never-move guarantee.
type Slab[T any] struct {
	chunks [][]T
	size   int // capacity of each chunk
	n      int // total values allocated
}

// NewSlab constructs an empty slab whose chunks hold chunkSize values.
func NewSlab[T any](chunkSize int) *Slab[T] {
	return &Slab[T]{size: max(chunkSize, 1)}
}

// New returns a pointer to a fresh zero value of T.
func (s *Slab[T]) New() *T {
	last := len(s.chunks) - 1
	if last < 0 || len(s.chunks[last]) == cap(s.chunks[last]) {
		s.chunks = append(s.chunks, make([]T, 0, s.size))
		last++
	}
	c := s.chunks[last]
	c = append(c, *new(T))
	s.chunks[last] = c
	s.n++
	return &c[len(c)-1]
}

// Len reports the number of values allocated from s.
func (s *Slab[T]) Len() int { return s.n }

// Reset discards all the values of s. Pointers previously returned by New
// must not be used after Reset.
func (s *Slab[T]) Reset() { s.chunks = nil; s.n = 0 }
