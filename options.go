// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package arenajson

import (
	"log/slog"

	"github.com/creachadair/arenajson/internal/arena"
)

// An Allocator supplies and releases the memory blocks used by a Context.
//
// Allocate returns a slice of exactly size bytes, or nil if the request
// cannot be satisfied. Free is called once for each slice returned by
// Allocate, when the arena that owns it is deleted.
type Allocator = arena.Allocator

// DefaultAllocator draws memory from the Go heap.
var DefaultAllocator = arena.DefaultAllocator

const (
	// DefaultBlockSize is the default size in bytes of the blocks of the
	// permanent arena of a Context.
	DefaultBlockSize = 1 << 20

	// MinParseBlockSize is the smallest block size used for the transient
	// arena of a single Parse call.
	MinParseBlockSize = 4 << 10

	// DefaultMaxDepth is the default limit on the nesting of arrays and
	// objects.
	DefaultMaxDepth = 512
)

// Options are settings for a Context. A nil *Options is ready for use and
// provides default values as described.
type Options struct {
	// Allocator supplies memory for the arenas of the context.
	// If nil, DefaultAllocator is used.
	Allocator Allocator

	// BlockSize is the size of blocks in the permanent arena.
	// If zero, DefaultBlockSize is used.
	BlockSize int

	// ParseBlockSize is the size of blocks in the transient arena created for
	// each call to Parse. If zero, twice the input length is used, but not
	// less than MinParseBlockSize.
	ParseBlockSize int

	// MaxDepth is the maximum nesting depth of arrays and objects.
	// If zero, DefaultMaxDepth is used; if negative, there is no limit.
	MaxDepth int

	// AllowComments, if true, accepts JSON With Commas and Comments (JWCC):
	// line (//) and block (/* */) comments are treated as whitespace, and a
	// comma may follow the last element of an array or member of an object.
	AllowComments bool

	// Logger, if non-nil, receives debug logs from the context.
	Logger *slog.Logger
}

func (o *Options) allocator() Allocator {
	if o == nil || o.Allocator == nil {
		return DefaultAllocator
	}
	return o.Allocator
}

func (o *Options) blockSize() int {
	if o == nil || o.BlockSize <= 0 {
		return DefaultBlockSize
	}
	return o.BlockSize
}

func (o *Options) parseBlockSize(inputLen int) int {
	if o != nil && o.ParseBlockSize > 0 {
		return o.ParseBlockSize
	}
	return max(2*inputLen, MinParseBlockSize)
}

func (o *Options) maxDepth() int {
	if o == nil || o.MaxDepth == 0 {
		return DefaultMaxDepth
	}
	return o.MaxDepth
}

func (o *Options) allowComments() bool { return o != nil && o.AllowComments }

func (o *Options) logger() *slog.Logger {
	if o == nil || o.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return o.Logger
}
