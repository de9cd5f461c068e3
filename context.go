// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package arenajson

import (
	"log/slog"

	"github.com/creachadair/arenajson/internal/arena"
)

// nodeChunk is the number of nodes per chunk in the node slabs.
const nodeChunk = 256

// A Context owns the memory for the values it parses. Values produced by a
// Context remain valid until the Context is deleted, or until their tree is
// passed to Release.
//
// A Context is not safe for concurrent use by multiple goroutines.
type Context struct {
	opts   *Options
	log    *slog.Logger
	arena  *arena.Arena
	values *arena.Slab[Value]
	keys   *arena.Slab[Key]
	err    error

	freeValues *Value // linked through next
	freeKeys   *Key   // linked through next
	nFreeVals  int
	nFreeKeys  int
}

// Create constructs a new Context with the given options. A nil opts is
// valid and provides defaults. Create reports an error with code OutOfMemory
// if the allocator cannot supply the first block of the context's arena.
func Create(opts *Options) (*Context, error) {
	a, err := arena.New(opts.allocator(), opts.blockSize())
	if err != nil {
		return nil, memError(err)
	}
	return &Context{
		opts:   opts,
		log:    opts.logger(),
		arena:  a,
		values: arena.NewSlab[Value](nodeChunk),
		keys:   arena.NewSlab[Key](nodeChunk),
	}, nil
}

// Delete releases all the memory owned by c. After Delete, no value produced
// by c may be used. Delete is idempotent, and a nil *Context is a no-op.
func (c *Context) Delete() {
	if c == nil || c.arena == nil {
		return
	}
	c.log.Debug("delete context", "stats", c.arena.Stats())
	c.arena.Delete()
	c.arena = nil
	c.values.Reset()
	c.keys.Reset()
	c.freeValues, c.freeKeys = nil, nil
	c.nFreeVals, c.nFreeKeys = 0, 0
}

// Err reports the error from the most recent failed call to Parse, or nil if
// no call has failed.
func (c *Context) Err() error { return c.err }

// ParseString parses s as a JSON value. See Parse.
func (c *Context) ParseString(s string) (*Value, error) { return c.Parse([]byte(s)) }

// Parse parses src as a single JSON value and returns its root. The input may
// be surrounded by whitespace, but must not contain anything else.
//
// On failure Parse returns nil and an error of concrete type *Error, whose
// Diagnostic field shows where the failure occurred. No partial value is
// produced, and values from earlier calls are not affected. The exception is
// a nil or deleted c, for which Parse reports ErrDeleted.
func (c *Context) Parse(src []byte) (_ *Value, err error) {
	if c == nil || c.arena == nil {
		return nil, ErrDeleted
	}
	defer func() {
		if e, ok := err.(*Error); ok {
			c.err = e
			c.log.Debug("parse failed", "code", e.Code, "pos", e.Pos, "msg", e.Message)
		}
	}()

	// The transient tree refers to memory in the scratch arena, so it must
	// be materialized before the arena is deleted.
	scratch, err := arena.New(c.opts.allocator(), c.opts.parseBlockSize(len(src)))
	if err != nil {
		return nil, memError(err)
	}
	defer scratch.Delete()

	root, err := parseTransient(scratch, src, c.opts)
	if err != nil {
		return nil, err
	}
	v, merr := c.materialize(root)
	if merr != nil {
		if v != nil {
			c.release(v)
		}
		return nil, memError(merr)
	}
	v.root = true
	c.log.Debug("parse complete", "bytes", len(src), "kind", v.kind, "stats", c.arena.Stats())
	return v, nil
}

// parseTransient tokenizes and parses text into a tree whose strings are
// stored in scratch.
func parseTransient(scratch *arena.Arena, text []byte, opts *Options) (_ *Value, err error) {
	defer recoverError(&err)

	jwcc := opts.allowComments()
	tokens := arena.NewSlab[token](nodeChunk)
	head := newTokenizer(newSource(text, jwcc), tokens, opts.maxDepth()).run()

	p := &parser{
		text:     text,
		tok:      head,
		arena:    scratch,
		values:   arena.NewSlab[Value](nodeChunk),
		keys:     arena.NewSlab[Key](nodeChunk),
		trailing: jwcc,
	}
	return p.parseValue(), nil
}
