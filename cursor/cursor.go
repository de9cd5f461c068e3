// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

// Package cursor implements traversal over a parsed JSON value.
package cursor

import (
	"fmt"

	"github.com/creachadair/arenajson"
)

// Path traverses a sequential path into the structure of v where path elements
// are as documented for the Cursor.Down method. This is a convenience wrapper
// for creating a cursor, applying path, and retrieving its value.
func Path(v *arenajson.Value, path ...any) (*arenajson.Value, error) {
	c := New(v).Down(path...)
	if err := c.Err(); err != nil {
		return nil, err
	}
	return c.Value(), nil
}

// A Cursor is a pointer that navigates into the structure of a value.
type Cursor struct {
	org *arenajson.Value
	stk []*arenajson.Value
	err error
}

// New constructs a new Cursor to traverse the structure of origin.
func New(origin *arenajson.Value) *Cursor { return &Cursor{org: origin} }

// Origin returns the origin value of c.
func (c *Cursor) Origin() *arenajson.Value { return c.org }

// AtOrigin reports whether c is at its origin.
func (c *Cursor) AtOrigin() bool { return len(c.stk) == 0 }

// Value reports the current value under the cursor.
func (c *Cursor) Value() *arenajson.Value {
	if c.AtOrigin() {
		return c.org
	}
	return c.stk[len(c.stk)-1]
}

// Path reports the complete sequence of values from the origin to the current
// location in c.
func (c *Cursor) Path() []*arenajson.Value {
	return append([]*arenajson.Value{c.org}, c.stk...)
}

// Err reports the error from the most recent traversal operation, if any.
func (c *Cursor) Err() error { return c.err }

// Up moves the cursor one position upward in the structure, if possible.
// It returns c to permit chaining.
func (c *Cursor) Up() *Cursor {
	if n := len(c.stk); n > 0 {
		c.stk = c.stk[:n-1]
	}
	return c
}

// Reset resets the cursor to its origin and clears its error.
func (c *Cursor) Reset() { c.stk = c.stk[:0]; c.err = nil }

// Down traverses a sequential path into the structure of c starting from the
// current value, where path elements are either strings (denoting object
// keys), integers (denoting offsets into arrays or objects), functions (see
// below), or nil. If the path cannot be completely consumed, traversal stops
// at the last value reached and an error is recorded. Use Err to recover the
// error.
//
// If a path element is a string, the current value must be an object, and the
// string selects the value of the first member with that name.
//
// If a path element is an integer, the current value must be an array or
// object, and the integer selects an element of the array or the value of a
// member of the object by offset. Negative offsets count backward from the
// end (-1 is last, -2 second last).
//
// If a path element is a function, the function is executed and its result
// becomes the next value in the sequence. The function must have a signature
//
//	func(*arenajson.Value) (*arenajson.Value, error)
//
// If the function reports an error, traversal stops and the error is recorded.
// A nil path element is ignored.
func (c *Cursor) Down(path ...any) *Cursor {
	c.err = nil // reset error
	cur := c.Value()
	for _, elt := range path {
		if cur == nil {
			return c.setErrorf("cannot traverse nil value")
		}
		switch t := elt.(type) {
		case string:
			if cur.Kind() != arenajson.KindObject {
				return c.setErrorf("cannot traverse %v with %q", cur.Kind(), t)
			}
			k := cur.Object().Key(t)
			if k == nil {
				return c.setErrorf("key %q not found", t)
			}
			cur = c.push(k.Value())

		case int:
			switch cur.Kind() {
			case arenajson.KindArray:
				a := cur.Array()
				i, ok := fixBound(a.Len(), t)
				if !ok {
					return c.setErrorf("array index %d out of bounds (n=%d)", t, a.Len())
				}
				cur = c.push(a.Index(i))
			case arenajson.KindObject:
				o := cur.Object()
				i, ok := fixBound(o.Len(), t)
				if !ok {
					return c.setErrorf("object index %d out of bounds (n=%d)", t, o.Len())
				}
				cur = c.push(o.KeyAt(i).Value())
			default:
				return c.setErrorf("cannot traverse %v with %v", cur.Kind(), t)
			}

		case func(*arenajson.Value) (*arenajson.Value, error):
			next, err := t(cur)
			if err != nil {
				c.err = err
				return c
			}
			cur = c.push(next)

		case nil:
			// Do nothing.

		default:
			return c.setErrorf("invalid path element %T", elt)
		}
	}
	return c
}

func (c *Cursor) push(v *arenajson.Value) *arenajson.Value { c.stk = append(c.stk, v); return v }

func (c *Cursor) setErrorf(msg string, args ...any) *Cursor {
	c.err = fmt.Errorf(msg, args...)
	return c
}

func fixBound(n, i int) (int, bool) {
	if i < 0 {
		i += n
	}
	return i, i >= 0 && i < n
}
