// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package arenajson

import (
	"fmt"
	"iter"
	"strconv"

	"github.com/creachadair/arenajson/internal/escape"
	"go4.org/mem"
)

// Kind identifies the type of a JSON value.
type Kind byte

// Constants defining the valid Kind values.
const (
	kindFree Kind = iota // released to the free list

	KindNull    // the constant null
	KindBoolean // the constants true and false
	KindNumber  // a number
	KindString  // a string
	KindArray   // an array of values
	KindObject  // an object of key/value members
)

var kindStr = [...]string{
	kindFree:    "released",
	KindNull:    "null",
	KindBoolean: "boolean",
	KindNumber:  "number",
	KindString:  "string",
	KindArray:   "array",
	KindObject:  "object",
}

func (k Kind) String() string {
	if int(k) >= len(kindStr) {
		return "invalid kind " + strconv.Itoa(int(k))
	}
	return kindStr[k]
}

// A Value is a single node of a parsed JSON document. Values are owned by the
// Context that produced them, and remain valid until the Context is deleted
// or the tree containing them is released.
//
// The accessors for a specific kind (Bool, Float64, Bytes, Text, Array, and
// Object) panic if the value has a different kind.
type Value struct {
	kind Kind
	root bool // returned by Parse
	b    bool
	num  float64
	str  []byte
	arr  Array
	obj  Object

	prev, next *Value // siblings within an array, or the free list
}

// Kind reports the kind of v.
func (v *Value) Kind() Kind { return v.kind }

// IsNull reports whether v is the constant null.
func (v *Value) IsNull() bool { return v.kind == KindNull }

// Bool returns the value of a boolean.
func (v *Value) Bool() bool { v.mustBe(KindBoolean); return v.b }

// Float64 returns the value of a number.
func (v *Value) Float64() float64 { v.mustBe(KindNumber); return v.num }

// Bytes returns the decoded contents of a string. The caller must not modify
// the contents of the slice.
func (v *Value) Bytes() []byte { v.mustBe(KindString); return v.str }

// Text returns a copy of the decoded contents of a string.
func (v *Value) Text() string { v.mustBe(KindString); return string(v.str) }

// Array returns the elements of an array.
func (v *Value) Array() *Array { v.mustBe(KindArray); return &v.arr }

// Object returns the members of an object.
func (v *Value) Object() *Object { v.mustBe(KindObject); return &v.obj }

// Next returns the following element of the array containing v, or nil.
func (v *Value) Next() *Value { return v.next }

// Prev returns the preceding element of the array containing v, or nil.
func (v *Value) Prev() *Value { return v.prev }

// String renders a short human-readable summary of v. Scalars are rendered as
// JSON text; arrays and objects are summarized by their length.
func (v *Value) String() string {
	if v == nil {
		return "<nil>"
	}
	switch v.kind {
	case KindNull:
		return "null"
	case KindBoolean:
		return strconv.FormatBool(v.b)
	case KindNumber:
		return strconv.FormatFloat(v.num, 'g', -1, 64)
	case KindString:
		return escape.Quote(mem.B(v.str))
	case KindArray:
		return fmt.Sprintf("[array of %d]", v.arr.n)
	case KindObject:
		return fmt.Sprintf("{object of %d}", v.obj.n)
	default:
		return "<" + v.kind.String() + ">"
	}
}

func (v *Value) mustBe(want Kind) {
	if v.kind != want {
		panic(fmt.Sprintf("arenajson: value is %v, not %v", v.kind, want))
	}
}

// An Array is a doubly-linked list of values.
type Array struct {
	first, last *Value
	n           int
}

// Len reports the number of elements in a.
func (a *Array) Len() int { return a.n }

// First returns the first element of a, or nil if a is empty.
func (a *Array) First() *Value { return a.first }

// Last returns the last element of a, or nil if a is empty.
func (a *Array) Last() *Value { return a.last }

// Index returns the element of a at offset i, or nil if i is out of range.
// Elements are linked, so Index takes time proportional to i; use First and
// Next or All to visit every element.
func (a *Array) Index(i int) *Value {
	if i < 0 || i >= a.n {
		return nil
	}
	if i > a.n/2 {
		v := a.last
		for j := a.n - 1; j > i; j-- {
			v = v.prev
		}
		return v
	}
	v := a.first
	for range i {
		v = v.next
	}
	return v
}

// All is a range function over the offsets and elements of a.
func (a *Array) All() iter.Seq2[int, *Value] {
	return func(yield func(int, *Value) bool) {
		i := 0
		for v := a.first; v != nil; v = v.next {
			if !yield(i, v) {
				return
			}
			i++
		}
	}
}

func (a *Array) push(v *Value) {
	v.prev, v.next = a.last, nil
	if a.last == nil {
		a.first = v
	} else {
		a.last.next = v
	}
	a.last = v
	a.n++
}

// An Object is a list of key/value members, in input order. Duplicate keys
// are preserved.
type Object struct {
	first, last *Key
	n           int
}

// Len reports the number of members in o.
func (o *Object) Len() int { return o.n }

// First returns the first member of o, or nil if o is empty.
func (o *Object) First() *Key { return o.first }

// KeyAt returns the member of o at offset i, or nil if i is out of range.
func (o *Object) KeyAt(i int) *Key {
	if i < 0 || i >= o.n {
		return nil
	}
	k := o.first
	for range i {
		k = k.next
	}
	return k
}

// Key returns the first member of o whose name is name, or nil.
func (o *Object) Key(name string) *Key { return o.KeyBytes(mem.S(name)) }

// KeyBytes returns the first member of o whose name is name, or nil.
func (o *Object) KeyBytes(name mem.RO) *Key {
	for k := o.first; k != nil; k = k.next {
		if mem.B(k.name).Equal(name) {
			return k
		}
	}
	return nil
}

// All is a range function over the members of o.
func (o *Object) All() iter.Seq[*Key] {
	return func(yield func(*Key) bool) {
		for k := o.first; k != nil; k = k.next {
			if !yield(k) {
				return
			}
		}
	}
}

func (o *Object) push(k *Key) {
	k.next = nil
	if o.last == nil {
		o.first = k
	} else {
		o.last.next = k
	}
	o.last = k
	o.n++
}

// A Key is a member of an object, pairing a name with a value.
type Key struct {
	name  []byte
	value *Value
	next  *Key // the following member, or the free list
}

// Name returns the decoded name of k. The caller must not modify the
// contents of the slice.
func (k *Key) Name() []byte { return k.name }

// NameString returns a copy of the decoded name of k.
func (k *Key) NameString() string { return string(k.name) }

// Value returns the value of k.
func (k *Key) Value() *Value { return k.value }

// Next returns the following member of the object containing k, or nil.
func (k *Key) Next() *Key { return k.next }
