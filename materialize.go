// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package arenajson

// materialize copies the tree rooted at src into the permanent storage of c.
// Nodes are taken from the free lists of c before new ones are allocated.
//
// If an allocation fails, materialize returns the partial copy built so far
// along with the error. The partial copy is well-formed and may be passed to
// release.
func (c *Context) materialize(src *Value) (*Value, error) {
	dst := c.newValue()
	dst.kind = src.kind
	switch src.kind {
	case KindBoolean:
		dst.b = src.b
	case KindNumber:
		dst.num = src.num
	case KindString:
		s, err := c.arena.Copy(src.str)
		if err != nil {
			return dst, err
		}
		dst.str = s
	case KindArray:
		for e := src.arr.first; e != nil; e = e.next {
			ce, err := c.materialize(e)
			if ce != nil {
				dst.arr.push(ce)
			}
			if err != nil {
				return dst, err
			}
		}
	case KindObject:
		for k := src.obj.first; k != nil; k = k.next {
			ck := c.newKey()
			dst.obj.push(ck)
			name, err := c.arena.Copy(k.name)
			if err != nil {
				return dst, err
			}
			ck.name = name
			cv, err := c.materialize(k.value)
			ck.value = cv
			if err != nil {
				return dst, err
			}
		}
	}
	return dst, nil
}

// Release returns the nodes of the tree rooted at v to the free lists of c,
// to be reused by later calls to Parse. After Release, neither v nor any
// value or key reachable from it may be used. The string contents of the
// tree are not reclaimed until c is deleted.
//
// Release panics if v is not the root of a tree returned by Parse. Releasing
// the same tree more than once is a no-op.
func (c *Context) Release(v *Value) {
	if c == nil || c.arena == nil || v == nil || v.kind == kindFree {
		return
	} else if !v.root {
		panic("arenajson: release of a value that is not a parse root")
	}
	c.release(v)
}

func (c *Context) release(v *Value) {
	switch v.kind {
	case KindArray:
		for e := v.arr.first; e != nil; {
			next := e.next
			c.release(e)
			e = next
		}
	case KindObject:
		for k := v.obj.first; k != nil; {
			next := k.next
			if k.value != nil {
				c.release(k.value)
			}
			*k = Key{next: c.freeKeys}
			c.freeKeys = k
			c.nFreeKeys++
			k = next
		}
	}
	*v = Value{kind: kindFree, next: c.freeValues}
	c.freeValues = v
	c.nFreeVals++
}

func (c *Context) newValue() *Value {
	if v := c.freeValues; v != nil {
		c.freeValues = v.next
		c.nFreeVals--
		*v = Value{}
		return v
	}
	return c.values.New()
}

func (c *Context) newKey() *Key {
	if k := c.freeKeys; k != nil {
		c.freeKeys = k.next
		c.nFreeKeys--
		*k = Key{}
		return k
	}
	return c.keys.New()
}

// Stats describes the memory held by a Context.
type Stats struct {
	Blocks   int // blocks in the permanent arena
	Used     int // bytes used in the permanent arena
	Capacity int // total bytes in the permanent arena

	Values     int // value nodes allocated
	Keys       int // key nodes allocated
	FreeValues int // value nodes available for reuse
	FreeKeys   int // key nodes available for reuse
}

// Stats reports the current memory usage of c.
func (c *Context) Stats() Stats {
	if c == nil || c.arena == nil {
		return Stats{}
	}
	as := c.arena.Stats()
	return Stats{
		Blocks:     as.Blocks,
		Used:       as.Used,
		Capacity:   as.Capacity,
		Values:     c.values.Len(),
		Keys:       c.keys.Len(),
		FreeValues: c.nFreeVals,
		FreeKeys:   c.nFreeKeys,
	}
}
