// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package arenajson

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/creachadair/arenajson/internal/arena"
	"github.com/creachadair/arenajson/internal/escape"
	"go4.org/mem"
)

// A parser consumes a token list and builds a value tree. Strings are decoded
// into the arena, and nodes are drawn from the slabs. Like the tokenizer, the
// parser reports errors by panicking with an *Error.
type parser struct {
	text     []byte
	tok      *token // the next unconsumed token
	arena    *arena.Arena
	values   *arena.Slab[Value]
	keys     *arena.Slab[Key]
	trailing bool // allow a comma after the last element or member
}

// advance consumes and returns the next token. The terminator is never
// consumed, so advance may be called repeatedly at the end of input.
func (p *parser) advance() *token {
	t := p.tok
	if t.next != nil {
		p.tok = t.next
	}
	return t
}

// parseValue consumes a single value of any type.
func (p *parser) parseValue() *Value {
	t := p.advance()
	switch t.kind {
	case tokNull:
		return p.newValue(KindNull)
	case tokBoolean:
		v := p.newValue(KindBoolean)
		v.b = p.text[t.pos.Offset] == 't'
		return v
	case tokNumber:
		f, err := mem.ParseFloat(mem.B(t.text(p.text)), 64)
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			p.fail(UndefinedToken, t.pos, "Expecting numeric value. Got undefined.")
		}
		v := p.newValue(KindNumber)
		v.num = f
		return v
	case tokString:
		v := p.newValue(KindString)
		v.str = p.decodeString(t)
		return v
	case tokArrayStart:
		return p.parseArray(t)
	case tokObjectStart:
		return p.parseObject(t)
	default:
		p.fail(UndefinedToken, t.pos, fmt.Sprintf("Expecting a value. Got %v.", t.kind))
		panic("unreachable")
	}
}

// parseArray consumes the elements of an array.
// Precondition: open is the "[" token, already consumed.
// Postcondition: the matching "]" token is consumed.
func (p *parser) parseArray(open *token) *Value {
	v := p.newValue(KindArray)
	needsValue, canFinish := true, true
	for {
		t := p.tok
		switch {
		case t.kind == tokArrayEnd:
			if !canFinish && !p.trailing {
				p.fail(ArrayParsing, t.pos, `Expecting a value after ",". Got "]".`)
			}
			p.advance()
			return v

		case t.kind == tokComma:
			if needsValue && canFinish {
				p.fail(ArrayParsing, t.pos, `Expecting a value or "]". Got ",".`)
			} else if needsValue {
				p.fail(ArrayParsing, t.pos, `Expecting a value. Got ",".`)
			}
			p.advance()
			needsValue, canFinish = true, false

		case t.kind.startsValue():
			if !needsValue {
				p.fail(ArrayParsing, t.pos, fmt.Sprintf(`Expecting "," or "]". Got %v.`, t.kind))
			}
			v.arr.push(p.parseValue())
			needsValue, canFinish = false, true

		case t.kind == tokTerminator:
			p.fail(ArrayParsing, open.pos, `Expecting "]" to close array. Got end of stream.`)

		default:
			p.fail(ArrayParsing, t.pos, fmt.Sprintf("Unexpected %v in array.", t.kind))
		}
	}
}

// objectState is the state of the object member state machine.
type objectState byte

const (
	objInitial   objectState = iota // after "{"
	objKey                          // after a member name
	objDelimiter                    // after ":"
	objValue                        // after a member value
	objComma                        // after ","
)

// parseObject consumes the members of an object.
// Precondition: open is the "{" token, already consumed.
// Postcondition: the matching "}" token is consumed.
func (p *parser) parseObject(open *token) *Value {
	v := p.newValue(KindObject)
	state := objInitial
	var key *Key
	for {
		t := p.tok
		switch {
		case t.kind == tokString && (state == objInitial || state == objComma):
			p.advance()
			key = p.keys.New()
			key.name = p.decodeString(t)
			state = objKey

		case t.kind == tokKeyDelimiter && state == objKey:
			p.advance()
			state = objDelimiter

		case t.kind.startsValue() && state == objDelimiter:
			key.value = p.parseValue()
			v.obj.push(key)
			key, state = nil, objValue

		case t.kind == tokComma && state == objValue:
			p.advance()
			state = objComma

		case t.kind == tokObjectEnd && (state == objInitial || state == objValue || (state == objComma && p.trailing)):
			p.advance()
			return v

		case t.kind == tokTerminator:
			p.fail(ObjectParsing, open.pos, `Expecting "}" to close object. Got end of stream.`)

		default:
			p.fail(ObjectParsing, t.pos, fmt.Sprintf("Expecting %s. Got %v.", state.expecting(), t.kind))
		}
	}
}

// expecting describes the tokens that are valid in state s.
func (s objectState) expecting() string {
	switch s {
	case objInitial:
		return `a string key or "}"`
	case objKey:
		return `":"`
	case objDelimiter:
		return "a value"
	case objValue:
		return `"," or "}"`
	default:
		return "a string key"
	}
}

// decodeString decodes the body of a string token into the arena.
func (p *parser) decodeString(t *token) []byte {
	body := t.text(p.text)
	s, err := escape.Decode(p.arena, mem.B(body[1:len(body)-1]))
	if errors.Is(err, arena.ErrOutOfMemory) {
		panic(memError(err))
	} else if err != nil {
		p.fail(UndefinedToken, t.pos, "Expecting string value. Got undefined.")
	}
	return s
}

func (p *parser) newValue(kind Kind) *Value {
	v := p.values.New()
	v.kind = kind
	return v
}

func (p *parser) fail(code Code, pos Pos, msg string) {
	panic(newError(code, p.text, pos, msg))
}

// recoverError recovers a panic with an *Error and stores it in *errp.
// Other panics are propagated.
func recoverError(errp *error) {
	if x := recover(); x != nil {
		if err, ok := x.(*Error); ok {
			*errp = err
			return
		}
		panic(x)
	}
}
