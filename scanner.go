// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package arenajson

import (
	"fmt"

	"github.com/creachadair/arenajson/internal/arena"
	"go4.org/mem"
)

// A tokenizer scans an input buffer into a linked list of tokens. It makes a
// single forward pass, and stops at the first lexical error by panicking with
// an *Error, which the caller must recover.
type tokenizer struct {
	src      *source
	tokens   *arena.Slab[token]
	head     *token
	tail     *token
	depth    int
	maxDepth int
}

func newTokenizer(src *source, tokens *arena.Slab[token], maxDepth int) *tokenizer {
	return &tokenizer{src: src, tokens: tokens, maxDepth: maxDepth}
}

// run tokenizes the whole input and returns the first token. On success, the
// last token of the list is a terminator.
func (t *tokenizer) run() *token {
	t.src.eatWhitespace()
	if !t.src.isValid() {
		t.fail(ExpectedEndOfStream, t.src.position(), "Expecting a value. Got end of stream.")
	}
	t.scanGeneric()

	t.src.eatWhitespace()
	if t.src.isValid() {
		t.fail(ExpectedEndOfStream, t.src.position(), "Expected EOF")
	}
	t.emit(tokTerminator, t.src.position(), 0)
	return t.head
}

// scanGeneric scans a single value of any type.
// Precondition: t.src.isValid().
func (t *tokenizer) scanGeneric() {
	switch c, _ := t.src.peek(); c {
	case '[':
		t.scanArray()
	case '{':
		t.scanObject()
	default:
		t.scanValue()
	}
}

// scanValue scans a scalar value.
// Precondition: t.src.isValid().
func (t *tokenizer) scanValue() {
	switch c, pos := t.src.peek(); c {
	case 'n':
		if !t.scanLiteral(tokNull, "null") {
			t.undefined(pos, "Expecting null value. Got undefined.")
		}
	case 't', 'f':
		if !t.scanLiteral(tokBoolean, "true", "false") {
			t.undefined(pos, "Expecting boolean value. Got undefined.")
		}
	case '"':
		if !t.scanString() {
			t.undefined(pos, "Expecting string value. Got undefined.")
		}
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		if !t.scanNumber() {
			t.undefined(pos, "Expecting numeric value. Got undefined.")
		}
	case '/':
		if t.src.comments {
			t.undefined(pos, "Expecting a comment. Got undefined.")
		}
		fallthrough
	default:
		t.undefined(pos, "Expecting a string, number, null, true, false, object, or an array. Got undefined.")
	}
}

// scanLiteral reports whether the input at the cursor matches one of the
// given words, and if so emits a token of the given kind for it.
func (t *tokenizer) scanLiteral(kind tokenKind, words ...string) bool {
	pos := t.src.position()
	rest := mem.B(t.src.text[pos.Offset:])
	for _, w := range words {
		if t.src.remaining() >= len(w) && rest.SliceTo(len(w)).Equal(mem.S(w)) {
			for range len(w) {
				t.src.increment()
			}
			t.emit(kind, pos, len(w))
			return true
		}
	}
	return false
}

// scanNumber reports whether the input at the cursor is a valid number, and
// if so emits a token for it.
//
//	number = [ "-" ] ( "0" | [1-9] [0-9]* ) [ "." [0-9]+ ] [ ("e"|"E") [ "+"|"-" ] [0-9]+ ]
func (t *tokenizer) scanNumber() bool {
	s := t.src
	start := s.position()
	s.skipByte('-')

	if !s.isValid() {
		return false
	}
	switch c, _ := s.consume(); {
	case c == '0':
		if s.atDigit() {
			return false // leading zero
		}
	case isDigit(c):
		s.eatDigits()
	default:
		return false
	}

	if s.skipByte('.') {
		if !s.atDigit() {
			return false
		}
		s.eatDigits()
	}
	if s.skipByte('e') || s.skipByte('E') {
		_ = s.skipByte('+') || s.skipByte('-')
		if !s.atDigit() {
			return false
		}
		s.eatDigits()
	}
	t.emit(tokNumber, start, s.pos-start.Offset)
	return true
}

// scanString reports whether the input at the cursor is a valid quoted
// string, and if so emits a token for it including its quotation marks.
func (t *tokenizer) scanString() bool {
	s := t.src
	start := s.position()
	if !s.skipByte('"') {
		return false
	}
	for s.isValid() {
		c, _ := s.consume()
		switch {
		case c == '"':
			t.emit(tokString, start, s.pos-start.Offset)
			return true
		case c < ' ':
			return false // unescaped control character
		case c != '\\':
			continue
		}

		if !s.isValid() {
			return false
		}
		switch e, _ := s.consume(); e {
		case '"', '\\', '/', 'b', 'f', 'n', 'r', 't':
		case 'u':
			for range 4 {
				if !s.isValid() || !isHexDigit(s.text[s.pos]) {
					return false
				}
				s.increment()
			}
		default:
			return false
		}
	}
	return false // unterminated
}

// scanArray scans an array and its contents. The grammar of the contents is
// checked by the parser: here any token is accepted up to the closing bracket.
// Precondition: the cursor is at "[".
func (t *tokenizer) scanArray() {
	_, open := t.src.consume()
	t.emit(tokArrayStart, open, 1)
	t.enter(open)
	for {
		t.src.eatWhitespace()
		if !t.src.isValid() {
			t.fail(ArrayParsing, open, `Expecting "]" to close array. Got end of stream.`)
		}
		if t.scanStructural() == tokArrayEnd {
			t.leave()
			return
		}
	}
}

// scanObject scans an object and its contents. As with arrays, the grammar of
// the contents is checked by the parser.
// Precondition: the cursor is at "{".
func (t *tokenizer) scanObject() {
	_, open := t.src.consume()
	t.emit(tokObjectStart, open, 1)
	t.enter(open)
	for {
		t.src.eatWhitespace()
		if !t.src.isValid() {
			t.fail(ObjectParsing, open, `Expecting "}" to close object. Got end of stream.`)
		}
		if t.scanStructural() == tokObjectEnd {
			t.leave()
			return
		}
	}
}

// scanStructural scans a single punctuation token or nested value inside an
// array or object, and returns the kind of punctuation found, or tokUndefined
// if the cursor was at a value.
// Precondition: t.src.isValid().
func (t *tokenizer) scanStructural() tokenKind {
	var kind tokenKind
	switch c, _ := t.src.peek(); c {
	case ',':
		kind = tokComma
	case ':':
		kind = tokKeyDelimiter
	case ']':
		kind = tokArrayEnd
	case '}':
		kind = tokObjectEnd
	default:
		t.scanGeneric()
		return tokUndefined
	}
	_, pos := t.src.consume()
	t.emit(kind, pos, 1)
	return kind
}

func (t *tokenizer) enter(pos Pos) {
	t.depth++
	if t.maxDepth > 0 && t.depth > t.maxDepth {
		t.fail(NestingTooDeep, pos, fmt.Sprintf("Exceeded maximum nesting depth of %d.", t.maxDepth))
	}
}

func (t *tokenizer) leave() { t.depth-- }

// emit appends a token to the list.
func (t *tokenizer) emit(kind tokenKind, pos Pos, n int) *token {
	tok := t.tokens.New()
	*tok = token{kind: kind, pos: pos, len: n}
	if t.tail == nil {
		t.head = tok
	} else {
		t.tail.next = tok
	}
	t.tail = tok
	return tok
}

// undefined emits an undefined token at pos and fails.
func (t *tokenizer) undefined(pos Pos, msg string) {
	t.emit(tokUndefined, pos, 0)
	t.fail(UndefinedToken, pos, msg)
}

func (t *tokenizer) fail(code Code, pos Pos, msg string) {
	panic(newError(code, t.src.text, pos, msg))
}
