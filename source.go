// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package arenajson

import "go4.org/mem"

// A source is a cursor over an input buffer that keeps track of the current
// and previous line for diagnostics. It never fails: callers must check
// isValid before peeking.
type source struct {
	text     []byte
	pos      int
	line     Line // the line containing pos
	prev     Line // the line before that
	comments bool // treat comments as whitespace
}

func newSource(text []byte, comments bool) *source {
	s := &source{text: text, comments: comments}
	s.startLine(0)
	return s
}

// startLine records that a new line begins at offset start, and computes
// where it ends.
func (s *source) startLine(start int) {
	end := start
	for end < len(s.text) && !isLineBreak(s.text[end]) {
		end++
	}
	s.prev = s.line
	s.line = Line{Number: s.prev.Number + 1, Start: start, End: end}
}

func (s *source) isValid() bool  { return s.pos < len(s.text) }
func (s *source) remaining() int { return len(s.text) - s.pos }

// position reports the location of the cursor.
func (s *source) position() Pos { return Pos{Offset: s.pos, Line: s.line, Prev: s.prev} }

// peek returns the byte under the cursor and its location.
// Precondition: s.isValid().
func (s *source) peek() (byte, Pos) { return s.text[s.pos], s.position() }

// consume returns the byte under the cursor and its location, and advances.
// Precondition: s.isValid().
func (s *source) consume() (byte, Pos) {
	c, p := s.peek()
	s.increment()
	return c, p
}

// increment advances the cursor by one byte, treating the two-byte sequences
// CR LF and LF CR as a single line break.
// Precondition: s.isValid().
func (s *source) increment() {
	c := s.text[s.pos]
	s.pos++
	if !isLineBreak(c) {
		return
	}
	if s.pos < len(s.text) {
		if d := s.text[s.pos]; isLineBreak(d) && d != c {
			s.pos++
		}
	}
	s.startLine(s.pos)
}

// skipByte advances past c if it is under the cursor, and reports whether it
// did so.
func (s *source) skipByte(c byte) bool {
	if s.isValid() && s.text[s.pos] == c {
		s.increment()
		return true
	}
	return false
}

// atDigit reports whether a decimal digit is under the cursor.
func (s *source) atDigit() bool { return s.isValid() && isDigit(s.text[s.pos]) }

// eatWhitespace advances past any whitespace under the cursor. If comments
// are enabled, complete comments are also skipped; an incomplete comment is
// left under the cursor.
func (s *source) eatWhitespace() {
	for s.isValid() {
		if isSpace(s.text[s.pos]) {
			s.increment()
		} else if !s.comments || !s.eatComment() {
			return
		}
	}
}

// eatComment advances past a comment under the cursor, and reports whether
// it did so. Line comments end at a line break, which is not consumed.
func (s *source) eatComment() bool {
	rest := mem.B(s.text[s.pos:])
	switch {
	case mem.HasPrefix(rest, mem.S("//")):
		for s.isValid() && !isLineBreak(s.text[s.pos]) {
			s.increment()
		}
		return true
	case mem.HasPrefix(rest, mem.S("/*")):
		end := mem.Index(rest.SliceFrom(2), mem.S("*/"))
		if end < 0 {
			return false
		}
		for stop := s.pos + end + 4; s.pos < stop; {
			s.increment()
		}
		return true
	}
	return false
}

// eatDigits advances past any decimal digits under the cursor.
func (s *source) eatDigits() {
	for s.isValid() && isDigit(s.text[s.pos]) {
		s.increment()
	}
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f' || c == '\v'
}

func isLineBreak(c byte) bool { return c == '\n' || c == '\r' }
func isDigit(c byte) bool     { return '0' <= c && c <= '9' }

func isHexDigit(c byte) bool {
	return isDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}
