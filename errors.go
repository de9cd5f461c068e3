// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package arenajson

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/creachadair/arenajson/internal/arena"
)

// A Code classifies the errors reported by a Context.
type Code int

// Constants defining the valid Code values.
const (
	None                Code = iota // no error
	OutOfMemory                     // the allocator could not supply memory
	UndefinedToken                  // lexical grammar violation
	ExpectedEndOfStream             // missing value, or content after the root value
	ArrayParsing                    // misplaced comma or bracket in an array
	ObjectParsing                   // misplaced key, colon, comma, or brace in an object
	NestingTooDeep                  // arrays and objects nested beyond the limit
)

var codeStr = [...]string{
	None:                "none",
	OutOfMemory:         "out of memory",
	UndefinedToken:      "undefined token",
	ExpectedEndOfStream: "expected end of stream",
	ArrayParsing:        "array parsing",
	ObjectParsing:       "object parsing",
	NestingTooDeep:      "nesting too deep",
}

func (c Code) String() string {
	if c < 0 || int(c) >= len(codeStr) {
		return "code " + strconv.Itoa(int(c))
	}
	return codeStr[c]
}

// ErrOutOfMemory is reported, wrapped in an *Error with code OutOfMemory,
// when the allocator backing a Context cannot supply a block.
var ErrOutOfMemory = arena.ErrOutOfMemory

// ErrDeleted is reported by Parse for a nil or deleted Context. Using a
// deleted Context is a programming error, so ErrDeleted is not an *Error and
// is not recorded by Err.
var ErrDeleted = errors.New("arenajson: context is deleted")

// Error is the concrete type of errors reported by a Context.
type Error struct {
	Code    Code   // the classification of the error
	Message string // a short description of the error
	Pos     Pos    // the location of the error, if known

	// Diagnostic is a multi-line rendering of the error, showing the
	// offending line of input and the line before it, with a caret under the
	// failing byte.
	Diagnostic string

	err error
}

// Error satisfies the error interface.
func (e *Error) Error() string {
	if !e.Pos.Line.IsValid() {
		return e.Message
	}
	return fmt.Sprintf("at %s: %s", e.Pos, e.Message)
}

// Unwrap supports error wrapping.
func (e *Error) Unwrap() error { return e.err }

// CodeOf reports the Code of err. It returns None if err == nil, and
// OutOfMemory for any error wrapping ErrOutOfMemory. Otherwise, if err is or
// wraps an *Error its code is returned; if not, CodeOf returns -1.
func CodeOf(err error) Code {
	var e *Error
	switch {
	case err == nil:
		return None
	case errors.As(err, &e):
		return e.Code
	case errors.Is(err, ErrOutOfMemory):
		return OutOfMemory
	default:
		return -1
	}
}

// newError constructs an *Error for a failure at pos in src, and renders its
// diagnostic.
func newError(code Code, src []byte, pos Pos, msg string) *Error {
	return &Error{
		Code:       code,
		Message:    msg,
		Pos:        pos,
		Diagnostic: diagnostic(src, pos, msg),
	}
}

// memError constructs an *Error for an allocation failure.
func memError(err error) *Error {
	return &Error{
		Code:       OutOfMemory,
		Message:    "Out of memory.",
		Diagnostic: "Error: Out of memory.",
		err:        err,
	}
}

// diagnostic renders msg with the input lines around pos:
//
//	Error: msg
//	N-1 previous line
//	N   current line
//	    ^
//
// The previous line is omitted when pos is on the first line. The caret is
// preceded by the whitespace of the current line copied verbatim, so that
// tabs line up, and by spaces elsewhere.
func diagnostic(src []byte, pos Pos, msg string) string {
	var sb strings.Builder
	sb.WriteString("Error: ")
	sb.WriteString(msg)
	if !pos.Line.IsValid() {
		return sb.String()
	}
	if pos.Prev.IsValid() {
		fmt.Fprintf(&sb, "\n%d %s", pos.Prev.Number, pos.Prev.Text(src))
	}
	cur := pos.Line.Text(src)
	num := strconv.Itoa(pos.Line.Number)
	fmt.Fprintf(&sb, "\n%s %s\n", num, cur)

	sb.WriteString(strings.Repeat(" ", len(num)+1))
	for i := range pos.Column() {
		if i < len(cur) && isSpace(cur[i]) {
			sb.WriteByte(cur[i])
		} else {
			sb.WriteByte(' ')
		}
	}
	sb.WriteByte('^')
	return sb.String()
}
