// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package arenajson

import (
	"errors"

	"github.com/creachadair/arenajson/internal/escape"
	"go4.org/mem"
)

// Quote encodes src as a JSON string value. The contents are escaped and
// double quotation marks are added.
func Quote(src string) string { return escape.Quote(mem.S(src)) }

// Unquote decodes a JSON string value. Double quotation marks are removed,
// and escape sequences are replaced with their UTF-8 equivalents. A \u escape
// for a UTF-16 surrogate pair is combined into a single code point.
//
// Unquote reports an error for a missing quotation mark or an invalid escape
// sequence.
func Unquote(src []byte) ([]byte, error) {
	if len(src) < 2 || src[0] != '"' || src[len(src)-1] != '"' {
		return nil, errors.New("missing quotations")
	}
	return escape.Unquote(mem.B(src[1 : len(src)-1]))
}
