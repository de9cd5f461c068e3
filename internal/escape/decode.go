// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

// Package escape handles decoding and quoting of JSON strings.
package escape

import (
	"errors"
	"fmt"

	"github.com/creachadair/arenajson/internal/arena"
	"go4.org/mem"
)

// Decode decodes the body of a JSON string (without its enclosing quotation
// marks) into memory allocated from a, and returns the decoded bytes.
//
// Decoding never produces more bytes than it consumes, so Decode reserves
// src.Len() bytes up front and commits only what the decoded text uses.
// If src contains an invalid escape sequence, Decode reports an error and
// nothing is committed to a.
func Decode(a *arena.Arena, src mem.RO) ([]byte, error) {
	r, err := a.BeginReserve(src.Len())
	if err != nil {
		return nil, err
	}
	if err := decode(src, reserveSink{r}); err != nil {
		r.Abort()
		return nil, err
	}
	return r.End(), nil
}

// Unquote decodes the body of a JSON string (without its enclosing quotation
// marks) into a freshly-allocated slice.
func Unquote(src mem.RO) ([]byte, error) {
	dec := &bufSink{buf: make([]byte, 0, src.Len())}
	if err := decode(src, dec); err != nil {
		return nil, err
	}
	return dec.buf, nil
}

// A sink receives the output of the decoder.
type sink interface {
	put(...byte)
	putRO(mem.RO)
}

type reserveSink struct{ r *arena.Reserve }

func (s reserveSink) put(bs ...byte) { copy(s.r.Push(len(bs)), bs) }

func (s reserveSink) putRO(src mem.RO) {
	out := s.r.Push(src.Len())
	for i := range out {
		out[i] = src.At(i)
	}
}

type bufSink struct{ buf []byte }

func (s *bufSink) put(bs ...byte)   { s.buf = append(s.buf, bs...) }
func (s *bufSink) putRO(src mem.RO) { s.buf = mem.Append(s.buf, src) }

func decode(src mem.RO, out sink) error {
	for src.Len() != 0 {
		i := mem.IndexByte(src, '\\')
		if i < 0 {
			out.putRO(src)
			return nil
		}
		out.putRO(src.SliceTo(i))
		src = src.SliceFrom(i + 1)
		if src.Len() == 0 {
			return errors.New("incomplete escape sequence")
		}

		c := src.At(0)
		src = src.SliceFrom(1)
		switch c {
		case '"', '\\', '/':
			out.put(c)
		case 'b':
			out.put('\b')
		case 'f':
			out.put('\f')
		case 'n':
			out.put('\n')
		case 'r':
			out.put('\r')
		case 't':
			out.put('\t')
		case 'u':
			hi, err := parseHex4(src)
			if err != nil {
				return err
			}
			src = src.SliceFrom(4)
			cp := hi

			// A high surrogate immediately followed by an escaped low surrogate
			// combines into a single scalar value. Otherwise each code unit
			// stands alone.
			if isHighSurrogate(hi) && hasPrefix(src, `\u`) {
				if lo, err := parseHex4(src.SliceFrom(2)); err == nil && isLowSurrogate(lo) {
					cp = 0x10000 + (hi-0xD800)<<10 + (lo - 0xDC00)
					src = src.SliceFrom(6)
				}
			}
			var buf [4]byte
			out.put(buf[:EncodeScalar(buf[:], cp)]...)
		default:
			return fmt.Errorf("invalid escape %q", c)
		}
	}
	return nil
}

func hasPrefix(src mem.RO, pfx string) bool {
	return src.Len() >= len(pfx) && src.SliceTo(len(pfx)).Equal(mem.S(pfx))
}

func isHighSurrogate(v uint32) bool { return v >= 0xD800 && v <= 0xDBFF }
func isLowSurrogate(v uint32) bool  { return v >= 0xDC00 && v <= 0xDFFF }

// EncodeScalar writes the UTF-8 encoding of cp to buf, which must have room
// for at least 4 bytes, and returns the number of bytes written.
//
// Unlike utf8.EncodeRune, surrogate code points are encoded as-is rather than
// replaced, so an unpaired \uD800 escape survives decoding as its own 3-byte
// sequence. Values above U+10FFFF are not produced by the decoder.
func EncodeScalar(buf []byte, cp uint32) int {
	switch {
	case cp <= 0x7F:
		buf[0] = byte(cp)
		return 1
	case cp <= 0x7FF:
		buf[0] = 0xC0 | byte(cp>>6)
		buf[1] = 0x80 | byte(cp&0x3F)
		return 2
	case cp <= 0xFFFF:
		buf[0] = 0xE0 | byte(cp>>12)
		buf[1] = 0x80 | byte((cp>>6)&0x3F)
		buf[2] = 0x80 | byte(cp&0x3F)
		return 3
	default:
		buf[0] = 0xF0 | byte((cp>>18)&0x07)
		buf[1] = 0x80 | byte((cp>>12)&0x3F)
		buf[2] = 0x80 | byte((cp>>6)&0x3F)
		buf[3] = 0x80 | byte(cp&0x3F)
		return 4
	}
}

func parseHex4(data mem.RO) (uint32, error) {
	if data.Len() < 4 {
		return 0, errors.New("incomplete Unicode escape")
	}
	var v uint32
	for i := 0; i < 4; i++ {
		b := data.At(i)
		v <<= 4
		if '0' <= b && b <= '9' {
			v += uint32(b - '0')
		} else if 'a' <= b && b <= 'f' {
			v += uint32(b - 'a' + 10)
		} else if 'A' <= b && b <= 'F' {
			v += uint32(b - 'A' + 10)
		} else {
			return 0, fmt.Errorf("invalid hex digit %q", b)
		}
	}
	return v, nil
}
