// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package arenajson

import "fmt"

// A Line describes one line of source text.
type Line struct {
	Number int // line number, 1-based; 0 means no line
	Start  int // offset of the first byte of the line, 0-based
	End    int // offset past the last byte, excluding the line break
}

// IsValid reports whether l refers to a line of the input.
func (l Line) IsValid() bool { return l.Number > 0 }

// Text returns the contents of l in src, without its line break.
func (l Line) Text(src []byte) []byte {
	if !l.IsValid() || l.Start > len(src) {
		return nil
	}
	return src[l.Start:min(l.End, len(src))]
}

// A Pos describes the location of a byte of source text, together with the
// line containing it and the line before that, for use in diagnostics.
type Pos struct {
	Offset int  // byte offset, 0-based
	Line   Line // the line containing Offset
	Prev   Line // the preceding line, if any
}

// Column reports the byte offset of p within its line, 0-based.
func (p Pos) Column() int { return p.Offset - p.Line.Start }

func (p Pos) String() string { return fmt.Sprintf("%d:%d", p.Line.Number, p.Column()) }
