// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package arenajson

// tokenKind is the type of a lexical token in the JSON grammar.
type tokenKind byte

// Constants defining the valid tokenKind values.
const (
	tokUndefined tokenKind = iota // failed lexical match
	tokNull                       // constant: null
	tokBoolean                    // constant: true or false
	tokNumber                     // number
	tokString                     // quoted string
	tokComma                      // comma ","
	tokArrayStart                 // left square bracket "["
	tokArrayEnd                   // right square bracket "]"
	tokObjectStart                // left brace "{"
	tokObjectEnd                  // right brace "}"
	tokKeyDelimiter               // colon ":"
	tokTerminator                 // end of input
)

var tokenStr = [...]string{
	tokUndefined:    "undefined",
	tokNull:         "null",
	tokBoolean:      "boolean",
	tokNumber:       "number",
	tokString:       "string",
	tokComma:        `","`,
	tokArrayStart:   `"["`,
	tokArrayEnd:     `"]"`,
	tokObjectStart:  `"{"`,
	tokObjectEnd:    `"}"`,
	tokKeyDelimiter: `":"`,
	tokTerminator:   "end of stream",
}

func (t tokenKind) String() string {
	v := int(t)
	if v >= len(tokenStr) {
		return tokenStr[tokUndefined]
	}
	return tokenStr[v]
}

// startsValue reports whether a token of kind t can begin a value.
func (t tokenKind) startsValue() bool {
	switch t {
	case tokNull, tokBoolean, tokNumber, tokString, tokArrayStart, tokObjectStart:
		return true
	}
	return false
}

// A token is one lexical unit of the input. Tokens are chained in source
// order through next.
type token struct {
	kind tokenKind
	pos  Pos // location of the first byte
	len  int // length in bytes
	next *token
}

// text returns the bytes of t in src.
func (t *token) text(src []byte) []byte {
	return src[t.pos.Offset : t.pos.Offset+t.len : t.pos.Offset+t.len]
}
