// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

// Package jpath implements a minimal JSONPath expression language for parsed
// JSON values.
package jpath

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/creachadair/arenajson"
)

/*
Grammar:

  expr = root steps
  root = "$"
 steps = step [steps]
  step = "." name
  step = ".." name
  step = "[" value "]"
  step = "[" slice "]"
  name = WORD
  name = "'" QTEXT "'"
  name = "*"
 value = name
 value = INDEX
 slice = [INT] ":" [INT]

  WORD = RE `\w+`
 QTEXT = RE `[^']*`
 INDEX = RE `-?\d+(,-?\d+)*`
   INT = RE `-?\d+`

Filter and script expressions are not supported.
*/

// An Expr is a parsed JSONPath expression.
type Expr []Step

// Parse parses s as a JSONPath expression.
func Parse(s string) (Expr, error) {
	t, ok := strings.CutPrefix(s, "$")
	if !ok {
		return Expr{}, errors.New("missing root marker")
	}
	st, err := parseSteps(t)
	if err != nil {
		return Expr{}, err
	}
	return st, nil
}

// MustParse is as Parse, but panics if s is not a valid expression.
func MustParse(s string) Expr {
	e, err := Parse(s)
	if err != nil {
		panic(fmt.Sprintf("jpath: %v", err))
	}
	return e
}

func (e Expr) String() string {
	var buf strings.Builder
	buf.WriteString("$")
	for _, s := range e {
		switch s.Op {
		case Member, Recur:
			if s.quoted {
				fmt.Fprintf(&buf, "%s'%s'", s.Op, s.Arg1)
			} else {
				fmt.Fprint(&buf, s.Op, s.Arg1)
			}
		case Slice:
			fmt.Fprintf(&buf, "[%s:%s]", s.Arg1, s.Arg2)
		case Index:
			fmt.Fprintf(&buf, "[%s]", s.Arg1)
		case Wildcard:
			buf.WriteString(".*")
		case QName:
			fmt.Fprintf(&buf, "['%s']", s.Arg1)
		default:
			fmt.Fprintf(&buf, "[%s]", s.Arg1)
		}
	}
	return buf.String()
}

// Select evaluates e against v and returns the values it selects, in document
// order. A step that does not apply to a value, such as a name applied to an
// array, selects nothing from that value.
func (e Expr) Select(v *arenajson.Value) []*arenajson.Value {
	cur := []*arenajson.Value{v}
	for _, s := range e {
		var next []*arenajson.Value
		for _, c := range cur {
			next = s.apply(c, next)
		}
		cur = next
		if len(cur) == 0 {
			break
		}
	}
	return cur
}

// First returns the first value selected by e from v, or nil if e selects
// nothing.
func (e Expr) First(v *arenajson.Value) *arenajson.Value {
	if vs := e.Select(v); len(vs) != 0 {
		return vs[0]
	}
	return nil
}

func parseSteps(s string) (steps []Step, _ error) {
	for s != "" {
		step, rest, err := parseStep(s)
		if err != nil {
			return nil, err
		}
		steps = append(steps, step)
		s = rest
	}
	return steps, nil
}

func parseStep(s string) (_ Step, rest string, _ error) {
	if t, ok := strings.CutPrefix(s, ".."); ok {
		kind, name, u, err := parseName(t)
		if err != nil {
			return Step{}, s, fmt.Errorf("invalid ..name: %w", err)
		}
		return Step{Op: Recur, Arg1: name, quoted: kind == QName}, u, nil
	}
	if t, ok := strings.CutPrefix(s, "."); ok {
		kind, name, u, err := parseName(t)
		if err != nil {
			return Step{}, s, fmt.Errorf("invalid .name: %w", err)
		}
		if kind == Wildcard {
			return Step{Op: Wildcard, Arg1: "*"}, u, nil
		}
		return Step{Op: Member, Arg1: name, quoted: kind == QName}, u, nil
	}
	if t, ok := strings.CutPrefix(s, "["); ok {
		out, u, err := parseValue(t)
		if err != nil {
			return Step{}, t, err
		}
		u, ok := strings.CutPrefix(u, "]")
		if !ok {
			return Step{}, u, errors.New("missing close bracket")
		}
		return out, u, nil
	}
	return Step{}, s, errors.New("invalid path step")
}

func parseName(s string) (kind Op, name, rest string, _ error) {
	if t, ok := strings.CutPrefix(s, "*"); ok {
		return Wildcard, "*", t, nil
	}
	if m := wordRE.FindStringSubmatch(s); m != nil {
		return Name, m[1], s[len(m[0]):], nil
	}
	if m := quoteRE.FindStringSubmatch(s); m != nil {
		return QName, m[1], s[len(m[0]):], nil
	}
	return Invalid, "", s, errors.New("invalid name")
}

func parseValue(s string) (_ Step, rest string, _ error) {
	if m := indexRE.FindStringSubmatch(s); m != nil {
		rest := s[len(m[0]):]
		if u, ok := strings.CutPrefix(rest, ":"); ok && !strings.Contains(m[1], ",") {
			return parseSlice(m[1], u)
		}
		return Step{Op: Index, Arg1: m[1]}, rest, nil
	}
	if u, ok := strings.CutPrefix(s, ":"); ok {
		return parseSlice("", u)
	}
	if kind, text, rest, err := parseName(s); err == nil {
		if kind == Name {
			kind = QName // bare words in brackets are member names
		}
		return Step{Op: kind, Arg1: text}, rest, nil
	}
	return Step{}, s, fmt.Errorf("invalid value: %q", s)
}

func parseSlice(lo, s string) (_ Step, rest string, _ error) {
	hi := intRE.FindString(s)
	if lo == "" && hi == "" {
		return Step{}, s, errors.New("invalid slice")
	}
	return Step{Op: Slice, Arg1: lo, Arg2: hi}, s[len(hi):], nil
}

var (
	wordRE  = regexp.MustCompile(`^(\w+)`)
	indexRE = regexp.MustCompile(`^(-?\d+(?:,-?\d+)*)`)
	intRE   = regexp.MustCompile(`^-?\d+`)
	quoteRE = regexp.MustCompile(`^'([^']*)'`)
)

// An Op is a path operator.
type Op byte

const (
	Invalid  Op = iota // invalid operator
	Member             // member lookup (.)
	Index              // array index lookup
	Slice              // array slice
	Wildcard           // wildcard expansion (*)
	Name               // unquoted name expansion
	QName              // quoted name expansion
	Recur              // recursive descent (..)
)

var opText = map[Op]string{
	Invalid:  "invalid",
	Member:   ".",
	Index:    "index",
	Slice:    "slice",
	Wildcard: "*",
	Name:     "name",
	QName:    "qname",
	Recur:    "..",
}

func (o Op) String() string {
	if s, ok := opText[o]; ok {
		return s
	}
	return opText[Invalid]
}

// A Step is a single step of a JSONPath expression.
type Step struct {
	Op   Op
	Arg1 string
	Arg2 string

	quoted bool // Arg1 of a Member or Recur step was quoted
}

// apply appends to out the values selected by s from v.
func (s Step) apply(v *arenajson.Value, out []*arenajson.Value) []*arenajson.Value {
	switch s.Op {
	case Member, QName:
		return appendMembers(out, v, s.Arg1)
	case Wildcard:
		return appendChildren(out, v)
	case Index:
		if v.Kind() != arenajson.KindArray {
			return out
		}
		a := v.Array()
		for _, f := range strings.Split(s.Arg1, ",") {
			i, _ := strconv.Atoi(f) // validated by the parser
			if i < 0 {
				i += a.Len()
			}
			if elt := a.Index(i); elt != nil {
				out = append(out, elt)
			}
		}
		return out
	case Slice:
		if v.Kind() != arenajson.KindArray {
			return out
		}
		a := v.Array()
		lo, hi := sliceBound(s.Arg1, 0, a.Len()), sliceBound(s.Arg2, a.Len(), a.Len())
		for i, elt := range a.All() {
			if i >= hi {
				break
			} else if i >= lo {
				out = append(out, elt)
			}
		}
		return out
	case Recur:
		return appendRecur(out, v, s.Arg1, !s.quoted && s.Arg1 == "*")
	}
	return out
}

// appendMembers appends the value of the first member of v named name.
func appendMembers(out []*arenajson.Value, v *arenajson.Value, name string) []*arenajson.Value {
	if v.Kind() != arenajson.KindObject {
		return out
	}
	if k := v.Object().Key(name); k != nil {
		out = append(out, k.Value())
	}
	return out
}

func appendChildren(out []*arenajson.Value, v *arenajson.Value) []*arenajson.Value {
	switch v.Kind() {
	case arenajson.KindArray:
		for _, elt := range v.Array().All() {
			out = append(out, elt)
		}
	case arenajson.KindObject:
		for k := range v.Object().All() {
			out = append(out, k.Value())
		}
	}
	return out
}

// appendRecur appends the values selected by name from v and each of its
// descendants, in document order. If all is true, every child is selected.
func appendRecur(out []*arenajson.Value, v *arenajson.Value, name string, all bool) []*arenajson.Value {
	if all {
		out = appendChildren(out, v)
	} else {
		out = appendMembers(out, v, name)
	}
	for _, c := range appendChildren(nil, v) {
		out = appendRecur(out, c, name, all)
	}
	return out
}

func sliceBound(s string, dflt, n int) int {
	if s == "" {
		return dflt
	}
	i, _ := strconv.Atoi(s)
	if i < 0 {
		i += n
	}
	return min(max(i, 0), n)
}
