// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package arenajson_test

import (
	"errors"
	"math"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/creachadair/arenajson"
	"github.com/creachadair/mds/mtest"
	"github.com/google/go-cmp/cmp"
	"go4.org/mem"
)

func mustCreate(t *testing.T, opts *arenajson.Options) *arenajson.Context {
	t.Helper()
	ctx, err := arenajson.Create(opts)
	if err != nil {
		t.Fatalf("Create: unexpected error: %v", err)
	}
	t.Cleanup(ctx.Delete)
	return ctx
}

// render formats v as compact text for comparison. Unlike JSON, object keys
// are not quoted unless they contain punctuation.
func render(v *arenajson.Value) string {
	var sb strings.Builder
	renderTo(&sb, v)
	return sb.String()
}

func renderTo(sb *strings.Builder, v *arenajson.Value) {
	switch v.Kind() {
	case arenajson.KindArray:
		sb.WriteString("[")
		for i, elt := range v.Array().All() {
			if i > 0 {
				sb.WriteString(" ")
			}
			renderTo(sb, elt)
		}
		sb.WriteString("]")
	case arenajson.KindObject:
		sb.WriteString("{")
		for k := range v.Object().All() {
			if k != v.Object().First() {
				sb.WriteString(" ")
			}
			if name := k.NameString(); name == "" || strings.ContainsAny(name, " :{}[]\"") {
				sb.WriteString(arenajson.Quote(name))
			} else {
				sb.WriteString(name)
			}
			sb.WriteString(":")
			renderTo(sb, k.Value())
		}
		sb.WriteString("}")
	default:
		sb.WriteString(v.String())
	}
}

func TestNumbers(t *testing.T) {
	tests := []struct {
		input string
		want  float64
	}{
		{"0", 0},
		{"14", 14},
		{"0.1", 0.1},
		{"-10.23", -10.23},
		{"14e4", 14e4},
		{"14e-4", 14e-4},
		{"-0.2e-4", -0.2e-4},
		{"0e+4", 0},
		{"0E4", 0},
		{"123456789", 123456789},
		{"1.5E+2", 150},
		{" \t7\n", 7},
		{"1e400", math.Inf(1)}, // overflow
	}
	ctx := mustCreate(t, nil)
	for _, tc := range tests {
		v, err := ctx.ParseString(tc.input)
		if err != nil {
			t.Errorf("Parse %q: unexpected error: %v", tc.input, err)
			continue
		}
		if got := v.Float64(); got != tc.want {
			t.Errorf("Parse %q: got %v, want %v", tc.input, got, tc.want)
		}
	}
}

func TestScalars(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"null", "null"},
		{"true", "true"},
		{"false", "false"},
		{`""`, `""`},
		{`"hello, world"`, `"hello, world"`},
		{`"a\"b\\c\/d"`, `"a\"b\\c/d"`},
		{`"\b\f\n\r\t"`, `"\b\f\n\r\t"`},
		{`  "x"  `, `"x"`},
		{"\r\n\"line\"\r\n", `"line"`},
	}
	ctx := mustCreate(t, nil)
	for _, tc := range tests {
		v, err := ctx.ParseString(tc.input)
		if err != nil {
			t.Errorf("Parse %q: unexpected error: %v", tc.input, err)
			continue
		}
		if got := v.String(); got != tc.want {
			t.Errorf("Parse %q: got %s, want %s", tc.input, got, tc.want)
		}
	}
}

func TestStrings(t *testing.T) {
	tests := []struct {
		input string
		want  string
		runes int
	}{
		{`"\uabcd"`, "\uabcd", 1},
		{`"\uABCD"`, "\uabcd", 1},
		{`"\u0041b"`, "Ab", 2},
		{`"\ud83d\ude00"`, "\U0001F600", 1}, // surrogate pair
		{`"x\uD834\uDD1Ey"`, "x\U0001D11Ey", 3},
		{`"h\u00e9llo"`, "h\u00e9llo", 5},
		{`"\u00e9t\u00e9"`, "\u00e9t\u00e9", 3},
	}
	ctx := mustCreate(t, nil)
	for _, tc := range tests {
		v, err := ctx.ParseString(tc.input)
		if err != nil {
			t.Errorf("Parse %#q: unexpected error: %v", tc.input, err)
			continue
		}
		if got := v.Text(); got != tc.want {
			t.Errorf("Parse %#q: got %q, want %q", tc.input, got, tc.want)
		}
		if n := utf8.RuneCount(v.Bytes()); n != tc.runes {
			t.Errorf("Parse %#q: got %d code points, want %d", tc.input, n, tc.runes)
		}
	}
}

func TestArrays(t *testing.T) {
	ctx := mustCreate(t, nil)

	t.Run("Empty", func(t *testing.T) {
		v, err := ctx.ParseString("[]")
		if err != nil {
			t.Fatalf("Parse: unexpected error: %v", err)
		}
		a := v.Array()
		if a.Len() != 0 || a.First() != nil || a.Last() != nil || a.Index(0) != nil {
			t.Errorf("Empty array: got len %d, first %v, last %v", a.Len(), a.First(), a.Last())
		}
	})

	t.Run("Single", func(t *testing.T) {
		v, err := ctx.ParseString("[123]")
		if err != nil {
			t.Fatalf("Parse: unexpected error: %v", err)
		}
		if n := v.Array().Len(); n != 1 {
			t.Errorf("Len: got %d, want 1", n)
		}
		if got := v.Array().Index(0).Float64(); got != 123 {
			t.Errorf("Index(0): got %v, want 123", got)
		}
	})

	t.Run("Mixed", func(t *testing.T) {
		v, err := ctx.ParseString(`["a",1,null,false,-0.2e4]`)
		if err != nil {
			t.Fatalf("Parse: unexpected error: %v", err)
		}
		a := v.Array()
		if a.Len() != 5 {
			t.Fatalf("Len: got %d, want 5", a.Len())
		}
		var kinds []arenajson.Kind
		for _, elt := range a.All() {
			kinds = append(kinds, elt.Kind())
		}
		if diff := cmp.Diff([]arenajson.Kind{
			arenajson.KindString, arenajson.KindNumber, arenajson.KindNull,
			arenajson.KindBoolean, arenajson.KindNumber,
		}, kinds); diff != "" {
			t.Errorf("Element kinds (-want, +got):\n%s", diff)
		}
		if got := a.Index(0).Text(); got != "a" {
			t.Errorf("Index(0): got %q, want a", got)
		}
		if got := a.Index(1).Float64(); got != 1 {
			t.Errorf("Index(1): got %v, want 1", got)
		}
		if !a.Index(2).IsNull() {
			t.Errorf("Index(2): got %v, want null", a.Index(2))
		}
		if a.Index(3).Bool() {
			t.Error("Index(3): got true, want false")
		}
		if got := a.Index(4).Float64(); got != -2000 {
			t.Errorf("Index(4): got %v, want -2000", got)
		}
		if a.Index(5) != nil || a.Index(-1) != nil {
			t.Error("Index out of range should return nil")
		}

		// Walk backward from the end.
		var back []string
		for e := a.Last(); e != nil; e = e.Prev() {
			back = append(back, e.String())
		}
		if diff := cmp.Diff([]string{"-2000", "false", "null", "1", `"a"`}, back); diff != "" {
			t.Errorf("Reverse walk (-want, +got):\n%s", diff)
		}
	})
}

func TestTrees(t *testing.T) {
	tests := []struct {
		input, want string
	}{
		{"{}", "{}"},
		{`{"a":1}`, "{a:1}"},
		{`{ "a" : [ 1 , 2 ] , "b" : { } }`, "{a:[1 2] b:{}}"},
		{`{"a":1,"a":2}`, "{a:1 a:2}"}, // duplicates are kept
		{`[[],[[]],{}]`, "[[] [[]] {}]"},
		{`{"":null,"x y":true}`, `{"":null "x y":true}`},
		{`{"A":"B"}`, `{A:"B"}`},
		{"[\n\t1,\n\t2\n]", "[1 2]"},
		{`{"list":[{"id":1},{"id":2,"tags":["p","q"]}]}`, `{list:[{id:1} {id:2 tags:["p" "q"]}]}`},
	}
	ctx := mustCreate(t, nil)
	for _, tc := range tests {
		v, err := ctx.ParseString(tc.input)
		if err != nil {
			t.Errorf("Parse %#q: unexpected error: %v", tc.input, err)
			continue
		}
		if diff := cmp.Diff(tc.want, render(v)); diff != "" {
			t.Errorf("Parse %#q: (-want, +got)\n%s", tc.input, diff)
		}
	}
}

func TestObjectKeys(t *testing.T) {
	ctx := mustCreate(t, nil)
	v, err := ctx.ParseString(`{"a": 1, "b": [true], "a": "dup"}`)
	if err != nil {
		t.Fatalf("Parse: unexpected error: %v", err)
	}
	obj := v.Object()
	if obj.Len() != 3 {
		t.Errorf("Len: got %d, want 3", obj.Len())
	}
	if k := obj.Key("a"); k == nil || k.Value().Float64() != 1 {
		t.Errorf(`Key("a"): got %v, want the first member`, k)
	}
	if k := obj.KeyAt(2); k == nil || k.NameString() != "a" || k.Value().Text() != "dup" {
		t.Errorf("KeyAt(2): got %v, want a:dup", k)
	}
	if k := obj.KeyBytes(mem.S("b")); k == nil || !k.Value().Array().First().Bool() {
		t.Errorf(`KeyBytes("b"): got %v, want b:[true]`, k)
	}
	if k := obj.Key("nonesuch"); k != nil {
		t.Errorf(`Key("nonesuch"): got %v, want nil`, k)
	}
	if k := obj.KeyAt(3); k != nil {
		t.Errorf("KeyAt(3): got %v, want nil", k)
	}

	var names []string
	for k := obj.First(); k != nil; k = k.Next() {
		names = append(names, string(k.Name()))
	}
	if diff := cmp.Diff([]string{"a", "b", "a"}, names); diff != "" {
		t.Errorf("Key names (-want, +got):\n%s", diff)
	}
}

func TestErrors(t *testing.T) {
	tests := []struct {
		input string
		code  arenajson.Code
	}{
		{"", arenajson.ExpectedEndOfStream},
		{"  \n\t ", arenajson.ExpectedEndOfStream},
		{"1 2", arenajson.ExpectedEndOfStream},
		{"null x", arenajson.ExpectedEndOfStream},
		{"[] []", arenajson.ExpectedEndOfStream},
		{`{}}`, arenajson.ExpectedEndOfStream},

		{"01", arenajson.UndefinedToken},
		{"-01", arenajson.UndefinedToken},
		{"nul", arenajson.UndefinedToken},
		{"nulL", arenajson.UndefinedToken},
		{"tru", arenajson.UndefinedToken},
		{"fals", arenajson.UndefinedToken},
		{"True", arenajson.UndefinedToken},
		{"-", arenajson.UndefinedToken},
		{"1.", arenajson.UndefinedToken},
		{"1.e5", arenajson.UndefinedToken},
		{"1e", arenajson.UndefinedToken},
		{"1e+", arenajson.UndefinedToken},
		{".5", arenajson.UndefinedToken},
		{"+1", arenajson.UndefinedToken},
		{`"abc`, arenajson.UndefinedToken},
		{`"a\x"`, arenajson.UndefinedToken},
		{`"\u12"`, arenajson.UndefinedToken},
		{`"\u12g4"`, arenajson.UndefinedToken},
		{"\"a\tb\"", arenajson.UndefinedToken},
		{"// comment\n1", arenajson.UndefinedToken},
		{"[1, x]", arenajson.UndefinedToken},

		{"[1,]", arenajson.ArrayParsing},
		{"[,1]", arenajson.ArrayParsing},
		{"[,]", arenajson.ArrayParsing},
		{"[1,,2]", arenajson.ArrayParsing},
		{"[1", arenajson.ArrayParsing},
		{"[1,", arenajson.ArrayParsing},
		{"[1 2]", arenajson.ArrayParsing},
		{"[1:2]", arenajson.ArrayParsing},
		{"[1}]", arenajson.ArrayParsing},
		{"[}", arenajson.ArrayParsing},

		{`{"a"}`, arenajson.ObjectParsing},
		{`{"a":}`, arenajson.ObjectParsing},
		{`{"a":1,}`, arenajson.ObjectParsing},
		{`{1:2}`, arenajson.ObjectParsing},
		{`{"a" 1}`, arenajson.ObjectParsing},
		{`{"a"::1}`, arenajson.ObjectParsing},
		{`{"a":1 "b":2}`, arenajson.ObjectParsing},
		{`{"a":1`, arenajson.ObjectParsing},
		{`{"a":1]`, arenajson.ObjectParsing},
		{`{,}`, arenajson.ObjectParsing},
		{`{:1}`, arenajson.ObjectParsing},
		{`{"a":1,,"b":2}`, arenajson.ObjectParsing},
	}
	ctx := mustCreate(t, nil)
	for _, tc := range tests {
		v, err := ctx.ParseString(tc.input)
		if err == nil {
			t.Errorf("Parse %#q: got %v, want error", tc.input, v)
			continue
		} else if v != nil {
			t.Errorf("Parse %#q: got value %v with error", tc.input, v)
		}
		var e *arenajson.Error
		if !errors.As(err, &e) {
			t.Errorf("Parse %#q: got error %T, want *Error", tc.input, err)
			continue
		}
		if e.Code != tc.code {
			t.Errorf("Parse %#q: got code %v, want %v (%v)", tc.input, e.Code, tc.code, err)
		}
		if got := arenajson.CodeOf(err); got != tc.code {
			t.Errorf("CodeOf %#q: got %v, want %v", tc.input, got, tc.code)
		}
		if !strings.HasPrefix(e.Diagnostic, "Error: "+e.Message+"\n") {
			t.Errorf("Parse %#q: malformed diagnostic:\n%s", tc.input, e.Diagnostic)
		}
		if ctx.Err() != err {
			t.Errorf("Err: got %v, want %v", ctx.Err(), err)
		}
	}
}

func TestErrorSlot(t *testing.T) {
	ctx := mustCreate(t, nil)
	if err := ctx.Err(); err != nil {
		t.Errorf("Err before parsing: got %v, want nil", err)
	}
	_, err1 := ctx.ParseString("[1,]")
	if _, err := ctx.ParseString("[1]"); err != nil {
		t.Fatalf("Parse: unexpected error: %v", err)
	}
	if got := ctx.Err(); got != err1 {
		t.Errorf("Err after success: got %v, want %v", got, err1)
	}
	_, err2 := ctx.ParseString("tru")
	if got := ctx.Err(); got != err2 {
		t.Errorf("Err: got %v, want %v", got, err2)
	}
	if got := arenajson.CodeOf(nil); got != arenajson.None {
		t.Errorf("CodeOf(nil): got %v, want %v", got, arenajson.None)
	}
	if got := arenajson.CodeOf(errors.New("other")); got != -1 {
		t.Errorf("CodeOf(other): got %v, want -1", got)
	}
}

func TestDiagnostic(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"FirstLine", "01",
			"Error: Expecting numeric value. Got undefined.\n" +
				"1 01\n" +
				"  ^"},
		{"Column", `[true, nope]`,
			"Error: Expecting null value. Got undefined.\n" +
				"1 [true, nope]\n" +
				"         ^"},
		{"TrailingComma", "[1,\n  2,\n  ]",
			"Error: Expecting a value after \",\". Got \"]\".\n" +
				"2   2,\n" +
				"3   ]\n" +
				"    ^"},
		{"Tabs", "{\n\t\"a\" 1}",
			"Error: Expecting \":\". Got number.\n" +
				"1 {\n" +
				"2 \t\"a\" 1}\n" +
				"  \t    ^"},
		{"WideLineNumber", strings.Repeat("\n", 9) + "  x",
			"Error: Expecting a string, number, null, true, false, object, or an array. Got undefined.\n" +
				"9 \n" +
				"10   x\n" +
				"     ^"},
		{"UnclosedArray", "[1,\n2",
			"Error: Expecting \"]\" to close array. Got end of stream.\n" +
				"1 [1,\n" +
				"  ^"},
		{"CRLF", "[1,\r\n,2]",
			"Error: Expecting a value. Got \",\".\n" +
				"1 [1,\n" +
				"2 ,2]\n" +
				"  ^"},
		{"LFCR", "[1,\n\r,2]",
			"Error: Expecting a value. Got \",\".\n" +
				"1 [1,\n" +
				"2 ,2]\n" +
				"  ^"},
		{"TrailingGarbage", "{}\n  {}",
			"Error: Expected EOF\n" +
				"1 {}\n" +
				"2   {}\n" +
				"    ^"},
		{"Empty", "",
			"Error: Expecting a value. Got end of stream.\n" +
				"1 \n" +
				"  ^"},
	}
	ctx := mustCreate(t, nil)
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ctx.ParseString(tc.input)
			var e *arenajson.Error
			if !errors.As(err, &e) {
				t.Fatalf("Parse %#q: got error %v, want *Error", tc.input, err)
			}
			if diff := cmp.Diff(tc.want, e.Diagnostic); diff != "" {
				t.Errorf("Diagnostic (-want, +got):\n%s", diff)
			}
		})
	}
}

func TestErrorString(t *testing.T) {
	ctx := mustCreate(t, nil)
	_, err := ctx.ParseString("[1,\r\n,2]")
	if got, want := err.Error(), `at 2:0: Expecting a value. Got ",".`; got != want {
		t.Errorf("Error: got %q, want %q", got, want)
	}
	e := err.(*arenajson.Error)
	if diff := cmp.Diff(arenajson.Pos{
		Offset: 5,
		Line:   arenajson.Line{Number: 2, Start: 5, End: 8},
		Prev:   arenajson.Line{Number: 1, Start: 0, End: 3},
	}, e.Pos); diff != "" {
		t.Errorf("Pos (-want, +got):\n%s", diff)
	}
}

func TestMaxDepth(t *testing.T) {
	deep := strings.Repeat("[", 10) + strings.Repeat("]", 10)

	ctx := mustCreate(t, &arenajson.Options{MaxDepth: 3})
	if _, err := ctx.ParseString(`[[{"a":1}]]`); err != nil {
		t.Errorf("Parse at limit: unexpected error: %v", err)
	}
	_, err := ctx.ParseString(deep)
	if got := arenajson.CodeOf(err); got != arenajson.NestingTooDeep {
		t.Errorf("Parse deep: got %v, want %v", err, arenajson.NestingTooDeep)
	}
	if e := err.(*arenajson.Error); e.Pos.Offset != 3 {
		t.Errorf("Parse deep: error at offset %d, want 3", e.Pos.Offset)
	}

	// The default limit admits moderate nesting, and a negative limit
	// disables the check.
	def := mustCreate(t, nil)
	if _, err := def.ParseString(deep); err != nil {
		t.Errorf("Parse with default limit: unexpected error: %v", err)
	}
	if _, err := def.ParseString(strings.Repeat("[", 600)); arenajson.CodeOf(err) != arenajson.NestingTooDeep {
		t.Errorf("Parse past default limit: got %v, want %v", err, arenajson.NestingTooDeep)
	}
	inf := mustCreate(t, &arenajson.Options{MaxDepth: -1})
	if _, err := inf.ParseString(strings.Repeat("[", 600) + strings.Repeat("]", 600)); err != nil {
		t.Errorf("Parse without limit: unexpected error: %v", err)
	}
}

func TestAllowComments(t *testing.T) {
	const input = `// Leading comment.
{
  /* The name. */
  "name": "jwcc", // trailing
  "list": [1, 2, 3,],
  "nested": {"x": /* inline */ true,},
}
`
	strict := mustCreate(t, nil)
	if _, err := strict.ParseString(input); err == nil {
		t.Error("Parse without AllowComments: got nil, want error")
	}

	ctx := mustCreate(t, &arenajson.Options{AllowComments: true})
	v, err := ctx.ParseString(input)
	if err != nil {
		t.Fatalf("Parse with AllowComments: unexpected error: %v", err)
	}
	if diff := cmp.Diff(`{name:"jwcc" list:[1 2 3] nested:{x:true}}`, render(v)); diff != "" {
		t.Errorf("Parse (-want, +got):\n%s", diff)
	}

	// Errors after comments are reported at their original locations.
	_, err = ctx.ParseString("/* one\n   two */ [1,\n\t// three\n\tnul]")
	var e *arenajson.Error
	if !errors.As(err, &e) {
		t.Fatalf("Parse: got %v, want *Error", err)
	}
	if diff := cmp.Diff("Error: Expecting null value. Got undefined.\n"+
		"3 \t// three\n"+
		"4 \tnul]\n"+
		"  \t^", e.Diagnostic); diff != "" {
		t.Errorf("Diagnostic (-want, +got):\n%s", diff)
	}

	for _, bad := range []string{"/* open", "1 /", "[1, /x]", "[,]", "{,}"} {
		if _, err := ctx.ParseString(bad); err == nil {
			t.Errorf("Parse %#q: got nil, want error", bad)
		}
	}
}

func TestAccessorPanics(t *testing.T) {
	ctx := mustCreate(t, nil)
	num, err := ctx.ParseString("5")
	if err != nil {
		t.Fatalf("Parse: unexpected error: %v", err)
	}
	str, err := ctx.ParseString(`"s"`)
	if err != nil {
		t.Fatalf("Parse: unexpected error: %v", err)
	}

	mtest.MustPanic(t, func() { num.Bool() })
	mtest.MustPanic(t, func() { num.Text() })
	mtest.MustPanic(t, func() { num.Bytes() })
	mtest.MustPanic(t, func() { num.Array() })
	mtest.MustPanic(t, func() { num.Object() })
	mtest.MustPanic(t, func() { str.Float64() })

	if num.IsNull() || str.IsNull() {
		t.Error("IsNull: got true for a non-null value")
	}
}

func TestUnquote(t *testing.T) {
	tests := []struct {
		input, want string
	}{
		{`""`, ""},
		{`"abc"`, "abc"},
		{`"\u00e9\ud83d\ude00\n"`, "\u00e9\U0001F600\n"},
	}
	for _, tc := range tests {
		got, err := arenajson.Unquote([]byte(tc.input))
		if err != nil {
			t.Errorf("Unquote %#q: unexpected error: %v", tc.input, err)
		} else if string(got) != tc.want {
			t.Errorf("Unquote %#q: got %q, want %q", tc.input, got, tc.want)
		}
	}
	for _, bad := range []string{``, `"`, `abc`, `"abc`, `"\q"`} {
		if got, err := arenajson.Unquote([]byte(bad)); err == nil {
			t.Errorf("Unquote %#q: got %q, want error", bad, got)
		}
	}
	if got := arenajson.Quote("a\"b\n"); got != `"a\"b\n"` {
		t.Errorf("Quote: got %#q", got)
	}
}
