// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

// Package arenajson implements an arena-backed JSON parser.
//
// # Contexts
//
// A Context owns the memory for every value it parses. Memory is drawn from a
// bump-pointer arena whose blocks come from an Allocator, and is released all
// at once when the context is deleted:
//
//	ctx, err := arenajson.Create(nil)
//	if err != nil {
//	   log.Fatalf("Create: %v", err)
//	}
//	defer ctx.Delete()
//
// # Parsing
//
// Call Parse to parse a single JSON value. The result is the root of a tree
// of values that remains valid until the context is deleted:
//
//	v, err := ctx.Parse(input)
//	if err != nil {
//	   log.Fatal(err.(*arenajson.Error).Diagnostic)
//	}
//	for i, elt := range v.Array().All() {
//	   log.Printf("Element %d: %v", i, elt)
//	}
//
// Each call to Parse tokenizes the input and parses it into a transient tree
// held in a temporary arena, then copies the accepted tree into the context.
// The temporary arena is deleted before Parse returns, whether or not the
// parse succeeded.
//
// # Errors
//
// Parse errors have concrete type *Error. The Code field classifies the error,
// and the Diagnostic field renders the offending line of input together with
// the line before it and a caret under the failing byte:
//
//	Error: Expecting a value. Got ",".
//	1 {"a": [1,
//	2        ,2]}
//	         ^
//
// # Recycling
//
// A long-lived context that parses many inputs can return the nodes of a tree
// it no longer needs with Release. Released nodes are reused by later calls
// to Parse before the context allocates new ones.
package arenajson
