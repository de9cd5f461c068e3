// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package arenajson_test

import (
	"encoding/json"
	"os"
	"testing"

	"github.com/creachadair/arenajson"
)

func BenchmarkParse(b *testing.B) {
	input, err := os.ReadFile("testdata/input.json")
	if err != nil {
		b.Fatalf("Reading test input: %v", err)
	}
	b.Logf("Benchmark input: %d bytes", len(input))

	b.Run("Unmarshal", func(b *testing.B) {
		b.SetBytes(int64(len(input)))
		for b.Loop() {
			var v any
			if err := json.Unmarshal(input, &v); err != nil {
				b.Fatalf("Unexpected error: %v", err)
			}
		}
	})

	b.Run("Context", func(b *testing.B) {
		b.SetBytes(int64(len(input)))
		for b.Loop() {
			ctx, err := arenajson.Create(nil)
			if err != nil {
				b.Fatalf("Create: %v", err)
			}
			if _, err := ctx.Parse(input); err != nil {
				b.Fatalf("Unexpected error: %v", err)
			}
			ctx.Delete()
		}
	})

	// With Release, a single context recycles its nodes across parses.
	b.Run("Release", func(b *testing.B) {
		b.SetBytes(int64(len(input)))
		ctx, err := arenajson.Create(nil)
		if err != nil {
			b.Fatalf("Create: %v", err)
		}
		defer ctx.Delete()
		for b.Loop() {
			v, err := ctx.Parse(input)
			if err != nil {
				b.Fatalf("Unexpected error: %v", err)
			}
			ctx.Release(v)
		}
	})
}
