// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package main

import (
	"errors"
	"fmt"
	"runtime/debug"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/creachadair/arenajson"
	"github.com/creachadair/arenajson/jpath"
	"github.com/spf13/cobra"
	"github.com/tailscale/hujson"
)

// Version is reported by the version command. If it is empty, the module
// version from the build info is used.
var Version string

func newCheckCmd(st *settings) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [file ...]",
		Short: "Report whether inputs are valid JSON",
		Long: `Parse each input and report a diagnostic for each one that is not valid.
With no files, check standard input.`,
		Example: heredoc.Doc(`
			$ arenajson check config.json data/*.json
			$ arenajson check --max-depth 64 < input.json
			$ ARENAJSON_ALLOW_COMMENTS=true arenajson check settings.jwcc
		`),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				args = []string{"-"}
			}
			ctx, err := arenajson.Create(st.options(false))
			if err != nil {
				return err
			}
			defer ctx.Delete()

			var nfail int
			for _, name := range args {
				data, err := readInput(cmd, name)
				if err != nil {
					return err
				}
				v, err := ctx.Parse(data)
				if err != nil {
					report(cmd, name, err)
					nfail++
					continue
				}
				st.log.Info("valid", "input", inputName(name), "kind", v.Kind())
				ctx.Release(v)
			}
			st.log.Debug("done", "stats", ctx.Stats())
			if nfail > 0 {
				return fmt.Errorf("%d of %d inputs: %w", nfail, len(args), errInvalid)
			}
			return nil
		},
	}
	return cmd
}

func newGetCmd(st *settings) *cobra.Command {
	return &cobra.Command{
		Use:   "get <jsonpath> [file]",
		Short: "Print the values selected by a JSONPath expression",
		Long: `Parse the input and print each value selected by the expression, one
per line. Scalars are printed as JSON text, and arrays and objects are
summarized by their length. The expression supports $, .name, ..name, *,
['name'], [i,j], and [lo:hi].`,
		Example: heredoc.Doc(`
			$ arenajson get '$.store.book[0].title' books.json
			$ arenajson get '$..price' < books.json
		`),
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			expr, err := jpath.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid path %q: %w", args[0], err)
			}
			var name string
			if len(args) == 2 {
				name = args[1]
			}
			v, ctx, err := parseInput(cmd, st, name, false)
			if err != nil {
				return err
			}
			defer ctx.Delete()

			vs := expr.Select(v)
			st.log.Debug("selected", "path", expr, "count", len(vs))
			for _, elt := range vs {
				fmt.Fprintln(cmd.OutOrStdout(), elt)
			}
			return nil
		},
	}
}

func newStdCmd(st *settings) *cobra.Command {
	return &cobra.Command{
		Use:   "std [file]",
		Short: "Convert JWCC input to standard JSON",
		Long: `Parse the input as JSON With Commas and Comments, and print it as
standard JSON with comments and trailing commas removed. Layout is preserved.`,
		Example: heredoc.Doc(`
			$ arenajson std settings.jwcc > settings.json
		`),
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return rewrite(cmd, st, args, hujson.Standardize)
		},
	}
}

func newFmtCmd(st *settings) *cobra.Command {
	return &cobra.Command{
		Use:   "fmt [file]",
		Short: "Format JSON or JWCC input",
		Long: `Parse the input as JSON With Commas and Comments, and print it in
canonical format. Comments are preserved.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return rewrite(cmd, st, args, hujson.Format)
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Display version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			v := Version
			if v == "" {
				v = "(devel)"
				if bi, ok := debug.ReadBuildInfo(); ok && bi.Main.Version != "" {
					v = bi.Main.Version
				}
			}
			fmt.Fprintln(cmd.OutOrStdout(), "arenajson", v)
			return nil
		},
	}
}

// parseInput reads and parses the named input in a new context. On success
// the caller must delete the context.
func parseInput(cmd *cobra.Command, st *settings, name string, comments bool) (*arenajson.Value, *arenajson.Context, error) {
	data, err := readInput(cmd, name)
	if err != nil {
		return nil, nil, err
	}
	ctx, err := arenajson.Create(st.options(comments))
	if err != nil {
		return nil, nil, err
	}
	v, err := ctx.Parse(data)
	if err != nil {
		ctx.Delete()
		report(cmd, name, err)
		return nil, nil, errInvalid
	}
	return v, ctx, nil
}

var errInvalid = errors.New("invalid input")

// rewrite validates a JWCC input and writes the result of applying f to it.
// Validation comes first so that errors carry a diagnostic.
func rewrite(cmd *cobra.Command, st *settings, args []string, f func([]byte) ([]byte, error)) error {
	var name string
	if len(args) == 1 {
		name = args[0]
	}
	data, err := readInput(cmd, name)
	if err != nil {
		return err
	}
	ctx, err := arenajson.Create(st.options(true))
	if err != nil {
		return err
	}
	defer ctx.Delete()
	if _, err := ctx.Parse(data); err != nil {
		report(cmd, name, err)
		return errInvalid
	}
	out, err := f(data)
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(out)
	return err
}
