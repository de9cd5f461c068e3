// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

// Program arenajson checks, queries, and rewrites JSON documents using the
// arenajson parser.
//
// Usage:
//
//	arenajson check [file ...]
//	arenajson get <jsonpath> [file]
//	arenajson std [file]
//	arenajson fmt [file]
//	arenajson version
//
// A file named "-", or no file, denotes standard input. Settings may be given
// as flags, as environment variables with the prefix ARENAJSON_ (for example
// ARENAJSON_MAX_DEPTH), or in a config file named by --config.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := execute(newRootCmd()); err != nil {
		os.Exit(1)
	}
}

// execute runs cmd and writes any error it reports to the error output of
// cmd. Parse failures have already been reported with a diagnostic.
func execute(cmd *cobra.Command) error {
	err := cmd.Execute()
	if err != nil && !errors.Is(err, errInvalid) {
		fmt.Fprintf(cmd.ErrOrStderr(), "arenajson: %v\n", err)
	}
	return err
}
