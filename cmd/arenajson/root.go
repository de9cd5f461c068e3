// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/creachadair/arenajson"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// settings carries the configuration shared by all subcommands.
type settings struct {
	v   *viper.Viper
	log *log.Logger
}

func newRootCmd() *cobra.Command {
	st := &settings{v: viper.New()}

	cmd := &cobra.Command{
		Use:           "arenajson <command> [flags]",
		Short:         "Check, query, and rewrite JSON documents",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return st.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	pf := cmd.PersistentFlags()
	pf.String("config", "", "Config file (default is $HOME/.arenajson.yaml if it exists)")
	pf.Int("max-depth", arenajson.DefaultMaxDepth, "Maximum nesting depth (negative for no limit)")
	pf.Int("block-size", arenajson.DefaultBlockSize, "Arena block size in bytes")
	pf.Bool("allow-comments", false, "Accept comments and trailing commas (JWCC)")
	pf.String("log-level", "warn", "Log level (debug, info, warn, error)")

	cmd.AddCommand(
		newCheckCmd(st),
		newGetCmd(st),
		newStdCmd(st),
		newFmtCmd(st),
		newVersionCmd(),
	)
	return cmd
}

// setup binds the flags of cmd to the environment and the config file, and
// sets up logging.
func (s *settings) setup(cmd *cobra.Command) error {
	if err := s.v.BindPFlags(cmd.Flags()); err != nil {
		return err
	}
	s.v.SetEnvPrefix("arenajson")
	s.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	s.v.AutomaticEnv()

	path := s.v.GetString("config")
	if path == "" {
		path = defaultConfig()
	}
	if path != "" {
		s.v.SetConfigFile(path)
		if err := s.v.ReadInConfig(); err != nil {
			return fmt.Errorf("read config: %w", err)
		}
	}

	level, err := log.ParseLevel(s.v.GetString("log-level"))
	if err != nil {
		return err
	}
	s.log = log.NewWithOptions(cmd.ErrOrStderr(), log.Options{
		Prefix: "arenajson",
		Level:  level,
	})
	s.log.Debug("configured", "file", s.v.ConfigFileUsed(), "max-depth", s.v.GetInt("max-depth"))
	return nil
}

// defaultConfig returns the path of $HOME/.arenajson.yaml if that file
// exists, or "".
func defaultConfig() string {
	home, err := homedir.Dir()
	if err != nil {
		return ""
	}
	path := filepath.Join(home, ".arenajson.yaml")
	if _, err := os.Stat(path); err != nil {
		return ""
	}
	return path
}

// options returns parser options from the current settings. If comments is
// true, JWCC input is accepted regardless of the allow-comments setting.
func (s *settings) options(comments bool) *arenajson.Options {
	return &arenajson.Options{
		BlockSize:     s.v.GetInt("block-size"),
		MaxDepth:      s.v.GetInt("max-depth"),
		AllowComments: comments || s.v.GetBool("allow-comments"),
		Logger:        slog.New(s.log),
	}
}

// readInput reads the contents of the named file, or of stdin if name is ""
// or "-".
func readInput(cmd *cobra.Command, name string) ([]byte, error) {
	if name == "" || name == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	return os.ReadFile(name)
}

// inputName returns a display name for an input file.
func inputName(name string) string {
	if name == "" || name == "-" {
		return "<stdin>"
	}
	return name
}

// report writes the diagnostic for a parse error to the error output of cmd.
func report(cmd *cobra.Command, name string, err error) {
	w := cmd.ErrOrStderr()
	if e, ok := err.(*arenajson.Error); ok && e.Diagnostic != "" {
		fmt.Fprintf(w, "%s:\n%s\n", inputName(name), e.Diagnostic)
		return
	}
	fmt.Fprintf(w, "%s: %v\n", inputName(name), err)
}
