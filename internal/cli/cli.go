// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// cli.go - Root command and shared setup for corptranslate.
//
// Usage:
//   corptranslate                  Start the TUI (default)
//   corptranslate ask "text"       One-shot translation
//   corptranslate repl             Line-mode translator
//   corptranslate preview "text"   Offline phrasebook preview
//   corptranslate tones            List tones
//   corptranslate config [cmd]     Configuration
//   corptranslate version          Version information
package cli

import (
	"context"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/jeranaias/corptranslate/internal/config"
	"github.com/jeranaias/corptranslate/internal/export"
	"github.com/jeranaias/corptranslate/internal/logging"
)

// Version information (overridden at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// skipConfigAnnotation marks commands that must work without a valid config.
const skipConfigAnnotation = "corptranslate/skip-config"

// rootOptions is the state shared between the root command and its children.
type rootOptions struct {
	verbose bool

	clipboard export.Clipboard

	cfg       *config.Config
	logCloser io.Closer
}

// Option customizes the command tree.
type Option func(*rootOptions)

// WithClipboard replaces the system clipboard.
func WithClipboard(c export.Clipboard) Option {
	return func(o *rootOptions) { o.clipboard = c }
}

// NewRootCommand builds the corptranslate command tree.
func NewRootCommand(opts ...Option) *cobra.Command {
	return newRootCommand(newRootOptions(opts...))
}

func newRootOptions(opts ...Option) *rootOptions {
	ro := &rootOptions{}
	for _, opt := range opts {
		opt(ro)
	}
	return ro
}

func newRootCommand(ro *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "corptranslate",
		Short: `Turn "F*** You" into "Kind Regards".`,
		Long: `corptranslate rewrites blunt messages as professional corporate emails
in the tone of your choice. Without a subcommand it starts the interactive UI.

The API key is read from GEMINI_API_KEY (see "corptranslate config show").`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return ro.setup(cmd)
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			ro.teardown()
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTUI(cmd.Context(), ro)
		},
	}
	cmd.SetVersionTemplate("corptranslate {{.Version}}\n")
	cmd.PersistentFlags().BoolVarP(&ro.verbose, "verbose", "v", false, "Log to stderr as well as the log file.")

	addAsk(cmd, ro)
	addRepl(cmd, ro)
	addPreview(cmd)
	addTones(cmd)
	addConfig(cmd, ro)
	addVersion(cmd)
	return cmd
}

// setup loads the configuration and installs the logger. Commands annotated
// with skipConfigAnnotation run without either.
func (ro *rootOptions) setup(cmd *cobra.Command) error {
	if _, skip := cmd.Annotations[skipConfigAnnotation]; skip {
		return nil
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	ro.cfg = cfg

	logOpts := logging.Options{Level: cfg.Logging.Level}
	if path, err := cfg.LogPath(); err == nil {
		logOpts.File = path
	}
	if ro.verbose && cmd != cmd.Root() {
		logOpts.Console = cmd.ErrOrStderr()
	}
	closer, err := logging.Setup(logOpts)
	if err != nil {
		// Logging is never fatal.
		logOpts.File = ""
		closer, _ = logging.Setup(logOpts)
	}
	ro.logCloser = closer

	logging.For("cli").Debug().
		Str("command", cmd.CommandPath()).
		Str("version", Version).
		Msg("starting")
	return nil
}

// teardown closes the log file. It runs after every command, including
// failed ones, and may run twice.
func (ro *rootOptions) teardown() {
	if ro.logCloser == nil {
		return
	}
	_, _ = logging.Setup(logging.Options{})
	_ = ro.logCloser.Close()
	ro.logCloser = nil
}

// newApp wires the shared collaborators from the loaded config.
func (ro *rootOptions) newApp() *App {
	cfg := ro.cfg
	if cfg == nil {
		cfg = config.Default()
	}
	return NewApp(cfg, ro.clipboard)
}

// Execute runs the command tree with os.Args and returns the exit code.
func Execute(ctx context.Context) int {
	ro := newRootOptions()
	err := newRootCommand(ro).ExecuteContext(ctx)
	ro.teardown()
	DisplayError(os.Stderr, err)
	return ExitCode(err)
}
