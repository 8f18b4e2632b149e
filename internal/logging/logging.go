// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package logging configures the process-wide zerolog logger.
//
// The TUI owns the terminal, so interactive runs log to a file under the
// config directory. CLI runs may log to stderr instead. Until Setup is called
// every logger is a no-op.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// DefaultFileName is the log file created inside the log directory.
const DefaultFileName = "corptranslate.log"

// Options controls where and how much is logged.
type Options struct {
	// Level is one of debug, info, warn, error. Empty means info.
	Level string
	// File is the log file path. Empty disables file logging.
	File string
	// Console, when set, receives human-readable output (stderr for CLI runs).
	Console io.Writer
}

var (
	mu   sync.RWMutex
	base = zerolog.Nop()
)

// Setup installs the process-wide logger and returns a closer for the log
// file. The closer is never nil.
func Setup(opts Options) (io.Closer, error) {
	level, err := ParseLevel(opts.Level)
	if err != nil {
		return nopCloser{}, err
	}

	var writers []io.Writer
	var closer io.Closer = nopCloser{}

	if opts.File != "" {
		if err := os.MkdirAll(filepath.Dir(opts.File), 0o700); err != nil {
			return closer, fmt.Errorf("failed to create log directory: %w", err)
		}
		f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
		if err != nil {
			return closer, fmt.Errorf("failed to open log file: %w", err)
		}
		writers = append(writers, zerolog.ConsoleWriter{Out: f, NoColor: true, TimeFormat: time.RFC3339})
		closer = f
	}
	if opts.Console != nil {
		writers = append(writers, zerolog.ConsoleWriter{Out: opts.Console, TimeFormat: time.Kitchen})
	}

	if len(writers) == 0 {
		SetLogger(zerolog.Nop())
		return closer, nil
	}

	l := zerolog.New(zerolog.MultiLevelWriter(writers...)).
		Level(level).
		With().Timestamp().Logger()
	SetLogger(l)
	return closer, nil
}

// SetLogger replaces the process-wide logger. Tests use it to capture output.
func SetLogger(l zerolog.Logger) {
	mu.Lock()
	defer mu.Unlock()
	base = l
}

// Logger returns the process-wide logger.
func Logger() zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return base
}

// For returns a logger tagged with a component name.
func For(component string) *zerolog.Logger {
	l := Logger()
	ll := l.With().Str("component", component).Logger()
	return &ll
}

// ParseLevel maps a config level name to a zerolog level.
func ParseLevel(s string) (zerolog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "info":
		return zerolog.InfoLevel, nil
	case "debug":
		return zerolog.DebugLevel, nil
	case "warn", "warning":
		return zerolog.WarnLevel, nil
	case "error":
		return zerolog.ErrorLevel, nil
	default:
		return zerolog.InfoLevel, fmt.Errorf("unknown log level %q", s)
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
