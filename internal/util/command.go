// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package util

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/kballard/go-shellquote"
)

// ErrEmptyCommand is returned when a command line has no program.
var ErrEmptyCommand = errors.New("empty command")

// Command is an external program configured as a shell-style command line.
type Command struct {
	Raw  string
	Argv []string
}

// ParseCommand splits a command line with shell quoting rules. No shell is
// invoked; quotes and escapes are only used for splitting.
func ParseCommand(raw string) (Command, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Command{}, ErrEmptyCommand
	}
	argv, err := shellquote.Split(raw)
	if err != nil {
		return Command{}, fmt.Errorf("invalid command %q: %w", raw, err)
	}
	if len(argv) == 0 {
		return Command{}, ErrEmptyCommand
	}
	return Command{Raw: raw, Argv: argv}, nil
}

// IsZero reports whether no command is configured.
func (c Command) IsZero() bool {
	return len(c.Argv) == 0
}

// Program returns the executable name.
func (c Command) Program() string {
	if c.IsZero() {
		return ""
	}
	return c.Argv[0]
}

// Available reports whether the program can be found on PATH.
func (c Command) Available() bool {
	if c.IsZero() {
		return false
	}
	_, err := exec.LookPath(c.Argv[0])
	return err == nil
}

// With returns the argument vector with extra arguments appended.
func (c Command) With(extra ...string) []string {
	out := make([]string, 0, len(c.Argv)+len(extra))
	out = append(out, c.Argv...)
	return append(out, extra...)
}

// String renders the command back to a quoted command line.
func (c Command) String() string {
	return shellquote.Join(c.Argv...)
}
