// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"strings"

	"github.com/jeranaias/corptranslate/internal/logging"
	"github.com/jeranaias/corptranslate/internal/model"
	"github.com/jeranaias/corptranslate/internal/util"
)

// ShareExportProvider hands an exported file to the host's share facility.
type ShareExportProvider interface {
	Available() bool
	Share(ctx context.Context, path string) error
}

// NoShare is used when the host has no share facility.
type NoShare struct{}

// Available always returns false.
func (NoShare) Available() bool { return false }

// Share always fails with model.ErrUnsupportedCapability.
func (NoShare) Share(context.Context, string) error { return model.ErrUnsupportedCapability }

// CommandShare runs a program with the file path as its last argument.
// The program is started and not waited on, so GUI openers return at once.
type CommandShare struct {
	cmd util.Command
}

// NewCommandShare creates a provider for cmd.
func NewCommandShare(cmd util.Command) *CommandShare {
	return &CommandShare{cmd: cmd}
}

// Available reports whether the program is on PATH.
func (s *CommandShare) Available() bool {
	return s.cmd.Available()
}

// Command returns the configured command.
func (s *CommandShare) Command() util.Command {
	return s.cmd
}

// Share starts the program on path. The child outlives ctx.
func (s *CommandShare) Share(ctx context.Context, path string) error {
	if s.cmd.IsZero() {
		return model.ErrUnsupportedCapability
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	argv := s.cmd.With(path)
	c := exec.Command(argv[0], argv[1:]...)
	if err := c.Start(); err != nil {
		return fmt.Errorf("start %s: %w", s.cmd.Program(), err)
	}
	go func() {
		// Reap the child; the opener's exit status is not interesting.
		_ = c.Wait()
	}()
	return nil
}

// PlatformOpener returns the default "open with" command for the OS, or a
// zero Command when there is none.
func PlatformOpener() util.Command {
	return platformOpener(runtime.GOOS)
}

func platformOpener(goos string) util.Command {
	switch goos {
	case "windows":
		return util.Command{
			Raw:  "rundll32 url.dll,FileProtocolHandler",
			Argv: []string{"rundll32", "url.dll,FileProtocolHandler"},
		}
	case "darwin":
		return util.Command{Raw: "open", Argv: []string{"open"}}
	case "linux", "freebsd", "openbsd", "netbsd":
		return util.Command{Raw: "xdg-open", Argv: []string{"xdg-open"}}
	default:
		return util.Command{}
	}
}

// NewShareProvider picks the share provider for the configuration. An empty
// command line uses the platform opener. Disabled sharing, an unparseable
// command or a missing program yields NoShare.
func NewShareProvider(enabled bool, commandLine string) ShareExportProvider {
	if !enabled {
		return NoShare{}
	}
	log := logging.For("export")

	cmd := PlatformOpener()
	if strings.TrimSpace(commandLine) != "" {
		parsed, err := util.ParseCommand(commandLine)
		if err != nil {
			log.Warn().Err(err).Msg("share command invalid, sharing disabled")
			return NoShare{}
		}
		cmd = parsed
	}
	if cmd.IsZero() || !cmd.Available() {
		log.Debug().Str("program", cmd.Program()).Msg("no share facility available")
		return NoShare{}
	}
	return NewCommandShare(cmd)
}
