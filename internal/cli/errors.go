// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// errors.go - Error handling and exit codes for CLI commands.
//
// Commands always return errors; Execute decides how to show them and which
// exit code to use.

package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/corptranslate/internal/config"
	"github.com/jeranaias/corptranslate/internal/model"
)

// =============================================================================
// EXIT CODES
// =============================================================================

const (
	// ExitSuccess indicates successful execution
	ExitSuccess = 0
	// ExitGeneralError indicates a general/unknown error
	ExitGeneralError = 1
	// ExitUsageError indicates invalid arguments (empty input, unknown tone)
	ExitUsageError = 2
	// ExitConfigError indicates a bad config file or a missing API key
	ExitConfigError = 3
	// ExitNetworkError indicates the provider could not be reached or failed
	ExitNetworkError = 5
	// ExitRateLimited indicates the provider refused the request for quota
	ExitRateLimited = 6
	// ExitUnsupported indicates a missing capability (clipboard, voice, share)
	ExitUnsupported = 7
	// ExitExportError indicates the share image could not be written
	ExitExportError = 8
)

// =============================================================================
// ERROR TYPES
// =============================================================================

// CommandError is a failure with a human-readable reason.
type CommandError struct {
	Command string // Command that failed (e.g., "ask")
	Reason  string // Message shown to the user
	Err     error  // Underlying error, used for the exit code

	// Reported is set when the command already printed the error itself,
	// e.g. as a JSON response.
	Reported bool
}

func (e *CommandError) Error() string {
	if e.Reason != "" {
		return e.Reason
	}
	if e.Err != nil {
		return fmt.Sprintf("%s failed: %v", e.Command, e.Err)
	}
	return e.Command + " failed"
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// NewCommandError creates a command error.
func NewCommandError(command, reason string, err error) error {
	return &CommandError{Command: command, Reason: reason, Err: err}
}

// resultError converts a failed generation result into a command error
// carrying the user-facing message.
func resultError(command string, r model.Result) *CommandError {
	return &CommandError{Command: command, Reason: r.UserMessage(), Err: r.AsError()}
}

// =============================================================================
// EXIT CODE MAPPING
// =============================================================================

// ExitCode maps an error to the process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var verr config.ValidationError
	var verrs config.ValidateErrors
	if errors.As(err, &verr) || errors.As(err, &verrs) {
		return ExitConfigError
	}

	switch model.KindOf(err) {
	case model.ErrorKindEmptyInput, model.ErrorKindUnknownTone:
		return ExitUsageError
	case model.ErrorKindMissingCredential:
		return ExitConfigError
	case model.ErrorKindRateLimited:
		return ExitRateLimited
	case model.ErrorKindNetworkFailure, model.ErrorKindRemoteError, model.ErrorKindEmptyResponse:
		return ExitNetworkError
	case model.ErrorKindUnsupportedCapability:
		return ExitUnsupported
	case model.ErrorKindExportFailure:
		return ExitExportError
	}
	return ExitGeneralError
}

// =============================================================================
// ERROR DISPLAY
// =============================================================================

var errorLabelStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F43F5E"))

// DisplayError writes err to w unless the command already reported it.
func DisplayError(w io.Writer, err error) {
	if err == nil {
		return
	}
	var ce *CommandError
	if errors.As(err, &ce) && ce.Reported {
		return
	}

	label := "Error:"
	if isTerminal(w) && ColorsEnabled() {
		label = errorLabelStyle.Render(label)
	}
	fmt.Fprintf(w, "%s %v\n", label, err)
}
