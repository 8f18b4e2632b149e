// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jeranaias/corptranslate/internal/model"
	"github.com/jeranaias/corptranslate/internal/tone"
)

// maxStdinBytes bounds piped input. The TUI caps typed input lower.
const maxStdinBytes = 64 * 1024

// readInput returns the message from args, or from stdin when args is empty
// and stdin is not a terminal.
func readInput(cmd *cobra.Command, args []string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}

	in := cmd.InOrStdin()
	if isTerminal(in) {
		return "", fmt.Errorf("%w: pass the message as an argument or pipe it on stdin", model.ErrEmptyInput)
	}
	data, err := io.ReadAll(io.LimitReader(in, maxStdinBytes+1))
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	if len(data) > maxStdinBytes {
		return "", fmt.Errorf("input too large: more than %d bytes on stdin", maxStdinBytes)
	}
	return string(data), nil
}

// resolveTone validates a --tone value, falling back to def when empty.
func resolveTone(flag, def string) (tone.Variant, error) {
	id := strings.TrimSpace(flag)
	if id == "" {
		id = def
	}
	v, err := tone.Get(id)
	if err != nil {
		return tone.Variant{}, fmt.Errorf("%w: %q (choose one of: %s)",
			model.ErrUnknownTone, id, strings.Join(tone.Default().IDs(), ", "))
	}
	return v, nil
}

// toneCompletion completes --tone values.
func toneCompletion(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return tone.Default().IDs(), cobra.ShellCompDirectiveNoFileComp
}
