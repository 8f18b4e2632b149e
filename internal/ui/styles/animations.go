// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
)

// =============================================================================
// SPINNER ANIMATIONS
// =============================================================================

// SpinnerConfig holds the configuration for a spinner animation.
type SpinnerConfig struct {
	Frames []string
	FPS    int
}

// BriefcaseSpinner is shown while a rewrite is in flight.
var BriefcaseSpinner = SpinnerConfig{
	Frames: []string{"[    ]", "[=   ]", "[==  ]", "[=== ]", "[====]", "[ ===]", "[  ==]", "[   =]"},
	FPS:    8,
}

// DotsSpinner is shown while listening for speech.
var DotsSpinner = SpinnerConfig{
	Frames: []string{".  ", ".. ", "...", " ..", "  .", "   "},
	FPS:    6,
}

// Duration returns the duration for each frame.
func (s SpinnerConfig) Duration() time.Duration {
	if s.FPS <= 0 {
		return time.Second
	}
	return time.Second / time.Duration(s.FPS)
}

// Bubbles converts the config to a bubbles spinner definition.
func (s SpinnerConfig) Bubbles() spinner.Spinner {
	return spinner.Spinner{Frames: s.Frames, FPS: s.Duration()}
}

// =============================================================================
// PROGRESS
// =============================================================================

// RenderCountdownBar draws remaining/total as a bar of width cells. The bar
// empties as the countdown runs.
func RenderCountdownBar(width, remaining, total int) string {
	if width <= 0 {
		return ""
	}
	if total <= 0 || remaining < 0 {
		remaining, total = 0, 1
	}
	if remaining > total {
		remaining = total
	}
	filled := width * remaining / total
	var sb strings.Builder
	sb.Grow(width)
	sb.WriteString(strings.Repeat("#", filled))
	sb.WriteString(strings.Repeat("-", width-filled))
	return sb.String()
}
