// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme holds all the styled components for the translator screen.
// It detects the terminal's color capability and adjusts accordingly.
type Theme struct {
	// Terminal capabilities
	IsDark       bool
	ColorProfile termenv.Profile

	// Layout dimensions
	Width  int
	Height int

	renderer *lipgloss.Renderer

	// ==========================================================================
	// HEADER
	// ==========================================================================

	Header         lipgloss.Style
	HeaderTitle    lipgloss.Style
	HeaderSubtitle lipgloss.Style
	PaywallButton  lipgloss.Style

	// ==========================================================================
	// INPUT AND TONES
	// ==========================================================================

	Label        lipgloss.Style
	InputBox     lipgloss.Style
	InputFocused lipgloss.Style
	ToneChip     lipgloss.Style
	ToneSelected lipgloss.Style

	// ==========================================================================
	// OUTCOME
	// ==========================================================================

	ResultBox   lipgloss.Style
	ResultTitle lipgloss.Style
	ErrorBox    lipgloss.Style
	Cooldown    lipgloss.Style
	Placeholder lipgloss.Style
	Spinner     lipgloss.Style

	// ==========================================================================
	// STATUS AND HELP
	// ==========================================================================

	StatusBar   lipgloss.Style
	StatusOK    lipgloss.Style
	StatusWarn  lipgloss.Style
	StatusError lipgloss.Style
	Muted       lipgloss.Style

	// ==========================================================================
	// PAYWALL OVERLAY
	// ==========================================================================

	PaywallBox   lipgloss.Style
	PaywallTitle lipgloss.Style
	PaywallPrice lipgloss.Style
}

// NewTheme creates a theme for stdout. mode is "dark", "light" or "auto".
func NewTheme(mode string) *Theme {
	return NewThemeWithRenderer(lipgloss.NewRenderer(os.Stdout), mode)
}

// NewThemeWithRenderer creates a theme bound to r. "auto" asks the
// terminal for its background.
func NewThemeWithRenderer(r *lipgloss.Renderer, mode string) *Theme {
	switch strings.ToLower(mode) {
	case "dark":
		r.SetHasDarkBackground(true)
	case "light":
		r.SetHasDarkBackground(false)
	}

	t := &Theme{
		IsDark:       r.HasDarkBackground(),
		ColorProfile: r.ColorProfile(),
		renderer:     r,
	}
	t.initStyles()
	return t
}

// Renderer returns the renderer the styles are bound to.
func (t *Theme) Renderer() *lipgloss.Renderer {
	return t.renderer
}

func (t *Theme) initStyles() {
	s := t.renderer.NewStyle

	// Header
	t.Header = s().
		Background(SurfaceDim).
		Padding(0, 1)

	t.HeaderTitle = s().
		Bold(true).
		Foreground(Corporate)

	t.HeaderSubtitle = s().
		Foreground(TextSecondary).
		Italic(true)

	t.PaywallButton = s().
		Bold(true).
		Foreground(TextInverse).
		Background(Gold).
		Padding(0, 1)

	// Input and tones
	t.Label = s().
		Foreground(TextSecondary).
		Bold(true)

	t.InputBox = s().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Overlay).
		Padding(0, 1)

	t.InputFocused = t.InputBox.
		BorderForeground(Corporate)

	t.ToneChip = s().
		Foreground(TextSecondary).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(Overlay).
		Padding(0, 1)

	t.ToneSelected = t.ToneChip.
		Bold(true)

	// Outcome
	t.ResultBox = s().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Emerald).
		Padding(0, 1)

	t.ResultTitle = s().
		Foreground(Emerald).
		Bold(true)

	// ACCESSIBILITY: Errors carry an "x" marker as well as color.
	t.ErrorBox = s().
		Foreground(Rose).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(Rose).
		BorderLeft(true).
		PaddingLeft(1)

	t.Cooldown = s().
		Foreground(Amber).
		Bold(true).
		BorderStyle(lipgloss.DoubleBorder()).
		BorderForeground(Amber).
		Padding(0, 1)

	t.Placeholder = s().
		Foreground(TextMuted).
		Italic(true)

	t.Spinner = s().
		Foreground(Corporate)

	// Status and help
	t.StatusBar = s().
		Foreground(TextSecondary).
		Padding(0, 1)

	t.StatusOK = s().Foreground(Emerald)
	t.StatusWarn = s().Foreground(Amber)
	t.StatusError = s().Foreground(Rose)
	t.Muted = s().Foreground(TextMuted)

	// Paywall
	t.PaywallBox = s().
		BorderStyle(lipgloss.ThickBorder()).
		BorderForeground(Gold).
		Padding(1, 3).
		Align(lipgloss.Center)

	t.PaywallTitle = s().
		Bold(true).
		Foreground(Gold)

	t.PaywallPrice = s().
		Foreground(TextPrimary).
		Strikethrough(true)
}

// RenderTone renders one tone chip.
func (t *Theme) RenderTone(id, label string, selected bool) string {
	if selected {
		c := ToneColor(id)
		return t.ToneSelected.Foreground(c).BorderForeground(c).Render(label)
	}
	return t.ToneChip.Render(label)
}

// SetSize updates the theme dimensions for responsive layouts.
func (t *Theme) SetSize(width, height int) {
	t.Width = width
	t.Height = height
}

// GetLayoutMode returns the current layout mode based on width.
func (t *Theme) GetLayoutMode() LayoutMode {
	if t.Width < 60 {
		return LayoutNarrow
	}
	if t.Width < 100 {
		return LayoutMedium
	}
	return LayoutWide
}

// LayoutMode represents the current responsive layout mode.
type LayoutMode int

const (
	LayoutNarrow LayoutMode = iota // < 60 columns
	LayoutMedium                   // 60-100 columns
	LayoutWide                     // > 100 columns
)
