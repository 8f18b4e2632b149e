// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import "github.com/charmbracelet/lipgloss"

// =============================================================================
// BRAND COLORS
// =============================================================================

// Corporate - Primary accent, headers, selected tone
var Corporate = lipgloss.AdaptiveColor{Light: "#1D4ED8", Dark: "#60A5FA"}

// CorporateDeep - Darker blue for backgrounds
var CorporateDeep = lipgloss.AdaptiveColor{Light: "#1E3A8A", Dark: "#1E3A8A"}

// Gold - The "Upgrade to Pro" button
var Gold = lipgloss.AdaptiveColor{Light: "#B45309", Dark: "#FBBF24"}

// =============================================================================
// SEMANTIC COLORS
// =============================================================================

// Emerald - Success states, copied feedback
var Emerald = lipgloss.AdaptiveColor{Light: "#059669", Dark: "#34D399"}

// Rose - Errors
var Rose = lipgloss.AdaptiveColor{Light: "#E11D48", Dark: "#FB7185"}

// Amber - Cooldown banner, warnings
var Amber = lipgloss.AdaptiveColor{Light: "#D97706", Dark: "#FBBF24"}

// =============================================================================
// SURFACE AND TEXT
// =============================================================================

// Surface - Main background
var Surface = lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#111827"}

// SurfaceDim - Header and status bar background
var SurfaceDim = lipgloss.AdaptiveColor{Light: "#F3F4F6", Dark: "#1F2937"}

// Overlay - Borders, separators
var Overlay = lipgloss.AdaptiveColor{Light: "#D1D5DB", Dark: "#374151"}

// TextPrimary - Main body text
var TextPrimary = lipgloss.AdaptiveColor{Light: "#111827", Dark: "#F9FAFB"}

// TextSecondary - Labels
var TextSecondary = lipgloss.AdaptiveColor{Light: "#4B5563", Dark: "#D1D5DB"}

// TextMuted - Hints and placeholders
var TextMuted = lipgloss.AdaptiveColor{Light: "#9CA3AF", Dark: "#6B7280"}

// TextInverse - Text on colored backgrounds
var TextInverse = lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#111827"}

// =============================================================================
// TONE COLORS
// =============================================================================

// toneColors gives each built-in tone a chip color.
var toneColors = map[string]lipgloss.AdaptiveColor{
	"passive-aggressive": {Light: "#7C3AED", Dark: "#A78BFA"},
	"cold":               {Light: "#0891B2", Dark: "#22D3EE"},
	"gaslight":           {Light: "#DB2777", Dark: "#F472B6"},
	"condescending":      {Light: "#CA8A04", Dark: "#FACC15"},
}

// ToneColor returns the chip color for a tone, Corporate for unknown tones.
func ToneColor(id string) lipgloss.AdaptiveColor {
	if c, ok := toneColors[id]; ok {
		return c
	}
	return Corporate
}
