// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling for the corptranslate TUI.
//
// Colors are lipgloss AdaptiveColors. The theme binds its styles to a
// lipgloss renderer so the "dark" and "light" settings can force the
// background instead of relying on terminal detection.
//
//	theme := styles.NewTheme(cfg.UI.Theme)
//	chip := theme.RenderTone("cold", "Ice Cold", true)
package styles
