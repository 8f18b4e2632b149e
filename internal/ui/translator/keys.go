// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package translator

import "github.com/charmbracelet/bubbles/key"

// =============================================================================
// KEY MAP DEFINITION
// =============================================================================

// KeyMap defines the keyboard bindings for the translator screen.
type KeyMap struct {
	Submit   key.Binding
	NextTone key.Binding
	PrevTone key.Binding
	Tones    []key.Binding
	Voice    key.Binding
	Copy     key.Binding
	Share    key.Binding
	Save     key.Binding
	Paywall  key.Binding
	Focus    key.Binding
	Help     key.Binding
	Quit     key.Binding
}

// DefaultKeyMap returns the default key bindings. The digit and "?" keys
// only apply while the input is not focused; their alt variants always work.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Submit: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("C-s", "translate"),
		),
		NextTone: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("Tab", "next tone"),
		),
		PrevTone: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("S-Tab", "previous tone"),
		),
		Tones: []key.Binding{
			key.NewBinding(key.WithKeys("alt+1", "1"), key.WithHelp("1-4", "pick tone")),
			key.NewBinding(key.WithKeys("alt+2", "2")),
			key.NewBinding(key.WithKeys("alt+3", "3")),
			key.NewBinding(key.WithKeys("alt+4", "4")),
		},
		Voice: key.NewBinding(
			key.WithKeys("ctrl+v"),
			key.WithHelp("C-v", "dictate"),
		),
		Copy: key.NewBinding(
			key.WithKeys("ctrl+y"),
			key.WithHelp("C-y", "copy"),
		),
		Share: key.NewBinding(
			key.WithKeys("ctrl+e"),
			key.WithHelp("C-e", "share image"),
		),
		Save: key.NewBinding(
			key.WithKeys("ctrl+o"),
			key.WithHelp("C-o", "save .md"),
		),
		Paywall: key.NewBinding(
			key.WithKeys("ctrl+p"),
			key.WithHelp("C-p", "upgrade to pro"),
		),
		Focus: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("Esc", "focus/unfocus input"),
		),
		Help: key.NewBinding(
			key.WithKeys("?", "f1"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("C-c", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Submit, k.NextTone, k.Copy, k.Share, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Submit, k.NextTone, k.PrevTone, k.Tones[0]},
		{k.Voice, k.Copy, k.Share, k.Save},
		{k.Paywall, k.Focus, k.Help, k.Quit},
	}
}

// digitKey reports whether s is a bare tone digit.
func digitKey(s string) bool {
	return len(s) == 1 && s[0] >= '1' && s[0] <= '9'
}
