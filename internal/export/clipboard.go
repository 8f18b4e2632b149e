// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"github.com/atotto/clipboard"

	"github.com/jeranaias/corptranslate/internal/model"
)

// Clipboard writes text to the system clipboard.
type Clipboard interface {
	Available() bool
	WriteText(text string) error
}

// SystemClipboard uses the host clipboard (pbcopy, xclip/xsel/wl-copy, or
// the Windows API).
type SystemClipboard struct{}

// Available reports whether a clipboard utility was found.
func (SystemClipboard) Available() bool {
	return !clipboard.Unsupported
}

// WriteText copies text to the clipboard.
func (SystemClipboard) WriteText(text string) error {
	return clipboard.WriteAll(text)
}

// NoClipboard is used when clipboard access is disabled.
type NoClipboard struct{}

// Available always returns false.
func (NoClipboard) Available() bool { return false }

// WriteText always fails with model.ErrUnsupportedCapability.
func (NoClipboard) WriteText(string) error { return model.ErrUnsupportedCapability }
