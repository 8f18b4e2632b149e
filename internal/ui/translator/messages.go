// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package translator

import (
	"github.com/jeranaias/corptranslate/internal/config"
	"github.com/jeranaias/corptranslate/internal/export"
)

// =============================================================================
// EXPORT MESSAGES
// =============================================================================

// CopiedMsg reports a clipboard copy attempt.
type CopiedMsg struct {
	Err error
}

// SharedMsg reports a share attempt.
type SharedMsg struct {
	Result export.ShareResult
	Err    error
}

// SavedMsg reports a markdown save attempt.
type SavedMsg struct {
	Path string
	Err  error
}

// =============================================================================
// CONFIG MESSAGES
// =============================================================================

// ConfigReloadedMsg carries a configuration reloaded from disk.
type ConfigReloadedMsg struct {
	Config *config.Config
}

// ConfigErrorMsg reports a config file that failed to reload.
type ConfigErrorMsg struct {
	Err error
}

// =============================================================================
// STATUS MESSAGES
// =============================================================================

// statusClearMsg clears the status line if it is still the one identified
// by seq.
type statusClearMsg struct {
	seq int
}
