// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides small helpers shared across corptranslate.
//
// # Key Functions
//
// File Operations:
//   - AtomicWriteFile: Crash-safe file writing with fsync and rename
//
// Text:
//   - TruncateWidth: Display-width aware truncation with ellipsis
//   - WrapWidth: Greedy word wrap by display width
//
// External Commands:
//   - ParseCommand: Shell-style command line splitting
//   - Command.Available: PATH lookup for the program
//
// # Usage
//
//	lines := util.WrapWidth(text, 60)
//	cmd, err := util.ParseCommand(`whisper-cli --model "base.en"`)
//	err = util.AtomicWriteFile(path, png, 0o644)
package util
