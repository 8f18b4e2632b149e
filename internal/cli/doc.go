// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli implements the corptranslate command tree.
//
// The root command starts the Bubble Tea UI. Subcommands cover scripting
// (ask, preview, tones), a liner-based REPL and configuration management.
// All surfaces share one App: a Gemini client, the session orchestrator,
// the cooldown timer and the export manager.
//
// Exit codes are stable for scripts; see ExitCode.
package cli
