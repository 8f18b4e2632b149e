// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package translator is the Bubble Tea screen for corptranslate: an input
// box, the tone selector, and one outcome panel showing the rewritten
// email, an error, or the rate-limit countdown.
//
// The screen never changes session state itself. Key presses call the
// session orchestrator, network and speech work run as commands, and their
// results come back through Update.
package translator
