// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"fmt"

	"github.com/jeranaias/corptranslate/internal/model"
)

// State is a point-in-time copy of the session for rendering.
type State struct {
	Input             string
	ToneID            string
	ToneLabel         string
	Phase             Phase
	Loading           bool
	LastResult        *model.Result
	ErrorMessage      string
	CooldownRemaining int
	Listening         bool
}

// DisplayKind says which single outcome the UI should show.
type DisplayKind int

const (
	DisplayNone DisplayKind = iota
	DisplayResult
	DisplayError
	DisplayCooldown
)

// String returns the string representation of the display kind.
func (k DisplayKind) String() string {
	switch k {
	case DisplayResult:
		return "result"
	case DisplayError:
		return "error"
	case DisplayCooldown:
		return "cooldown"
	default:
		return "none"
	}
}

// CooldownBanner formats the cooldown notice.
func CooldownBanner(remaining int) string {
	return fmt.Sprintf("Whoa there, corporate climber. Rate limit hit. Try again in %ds.", remaining)
}

// Display returns exactly one of the cooldown banner, the error message or
// the result text, in that priority. A rate-limit error is never shown as
// an error message; the banner covers it.
func (s State) Display() (DisplayKind, string) {
	switch {
	case s.CooldownRemaining > 0:
		return DisplayCooldown, CooldownBanner(s.CooldownRemaining)
	case s.Loading:
		return DisplayNone, ""
	case s.ErrorMessage != "":
		return DisplayError, s.ErrorMessage
	case s.LastResult != nil && s.LastResult.IsSuccess():
		return DisplayResult, s.LastResult.Text
	default:
		return DisplayNone, ""
	}
}

// ResultText returns the rewritten email when the last outcome succeeded.
func (s State) ResultText() (string, bool) {
	if s.LastResult == nil || !s.LastResult.IsSuccess() {
		return "", false
	}
	return s.LastResult.Text, true
}

// CanSubmit reports whether a new submission would pass the busy and
// cooldown checks.
func (s State) CanSubmit() bool {
	return !s.Loading && s.CooldownRemaining == 0
}
