// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/corptranslate/internal/model"
	"github.com/jeranaias/corptranslate/internal/voice"
)

// =============================================================================
// BUBBLE TEA INTEGRATION
// =============================================================================

// ResultMsg carries the outcome of an executed ticket back to Update.
type ResultMsg struct {
	TicketID string
	Result   model.Result
}

// CooldownTickMsg carries the remaining cooldown seconds after a tick.
type CooldownTickMsg struct {
	Remaining int
}

// VoiceEventMsg carries one speech capture event.
type VoiceEventMsg struct {
	Event voice.Event
}

// ExecuteCmd runs the network call for t off the update loop.
func ExecuteCmd(ctx context.Context, o *Orchestrator, t Ticket) tea.Cmd {
	return func() tea.Msg {
		return ResultMsg{TicketID: t.ID, Result: o.Execute(ctx, t)}
	}
}

// WaitCooldownTick waits for the next cooldown tick. Re-issue it after every
// CooldownTickMsg; it returns nil when the channel closes.
func WaitCooldownTick(ticks <-chan int) tea.Cmd {
	return func() tea.Msg {
		remaining, ok := <-ticks
		if !ok {
			return nil
		}
		return CooldownTickMsg{Remaining: remaining}
	}
}

// WaitVoiceEvent waits for the next capture event. Re-issue it until an
// EventEnd arrives.
func WaitVoiceEvent(events <-chan voice.Event) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-events
		if !ok {
			return VoiceEventMsg{Event: voice.Event{Kind: voice.EventEnd}}
		}
		return VoiceEventMsg{Event: ev}
	}
}
