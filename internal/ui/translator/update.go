// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package translator

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/corptranslate/internal/export"
	"github.com/jeranaias/corptranslate/internal/logging"
	"github.com/jeranaias/corptranslate/internal/model"
	"github.com/jeranaias/corptranslate/internal/session"
	"github.com/jeranaias/corptranslate/internal/voice"
)

// Update handles messages and user input.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)

	case session.ResultMsg:
		return m.handleResult(msg)

	case session.CooldownTickMsg:
		m.orch.CooldownTick(msg.Remaining)
		return m, session.WaitCooldownTick(m.orch.CooldownTicks())

	case session.VoiceEventMsg:
		return m.handleVoiceEvent(msg)

	case CopiedMsg:
		return m.handleCopied(msg)

	case SharedMsg:
		return m.handleShared(msg)

	case SavedMsg:
		if msg.Err != nil {
			return m, m.setStatus(statusError, fmt.Sprintf("Save failed: %v", msg.Err))
		}
		return m, m.setStatus(statusOK, fmt.Sprintf("Saved %s", msg.Path))

	case ConfigReloadedMsg:
		m.applyConfig(msg.Config)
		cmd := m.setStatus(statusInfo, "Config reloaded.")
		return m, tea.Batch(cmd, waitConfig(m.watcher))

	case ConfigErrorMsg:
		cmd := m.setStatus(statusError, fmt.Sprintf("Config not applied: %v", msg.Err))
		return m, tea.Batch(cmd, waitConfig(m.watcher))

	case statusClearMsg:
		if msg.seq == m.statusSeq {
			m.status = ""
		}
		return m, nil

	case spinner.TickMsg:
		s := m.orch.Snapshot()
		if !s.Loading && !s.Listening {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.theme.SetSize(msg.Width, msg.Height)
	m.help.Width = msg.Width

	w := msg.Width - 4
	if w > 100 {
		w = 100
	}
	if w < 20 {
		w = 20
	}
	m.input.SetWidth(w)
	return m, nil
}

// =============================================================================
// KEYS
// =============================================================================

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}

	if m.showPaywall {
		switch {
		case key.Matches(msg, m.keys.Paywall), key.Matches(msg, m.keys.Focus), msg.String() == "enter", msg.String() == "q":
			m.showPaywall = false
		}
		return m, nil
	}

	focused := m.input.Focused()

	switch {
	case key.Matches(msg, m.keys.Submit):
		return m.submit()

	case key.Matches(msg, m.keys.NextTone):
		m.orch.CycleTone()
		return m, nil

	case key.Matches(msg, m.keys.PrevTone):
		cat := m.orch.Catalog()
		prev := cat.At(cat.Index(m.orch.Snapshot().ToneID) - 1)
		_ = m.orch.SelectTone(prev.ID)
		return m, nil

	case key.Matches(msg, m.keys.Voice):
		return m.startVoice()

	case key.Matches(msg, m.keys.Copy):
		return m.copyResult()

	case key.Matches(msg, m.keys.Share):
		return m.shareResult()

	case key.Matches(msg, m.keys.Save):
		return m.saveResult()

	case key.Matches(msg, m.keys.Paywall):
		if m.paywallEnabled {
			m.showPaywall = true
		}
		return m, nil

	case key.Matches(msg, m.keys.Focus):
		if focused {
			m.input.Blur()
			return m, nil
		}
		return m, m.input.Focus()
	}

	// Bare digits and "?" are text while typing.
	if !focused || msg.Alt {
		for i, b := range m.keys.Tones {
			if key.Matches(msg, b) && i < m.orch.Catalog().Len() {
				_ = m.orch.SelectTone(m.orch.Catalog().At(i).ID)
				return m, nil
			}
		}
	}
	if key.Matches(msg, m.keys.Help) && (!focused || msg.String() == "f1") {
		m.showHelp = !m.showHelp
		return m, nil
	}
	if !focused {
		if digitKey(msg.String()) || msg.String() == "?" {
			return m, nil
		}
		if msg.String() == "i" || msg.String() == "enter" {
			return m, m.input.Focus()
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.orch.SetInput(m.input.Value())
	return m, cmd
}

// =============================================================================
// GENERATION
// =============================================================================

func (m Model) submit() (tea.Model, tea.Cmd) {
	m.orch.SetInput(m.input.Value())
	t, err := m.orch.Submit()
	switch {
	case errors.Is(err, session.ErrBusy), errors.Is(err, session.ErrCoolingDown):
		// The spinner or cooldown banner already says why.
		return m, nil
	case err != nil:
		// Validation errors are shown through the session state.
		return m, nil
	}
	return m, tea.Batch(m.spinner.Tick, session.ExecuteCmd(m.ctx, m.orch, t))
}

func (m Model) handleResult(msg session.ResultMsg) (tea.Model, tea.Cmd) {
	if !m.orch.Complete(msg.TicketID, msg.Result) {
		return m, nil
	}
	if msg.Result.Kind == model.OutcomeRateLimited {
		m.cooldownTotal = msg.Result.RetryAfterSeconds
		if m.cooldownTotal <= 0 {
			m.cooldownTotal = model.FixedCooldownSeconds
		}
	}
	return m, nil
}

// =============================================================================
// VOICE
// =============================================================================

func (m Model) startVoice() (tea.Model, tea.Cmd) {
	if m.voiceEvents != nil {
		return m, nil
	}
	events, err := m.orch.BeginListening(m.ctx)
	if err != nil {
		if errors.Is(err, voice.ErrAlreadyListening) {
			return m, nil
		}
		if errors.Is(err, model.ErrUnsupportedCapability) {
			return m, m.setStatus(statusWarn, "Voice input is not supported here. Set voice.command in the config to enable it.")
		}
		return m, m.setStatus(statusError, fmt.Sprintf("Voice input failed: %v", err))
	}
	m.voiceEvents = events
	m.heardSpeech = false
	return m, tea.Batch(m.spinner.Tick, session.WaitVoiceEvent(events))
}

func (m Model) handleVoiceEvent(msg session.VoiceEventMsg) (tea.Model, tea.Cmd) {
	m.orch.HandleVoiceEvent(msg.Event)

	switch msg.Event.Kind {
	case voice.EventFinal:
		m.heardSpeech = true
		m.input.SetValue(m.orch.Snapshot().Input)
		m.input.CursorEnd()
	case voice.EventEnd:
		m.voiceEvents = nil
		if !m.heardSpeech {
			return m, m.setStatus(statusWarn, "Didn't catch that. Try again.")
		}
		return m, nil
	}

	if m.voiceEvents == nil {
		return m, nil
	}
	return m, session.WaitVoiceEvent(m.voiceEvents)
}

// =============================================================================
// EXPORT
// =============================================================================

func (m Model) copyResult() (tea.Model, tea.Cmd) {
	text, ok := m.orch.Snapshot().ResultText()
	if !ok {
		return m, m.setStatus(statusWarn, "Nothing to copy yet.")
	}
	exporter := m.exporter
	return m, func() tea.Msg {
		return CopiedMsg{Err: exporter.CopyToClipboard(text)}
	}
}

func (m Model) handleCopied(msg CopiedMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Err == nil:
		return m, m.setStatus(statusOK, export.CopiedMessage)
	case errors.Is(msg.Err, model.ErrUnsupportedCapability):
		return m, m.setStatus(statusWarn, "Clipboard is not available here. Select the text and copy it manually.")
	default:
		return m, m.setStatus(statusError, fmt.Sprintf("Copy failed: %v", msg.Err))
	}
}

// resultSurface describes the current result for export.
func (m Model) resultSurface() (export.Surface, bool) {
	s := m.orch.Snapshot()
	text, ok := s.ResultText()
	if !ok {
		return export.Surface{}, false
	}
	return export.Surface{
		Title:     s.ToneLabel,
		Body:      text,
		Footer:    "Translated by corptranslate",
		CreatedAt: time.Now(),
	}, true
}

func (m Model) shareResult() (tea.Model, tea.Cmd) {
	surface, ok := m.resultSurface()
	if !ok {
		return m, m.setStatus(statusWarn, "Nothing to share yet.")
	}
	ctx, exporter := m.ctx, m.exporter
	return m, func() tea.Msg {
		res, err := exporter.ShareAsImage(ctx, surface)
		return SharedMsg{Result: res, Err: err}
	}
}

func (m Model) saveResult() (tea.Model, tea.Cmd) {
	surface, ok := m.resultSurface()
	if !ok {
		return m, m.setStatus(statusWarn, "Nothing to save yet.")
	}
	exporter := m.exporter
	return m, func() tea.Msg {
		path, err := exporter.SaveMarkdown(surface)
		return SavedMsg{Path: path, Err: err}
	}
}

func (m Model) handleShared(msg SharedMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Err == nil:
		return m, m.setStatus(statusOK, fmt.Sprintf("Shared %s", msg.Result.Path))
	case errors.Is(msg.Err, model.ErrUnsupportedCapability):
		return m, m.setStatus(statusWarn, fmt.Sprintf("Saved %s. %s.", msg.Result.Path, export.ManualShareHint))
	default:
		logging.For("ui").Warn().Err(msg.Err).Msg("share failed")
		return m, m.setStatus(statusError, fmt.Sprintf("Share failed: %v", msg.Err))
	}
}
