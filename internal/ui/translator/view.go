// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package translator

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/corptranslate/internal/session"
	"github.com/jeranaias/corptranslate/internal/ui/styles"
	"github.com/jeranaias/corptranslate/internal/util"
)

// View renders the screen.
func (m Model) View() string {
	if m.showPaywall {
		return m.renderPaywall()
	}

	s := m.orch.Snapshot()
	sections := []string{
		m.renderHeader(),
		"",
		m.theme.Label.Render("YOUR INNER THOUGHTS (KEEP IT 100)"),
		m.renderInput(),
		m.renderTones(s),
		"",
		m.renderOutcome(s),
		"",
		m.renderStatus(s),
	}
	keys := m.helpKeys()
	if m.showHelp {
		sections = append(sections, m.help.FullHelpView(keys.FullHelp()))
	} else {
		sections = append(sections, m.help.ShortHelpView(keys.ShortHelp()))
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// helpKeys returns the key map with bindings that cannot act right now
// disabled, so help only lists what works.
func (m Model) helpKeys() KeyMap {
	k := m.keys
	k.Submit.SetEnabled(m.orch.CanSubmit())
	k.Voice.SetEnabled(m.orch.VoiceAvailable())
	k.Copy.SetEnabled(m.exporter.CanCopy())
	k.Paywall.SetEnabled(m.paywallEnabled)
	return k
}

func (m Model) contentWidth() int {
	w := m.width - 2
	if w <= 0 || w > 100 {
		w = 100
	}
	return w
}

func (m Model) renderHeader() string {
	left := m.theme.HeaderTitle.Render("CorpTranslate AI")
	if m.width == 0 || m.theme.GetLayoutMode() != styles.LayoutNarrow {
		sub := m.theme.HeaderSubtitle.Render(`Turn "F*** You" into "Kind Regards"`)
		left = lipgloss.JoinHorizontal(lipgloss.Center, left, "  ", sub)
	}
	if !m.paywallEnabled {
		return m.theme.Header.Render(left)
	}

	button := m.theme.PaywallButton.Render("$ Upgrade to Pro")
	gap := m.contentWidth() - lipgloss.Width(left) - lipgloss.Width(button) - 2
	if gap < 1 {
		gap = 1
	}
	return m.theme.Header.Render(left + strings.Repeat(" ", gap) + button)
}

func (m Model) renderInput() string {
	box := m.theme.InputBox
	if m.input.Focused() {
		box = m.theme.InputFocused
	}
	return box.Render(m.input.View())
}

func (m Model) renderTones(s session.State) string {
	cat := m.orch.Catalog()
	chips := make([]string, 0, cat.Len())
	for _, v := range cat.List() {
		chips = append(chips, m.theme.RenderTone(v.ID, v.Label, v.ID == s.ToneID))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, chips...)
}

// renderOutcome shows exactly one of the cooldown banner, the error, the
// result or a placeholder.
func (m Model) renderOutcome(s session.State) string {
	width := m.contentWidth() - 4

	if s.Loading {
		return m.spinner.View() + " " + m.theme.Placeholder.Render("Translating...")
	}

	kind, text := s.Display()
	switch kind {
	case session.DisplayCooldown:
		total := m.cooldownTotal
		if total < s.CooldownRemaining {
			total = s.CooldownRemaining
		}
		bar := styles.RenderCountdownBar(30, s.CooldownRemaining, total)
		return m.theme.Cooldown.Render(text + "\n" + bar)

	case session.DisplayError:
		return m.theme.ErrorBox.Render("x " + text)

	case session.DisplayResult:
		body := strings.Join(util.WrapWidth(text, width), "\n")
		title := m.theme.ResultTitle.Render(s.ToneLabel)
		return m.theme.ResultBox.Render(title + "\n\n" + body)

	default:
		return m.theme.Placeholder.Render("Corporate translation will appear here...")
	}
}

func (m Model) renderStatus(s session.State) string {
	var parts []string
	if s.Listening {
		parts = append(parts, m.spinner.View()+" Listening...")
	}
	if m.status != "" {
		style := m.theme.Muted
		switch m.statusKind {
		case statusOK:
			style = m.theme.StatusOK
		case statusWarn:
			style = m.theme.StatusWarn
		case statusError:
			style = m.theme.StatusError
		}
		parts = append(parts, style.Render(util.TruncateWidth(m.status, m.contentWidth())))
	}
	if len(parts) == 0 {
		footer := "Used by 10,000+ angry employees"
		if m.version != "" {
			footer += "  |  " + m.version + " (Savage Edition)"
		}
		parts = append(parts, m.theme.Muted.Render(footer))
	}
	return m.theme.StatusBar.Render(strings.Join(parts, "  "))
}

func (m Model) renderPaywall() string {
	lines := []string{
		m.theme.PaywallTitle.Render("Get That Promotion"),
		`Unlock the "CEO Mindset" Language Model`,
		"",
		"[locked] Unlimited Translations",
		m.theme.Muted.Render("         Yell at your boss all day long"),
		"[locked] Email Templates",
		m.theme.Muted.Render("         Resignation, Raise Request, Sick Leave"),
		"",
		m.theme.PaywallButton.Render("Subscribe - $4.99/mo"),
		m.theme.Muted.Render("Cancel anytime. We know you won't though."),
		"",
		m.theme.Muted.Render("Esc to close"),
	}
	box := m.theme.PaywallBox.Render(strings.Join(lines, "\n"))
	if m.width == 0 || m.height == 0 {
		return box
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}
