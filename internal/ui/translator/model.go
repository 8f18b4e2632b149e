// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package translator

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/corptranslate/internal/config"
	"github.com/jeranaias/corptranslate/internal/export"
	"github.com/jeranaias/corptranslate/internal/gemini"
	"github.com/jeranaias/corptranslate/internal/session"
	"github.com/jeranaias/corptranslate/internal/ui/styles"
	"github.com/jeranaias/corptranslate/internal/voice"
)

// statusTTL is how long a status line stays visible.
const statusTTL = 4 * time.Second

// statusKind selects the status line color.
type statusKind int

const (
	statusInfo statusKind = iota
	statusOK
	statusWarn
	statusError
)

// Deps are the collaborators the screen drives.
type Deps struct {
	Orchestrator *session.Orchestrator
	Exporter     *export.Manager
	// Client receives model and timeout changes on config reload. Optional.
	Client *gemini.Client
	// Watcher delivers config reloads. Optional.
	Watcher *config.Watcher
	Config  *config.Config
	Theme   *styles.Theme
	Version string
}

// Model is the Bubble Tea model for the translator screen.
type Model struct {
	ctx context.Context

	orch     *session.Orchestrator
	exporter *export.Manager
	client   *gemini.Client
	watcher  *config.Watcher
	theme    *styles.Theme
	version  string

	keys    KeyMap
	help    help.Model
	input   textarea.Model
	spinner spinner.Model

	width  int
	height int

	showHelp       bool
	showPaywall    bool
	paywallEnabled bool

	cooldownTotal int
	voiceEvents   <-chan voice.Event
	heardSpeech   bool

	status     string
	statusKind statusKind
	statusSeq  int
}

// New creates the translator screen. ctx bounds every background call and
// is cancelled when the program exits.
func New(ctx context.Context, deps Deps) Model {
	cfg := deps.Config
	if cfg == nil {
		cfg = config.Default()
	}
	theme := deps.Theme
	if theme == nil {
		theme = styles.NewTheme(cfg.UI.Theme)
	}
	exporter := deps.Exporter
	if exporter == nil {
		exporter = export.NewManager(nil, nil, nil)
	}

	ta := textarea.New()
	ta.Placeholder = "e.g., I hate this meeting, it's a waste of time, and you are dumb."
	ta.ShowLineNumbers = false
	ta.CharLimit = 4000
	ta.SetHeight(5)
	ta.Focus()

	sp := spinner.New()
	sp.Spinner = styles.BriefcaseSpinner.Bubbles()
	sp.Style = theme.Spinner

	m := Model{
		ctx:            ctx,
		orch:           deps.Orchestrator,
		exporter:       exporter,
		client:         deps.Client,
		watcher:        deps.Watcher,
		theme:          theme,
		version:        deps.Version,
		keys:           DefaultKeyMap(),
		help:           help.New(),
		input:          ta,
		spinner:        sp,
		paywallEnabled: cfg.UI.ShowPaywallButton,
	}
	if s := m.orch.Snapshot(); s.Input != "" {
		m.input.SetValue(s.Input)
	}
	return m
}

// Init starts the cursor blink and the cooldown and config listeners.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		textarea.Blink,
		session.WaitCooldownTick(m.orch.CooldownTicks()),
	}
	if m.watcher != nil {
		cmds = append(cmds, waitConfig(m.watcher))
	}
	return tea.Batch(cmds...)
}

// waitConfig waits for the next reload or reload error.
func waitConfig(w *config.Watcher) tea.Cmd {
	if w == nil {
		return nil
	}
	return func() tea.Msg {
		select {
		case cfg, ok := <-w.Changes():
			if !ok {
				return nil
			}
			return ConfigReloadedMsg{Config: cfg}
		case err, ok := <-w.Errors():
			if !ok {
				return nil
			}
			return ConfigErrorMsg{Err: err}
		}
	}
}

// applyConfig pushes reloaded settings into the live collaborators.
func (m *Model) applyConfig(cfg *config.Config) {
	if m.client != nil {
		m.client.SetModel(cfg.Gemini.Model)
		m.client.SetTimeout(cfg.RequestTimeout())
	}
	m.exporter.SetShareProvider(export.NewShareProvider(cfg.Export.ShareEnabled, cfg.Export.ShareCommand))
	m.exporter.SetOptions(*export.NewOptions(cfg.Export.Dir, cfg.Export.ImageWidth, cfg.UI.Theme))
	m.orch.SetCapture(voice.NewCapture(voice.NewProvider(cfg.Voice.Command, cfg.VoiceTimeout())))
	m.paywallEnabled = cfg.UI.ShowPaywallButton
	if !m.paywallEnabled {
		m.showPaywall = false
	}
	config.SetGlobal(cfg)
}

// setStatus shows a transient status line.
func (m *Model) setStatus(kind statusKind, text string) tea.Cmd {
	m.statusSeq++
	m.status = text
	m.statusKind = kind
	seq := m.statusSeq
	return tea.Tick(statusTTL, func(time.Time) tea.Msg {
		return statusClearMsg{seq: seq}
	})
}

// Status returns the current status line text.
func (m Model) Status() string {
	return m.status
}

// PaywallVisible reports whether the paywall overlay is showing.
func (m Model) PaywallVisible() bool {
	return m.showPaywall
}
