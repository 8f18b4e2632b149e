// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"github.com/jeranaias/corptranslate/internal/config"
	"github.com/jeranaias/corptranslate/internal/cooldown"
	"github.com/jeranaias/corptranslate/internal/export"
	"github.com/jeranaias/corptranslate/internal/gemini"
	"github.com/jeranaias/corptranslate/internal/model"
	"github.com/jeranaias/corptranslate/internal/session"
	"github.com/jeranaias/corptranslate/internal/voice"
)

// App holds the collaborators shared by the TUI, ask and the REPL.
type App struct {
	Config   *config.Config
	Client   *gemini.Client
	Cooldown *cooldown.Controller
	Orch     *session.Orchestrator
	Exporter *export.Manager
}

// NewApp wires an App from cfg. The credential is re-read from the global
// config on every request so reloads take effect. A nil clipboard uses the
// system clipboard.
func NewApp(cfg *config.Config, clip export.Clipboard) *App {
	config.SetGlobal(cfg)

	client := gemini.NewClient().
		WithBaseURL(cfg.Gemini.BaseURL).
		WithModel(cfg.Gemini.Model).
		WithTimeout(cfg.RequestTimeout())

	// Room for a full cooldown of ticks when nobody is draining them.
	cd := cooldown.New(cooldown.WithBuffer(model.FixedCooldownSeconds + 1))
	capture := voice.NewCapture(voice.NewProvider(cfg.Voice.Command, cfg.VoiceTimeout()))
	orch := session.New(client, func() string { return config.Global().Credential() }, cd,
		session.WithTone(cfg.Tone.Default),
		session.WithCapture(capture),
	)

	if clip == nil {
		clip = export.SystemClipboard{}
	}
	exporter := export.NewManager(clip,
		export.NewShareProvider(cfg.Export.ShareEnabled, cfg.Export.ShareCommand),
		export.NewOptions(cfg.Export.Dir, cfg.Export.ImageWidth, cfg.UI.Theme),
	)

	return &App{
		Config:   cfg,
		Client:   client,
		Cooldown: cd,
		Orch:     orch,
		Exporter: exporter,
	}
}

// Close stops the cooldown timer.
func (a *App) Close() {
	a.Cooldown.Cancel()
}
