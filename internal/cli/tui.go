// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/corptranslate/internal/config"
	"github.com/jeranaias/corptranslate/internal/logging"
	"github.com/jeranaias/corptranslate/internal/ui/styles"
	"github.com/jeranaias/corptranslate/internal/ui/translator"
)

// errNoTerminal is returned when the TUI is started without a terminal.
var errNoTerminal = errors.New(`the interactive UI needs a terminal; use "corptranslate ask" for pipes and scripts`)

// runTUI starts the full-screen translator. Logs go to the log file only.
func runTUI(ctx context.Context, ro *rootOptions) error {
	if !IsTTY() || !IsStdoutTTY() {
		return errNoTerminal
	}
	log := logging.For("tui")

	app := ro.newApp()
	defer app.Close()

	watcher, err := config.Watch()
	if err != nil {
		log.Warn().Err(err).Msg("config watcher disabled")
		watcher = nil
	} else {
		defer watcher.Close()
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	m := translator.New(ctx, translator.Deps{
		Orchestrator: app.Orch,
		Exporter:     app.Exporter,
		Client:       app.Client,
		Watcher:      watcher,
		Config:       app.Config,
		Theme:        styles.NewTheme(app.Config.UI.Theme),
		Version:      Version,
	})

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return err
	}
	log.Debug().Int64("calls", app.Client.Calls()).Msg("tui exited")
	return nil
}
