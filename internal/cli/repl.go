// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// repl.go - Line-mode translator.
//
// Every line is translated in the current tone. Lines starting with "/"
// are commands:
//
//   /tone [id|n]   Show or switch the tone
//   /tones         List tones
//   /copy          Copy the last translation
//   /share         Share the last translation as an image
//   /save          Save the last translation as Markdown
//   /reload        Re-read the config file
//   /voice         Dictate a message (needs voice.command)
//   /help          Show commands
//   /quit          Exit (also Ctrl+D)
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	"github.com/jeranaias/corptranslate/internal/config"
	"github.com/jeranaias/corptranslate/internal/export"
	"github.com/jeranaias/corptranslate/internal/logging"
	"github.com/jeranaias/corptranslate/internal/model"
	"github.com/jeranaias/corptranslate/internal/session"
	"github.com/jeranaias/corptranslate/internal/tone"
	"github.com/jeranaias/corptranslate/internal/voice"
)

const replHelp = `Type a message and press Enter to translate it.

  /tone [id|n]   Show or switch the tone
  /tones         List tones
  /copy          Copy the last translation
  /share         Share the last translation as an image
  /save          Save the last translation as Markdown
  /reload        Re-read the config file
  /voice         Dictate a message
  /help          Show this help
  /quit          Exit (also Ctrl+D)
`

func addRepl(topLevel *cobra.Command, ro *rootOptions) {
	var toneFlag string
	cmd := &cobra.Command{
		Use:     "repl",
		Aliases: []string{"shell"},
		Short:   "Translate line by line without the full-screen UI.",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRepl(cmd, ro, toneFlag)
		},
	}
	cmd.Flags().StringVarP(&toneFlag, "tone", "t", "", "Starting tone (default from config).")
	_ = cmd.RegisterFlagCompletionFunc("tone", toneCompletion)
	topLevel.AddCommand(cmd)
}

func runRepl(cmd *cobra.Command, ro *rootOptions, toneFlag string) error {
	app := ro.newApp()
	defer app.Close()

	v, err := resolveTone(toneFlag, app.Config.Tone.Default)
	if err != nil {
		return err
	}
	if err := app.Orch.SelectTone(v.ID); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	s := newReplSession(app, cmd.OutOrStdout(), cmd.ErrOrStderr())
	go s.followCooldown(ctx)

	line := newReplLine()
	defer line.Close()

	fmt.Fprintf(s.out, "corptranslate %s - type /help for commands, Ctrl+D to exit.\n", Version)
	for {
		input, err := line.ReadInput(s.prompt())
		if err != nil {
			if !errors.Is(err, io.EOF) && !errors.Is(err, liner.ErrPromptAborted) {
				logging.For("repl").Warn().Err(err).Msg("prompt failed")
			}
			fmt.Fprintln(s.out)
			return nil
		}
		if !s.handle(ctx, input) || ctx.Err() != nil {
			return nil
		}
	}
}

// =============================================================================
// LINE EDITING
// =============================================================================

// replLine provides history and line editing.
type replLine struct {
	state       *liner.State
	historyFile string
}

func newReplLine() *replLine {
	state := liner.NewLiner()
	state.SetCtrlCAborts(true)
	state.SetCompleter(func(line string) []string {
		if !strings.HasPrefix(line, "/") {
			return nil
		}
		var out []string
		for _, c := range []string{"/tone ", "/tones", "/copy", "/share", "/save", "/reload", "/voice", "/help", "/quit"} {
			if strings.HasPrefix(c, line) {
				out = append(out, c)
			}
		}
		return out
	})

	dir, err := config.ConfigDir()
	if err != nil {
		dir = os.TempDir()
	}
	r := &replLine{state: state, historyFile: filepath.Join(dir, "repl_history")}
	if f, err := os.Open(r.historyFile); err == nil {
		_, _ = state.ReadHistory(f)
		f.Close()
	}
	return r
}

// ReadInput prompts for one line and records it in the history.
func (r *replLine) ReadInput(prompt string) (string, error) {
	input, err := r.state.Prompt(prompt)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(input) != "" {
		r.state.AppendHistory(input)
	}
	return input, nil
}

// Close saves the history with owner-only permissions and restores the
// terminal.
func (r *replLine) Close() {
	if err := config.EnsureConfigDir(); err == nil {
		if f, err := os.OpenFile(r.historyFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600); err == nil {
			_, _ = r.state.WriteHistory(f)
			f.Close()
		}
	}
	_ = r.state.Close()
}

// =============================================================================
// SESSION
// =============================================================================

// replSession executes REPL lines against the shared orchestrator.
type replSession struct {
	app    *App
	out    io.Writer
	errOut io.Writer
}

func newReplSession(app *App, out, errOut io.Writer) *replSession {
	return &replSession{app: app, out: out, errOut: errOut}
}

func (s *replSession) prompt() string {
	return fmt.Sprintf("corp[%s]> ", s.app.Orch.Snapshot().ToneID)
}

// followCooldown forwards cooldown ticks to the orchestrator until ctx ends.
func (s *replSession) followCooldown(ctx context.Context) {
	ticks := s.app.Orch.CooldownTicks()
	for {
		select {
		case <-ctx.Done():
			return
		case n, ok := <-ticks:
			if !ok {
				return
			}
			s.app.Orch.CooldownTick(n)
		}
	}
}

// handle runs one input line. Returns false when the REPL should exit.
func (s *replSession) handle(ctx context.Context, input string) bool {
	input = strings.TrimSpace(input)
	if input == "" {
		return true
	}
	if !strings.HasPrefix(input, "/") {
		s.app.Orch.SetInput(input)
		s.translate(ctx)
		return true
	}

	name, arg, _ := strings.Cut(input, " ")
	arg = strings.TrimSpace(arg)
	switch strings.ToLower(name) {
	case "/quit", "/q", "/exit":
		return false
	case "/help", "/h", "/?":
		fmt.Fprint(s.out, replHelp)
	case "/tone", "/t":
		s.switchTone(arg)
	case "/tones":
		fmt.Fprint(s.out, renderToneTable(s.app.Orch.Catalog().List()))
	case "/copy":
		s.copy()
	case "/share":
		s.share(ctx)
	case "/save":
		s.save()
	case "/reload":
		s.reload()
	case "/voice":
		s.voice(ctx)
	default:
		fmt.Fprintf(s.errOut, "Unknown command %s. Type /help for commands.\n", name)
	}
	return true
}

func (s *replSession) translate(ctx context.Context) {
	res, err := s.app.Orch.Generate(ctx)
	if err != nil {
		snap := s.app.Orch.Snapshot()
		switch {
		case errors.Is(err, session.ErrCoolingDown):
			fmt.Fprintln(s.errOut, session.CooldownBanner(snap.CooldownRemaining))
		case snap.ErrorMessage != "":
			fmt.Fprintln(s.errOut, snap.ErrorMessage)
		default:
			fmt.Fprintln(s.errOut, err)
		}
		return
	}

	switch res.Kind {
	case model.OutcomeSuccess:
		displayResponse(s.out, res.Text)
	case model.OutcomeRateLimited:
		fmt.Fprintln(s.errOut, session.CooldownBanner(s.app.Orch.Snapshot().CooldownRemaining))
	default:
		fmt.Fprintln(s.errOut, res.UserMessage())
	}
}

func (s *replSession) switchTone(arg string) {
	cat := s.app.Orch.Catalog()
	if arg == "" {
		v, _ := cat.Get(s.app.Orch.Snapshot().ToneID)
		fmt.Fprintf(s.out, "Tone: %s (%s). Choose one of: %s\n", v.Label, v.ID, strings.Join(cat.IDs(), ", "))
		return
	}

	id := arg
	if n, err := strconv.Atoi(arg); err == nil {
		if n < 1 || n > cat.Len() {
			fmt.Fprintf(s.errOut, "Tone number must be 1-%d.\n", cat.Len())
			return
		}
		id = cat.At(n - 1).ID
	}
	if err := s.app.Orch.SelectTone(id); err != nil {
		fmt.Fprintf(s.errOut, "Unknown tone %q. Choose one of: %s\n", arg, strings.Join(cat.IDs(), ", "))
		return
	}
	v, _ := tone.Get(id)
	fmt.Fprintf(s.out, "Tone: %s\n", v.Label)
}

func (s *replSession) copy() {
	text, ok := s.app.Orch.Snapshot().ResultText()
	if !ok {
		fmt.Fprintln(s.errOut, "Nothing to copy yet.")
		return
	}
	if err := s.app.Exporter.CopyToClipboard(text); err != nil {
		if errors.Is(err, model.ErrUnsupportedCapability) {
			fmt.Fprintln(s.errOut, "Clipboard is not available here.")
			return
		}
		fmt.Fprintf(s.errOut, "Copy failed: %v\n", err)
		return
	}
	fmt.Fprintln(s.out, export.CopiedMessage)
}

// lastSurface returns the current result laid out for export.
func (s *replSession) lastSurface() (export.Surface, bool) {
	snap := s.app.Orch.Snapshot()
	text, ok := snap.ResultText()
	if !ok {
		return export.Surface{}, false
	}
	return export.Surface{
		Title:     snap.ToneLabel,
		Body:      text,
		Footer:    "Translated by corptranslate",
		CreatedAt: time.Now(),
	}, true
}

func (s *replSession) share(ctx context.Context) {
	surface, ok := s.lastSurface()
	if !ok {
		fmt.Fprintln(s.errOut, "Nothing to share yet.")
		return
	}
	res, err := s.app.Exporter.ShareAsImage(ctx, surface)
	switch {
	case err == nil:
		fmt.Fprintf(s.out, "Shared %s\n", res.Path)
	case errors.Is(err, model.ErrUnsupportedCapability):
		fmt.Fprintf(s.out, "Saved %s (%s)\n", res.Path, export.ManualShareHint)
	default:
		fmt.Fprintf(s.errOut, "Share failed: %v\n", err)
	}
}

func (s *replSession) save() {
	surface, ok := s.lastSurface()
	if !ok {
		fmt.Fprintln(s.errOut, "Nothing to save yet.")
		return
	}
	path, err := s.app.Exporter.SaveMarkdown(surface)
	if err != nil {
		fmt.Fprintf(s.errOut, "Save failed: %v\n", err)
		return
	}
	fmt.Fprintf(s.out, "Saved %s\n", path)
}

// reload re-reads the config file. The model and timeout apply to the next
// request; the credential is read from the global config on every call.
func (s *replSession) reload() {
	if err := config.ReloadGlobal(); err != nil {
		fmt.Fprintf(s.errOut, "Config not reloaded: %v\n", err)
		return
	}
	cfg := config.Global()
	s.app.Config = cfg
	s.app.Client.SetModel(cfg.Gemini.Model)
	s.app.Client.SetTimeout(cfg.RequestTimeout())
	fmt.Fprintf(s.out, "Config reloaded. Model: %s\n", cfg.Gemini.Model)
}

// voice dictates a fresh message and translates it.
func (s *replSession) voice(ctx context.Context) {
	s.app.Orch.SetInput("")
	events, err := s.app.Orch.BeginListening(ctx)
	if err != nil {
		if errors.Is(err, voice.ErrAlreadyListening) {
			fmt.Fprintln(s.errOut, "Already listening.")
			return
		}
		if errors.Is(err, model.ErrUnsupportedCapability) {
			fmt.Fprintln(s.errOut, "Voice input is not supported here. Set voice.command in the config to enable it.")
			return
		}
		fmt.Fprintf(s.errOut, "Voice input failed: %v\n", err)
		return
	}

	fmt.Fprintln(s.out, "Listening...")
	for ev := range events {
		s.app.Orch.HandleVoiceEvent(ev)
		if ev.Kind == voice.EventFinal {
			fmt.Fprintf(s.out, "Heard: %s\n", ev.Text)
		}
	}
	// A closed channel without EventEnd still ends the session.
	s.app.Orch.HandleVoiceEvent(voice.Event{Kind: voice.EventEnd})

	if !s.app.Orch.Snapshot().HasInput() {
		fmt.Fprintln(s.errOut, "Didn't catch that. Try again.")
		return
	}
	s.translate(ctx)
}
