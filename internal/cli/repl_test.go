// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"bytes"
	"context"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/corptranslate/internal/config"
	"github.com/jeranaias/corptranslate/internal/export"
)

type replHarness struct {
	s      *replSession
	out    *bytes.Buffer
	errOut *bytes.Buffer
	server *fakeGemini
	clip   *fakeClipboard
}

func newReplHarness(t *testing.T, status int, body string) *replHarness {
	t.Helper()
	isolate(t)
	server := newFakeGemini(t, status, body)

	cfg := config.Default()
	cfg.Gemini.BaseURL = server.URL
	cfg.Gemini.APIKey = "test-key"
	cfg.Export.ShareEnabled = false
	cfg.Export.Dir = t.TempDir()

	clip := &fakeClipboard{}
	app := NewApp(cfg, clip)
	t.Cleanup(app.Close)

	var out, errOut bytes.Buffer
	return &replHarness{
		s:      newReplSession(app, &out, &errOut),
		out:    &out,
		errOut: &errOut,
		server: server,
		clip:   clip,
	}
}

func (h *replHarness) reset() {
	h.out.Reset()
	h.errOut.Reset()
}

func TestRepl_TranslatesLines(t *testing.T) {
	h := newReplHarness(t, http.StatusOK, successBody)
	ctx := context.Background()

	assert.True(t, h.s.handle(ctx, "this is bullshit"))
	assert.Contains(t, h.out.String(), "Kind Regards")
	assert.EqualValues(t, 1, h.server.calls.Load())

	assert.True(t, h.s.handle(ctx, "   "), "blank lines are ignored")
	assert.EqualValues(t, 1, h.server.calls.Load())
}

func TestRepl_Tone(t *testing.T) {
	h := newReplHarness(t, http.StatusOK, successBody)
	ctx := context.Background()

	assert.Equal(t, "corp[passive-aggressive]> ", h.s.prompt())

	h.s.handle(ctx, "/tone 2")
	assert.Equal(t, "corp[cold]> ", h.s.prompt())
	assert.Contains(t, h.out.String(), "Ice Cold")

	h.s.handle(ctx, "/tone gaslight")
	assert.Equal(t, "corp[gaslight]> ", h.s.prompt())

	h.reset()
	h.s.handle(ctx, "/tone 9")
	assert.Contains(t, h.errOut.String(), "1-4")
	h.s.handle(ctx, "/tone furious")
	assert.Contains(t, h.errOut.String(), "Unknown tone")
	assert.Equal(t, "corp[gaslight]> ", h.s.prompt())

	h.reset()
	h.s.handle(ctx, "/tone")
	assert.Contains(t, h.out.String(), "Gaslight Boss")
}

func TestRepl_CopyAndShare(t *testing.T) {
	h := newReplHarness(t, http.StatusOK, successBody)
	ctx := context.Background()

	h.s.handle(ctx, "/copy")
	assert.Contains(t, h.errOut.String(), "Nothing to copy yet.")
	h.s.handle(ctx, "/share")
	assert.Contains(t, h.errOut.String(), "Nothing to share yet.")

	h.s.handle(ctx, "i quit")
	h.reset()

	h.s.handle(ctx, "/copy")
	assert.Contains(t, h.out.String(), export.CopiedMessage)
	assert.Equal(t, []string{"Subject: Alignment\n\nKind Regards"}, h.clip.writes)

	h.s.handle(ctx, "/share")
	assert.Contains(t, h.out.String(), "Saved")
	assert.Contains(t, h.out.String(), export.ManualShareHint)
}

func TestRepl_RateLimitBlocksNextSubmission(t *testing.T) {
	h := newReplHarness(t, http.StatusTooManyRequests, `{}`)
	ctx := context.Background()

	h.s.handle(ctx, "pay me more")
	assert.Contains(t, h.errOut.String(), "Try again in 60s")

	h.reset()
	h.s.handle(ctx, "pay me more")
	assert.Contains(t, h.errOut.String(), "Rate limit hit")
	assert.EqualValues(t, 1, h.server.calls.Load(), "no call during cooldown")
}

func TestRepl_VoiceUnsupported(t *testing.T) {
	h := newReplHarness(t, http.StatusOK, successBody)

	h.s.handle(context.Background(), "/voice")
	assert.Contains(t, h.errOut.String(), "not supported")
	assert.Zero(t, h.server.calls.Load())
}

func TestRepl_CommandsAndQuit(t *testing.T) {
	h := newReplHarness(t, http.StatusOK, successBody)
	ctx := context.Background()

	assert.True(t, h.s.handle(ctx, "/help"))
	assert.Contains(t, h.out.String(), "/voice")

	assert.True(t, h.s.handle(ctx, "/tones"))
	assert.Contains(t, h.out.String(), "condescending")

	assert.True(t, h.s.handle(ctx, "/bogus"))
	assert.Contains(t, h.errOut.String(), "Unknown command /bogus")

	assert.False(t, h.s.handle(ctx, "/quit"))
	assert.False(t, h.s.handle(ctx, "/Q"))
	require.Zero(t, h.server.calls.Load())
}

func TestRepl_Save(t *testing.T) {
	h := newReplHarness(t, http.StatusOK, successBody)
	ctx := context.Background()

	h.s.handle(ctx, "/save")
	assert.Contains(t, h.errOut.String(), "Nothing to save yet.")

	h.s.handle(ctx, "i don't care")
	h.reset()
	h.s.handle(ctx, "/save")
	require.Contains(t, h.out.String(), "Saved ")

	path := strings.TrimSpace(strings.TrimPrefix(h.out.String(), "Saved "))
	body, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(body), "Kind Regards")
}

func TestRepl_Reload(t *testing.T) {
	h := newReplHarness(t, http.StatusOK, successBody)
	dir := os.Getenv(config.HomeEnv)

	toml := "[gemini]\nmodel = \"gemini-1.5-pro\"\ntimeout_secs = 45\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(toml), 0o600))

	h.s.handle(context.Background(), "/reload")
	assert.Contains(t, h.out.String(), "Model: gemini-1.5-pro")
	assert.Equal(t, "gemini-1.5-pro", h.s.app.Client.Model())
	assert.Equal(t, 45, h.s.app.Config.Gemini.TimeoutSecs)
	assert.Same(t, config.Global(), h.s.app.Config)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte("[ui]\ntheme = \"neon\"\n"), 0o600))
	h.reset()
	h.s.handle(context.Background(), "/reload")
	assert.Contains(t, h.errOut.String(), "Config not reloaded")
	assert.Equal(t, "gemini-1.5-pro", h.s.app.Client.Model())
}
