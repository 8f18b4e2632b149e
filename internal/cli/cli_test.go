// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/corptranslate/internal/config"
	"github.com/jeranaias/corptranslate/internal/export"
	"github.com/jeranaias/corptranslate/internal/model"
)

// =============================================================================
// HELPERS
// =============================================================================

// isolate points the config directory at a temp dir and clears every
// environment variable the loader reads.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv(config.HomeEnv, dir)
	for _, k := range []string{
		"GEMINI_API_KEY",
		"CORPTRANSLATE_API_KEY",
		"CORPTRANSLATE_MODEL",
		"CORPTRANSLATE_TONE",
		"CORPTRANSLATE_VOICE_CMD",
		"CORPTRANSLATE_SHARE_CMD",
		"CORPTRANSLATE_LOG_LEVEL",
	} {
		t.Setenv(k, "")
	}
	config.ResetGlobalForTesting()
	t.Cleanup(config.ResetGlobalForTesting)
	return dir
}

// fakeGemini serves generateContent with a fixed status and body and
// records each request body.
type fakeGemini struct {
	*httptest.Server
	calls  atomic.Int32
	mu     sync.Mutex
	bodies []string
}

func newFakeGemini(t *testing.T, status int, body string) *fakeGemini {
	t.Helper()
	f := &fakeGemini{}
	f.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.calls.Add(1)
		b, _ := io.ReadAll(r.Body)
		f.mu.Lock()
		f.bodies = append(f.bodies, string(b))
		f.mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(f.Close)
	return f
}

func (f *fakeGemini) lastBody() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.bodies) == 0 {
		return ""
	}
	return f.bodies[len(f.bodies)-1]
}

const successBody = `{"candidates":[{"content":{"parts":[{"text":"Subject: Alignment\n\nKind Regards"}]}}]}`

// writeConfig writes a config.toml pointing at baseURL. An empty key leaves
// the API key unset.
func writeConfig(t *testing.T, dir, baseURL, key string) {
	t.Helper()
	var sb strings.Builder
	sb.WriteString("[gemini]\n")
	fmt.Fprintf(&sb, "base_url = %q\n", baseURL)
	if key != "" {
		fmt.Fprintf(&sb, "api_key = %q\n", key)
	}
	sb.WriteString("\n[export]\n")
	fmt.Fprintf(&sb, "dir = %q\n", filepath.Join(dir, "exports"))
	sb.WriteString("share_enabled = false\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(sb.String()), 0o600))
}

type fakeClipboard struct {
	mu     sync.Mutex
	writes []string
}

func (f *fakeClipboard) Available() bool { return true }

func (f *fakeClipboard) WriteText(text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.writes = append(f.writes, text)
	return nil
}

// runCLI executes the command tree with args and stdin.
func runCLI(t *testing.T, stdin string, args []string, opts ...Option) (stdout, stderr string, err error) {
	t.Helper()
	ro := newRootOptions(opts...)
	cmd := newRootCommand(ro)

	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)

	err = cmd.ExecuteContext(context.Background())
	ro.teardown()
	return out.String(), errOut.String(), err
}

func decodeJSON(t *testing.T, s string) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal([]byte(s), &m), s)
	return m
}

// =============================================================================
// ASK
// =============================================================================

func TestAsk_PrintsTranslation(t *testing.T) {
	dir := isolate(t)
	server := newFakeGemini(t, http.StatusOK, successBody)
	writeConfig(t, dir, server.URL, "test-key")

	out, _, err := runCLI(t, "", []string{"ask", "--tone", "cold", "i", "quit"})
	require.NoError(t, err)

	assert.Contains(t, out, "Kind Regards")
	assert.Contains(t, out, "Subject: Alignment")
	assert.EqualValues(t, 1, server.calls.Load())
	assert.Contains(t, server.lastBody(), "i quit")
	assert.Contains(t, server.lastBody(), "ice-cold")
}

func TestAsk_ReadsStdin(t *testing.T) {
	dir := isolate(t)
	server := newFakeGemini(t, http.StatusOK, successBody)
	writeConfig(t, dir, server.URL, "test-key")

	out, _, err := runCLI(t, "pay me more\n", []string{"ask"})
	require.NoError(t, err)
	assert.Contains(t, out, "Kind Regards")
	assert.Contains(t, server.lastBody(), "pay me more")
}

func TestAsk_JSON(t *testing.T) {
	dir := isolate(t)
	server := newFakeGemini(t, http.StatusOK, successBody)
	writeConfig(t, dir, server.URL, "test-key")

	out, _, err := runCLI(t, "", []string{"ask", "--json", "-t", "gaslight", "you never told me"})
	require.NoError(t, err)

	resp := decodeJSON(t, out)
	assert.Equal(t, true, resp["success"])
	assert.Equal(t, "ask", resp["command"])
	data := resp["data"].(map[string]any)
	assert.Equal(t, "gaslight", data["tone"])
	assert.Equal(t, "Gaslight Boss", data["tone_label"])
	assert.Equal(t, "gemini-1.5-flash", data["model"])
	assert.Equal(t, "Subject: Alignment\n\nKind Regards", data["text"])
}

func TestAsk_RateLimited(t *testing.T) {
	dir := isolate(t)
	server := newFakeGemini(t, http.StatusTooManyRequests,
		`{"error":{"code":429,"message":"Resource has been exhausted","status":"RESOURCE_EXHAUSTED"}}`)
	writeConfig(t, dir, server.URL, "test-key")

	_, _, err := runCLI(t, "", []string{"ask", "this is bullshit"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrRateLimited))
	assert.Equal(t, ExitRateLimited, ExitCode(err))
	assert.Equal(t, model.ErrorKindRateLimited.DefaultMessage(), err.Error())
}

func TestAsk_RateLimitedJSONIsReported(t *testing.T) {
	dir := isolate(t)
	server := newFakeGemini(t, http.StatusTooManyRequests, `{}`)
	writeConfig(t, dir, server.URL, "test-key")

	out, _, err := runCLI(t, "", []string{"ask", "--json", "this is bullshit"})
	require.Error(t, err)
	assert.Equal(t, ExitRateLimited, ExitCode(err))

	resp := decodeJSON(t, out)
	assert.Equal(t, false, resp["success"])
	assert.Equal(t, "rate_limited", resp["kind"])

	var stderr bytes.Buffer
	DisplayError(&stderr, err)
	assert.Empty(t, stderr.String(), "JSON errors are not printed twice")
}

func TestAsk_MissingCredentialMakesNoCall(t *testing.T) {
	dir := isolate(t)
	server := newFakeGemini(t, http.StatusOK, successBody)
	writeConfig(t, dir, server.URL, "")

	_, _, err := runCLI(t, "", []string{"ask", "i don't care"})
	require.Error(t, err)
	assert.Equal(t, ExitConfigError, ExitCode(err))
	assert.Equal(t, model.ErrorKindMissingCredential.DefaultMessage(), err.Error())
	assert.Zero(t, server.calls.Load())
}

func TestAsk_CredentialFromEnvironment(t *testing.T) {
	dir := isolate(t)
	server := newFakeGemini(t, http.StatusOK, successBody)
	writeConfig(t, dir, server.URL, "")
	t.Setenv("GEMINI_API_KEY", "env-key")

	_, _, err := runCLI(t, "", []string{"ask", "i don't care"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, server.calls.Load())
}

func TestAsk_EmptyInputMakesNoCall(t *testing.T) {
	dir := isolate(t)
	server := newFakeGemini(t, http.StatusOK, successBody)
	writeConfig(t, dir, server.URL, "test-key")

	_, _, err := runCLI(t, "", []string{"ask", "   "})
	require.Error(t, err)
	assert.Equal(t, ExitUsageError, ExitCode(err))
	assert.Equal(t, model.ErrorKindEmptyInput.DefaultMessage(), err.Error())
	assert.Zero(t, server.calls.Load())
}

func TestAsk_UnknownTone(t *testing.T) {
	dir := isolate(t)
	server := newFakeGemini(t, http.StatusOK, successBody)
	writeConfig(t, dir, server.URL, "test-key")

	_, _, err := runCLI(t, "", []string{"ask", "--tone", "furious", "hello"})
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrUnknownTone)
	assert.Equal(t, ExitUsageError, ExitCode(err))
	assert.Contains(t, err.Error(), "passive-aggressive")
	assert.Zero(t, server.calls.Load())
}

func TestAsk_Copy(t *testing.T) {
	dir := isolate(t)
	server := newFakeGemini(t, http.StatusOK, successBody)
	writeConfig(t, dir, server.URL, "test-key")
	clip := &fakeClipboard{}

	_, stderr, err := runCLI(t, "", []string{"ask", "--copy", "fuck you"}, WithClipboard(clip))
	require.NoError(t, err)
	assert.Contains(t, stderr, export.CopiedMessage)
	assert.Equal(t, []string{"Subject: Alignment\n\nKind Regards"}, clip.writes)
}

func TestAsk_ShareWithoutFacilitySavesImage(t *testing.T) {
	dir := isolate(t)
	server := newFakeGemini(t, http.StatusOK, successBody)
	writeConfig(t, dir, server.URL, "test-key")

	out, stderr, err := runCLI(t, "", []string{"ask", "--share", "--json", "stop emailing me"})
	require.NoError(t, err)
	assert.Contains(t, stderr, "Saved")

	data := decodeJSON(t, out)["data"].(map[string]any)
	path, _ := data["image_path"].(string)
	require.NotEmpty(t, path)
	assert.FileExists(t, path)
	assert.Equal(t, filepath.Join(dir, "exports"), filepath.Dir(path))
	assert.Nil(t, data["shared"])
}

func TestAsk_SaveMarkdown(t *testing.T) {
	dir := isolate(t)
	server := newFakeGemini(t, http.StatusOK, successBody)
	writeConfig(t, dir, server.URL, "test-key")

	out, stderr, err := runCLI(t, "", []string{"ask", "--save", "--json", "this is bullshit"})
	require.NoError(t, err)
	assert.Contains(t, stderr, "Saved")

	data := decodeJSON(t, out)["data"].(map[string]any)
	path, _ := data["saved_path"].(string)
	require.NotEmpty(t, path)
	assert.Equal(t, ".md", filepath.Ext(path))

	body, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(body), "Kind Regards")
}

func TestAsk_InvalidConfig(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte("[ui]\ntheme = \"neon\"\n"), 0o600))

	_, _, err := runCLI(t, "", []string{"ask", "hello"})
	require.Error(t, err)
	assert.Equal(t, ExitConfigError, ExitCode(err))
}

// =============================================================================
// PREVIEW / TONES / VERSION
// =============================================================================

func TestPreview(t *testing.T) {
	isolate(t)

	out, _, err := runCLI(t, "", []string{"preview", "--tone", "cold", "You", "are", "STUPID"})
	require.NoError(t, err)
	assert.Equal(t, "Regards. I encourage you to revisit the documentation to gain a clearer understanding.\n", out)
}

func TestPreview_JSONAndDefaultTone(t *testing.T) {
	isolate(t)

	out, _, err := runCLI(t, "i quit\n", []string{"preview", "--json"})
	require.NoError(t, err)
	data := decodeJSON(t, out)["data"].(map[string]any)
	assert.Equal(t, "passive-aggressive", data["tone"])
	assert.Equal(t, "i quit", data["keyword"])
	assert.True(t, strings.HasSuffix(data["text"].(string), "Thanks in advance for your understanding."))
}

func TestPreview_List(t *testing.T) {
	isolate(t)

	out, _, err := runCLI(t, "", []string{"preview", "--list"})
	require.NoError(t, err)
	assert.Contains(t, out, "pay me more")
	assert.Contains(t, out, "(anything else)")

	out, _, err = runCLI(t, "", []string{"preview", "--list", "--json"})
	require.NoError(t, err)
	var resp struct {
		Data []phraseOutput `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	require.NotEmpty(t, resp.Data)
	assert.Equal(t, "fuck you", resp.Data[0].Keyword)
}

func TestPreview_EmptyInput(t *testing.T) {
	isolate(t)

	_, _, err := runCLI(t, "", []string{"preview"})
	require.Error(t, err)
	assert.Equal(t, ExitUsageError, ExitCode(err))
}

func TestTones(t *testing.T) {
	isolate(t)

	out, _, err := runCLI(t, "", []string{"tones"})
	require.NoError(t, err)
	for _, id := range []string{"passive-aggressive", "cold", "gaslight", "condescending"} {
		assert.Contains(t, out, id)
	}
	assert.Contains(t, out, "ID")
	assert.Contains(t, out, "LABEL")
	assert.Contains(t, out, "Passive Aggressive (default)")
	assert.Contains(t, out, "4.  condescending")
}

func TestTones_JSON(t *testing.T) {
	isolate(t)

	out, _, err := runCLI(t, "", []string{"tones", "--json"})
	require.NoError(t, err)
	data := decodeJSON(t, out)["data"].([]any)
	require.Len(t, data, 4)
	first := data[0].(map[string]any)
	assert.Equal(t, "passive-aggressive", first["id"])
	assert.Equal(t, true, first["default"])
}

func TestVersion(t *testing.T) {
	isolate(t)

	out, _, err := runCLI(t, "", []string{"version", "--short"})
	require.NoError(t, err)
	assert.Equal(t, Version+"\n", out)

	out, _, err = runCLI(t, "", []string{"version"})
	require.NoError(t, err)
	assert.Contains(t, out, "Savage Edition")
}

// =============================================================================
// CONFIG
// =============================================================================

func TestConfig_InitGetSet(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "config.toml")

	out, _, err := runCLI(t, "", []string{"config", "path"})
	require.NoError(t, err)
	assert.Equal(t, path+"\n", out)

	_, _, err = runCLI(t, "", []string{"config", "init"})
	require.NoError(t, err)
	assert.FileExists(t, path)

	_, _, err = runCLI(t, "", []string{"config", "init"})
	require.Error(t, err, "init refuses to overwrite")
	_, _, err = runCLI(t, "", []string{"config", "init", "--force"})
	require.NoError(t, err)

	out, _, err = runCLI(t, "", []string{"config", "set", "tone.default", "cold"})
	require.NoError(t, err)
	assert.Equal(t, "tone.default = cold\n", out)

	out, _, err = runCLI(t, "", []string{"config", "get", "tone.default"})
	require.NoError(t, err)
	assert.Equal(t, "cold\n", out)

	cfg, err := config.LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, "cold", cfg.Tone.Default)
}

func TestConfig_InitJSON(t *testing.T) {
	dir := isolate(t)

	out, _, err := runCLI(t, "", []string{"config", "init", "--json"})
	require.NoError(t, err)
	path := filepath.Join(dir, "config.json")
	assert.Equal(t, "Wrote "+path+"\n", out)

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, config.Default().Gemini.Model, cfg.Gemini.Model)
}

func TestConfig_SetRejectsInvalidValue(t *testing.T) {
	dir := isolate(t)

	_, _, err := runCLI(t, "", []string{"config", "set", "ui.theme", "neon"})
	require.Error(t, err)
	assert.Equal(t, ExitConfigError, ExitCode(err))
	assert.NoFileExists(t, filepath.Join(dir, "config.toml"))

	_, _, err = runCLI(t, "", []string{"config", "set", "gemini.nope", "x"})
	require.Error(t, err)
}

func TestConfig_SetDoesNotPersistEnvironment(t *testing.T) {
	dir := isolate(t)
	t.Setenv("CORPTRANSLATE_MODEL", "from-env")

	_, _, err := runCLI(t, "", []string{"config", "set", "ui.theme", "light"})
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "config.toml"))
	require.NoError(t, err)
	assert.NotContains(t, string(data), "from-env")
}

func TestConfig_ShowRedactsKey(t *testing.T) {
	dir := isolate(t)
	writeConfig(t, dir, "https://example.invalid", "super-secret")

	out, _, err := runCLI(t, "", []string{"config", "show"})
	require.NoError(t, err)
	assert.NotContains(t, out, "super-secret")
	assert.Contains(t, out, "[REDACTED]")
	assert.Contains(t, out, "# api key: config file")

	out, _, err = runCLI(t, "", []string{"config", "get", "gemini.api_key"})
	require.NoError(t, err)
	assert.Equal(t, "[REDACTED]\n", out)
}

// =============================================================================
// ERRORS
// =============================================================================

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"plain", errors.New("boom"), ExitGeneralError},
		{"empty input", model.ErrEmptyInput, ExitUsageError},
		{"unknown tone", fmt.Errorf("x: %w", model.ErrUnknownTone), ExitUsageError},
		{"missing key", model.ErrMissingCredential, ExitConfigError},
		{"rate limited", model.RateLimited(60).AsError(), ExitRateLimited},
		{"network", model.Failure(model.ErrorKindNetworkFailure, "dial").AsError(), ExitNetworkError},
		{"remote", model.ErrRemote, ExitNetworkError},
		{"unsupported", model.ErrUnsupportedCapability, ExitUnsupported},
		{"export", model.ErrExportFailure, ExitExportError},
		{"config", fmt.Errorf("invalid config: %w", config.ValidateErrors{{Field: "ui.theme", Message: "bad"}}), ExitConfigError},
		{"command wraps", NewCommandError("ask", "slow down", model.ErrRateLimited), ExitRateLimited},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExitCode(tt.err))
		})
	}
}

func TestDisplayError(t *testing.T) {
	var buf bytes.Buffer
	DisplayError(&buf, errors.New("boom"))
	assert.Equal(t, "Error: boom\n", buf.String())

	buf.Reset()
	DisplayError(&buf, nil)
	assert.Empty(t, buf.String())
}
