// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points the config directory at a temp dir and clears every
// environment variable the loader reads.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv(HomeEnv, dir)
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
	return dir
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

// =============================================================================
// LOAD
// =============================================================================

func TestLoad_DefaultsWhenNoFile(t *testing.T) {
	isolate(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, "gemini-1.5-flash", cfg.Gemini.Model)
	assert.Equal(t, "passive-aggressive", cfg.Tone.Default)
	assert.Equal(t, 60*time.Second, cfg.RequestTimeout())
}

func TestLoad_TOML(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, "config.toml"), `
[gemini]
model = "gemini-1.5-pro"
timeout_secs = 20

[tone]
default = "cold"

[voice]
command = "whisper-cli --once"

[ui]
theme = "Light"
`)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "gemini-1.5-pro", cfg.Gemini.Model)
	assert.Equal(t, 20, cfg.Gemini.TimeoutSecs)
	assert.Equal(t, "cold", cfg.Tone.Default)
	assert.Equal(t, "whisper-cli --once", cfg.Voice.Command)
	assert.Equal(t, "light", cfg.UI.Theme)
	// Untouched sections keep their defaults.
	assert.Equal(t, 640, cfg.Export.ImageWidth)
	assert.Equal(t, "GEMINI_API_KEY", cfg.Gemini.APIKeyEnv)
}

func TestLoad_TOMLWinsOverJSON(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, "config.toml"), "[tone]\ndefault = \"cold\"\n")
	writeFile(t, filepath.Join(dir, "config.json"), `{"tone":{"default":"gaslight"}}`)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "cold", cfg.Tone.Default)
}

func TestLoad_JSON(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, "config.json"), `{"tone":{"default":"gaslight"},"export":{"image_width":800}}`)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "gaslight", cfg.Tone.Default)
	assert.Equal(t, 800, cfg.Export.ImageWidth)
}

func TestLoad_UnknownKeyRejected(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, "config.toml"), "[gemini]\nmodle = \"x\"\n")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "gemini.modle")
}

func TestLoad_InvalidValues(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, "config.toml"), `
[gemini]
timeout_secs = 900

[tone]
default = "sarcastic"
`)

	_, err := Load()
	require.Error(t, err)

	var verrs ValidateErrors
	require.True(t, errors.As(err, &verrs))
	fields := make([]string, len(verrs))
	for i, e := range verrs {
		fields[i] = e.Field
	}
	assert.ElementsMatch(t, []string{"gemini.timeout_secs", "tone.default"}, fields)
}

func TestLoad_FixesPermissions(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("permission bits not meaningful on windows")
	}
	dir := isolate(t)
	path := filepath.Join(dir, "config.toml")
	writeFile(t, path, "[tone]\ndefault = \"cold\"\n")
	require.NoError(t, os.Chmod(path, 0o644))

	_, err := LoadFromPath(path)
	require.NoError(t, err)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

// =============================================================================
// ENVIRONMENT
// =============================================================================

func TestApplyEnvOverrides(t *testing.T) {
	isolate(t)
	t.Setenv("CORPTRANSLATE_MODEL", "gemini-2.0-flash")
	t.Setenv("CORPTRANSLATE_TONE", "condescending")
	t.Setenv("CORPTRANSLATE_VOICE_CMD", "stt")
	t.Setenv("CORPTRANSLATE_SHARE_CMD", "feh")
	t.Setenv("CORPTRANSLATE_LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "gemini-2.0-flash", cfg.Gemini.Model)
	assert.Equal(t, "condescending", cfg.Tone.Default)
	assert.Equal(t, "stt", cfg.Voice.Command)
	assert.Equal(t, "feh", cfg.Export.ShareCommand)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestCredential_Precedence(t *testing.T) {
	isolate(t)
	cfg := Default()

	assert.Equal(t, "", cfg.Credential())
	assert.Equal(t, "not set", cfg.CredentialSource())

	cfg.Gemini.APIKey = "  from-file  "
	assert.Equal(t, "from-file", cfg.Credential())
	assert.Equal(t, "config file", cfg.CredentialSource())

	t.Setenv("CORPTRANSLATE_API_KEY", "from-corp-env")
	assert.Equal(t, "from-corp-env", cfg.Credential())

	t.Setenv("GEMINI_API_KEY", "from-gemini-env")
	assert.Equal(t, "from-gemini-env", cfg.Credential())
	assert.Equal(t, "$GEMINI_API_KEY", cfg.CredentialSource())

	cfg.Gemini.APIKeyEnv = "MY_KEY"
	t.Setenv("MY_KEY", "custom")
	assert.Equal(t, "custom", cfg.Credential())
}

// =============================================================================
// VALIDATION / MIGRATION
// =============================================================================

func TestValidate(t *testing.T) {
	tests := []struct {
		name  string
		edit  func(*Config)
		field string
	}{
		{"model with slash", func(c *Config) { c.Gemini.Model = "a/b" }, "gemini.model"},
		{"base url scheme", func(c *Config) { c.Gemini.BaseURL = "ftp://x" }, "gemini.base_url"},
		{"timeout zero", func(c *Config) { c.Gemini.TimeoutSecs = 0 }, "gemini.timeout_secs"},
		{"env name", func(c *Config) { c.Gemini.APIKeyEnv = "1BAD" }, "gemini.api_key_env"},
		{"tone", func(c *Config) { c.Tone.Default = "nice" }, "tone.default"},
		{"voice timeout", func(c *Config) { c.Voice.TimeoutSecs = 500 }, "voice.timeout_secs"},
		{"voice command", func(c *Config) { c.Voice.Command = `stt "unterminated` }, "voice.command"},
		{"share command", func(c *Config) { c.Export.ShareCommand = `open 'x` }, "export.share_command"},
		{"image width", func(c *Config) { c.Export.ImageWidth = 100 }, "export.image_width"},
		{"theme", func(c *Config) { c.UI.Theme = "neon" }, "ui.theme"},
		{"log level", func(c *Config) { c.Logging.Level = "loud" }, "logging.level"},
	}

	require.NoError(t, Default().Validate())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.edit(cfg)
			err := cfg.Validate()
			require.Error(t, err)

			var verrs ValidateErrors
			require.True(t, errors.As(err, &verrs))
			require.Len(t, verrs, 1)
			assert.Equal(t, tt.field, verrs[0].Field)
		})
	}
}

func TestMigrate_LegacyToneNames(t *testing.T) {
	cfg := Default()
	cfg.Tone.Default = "Ice Cold"
	require.NoError(t, cfg.Migrate())
	assert.Equal(t, "cold", cfg.Tone.Default)

	cfg.Tone.Default = "gaslight-boss"
	require.NoError(t, cfg.Migrate())
	assert.Equal(t, "gaslight", cfg.Tone.Default)

	cfg.Version = "beta"
	assert.Error(t, cfg.Migrate())
}

func TestSetDefaults_NormalizesModelAndURL(t *testing.T) {
	cfg := &Config{}
	cfg.Gemini.Model = "models/gemini-1.5-pro"
	cfg.Gemini.BaseURL = "https://example.test/v1beta/"
	cfg.SetDefaults()

	assert.Equal(t, "gemini-1.5-pro", cfg.Gemini.Model)
	assert.Equal(t, "https://example.test/v1beta", cfg.Gemini.BaseURL)
	assert.Equal(t, 60, cfg.Gemini.TimeoutSecs)
	assert.Equal(t, "passive-aggressive", cfg.Tone.Default)
}

// =============================================================================
// SAVE / GET / SET
// =============================================================================

func TestSaveTOML_RoundTrip(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "config.toml")

	cfg := Default()
	cfg.Tone.Default = "gaslight"
	cfg.Export.ShareEnabled = false
	require.NoError(t, SaveTOML(cfg, path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	loaded, err := LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestGetSet(t *testing.T) {
	cfg := Default()

	v, err := cfg.Get("gemini.model")
	require.NoError(t, err)
	assert.Equal(t, "gemini-1.5-flash", v)

	require.NoError(t, cfg.Set("gemini.api_key_env", "OTHER_KEY"))
	assert.Equal(t, "OTHER_KEY", cfg.Gemini.APIKeyEnv)

	require.NoError(t, cfg.Set("export.image_width", "1024"))
	assert.Equal(t, 1024, cfg.Export.ImageWidth)

	require.NoError(t, cfg.Set("ui.show_paywall_button", "false"))
	assert.False(t, cfg.UI.ShowPaywallButton)

	assert.Error(t, cfg.Set("export.image_width", "wide"))
	assert.Error(t, cfg.Set("ui.show_paywall_button", "maybe"))
	assert.Error(t, cfg.Set("nope.key", "x"))
	_, err = cfg.Get("gemini")
	assert.Error(t, err)
	_, err = cfg.Get("")
	assert.Error(t, err)
}

func TestKeys_AllResolve(t *testing.T) {
	cfg := Default()
	for _, k := range Keys() {
		_, err := cfg.Get(k)
		assert.NoError(t, err, k)
	}
}

func TestString_RedactsAPIKey(t *testing.T) {
	cfg := Default()
	cfg.Gemini.APIKey = "AIzaSecretValue"

	out := cfg.String()
	assert.NotContains(t, out, "AIzaSecretValue")
	assert.Contains(t, out, "[REDACTED]")
	assert.Equal(t, "AIzaSecretValue", cfg.Gemini.APIKey, "original is untouched")
}

func TestLogPath(t *testing.T) {
	dir := isolate(t)
	cfg := Default()

	p, err := cfg.LogPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "logs", "corptranslate.log"), p)

	cfg.Logging.File = "/tmp/custom.log"
	p, err = cfg.LogPath()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/custom.log", p)
}

// =============================================================================
// GLOBAL
// =============================================================================

// TestConfig_ConcurrentAccess checks Global and SetGlobal under contention.
// Run with: go test -race ./internal/config/
func TestConfig_ConcurrentAccess(t *testing.T) {
	isolate(t)
	ResetGlobalForTesting()
	t.Cleanup(ResetGlobalForTesting)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			c := Default()
			c.Tone.Default = "cold"
			SetGlobal(c)
		}()
		go func() {
			defer wg.Done()
			if Global() == nil {
				t.Error("Global() returned nil")
			}
		}()
	}
	wg.Wait()
}

func TestReloadGlobal(t *testing.T) {
	dir := isolate(t)
	ResetGlobalForTesting()
	t.Cleanup(ResetGlobalForTesting)

	assert.Equal(t, "passive-aggressive", Global().Tone.Default)

	writeFile(t, filepath.Join(dir, "config.toml"), "[tone]\ndefault = \"condescending\"\n")
	require.NoError(t, ReloadGlobal())
	assert.Equal(t, "condescending", Global().Tone.Default)
}

// =============================================================================
// WATCHER
// =============================================================================

func TestWatcher_ReloadsOnWrite(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "config.toml")

	w, err := NewWatcher(dir, 20*time.Millisecond, Load)
	require.NoError(t, err)
	defer w.Close()

	writeFile(t, path, "[tone]\ndefault = \"cold\"\n")

	select {
	case cfg := <-w.Changes():
		require.NotNil(t, cfg)
		assert.Equal(t, "cold", cfg.Tone.Default)
	case <-time.After(5 * time.Second):
		t.Fatal("no reload after config write")
	}
}

func TestWatcher_ReportsInvalidConfig(t *testing.T) {
	dir := isolate(t)

	w, err := NewWatcher(dir, 20*time.Millisecond, Load)
	require.NoError(t, err)
	defer w.Close()

	writeFile(t, filepath.Join(dir, "config.toml"), "[tone]\ndefault = \"nice\"\n")

	select {
	case err := <-w.Errors():
		assert.Contains(t, err.Error(), "tone.default")
	case <-time.After(5 * time.Second):
		t.Fatal("no error after invalid config write")
	}
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	dir := isolate(t)
	calls := 0
	var mu sync.Mutex
	load := func() (*Config, error) {
		mu.Lock()
		calls++
		mu.Unlock()
		return Default(), nil
	}

	w, err := NewWatcher(dir, 10*time.Millisecond, load)
	require.NoError(t, err)

	writeFile(t, filepath.Join(dir, "notes.txt"), "hello")
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, w.Close())

	mu.Lock()
	defer mu.Unlock()
	assert.Zero(t, calls)

	_, open := <-w.Changes()
	assert.False(t, open, "changes channel closed after Close")
}
