// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/jeranaias/corptranslate/internal/logging"
	"github.com/jeranaias/corptranslate/internal/tone"
	"github.com/jeranaias/corptranslate/internal/util"
)

// CurrentVersion is the config schema version written by Save.
const CurrentVersion = "1"

// HomeEnv overrides the configuration directory.
const HomeEnv = "CORPTRANSLATE_HOME"

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete corptranslate configuration.
type Config struct {
	Version string `toml:"version" json:"version"`

	Gemini  GeminiConfig  `toml:"gemini" json:"gemini"`
	Tone    ToneConfig    `toml:"tone" json:"tone"`
	Voice   VoiceConfig   `toml:"voice" json:"voice"`
	Export  ExportConfig  `toml:"export" json:"export"`
	UI      UIConfig      `toml:"ui" json:"ui"`
	Logging LoggingConfig `toml:"logging" json:"logging"`
}

// GeminiConfig contains completion endpoint settings.
type GeminiConfig struct {
	// APIKey is used when neither environment variable is set.
	APIKey string `toml:"api_key" json:"api_key"`
	// APIKeyEnv names the environment variable holding the key.
	APIKeyEnv string `toml:"api_key_env" json:"api_key_env"`
	// Model is the Gemini model name.
	Model string `toml:"model" json:"model"`
	// BaseURL is the API root, without the /models suffix.
	BaseURL string `toml:"base_url" json:"base_url"`
	// TimeoutSecs bounds one request.
	TimeoutSecs int `toml:"timeout_secs" json:"timeout_secs"`
}

// ToneConfig contains tone selection settings.
type ToneConfig struct {
	// Default is the tone selected at startup.
	Default string `toml:"default" json:"default"`
}

// VoiceConfig contains speech input settings.
type VoiceConfig struct {
	// Command is a speech-to-text command line that prints the transcript.
	// Empty disables speech input.
	Command string `toml:"command" json:"command"`
	// TimeoutSecs bounds one listening session.
	TimeoutSecs int `toml:"timeout_secs" json:"timeout_secs"`
}

// ExportConfig contains clipboard and share settings.
type ExportConfig struct {
	// Dir is where share images and Markdown files are written.
	Dir string `toml:"dir" json:"dir"`
	// ShareEnabled toggles the share facility.
	ShareEnabled bool `toml:"share_enabled" json:"share_enabled"`
	// ShareCommand opens the exported file. Empty uses the platform opener.
	ShareCommand string `toml:"share_command" json:"share_command"`
	// ImageWidth is the share card width in pixels.
	ImageWidth int `toml:"image_width" json:"image_width"`
}

// UIConfig contains terminal UI settings.
type UIConfig struct {
	// Theme is "auto", "dark" or "light".
	Theme string `toml:"theme" json:"theme"`
	// ShowPaywallButton shows the "Upgrade to Pro" button.
	ShowPaywallButton bool `toml:"show_paywall_button" json:"show_paywall_button"`
}

// LoggingConfig contains log settings.
type LoggingConfig struct {
	// Level is debug, info, warn or error.
	Level string `toml:"level" json:"level"`
	// File is the log file path. Empty uses the default under the config dir.
	File string `toml:"file" json:"file"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Version: CurrentVersion,
		Gemini: GeminiConfig{
			APIKeyEnv:   "GEMINI_API_KEY",
			Model:       "gemini-1.5-flash",
			BaseURL:     "https://generativelanguage.googleapis.com/v1beta",
			TimeoutSecs: 60,
		},
		Tone: ToneConfig{
			Default: tone.DefaultToneID,
		},
		Voice: VoiceConfig{
			TimeoutSecs: 15,
		},
		Export: ExportConfig{
			ShareEnabled: true,
			ImageWidth:   640,
		},
		UI: UIConfig{
			Theme:             "auto",
			ShowPaywallButton: true,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// RequestTimeout returns the Gemini request timeout.
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.Gemini.TimeoutSecs) * time.Second
}

// VoiceTimeout returns the listening session timeout.
func (c *Config) VoiceTimeout() time.Duration {
	return time.Duration(c.Voice.TimeoutSecs) * time.Second
}

// Credential resolves the API key: the variable named by api_key_env, then
// CORPTRANSLATE_API_KEY (already folded into APIKey by ApplyEnvOverrides),
// then the file value. Whitespace is trimmed.
func (c *Config) Credential() string {
	if c.Gemini.APIKeyEnv != "" {
		if v := strings.TrimSpace(os.Getenv(c.Gemini.APIKeyEnv)); v != "" {
			return v
		}
	}
	if v := strings.TrimSpace(os.Getenv("CORPTRANSLATE_API_KEY")); v != "" {
		return v
	}
	return strings.TrimSpace(c.Gemini.APIKey)
}

// CredentialSource describes where Credential found the key, for display.
func (c *Config) CredentialSource() string {
	if c.Gemini.APIKeyEnv != "" && strings.TrimSpace(os.Getenv(c.Gemini.APIKeyEnv)) != "" {
		return "$" + c.Gemini.APIKeyEnv
	}
	if strings.TrimSpace(os.Getenv("CORPTRANSLATE_API_KEY")) != "" {
		return "$CORPTRANSLATE_API_KEY"
	}
	if strings.TrimSpace(c.Gemini.APIKey) != "" {
		return "config file"
	}
	return "not set"
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// ConfigDir returns the configuration directory path.
func ConfigDir() (string, error) {
	if dir := strings.TrimSpace(os.Getenv(HomeEnv)); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".corptranslate"), nil
}

// ConfigPathTOML returns the path to the TOML config file.
func ConfigPathTOML() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// ConfigPathJSON returns the path to the JSON config file.
func ConfigPathJSON() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// LogPath returns the log file path: logging.file when set, otherwise
// logs/corptranslate.log under the config directory.
func (c *Config) LogPath() (string, error) {
	if c.Logging.File != "" {
		return c.Logging.File, nil
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "logs", logging.DefaultFileName), nil
}

// EnsureConfigDir ensures the config directory exists.
func EnsureConfigDir() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0o700)
}

// ensureSecurePermissions tightens a config file to 0600.
// SECURITY: Config files may hold the API key.
func ensureSecurePermissions(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	mode := info.Mode().Perm()
	if mode != 0o600 {
		if err := os.Chmod(path, 0o600); err != nil {
			return fmt.Errorf("failed to fix insecure permissions (was %o): %w", mode, err)
		}
	}
	return nil
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// Load loads configuration from the default locations. TOML wins over JSON;
// with neither present the defaults are used. Environment overrides,
// migration, defaults and validation are applied in that order.
func Load() (*Config, error) {
	tomlPath, err := ConfigPathTOML()
	if err == nil {
		if _, statErr := os.Stat(tomlPath); statErr == nil {
			return LoadFromPath(tomlPath)
		}
	}

	jsonPath, err := ConfigPathJSON()
	if err == nil {
		if _, statErr := os.Stat(jsonPath); statErr == nil {
			return LoadFromPath(jsonPath)
		}
	}

	cfg := Default()
	if err := cfg.finish(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFromPath loads configuration from a specific file. Files ending in
// .json are decoded as JSON, everything else as TOML.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()

	if strings.HasSuffix(strings.ToLower(path), ".json") {
		if err := LoadJSON(cfg, path); err != nil {
			return nil, fmt.Errorf("failed to load JSON config from %s: %w", path, err)
		}
	} else {
		if err := LoadTOML(cfg, path); err != nil {
			return nil, fmt.Errorf("failed to load TOML config from %s: %w", path, err)
		}
	}

	if err := cfg.finish(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// finish runs the post-decode pipeline.
func (c *Config) finish() error {
	c.ApplyEnvOverrides()
	if err := c.Migrate(); err != nil {
		return fmt.Errorf("config migration failed: %w", err)
	}
	c.SetDefaults()
	if err := c.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// LoadTOML decodes a TOML file over cfg. Unknown keys are rejected so typos
// do not silently fall back to defaults.
// SECURITY: Checks and fixes file permissions on load.
func LoadTOML(cfg *Config, path string) error {
	if err := ensureSecurePermissions(path); err != nil {
		logging.For("config").Warn().Err(err).Str("path", path).Msg("could not ensure secure permissions")
	}

	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return fmt.Errorf("failed to decode TOML file: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
	}
	return nil
}

// LoadJSON decodes a JSON file over cfg.
// SECURITY: Checks and fixes file permissions on load.
func LoadJSON(cfg *Config, path string) error {
	if err := ensureSecurePermissions(path); err != nil {
		logging.For("config").Warn().Err(err).Str("path", path).Msg("could not ensure secure permissions")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read JSON file: %w", err)
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to decode JSON file: %w", err)
	}
	return nil
}

// =============================================================================
// SAVE FUNCTIONS
// =============================================================================

// Save saves the configuration to the default TOML file.
func Save(cfg *Config) error {
	path, err := ConfigPathTOML()
	if err != nil {
		return err
	}
	return SaveTOML(cfg, path)
}

// SaveTOML writes the configuration as TOML with a header comment.
// RELIABILITY: Atomic write prevents a half-written config on crash.
// SECURITY: Written with 0600 permissions.
func SaveTOML(cfg *Config, path string) error {
	var sb strings.Builder
	sb.WriteString("# corptranslate configuration file\n")
	sb.WriteString("#\n")
	sb.WriteString("# The API key is read from the variable named by gemini.api_key_env\n")
	sb.WriteString("# (GEMINI_API_KEY by default). Prefer that over gemini.api_key.\n\n")

	if err := toml.NewEncoder(&sb).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := util.AtomicWriteFile(path, []byte(sb.String()), 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// SaveJSON writes the configuration as indented JSON.
// SECURITY: Written with 0600 permissions.
func SaveJSON(cfg *Config, path string) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := util.AtomicWriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateErrors is a collection of validation errors.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	msgs := make([]string, len(e))
	for i, err := range e {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "; ")
}

var envNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Validate checks every setting and returns all problems at once.
func (c *Config) Validate() error {
	var errs ValidateErrors
	add := func(field, format string, args ...any) {
		errs = append(errs, ValidationError{Field: field, Message: fmt.Sprintf(format, args...)})
	}

	// Gemini
	if m := c.Gemini.Model; m == "" || strings.ContainsAny(m, " /?#") {
		add("gemini.model", "invalid model name %q", m)
	}
	if u, err := url.Parse(c.Gemini.BaseURL); err != nil {
		add("gemini.base_url", "invalid URL: %v", err)
	} else if (u.Scheme != "https" && u.Scheme != "http") || u.Host == "" {
		add("gemini.base_url", "must be an http(s) URL with a host, got %q", c.Gemini.BaseURL)
	}
	if c.Gemini.TimeoutSecs < 1 || c.Gemini.TimeoutSecs > 300 {
		add("gemini.timeout_secs", "must be between 1 and 300, got %d", c.Gemini.TimeoutSecs)
	}
	if c.Gemini.APIKeyEnv != "" && !envNamePattern.MatchString(c.Gemini.APIKeyEnv) {
		add("gemini.api_key_env", "invalid environment variable name %q", c.Gemini.APIKeyEnv)
	}

	// Tone
	if !tone.Default().Has(c.Tone.Default) {
		add("tone.default", "unknown tone %q, must be one of: %s", c.Tone.Default, strings.Join(tone.Default().IDs(), ", "))
	}

	// Voice
	if c.Voice.TimeoutSecs < 1 || c.Voice.TimeoutSecs > 120 {
		add("voice.timeout_secs", "must be between 1 and 120, got %d", c.Voice.TimeoutSecs)
	}
	if c.Voice.Command != "" {
		if _, err := util.ParseCommand(c.Voice.Command); err != nil {
			add("voice.command", "%v", err)
		}
	}

	// Export
	if c.Export.ShareCommand != "" {
		if _, err := util.ParseCommand(c.Export.ShareCommand); err != nil {
			add("export.share_command", "%v", err)
		}
	}
	if c.Export.ImageWidth < 320 || c.Export.ImageWidth > 2000 {
		add("export.image_width", "must be between 320 and 2000, got %d", c.Export.ImageWidth)
	}

	// UI
	switch c.UI.Theme {
	case "auto", "dark", "light":
	default:
		add("ui.theme", "invalid theme %q, must be one of: auto, dark, light", c.UI.Theme)
	}

	// Logging
	if _, err := logging.ParseLevel(c.Logging.Level); err != nil {
		add("logging.level", "%v", err)
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// SetDefaults fills zero values with defaults.
func (c *Config) SetDefaults() {
	d := Default()
	if c.Version == "" {
		c.Version = d.Version
	}
	if c.Gemini.Model == "" {
		c.Gemini.Model = d.Gemini.Model
	}
	if c.Gemini.BaseURL == "" {
		c.Gemini.BaseURL = d.Gemini.BaseURL
	}
	if c.Gemini.TimeoutSecs == 0 {
		c.Gemini.TimeoutSecs = d.Gemini.TimeoutSecs
	}
	if c.Tone.Default == "" {
		c.Tone.Default = d.Tone.Default
	}
	if c.Voice.TimeoutSecs == 0 {
		c.Voice.TimeoutSecs = d.Voice.TimeoutSecs
	}
	if c.Export.ImageWidth == 0 {
		c.Export.ImageWidth = d.Export.ImageWidth
	}
	if c.UI.Theme == "" {
		c.UI.Theme = d.UI.Theme
	}
	if c.Logging.Level == "" {
		c.Logging.Level = d.Logging.Level
	}
	c.Gemini.BaseURL = strings.TrimRight(c.Gemini.BaseURL, "/")
	c.Gemini.Model = strings.TrimPrefix(strings.TrimSpace(c.Gemini.Model), "models/")
}

// legacyToneIDs maps display labels people tend to type to tone IDs.
var legacyToneIDs = map[string]string{
	"passive aggressive": "passive-aggressive",
	"passive_aggressive": "passive-aggressive",
	"ice cold":           "cold",
	"ice-cold":           "cold",
	"gaslight boss":      "gaslight",
	"gaslight-boss":      "gaslight",
}

// Migrate upgrades older or hand-edited settings to the current schema.
func (c *Config) Migrate() error {
	if id, ok := legacyToneIDs[strings.ToLower(strings.TrimSpace(c.Tone.Default))]; ok {
		c.Tone.Default = id
	}
	c.UI.Theme = strings.ToLower(strings.TrimSpace(c.UI.Theme))
	if c.Version != "" && c.Version != CurrentVersion {
		if _, err := strconv.Atoi(c.Version); err != nil {
			return fmt.Errorf("unrecognized config version %q", c.Version)
		}
		c.Version = CurrentVersion
	}
	return nil
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies environment variable overrides to the config.
//
// Supported environment variables:
//   - CORPTRANSLATE_MODEL: overrides gemini.model
//   - CORPTRANSLATE_API_KEY: overrides gemini.api_key
//   - CORPTRANSLATE_TONE: overrides tone.default
//   - CORPTRANSLATE_VOICE_CMD: overrides voice.command
//   - CORPTRANSLATE_SHARE_CMD: overrides export.share_command
//   - CORPTRANSLATE_LOG_LEVEL: overrides logging.level
func (c *Config) ApplyEnvOverrides() {
	if v := os.Getenv("CORPTRANSLATE_MODEL"); v != "" {
		c.Gemini.Model = v
	}
	if v := os.Getenv("CORPTRANSLATE_API_KEY"); v != "" {
		c.Gemini.APIKey = v
	}
	if v := os.Getenv("CORPTRANSLATE_TONE"); v != "" {
		c.Tone.Default = v
	}
	if v := os.Getenv("CORPTRANSLATE_VOICE_CMD"); v != "" {
		c.Voice.Command = v
	}
	if v := os.Getenv("CORPTRANSLATE_SHARE_CMD"); v != "" {
		c.Export.ShareCommand = v
	}
	if v := os.Getenv("CORPTRANSLATE_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
}

// =============================================================================
// GET/SET HELPERS (DOT NOTATION)
// =============================================================================

// Keys lists every settable key in dot notation.
func Keys() []string {
	return []string{
		"gemini.api_key",
		"gemini.api_key_env",
		"gemini.model",
		"gemini.base_url",
		"gemini.timeout_secs",
		"tone.default",
		"voice.command",
		"voice.timeout_secs",
		"export.dir",
		"export.share_enabled",
		"export.share_command",
		"export.image_width",
		"ui.theme",
		"ui.show_paywall_button",
		"logging.level",
		"logging.file",
	}
}

// lookup walks a dot-notation key to its struct field.
func (c *Config) lookup(key string) (reflect.Value, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return reflect.Value{}, errors.New("empty key")
	}
	parts := strings.Split(key, ".")
	v := reflect.ValueOf(c).Elem()
	for i, part := range parts {
		fieldName := normalizeFieldName(part)
		field := v.FieldByNameFunc(func(name string) bool {
			return strings.EqualFold(name, fieldName)
		})
		if !field.IsValid() {
			return reflect.Value{}, fmt.Errorf("unknown key: %s", strings.Join(parts[:i+1], "."))
		}
		if i == len(parts)-1 {
			if field.Kind() == reflect.Struct {
				return reflect.Value{}, fmt.Errorf("key %s is a section, not a value", key)
			}
			return field, nil
		}
		if field.Kind() != reflect.Struct {
			return reflect.Value{}, fmt.Errorf("key %s is not a section", strings.Join(parts[:i+1], "."))
		}
		v = field
	}
	return reflect.Value{}, fmt.Errorf("invalid key: %s", key)
}

// Get returns a value by dot-notation key (e.g. "gemini.model").
func (c *Config) Get(key string) (any, error) {
	field, err := c.lookup(key)
	if err != nil {
		return nil, err
	}
	return field.Interface(), nil
}

// Set assigns a value by dot-notation key, converting strings to the field
// type. The config is not revalidated.
func (c *Config) Set(key, value string) error {
	field, err := c.lookup(key)
	if err != nil {
		return err
	}
	switch field.Kind() {
	case reflect.String:
		field.SetString(value)
	case reflect.Int, reflect.Int64:
		n, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
		if err != nil {
			return fmt.Errorf("invalid integer value for %s: %w", key, err)
		}
		field.SetInt(n)
	case reflect.Bool:
		b, err := strconv.ParseBool(strings.TrimSpace(value))
		if err != nil {
			return fmt.Errorf("invalid boolean value for %s: %w", key, err)
		}
		field.SetBool(b)
	default:
		return fmt.Errorf("cannot set %s of type %s", key, field.Type())
	}
	return nil
}

// normalizeFieldName converts snake_case or kebab-case to a Go field name.
func normalizeFieldName(name string) string {
	parts := strings.FieldsFunc(name, func(r rune) bool {
		return r == '_' || r == '-'
	})
	var result strings.Builder
	for _, part := range parts {
		result.WriteString(strings.ToUpper(part[:1]))
		result.WriteString(strings.ToLower(part[1:]))
	}
	return result.String()
}

// =============================================================================
// DISPLAY
// =============================================================================

// Clone returns a copy of the config. All fields are values, so a shallow
// copy is a deep copy.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// Redacted returns a copy with secrets masked.
func (c *Config) Redacted() *Config {
	safe := c.Clone()
	if safe.Gemini.APIKey != "" {
		safe.Gemini.APIKey = "[REDACTED]"
	}
	return safe
}

// String renders the config as TOML with the API key redacted.
// SECURITY: Never prints secrets.
func (c *Config) String() string {
	var sb strings.Builder
	if err := toml.NewEncoder(&sb).Encode(c.Redacted()); err != nil {
		return fmt.Sprintf("<config: %v>", err)
	}
	return sb.String()
}

// =============================================================================
// SINGLETON PATTERN (THREAD-SAFE)
// =============================================================================

var (
	globalConfig     *Config
	globalConfigOnce sync.Once
	globalConfigMu   sync.RWMutex
)

// Global returns the global configuration instance, loading it on first
// access. Load errors fall back to defaults.
func Global() *Config {
	globalConfigOnce.Do(func() {
		cfg, err := Load()
		if err != nil {
			logging.For("config").Warn().Err(err).Msg("using default configuration")
			cfg = Default()
		}
		globalConfigMu.Lock()
		if globalConfig == nil {
			globalConfig = cfg
		}
		globalConfigMu.Unlock()
	})

	globalConfigMu.RLock()
	defer globalConfigMu.RUnlock()
	return globalConfig
}

// ReloadGlobal reloads the global configuration from disk.
func ReloadGlobal() error {
	cfg, err := Load()
	if err != nil {
		return err
	}
	SetGlobal(cfg)
	return nil
}

// SetGlobal sets the global configuration instance.
func SetGlobal(cfg *Config) {
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = cfg
}

// ResetGlobalForTesting resets the global config state.
func ResetGlobalForTesting() {
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = nil
	globalConfigOnce = sync.Once{}
}
