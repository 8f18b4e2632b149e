// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for
// corptranslate.
//
// Supports both TOML and JSON configuration formats, with defaults,
// environment variable overrides and validation.
//
// # Configuration Precedence
//
// Configuration is loaded from (in order of precedence):
//   - Environment variables (CORPTRANSLATE_*)
//   - ~/.corptranslate/config.toml
//   - ~/.corptranslate/config.json
//   - Built-in defaults
//
// CORPTRANSLATE_HOME replaces ~/.corptranslate.
//
// # Usage
//
//	cfg, err := config.Load()
//	if err != nil {
//	    return err
//	}
//	key := cfg.Credential()
//
// Watch reports edits to the config file so a running TUI can pick them up
// without a restart.
package config
