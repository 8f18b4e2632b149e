// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// config_cmd.go - Configuration management.
//
// Examples:
//   corptranslate config show
//   corptranslate config path
//   corptranslate config init
//   corptranslate config get gemini.model
//   corptranslate config set tone.default cold
package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jeranaias/corptranslate/internal/config"
)

func addConfig(topLevel *cobra.Command, ro *rootOptions) {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or change the configuration.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return showConfig(cmd, ro, false)
		},
	}

	var showJSON bool
	show := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration with secrets redacted.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return showConfig(cmd, ro, showJSON)
		},
	}
	show.Flags().BoolVar(&showJSON, "json", false, "Output as JSON.")

	path := &cobra.Command{
		Use:         "path",
		Short:       "Print the config file location.",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{skipConfigAnnotation: "true"},
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := config.ConfigPathTOML()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), p)
			return nil
		},
	}

	var (
		force    bool
		initJSON bool
	)
	initCmd := &cobra.Command{
		Use:         "init",
		Short:       "Write a default config file.",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{skipConfigAnnotation: "true"},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return initConfig(cmd, force, initJSON)
		},
	}
	initCmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing config file.")
	initCmd.Flags().BoolVar(&initJSON, "json", false, "Write config.json instead of config.toml.")

	get := &cobra.Command{
		Use:   "get <key>",
		Short: "Print one setting (e.g. gemini.model).",
		Args:  cobra.ExactArgs(1),
		ValidArgsFunction: func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
			return config.Keys(), cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := ro.cfg.Redacted().Get(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), v)
			return nil
		},
	}

	set := &cobra.Command{
		Use:         "set <key> <value>",
		Short:       "Change one setting in the config file.",
		Args:        cobra.ExactArgs(2),
		Annotations: map[string]string{skipConfigAnnotation: "true"},
		ValidArgsFunction: func(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
			if len(args) > 0 {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			return config.Keys(), cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return setConfig(cmd, args[0], args[1])
		},
	}

	cmd.AddCommand(show, path, initCmd, get, set)
	topLevel.AddCommand(cmd)
}

func showConfig(cmd *cobra.Command, ro *rootOptions, asJSON bool) error {
	cfg := ro.cfg
	if asJSON {
		return NewJSONResponse("config show", cfg.Redacted()).Write(cmd.OutOrStdout())
	}

	out := cmd.OutOrStdout()
	p, _ := config.ConfigPathTOML()
	fmt.Fprintf(out, "# file: %s\n", p)
	fmt.Fprintf(out, "# api key: %s\n\n", cfg.CredentialSource())
	fmt.Fprint(out, cfg.String())
	return nil
}

func initConfig(cmd *cobra.Command, force, asJSON bool) error {
	pathFn, save := config.ConfigPathTOML, config.SaveTOML
	if asJSON {
		pathFn, save = config.ConfigPathJSON, config.SaveJSON
	}
	p, err := pathFn()
	if err != nil {
		return err
	}
	if _, err := os.Stat(p); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", p)
	}
	if err := config.EnsureConfigDir(); err != nil {
		return err
	}
	if err := save(config.Default(), p); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", p)
	return nil
}

// setConfig edits the file itself. Environment overrides are not applied
// so they never leak into the saved file.
func setConfig(cmd *cobra.Command, key, value string) error {
	p, err := config.ConfigPathTOML()
	if err != nil {
		return err
	}

	cfg := config.Default()
	if _, statErr := os.Stat(p); statErr == nil {
		if err := config.LoadTOML(cfg, p); err != nil {
			return fmt.Errorf("failed to read %s: %w", p, err)
		}
	} else if !errors.Is(statErr, os.ErrNotExist) {
		return statErr
	}

	if err := cfg.Set(key, value); err != nil {
		return err
	}
	if err := cfg.Migrate(); err != nil {
		return err
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return err
	}

	if err := config.EnsureConfigDir(); err != nil {
		return err
	}
	if err := config.Save(cfg); err != nil {
		return err
	}

	shown, _ := cfg.Redacted().Get(key)
	fmt.Fprintf(cmd.OutOrStdout(), "%s = %v\n", strings.ToLower(key), shown)
	return nil
}
