// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

type versionOutput struct {
	Version   string `json:"version"`
	GitCommit string `json:"git_commit"`
	BuildDate string `json:"build_date"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}

func addVersion(topLevel *cobra.Command) {
	var (
		short  bool
		asJSON bool
	)
	cmd := &cobra.Command{
		Use:         "version",
		Short:       "Print version information.",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{skipConfigAnnotation: "true"},
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			if short {
				fmt.Fprintln(out, Version)
				return nil
			}
			info := versionOutput{
				Version:   Version,
				GitCommit: GitCommit,
				BuildDate: BuildDate,
				GoVersion: runtime.Version(),
				Platform:  runtime.GOOS + "/" + runtime.GOARCH,
			}
			if asJSON {
				return NewJSONResponse("version", info).Write(out)
			}
			fmt.Fprintf(out, "corptranslate %s (Savage Edition)\n", info.Version)
			fmt.Fprintf(out, "  commit:   %s\n", info.GitCommit)
			fmt.Fprintf(out, "  built:    %s\n", info.BuildDate)
			fmt.Fprintf(out, "  go:       %s\n", info.GoVersion)
			fmt.Fprintf(out, "  platform: %s\n", info.Platform)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&short, "short", "s", false, "Print just the version number.")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON.")
	topLevel.AddCommand(cmd)
}
