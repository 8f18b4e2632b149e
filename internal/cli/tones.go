// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/jeranaias/corptranslate/internal/tone"
	"github.com/jeranaias/corptranslate/internal/util"
)

type toneOutput struct {
	ID      string `json:"id"`
	Label   string `json:"label"`
	Default bool   `json:"default"`
}

func addTones(topLevel *cobra.Command) {
	var asJSON bool
	cmd := &cobra.Command{
		Use:         "tones",
		Short:       "List the available tones.",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{skipConfigAnnotation: "true"},
		RunE: func(cmd *cobra.Command, _ []string) error {
			variants := tone.List()
			if asJSON {
				out := make([]toneOutput, 0, len(variants))
				for _, v := range variants {
					out = append(out, toneOutput{ID: v.ID, Label: v.Label, Default: v.ID == tone.DefaultToneID})
				}
				return NewJSONResponse("tones", out).Write(cmd.OutOrStdout())
			}
			fmt.Fprint(cmd.OutOrStdout(), renderToneTable(variants))
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON.")
	topLevel.AddCommand(cmd)
}

// renderToneTable lays out the catalog as a numbered two-column table. The
// numbers match the TUI shortcuts.
func renderToneTable(variants []tone.Variant) string {
	upper := cases.Upper(language.English)

	idWidth := len("ID")
	for _, v := range variants {
		if w := util.StringWidth(v.ID); w > idWidth {
			idWidth = w
		}
	}
	col := lipgloss.NewStyle().Width(idWidth + 2)

	var sb strings.Builder
	sb.WriteString("    " + col.Render(upper.String("id")) + upper.String("label") + "\n")
	for i, v := range variants {
		label := v.Label
		if v.ID == tone.DefaultToneID {
			label += " (default)"
		}
		fmt.Fprintf(&sb, "%d.  %s%s\n", i+1, col.Render(v.ID), label)
	}
	return sb.String()
}
