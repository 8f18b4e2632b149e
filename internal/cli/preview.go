// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jeranaias/corptranslate/internal/phrasebook"
	"github.com/jeranaias/corptranslate/internal/tone"
)

type previewOutput struct {
	Tone    string `json:"tone"`
	Keyword string `json:"keyword,omitempty"`
	Text    string `json:"text"`
}

func addPreview(topLevel *cobra.Command) {
	var (
		toneFlag string
		asJSON   bool
		list     bool
	)
	cmd := &cobra.Command{
		Use:   "preview [message]",
		Short: "Offline phrasebook preview. No API key needed.",
		Long: `preview matches the message against a small built-in phrasebook and
dresses the phrase in the chosen tone. It never contacts the AI provider, so
it works without a key or network. Use "ask" for a real translation.`,
		Annotations: map[string]string{skipConfigAnnotation: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			if list {
				return listPhrasebook(cmd, asJSON)
			}
			text, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			v, err := resolveTone(toneFlag, tone.DefaultToneID)
			if err != nil {
				return err
			}
			out, err := phrasebook.Translate(text, v.ID)
			if err != nil {
				return err
			}
			if asJSON {
				_, keyword := phrasebook.Match(text)
				return NewJSONResponse("preview", previewOutput{Tone: v.ID, Keyword: keyword, Text: out}).
					Write(cmd.OutOrStdout())
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&toneFlag, "tone", "t", "", "Tone to use.")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON.")
	cmd.Flags().BoolVarP(&list, "list", "l", false, "List the phrasebook keywords instead.")
	_ = cmd.RegisterFlagCompletionFunc("tone", toneCompletion)
	topLevel.AddCommand(cmd)
}

type phraseOutput struct {
	Keyword string `json:"keyword"`
	Phrase  string `json:"phrase"`
}

// listPhrasebook prints every keyword and its phrase.
func listPhrasebook(cmd *cobra.Command, asJSON bool) error {
	entries := phrasebook.Entries()
	if asJSON {
		out := make([]phraseOutput, 0, len(entries))
		for _, e := range entries {
			out = append(out, phraseOutput{Keyword: e.Keyword, Phrase: e.Phrase})
		}
		return NewJSONResponse("preview", out).Write(cmd.OutOrStdout())
	}
	w := cmd.OutOrStdout()
	for _, e := range entries {
		fmt.Fprintf(w, "%-18s %s\n", e.Keyword, e.Phrase)
	}
	fmt.Fprintf(w, "%-18s %s\n", "(anything else)", phrasebook.Fallback)
	return nil
}
