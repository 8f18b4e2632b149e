// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// ask.go - One-shot translation.
//
// Examples:
//   corptranslate ask "this meeting is a waste of my time"
//   corptranslate ask --tone gaslight "you never told me about the deadline"
//   echo "i quit" | corptranslate ask --tone cold --copy
//   corptranslate ask --json --share "stop replying all"
package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/jeranaias/corptranslate/internal/export"
	"github.com/jeranaias/corptranslate/internal/logging"
	"github.com/jeranaias/corptranslate/internal/model"
)

type askOptions struct {
	tone  string
	copy  bool
	share bool
	save  bool
	json  bool
}

// askOutput is the --json payload.
type askOutput struct {
	Tone      string `json:"tone"`
	ToneLabel string `json:"tone_label"`
	Model     string `json:"model"`
	Text      string `json:"text"`
	Copied    bool   `json:"copied,omitempty"`
	ImagePath string `json:"image_path,omitempty"`
	Shared    bool   `json:"shared,omitempty"`
	SavedPath string `json:"saved_path,omitempty"`
}

func addAsk(topLevel *cobra.Command, ro *rootOptions) {
	ao := &askOptions{}
	cmd := &cobra.Command{
		Use:   "ask [message]",
		Short: "Translate one message and print the corporate version.",
		Example: `
corptranslate ask "this meeting is a waste of my time"
echo "i quit" | corptranslate ask --tone cold --copy
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAsk(cmd, ro, ao, args)
		},
	}
	cmd.Flags().StringVarP(&ao.tone, "tone", "t", "", "Tone to use (default from config).")
	cmd.Flags().BoolVarP(&ao.copy, "copy", "c", false, "Copy the result to the clipboard.")
	cmd.Flags().BoolVarP(&ao.share, "share", "s", false, "Render the result as an image and share it.")
	cmd.Flags().BoolVar(&ao.save, "save", false, "Save the result as a Markdown file.")
	cmd.Flags().BoolVar(&ao.json, "json", false, "Output as JSON.")
	_ = cmd.RegisterFlagCompletionFunc("tone", toneCompletion)

	topLevel.AddCommand(cmd)
}

func runAsk(cmd *cobra.Command, ro *rootOptions, ao *askOptions, args []string) error {
	fail := func(err error) error {
		if !ao.json {
			return err
		}
		_ = NewJSONErrorResponse("ask", err).Write(cmd.OutOrStdout())
		var ce *CommandError
		if errors.As(err, &ce) {
			ce.Reported = true
			return ce
		}
		return &CommandError{Command: "ask", Err: err, Reported: true}
	}

	text, err := readInput(cmd, args)
	if err != nil {
		return fail(err)
	}

	app := ro.newApp()
	defer app.Close()

	v, err := resolveTone(ao.tone, app.Config.Tone.Default)
	if err != nil {
		return fail(err)
	}
	if err := app.Orch.SelectTone(v.ID); err != nil {
		return fail(err)
	}
	app.Orch.SetInput(text)

	log := logging.For("cli")
	res, err := app.Orch.Generate(cmd.Context())
	if err != nil {
		return fail(NewCommandError("ask", app.Orch.Snapshot().ErrorMessage, err))
	}
	if !res.IsSuccess() {
		log.Info().Str("outcome", res.Kind.String()).Str("kind", res.Err.String()).Msg("ask failed")
		return fail(resultError("ask", res))
	}

	out := askOutput{
		Tone:      v.ID,
		ToneLabel: v.Label,
		Model:     app.Client.Model(),
		Text:      res.Text,
	}
	stderr := cmd.ErrOrStderr()

	if ao.copy {
		if err := app.Exporter.CopyToClipboard(res.Text); err != nil {
			fmt.Fprintf(stderr, "Copy failed: %v\n", err)
		} else {
			out.Copied = true
			fmt.Fprintln(stderr, export.CopiedMessage)
		}
	}

	surface := export.Surface{
		Title:     v.Label,
		Body:      res.Text,
		Footer:    "Translated by corptranslate",
		CreatedAt: time.Now(),
	}

	if ao.save {
		if path, err := app.Exporter.SaveMarkdown(surface); err != nil {
			fmt.Fprintf(stderr, "Save failed: %v\n", err)
		} else {
			out.SavedPath = path
			fmt.Fprintf(stderr, "Saved %s\n", path)
		}
	}

	if ao.share {
		sr, err := app.Exporter.ShareAsImage(cmd.Context(), surface)
		out.ImagePath, out.Shared = sr.Path, sr.Shared
		switch {
		case err == nil:
			fmt.Fprintf(stderr, "Shared %s\n", sr.Path)
		case errors.Is(err, model.ErrUnsupportedCapability):
			fmt.Fprintf(stderr, "Saved %s (%s)\n", sr.Path, export.ManualShareHint)
		default:
			fmt.Fprintf(stderr, "Share failed: %v\n", err)
		}
	}

	if ao.json {
		return NewJSONResponse("ask", out).Write(cmd.OutOrStdout())
	}
	displayResponse(cmd.OutOrStdout(), res.Text)
	return nil
}

// =============================================================================
// MARKDOWN RENDERING
// =============================================================================

// displayResponse writes text to w, rendered with glamour when w is a
// terminal. Piped output stays plain.
func displayResponse(w io.Writer, text string) {
	if !isTerminal(w) {
		fmt.Fprintln(w, strings.TrimRight(text, "\n"))
		return
	}
	fmt.Fprint(w, renderMarkdown(text, terminalWidth(w)))
}

// renderMarkdown renders text for the terminal. Returns text unchanged if
// the renderer fails.
func renderMarkdown(text string, width int) string {
	style := glamour.WithAutoStyle()
	if !ColorsEnabled() {
		style = glamour.WithStandardStyle("notty")
	}
	r, err := glamour.NewTermRenderer(style, glamour.WithWordWrap(width-4))
	if err != nil {
		return text + "\n"
	}
	// Single newlines in an email are line breaks, not soft wraps.
	out, err := r.Render(strings.ReplaceAll(text, "\n", "  \n"))
	if err != nil {
		return text + "\n"
	}
	return out
}
