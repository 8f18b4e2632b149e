// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package phrasebook is an offline keyword translator used for previews.
// It never calls the network and is not a generation backend.
package phrasebook

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"

	"github.com/jeranaias/corptranslate/internal/model"
	"github.com/jeranaias/corptranslate/internal/tone"
)

// Entry maps a lowercase keyword to its corporate rendering.
type Entry struct {
	Keyword string
	Phrase  string
}

// Fallback is used when no keyword matches.
const Fallback = "Per my last email, I believe we need to circle back on this offline to ensure we are all singing from the same hymn sheet regarding the granular details of this request."

// entries is scanned in order; the last matching keyword wins.
var entries = []Entry{
	{"fuck you", "I believe there has been a misalignment in our expectations."},
	{"this is bullshit", "I am struggling to see the value proposition in this current trajectory."},
	{"i don't care", "I will take this under advisement, though it is not a priority at this juncture."},
	{"stop emailing me", "Please reduce the frequency of communications so I can focus on deliverables."},
	{"you are stupid", "I encourage you to revisit the documentation to gain a clearer understanding."},
	{"pay me more", "I would like to discuss a compensation adjustment reflective of my market value."},
	{"i quit", "I have decided to pursue other opportunities that align better with my long-term goals."},
}

// flavour decorates a phrase for a tone.
type flavour struct {
	prefix string
	suffix string
}

var flavours = map[string]flavour{
	"passive-aggressive": {suffix: " Thanks in advance for your understanding."},
	"cold":               {prefix: "Regards. "},
	"gaslight":           {prefix: "I'm confused as to why this is an issue. "},
	"condescending":      {prefix: "To put it in terms that are easy to follow: "},
}

var (
	lower       = cases.Lower(language.English)
	apostrophes = strings.NewReplacer("’", "'", "‘", "'", "ʼ", "'")
)

// Entries returns a copy of the keyword table.
func Entries() []Entry {
	out := make([]Entry, len(entries))
	copy(out, entries)
	return out
}

// normalize folds width variants, typographic apostrophes, case and runs of
// whitespace so "I  DON’T care" matches "i don't care".
func normalize(s string) string {
	s = norm.NFKC.String(s)
	s = apostrophes.Replace(s)
	s = lower.String(s)
	return strings.Join(strings.Fields(s), " ")
}

// Match returns the phrase for input and the keyword that produced it. The
// keyword is empty when the fallback was used.
func Match(input string) (phrase, keyword string) {
	text := normalize(input)
	phrase = Fallback
	for _, e := range entries {
		if strings.Contains(text, e.Keyword) {
			phrase, keyword = e.Phrase, e.Keyword
		}
	}
	return phrase, keyword
}

// Translate renders input in the given tone.
func Translate(input, toneID string) (string, error) {
	if strings.TrimSpace(input) == "" {
		return "", model.ErrEmptyInput
	}
	if !tone.Default().Has(toneID) {
		return "", fmt.Errorf("phrasebook tone %q: %w", toneID, model.ErrUnknownTone)
	}
	phrase, _ := Match(input)
	f := flavours[toneID]
	return f.prefix + phrase + f.suffix, nil
}
