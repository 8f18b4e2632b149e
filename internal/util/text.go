// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package util

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// UNICODE: Widths are display columns, so CJK and emoji count as two.

// TruncateWidth truncates s to at most maxWidth display columns, appending
// "..." when anything was cut.
func TruncateWidth(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= maxWidth {
		return s
	}
	if maxWidth <= 3 {
		return runewidth.Truncate(s, maxWidth, "")
	}
	return runewidth.Truncate(s, maxWidth, "...")
}

// StringWidth returns the display width of s.
func StringWidth(s string) int {
	return runewidth.StringWidth(s)
}

// WrapWidth wraps text into lines no wider than width display columns.
// Existing line breaks are kept, blank lines included. Words wider than the
// line are split across lines.
func WrapWidth(text string, width int) []string {
	if width <= 0 {
		width = 1
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")

	var lines []string
	for _, para := range strings.Split(text, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}

		var cur strings.Builder
		curWidth := 0
		flush := func() {
			lines = append(lines, cur.String())
			cur.Reset()
			curWidth = 0
		}

		for _, w := range words {
			ww := runewidth.StringWidth(w)
			if curWidth > 0 && curWidth+1+ww > width {
				flush()
			}
			if ww > width {
				for _, r := range w {
					rw := runewidth.RuneWidth(r)
					if curWidth+rw > width && curWidth > 0 {
						flush()
					}
					cur.WriteRune(r)
					curWidth += rw
				}
				continue
			}
			if curWidth > 0 {
				cur.WriteByte(' ')
				curWidth++
			}
			cur.WriteString(w)
			curWidth += ww
		}
		if curWidth > 0 {
			flush()
		}
	}
	return lines
}
