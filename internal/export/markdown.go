// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"fmt"
	"strings"
	"time"
)

// =============================================================================
// MARKDOWN EXPORTER
// =============================================================================

// MarkdownExporter writes the email as Markdown with YAML frontmatter.
type MarkdownExporter struct{}

// NewMarkdownExporter creates a Markdown exporter.
func NewMarkdownExporter() *MarkdownExporter {
	return &MarkdownExporter{}
}

// Export converts a surface to Markdown.
func (e *MarkdownExporter) Export(s Surface) ([]byte, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	var sb strings.Builder
	sb.WriteString("---\n")
	sb.WriteString(fmt.Sprintf("tone: %s\n", escapeYAML(s.Title)))
	sb.WriteString(fmt.Sprintf("date: %s\n", s.timestamp().Format(time.RFC3339)))
	sb.WriteString("generator: corptranslate\n")
	sb.WriteString("---\n\n")

	if s.Title != "" {
		sb.WriteString("# ")
		sb.WriteString(s.Title)
		sb.WriteString("\n\n")
	}
	sb.WriteString(strings.TrimRight(s.Body, "\n"))
	sb.WriteString("\n")
	if s.Footer != "" {
		sb.WriteString("\n---\n\n*")
		sb.WriteString(s.Footer)
		sb.WriteString("*\n")
	}
	return []byte(sb.String()), nil
}

// FileExtension returns ".md".
func (e *MarkdownExporter) FileExtension() string { return ".md" }

// MimeType returns the Markdown MIME type.
func (e *MarkdownExporter) MimeType() string { return "text/markdown" }

// escapeYAML quotes a scalar when it contains characters YAML would
// interpret.
func escapeYAML(s string) string {
	if s == "" {
		return `""`
	}
	if strings.ContainsAny(s, ":#|>@`\"'[]{}!%&*\n\r\\") || strings.HasPrefix(s, " ") || strings.HasSuffix(s, " ") {
		s = strings.ReplaceAll(s, "\\", "\\\\")
		s = strings.ReplaceAll(s, "\"", "\\\"")
		s = strings.ReplaceAll(s, "\n", "\\n")
		s = strings.ReplaceAll(s, "\r", "\\r")
		return fmt.Sprintf("\"%s\"", s)
	}
	return s
}
