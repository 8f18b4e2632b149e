// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jeranaias/corptranslate/internal/util"
)

// =============================================================================
// SURFACE
// =============================================================================

// Surface is the rendered result the user wants to export.
type Surface struct {
	// Title is the heading, usually the tone label.
	Title string
	// Body is the generated email.
	Body string
	// Footer is a small attribution line.
	Footer string
	// CreatedAt stamps exported files. Zero means now.
	CreatedAt time.Time
}

// ErrEmptySurface is returned when there is nothing to export.
var ErrEmptySurface = errors.New("nothing to export")

// Validate reports whether the surface has a body.
func (s Surface) Validate() error {
	if strings.TrimSpace(s.Body) == "" {
		return ErrEmptySurface
	}
	return nil
}

func (s Surface) timestamp() time.Time {
	if s.CreatedAt.IsZero() {
		return time.Now()
	}
	return s.CreatedAt
}

// =============================================================================
// EXPORT INTERFACE
// =============================================================================

// Exporter converts a surface to a file format.
type Exporter interface {
	// Export returns the encoded content.
	Export(s Surface) ([]byte, error)

	// FileExtension returns the file extension including the dot.
	FileExtension() string

	// MimeType returns the MIME type of the encoded content.
	MimeType() string
}

// =============================================================================
// EXPORT OPTIONS
// =============================================================================

// Options configures export behavior.
type Options struct {
	// OutputDir is where exported files are written.
	OutputDir string

	// ImageWidth is the PNG card width in pixels.
	ImageWidth int

	// Theme selects the card palette ("dark" or "light").
	Theme string
}

// DefaultImageWidth is the default share card width.
const DefaultImageWidth = 640

// DefaultOptions returns default export options. Files go to the user's
// Pictures directory when it exists, otherwise the system temp directory.
func DefaultOptions() *Options {
	return &Options{
		OutputDir:  defaultOutputDir(),
		ImageWidth: DefaultImageWidth,
		Theme:      "dark",
	}
}

// NewOptions builds options from configured values. An empty dir uses the
// default output directory and a zero width the default width.
func NewOptions(dir string, width int, theme string) *Options {
	opts := DefaultOptions()
	if strings.TrimSpace(dir) != "" {
		opts.OutputDir = dir
	}
	if width > 0 {
		opts.ImageWidth = width
	}
	if theme != "" {
		opts.Theme = theme
	}
	return opts
}

func defaultOutputDir() string {
	if home, err := os.UserHomeDir(); err == nil {
		pictures := filepath.Join(home, "Pictures")
		if info, err := os.Stat(pictures); err == nil && info.IsDir() {
			return filepath.Join(pictures, "corptranslate")
		}
	}
	return filepath.Join(os.TempDir(), "corptranslate")
}

// =============================================================================
// EXPORT FUNCTIONS
// =============================================================================

// ExportToFile encodes s with exporter and writes it atomically to a
// timestamped file in opts.OutputDir. Returns the output path.
func ExportToFile(s Surface, exporter Exporter, opts *Options) (string, error) {
	if opts == nil {
		opts = DefaultOptions()
	}
	if err := s.Validate(); err != nil {
		return "", err
	}

	content, err := exporter.Export(s)
	if err != nil {
		return "", fmt.Errorf("export failed: %w", err)
	}

	filename := fmt.Sprintf("email_%s_%s%s",
		sanitizeFilename(s.Title),
		s.timestamp().Format("20060102_150405"),
		exporter.FileExtension(),
	)
	outputPath := filepath.Join(opts.OutputDir, filename)

	if err := util.AtomicWriteFile(outputPath, content, 0o644); err != nil {
		return "", fmt.Errorf("write file: %w", err)
	}
	return outputPath, nil
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// sanitizeFilename replaces characters that are invalid in filenames on
// Windows or Unix and limits the length.
func sanitizeFilename(s string) string {
	const maxLen = 40
	runes := []rune(strings.TrimSpace(s))
	if len(runes) > maxLen {
		runes = runes[:maxLen]
	}

	out := make([]rune, 0, len(runes))
	for _, r := range runes {
		switch {
		case strings.ContainsRune(`/\:*?"<>|`, r):
			out = append(out, '-')
		case r == ' ' || r == '\t' || r == '\n' || r == '\r':
			out = append(out, '_')
		case r < 32 || r == 127:
			out = append(out, '-')
		default:
			out = append(out, r)
		}
	}
	if len(out) == 0 {
		return "email"
	}
	return strings.ToLower(string(out))
}
