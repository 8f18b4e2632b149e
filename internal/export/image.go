// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/jeranaias/corptranslate/internal/util"
)

// Card layout in pixels. basicfont.Face7x13 glyphs are 7 wide and 13 tall.
const (
	cardPadding   = 28
	accentHeight  = 6
	glyphWidth    = 7
	lineHeight    = 18
	sectionGap    = 12
	minImageWidth = 320
	maxImageWidth = 2000
	maxBodyLines  = 200
)

// Palette is the set of colors used to paint a share card.
type Palette struct {
	Background color.RGBA
	Accent     color.RGBA
	Title      color.RGBA
	Body       color.RGBA
	Footer     color.RGBA
}

// DarkPalette mirrors the app's dark slate look with a red accent.
var DarkPalette = Palette{
	Background: color.RGBA{R: 0x0F, G: 0x17, B: 0x2A, A: 0xFF},
	Accent:     color.RGBA{R: 0xEF, G: 0x44, B: 0x44, A: 0xFF},
	Title:      color.RGBA{R: 0xF8, G: 0x71, B: 0x71, A: 0xFF},
	Body:       color.RGBA{R: 0xE2, G: 0xE8, B: 0xF0, A: 0xFF},
	Footer:     color.RGBA{R: 0x64, G: 0x74, B: 0x8B, A: 0xFF},
}

// LightPalette is the light-background variant.
var LightPalette = Palette{
	Background: color.RGBA{R: 0xF8, G: 0xFA, B: 0xFC, A: 0xFF},
	Accent:     color.RGBA{R: 0x25, G: 0x63, B: 0xEB, A: 0xFF},
	Title:      color.RGBA{R: 0x1D, G: 0x4E, B: 0xD8, A: 0xFF},
	Body:       color.RGBA{R: 0x1F, G: 0x29, B: 0x37, A: 0xFF},
	Footer:     color.RGBA{R: 0x6B, G: 0x72, B: 0x80, A: 0xFF},
}

// PaletteFor returns the palette for a theme name.
func PaletteFor(theme string) Palette {
	if theme == "light" {
		return LightPalette
	}
	return DarkPalette
}

// =============================================================================
// PNG EXPORTER
// =============================================================================

// PNGExporter rasterizes a surface onto a card image.
type PNGExporter struct {
	width   int
	palette Palette
}

// NewPNGExporter creates a PNG exporter. The width is clamped to a sane range.
func NewPNGExporter(width int, palette Palette) *PNGExporter {
	if width <= 0 {
		width = DefaultImageWidth
	}
	if width < minImageWidth {
		width = minImageWidth
	}
	if width > maxImageWidth {
		width = maxImageWidth
	}
	return &PNGExporter{width: width, palette: palette}
}

// Export renders and encodes the card.
func (e *PNGExporter) Export(s Surface) ([]byte, error) {
	img, err := e.Render(s)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// FileExtension returns ".png".
func (e *PNGExporter) FileExtension() string { return ".png" }

// MimeType returns the PNG MIME type.
func (e *PNGExporter) MimeType() string { return "image/png" }

// Render paints the surface. Height follows the wrapped text.
func (e *PNGExporter) Render(s Surface) (*image.RGBA, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	cols := (e.width - 2*cardPadding) / glyphWidth
	titleLines := wrapNonEmpty(s.Title, cols)
	bodyLines := util.WrapWidth(s.Body, cols)
	if len(bodyLines) > maxBodyLines {
		bodyLines = append(bodyLines[:maxBodyLines-1], "...")
	}
	footerLines := wrapNonEmpty(s.Footer, cols)

	height := accentHeight + cardPadding
	height += len(titleLines) * lineHeight
	if len(titleLines) > 0 {
		height += sectionGap
	}
	height += len(bodyLines) * lineHeight
	if len(footerLines) > 0 {
		height += sectionGap + len(footerLines)*lineHeight
	}
	height += cardPadding

	img := image.NewRGBA(image.Rect(0, 0, e.width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(e.palette.Background), image.Point{}, draw.Src)
	draw.Draw(img, image.Rect(0, 0, e.width, accentHeight), image.NewUniform(e.palette.Accent), image.Point{}, draw.Src)

	y := accentHeight + cardPadding
	y = drawLines(img, titleLines, e.palette.Title, y)
	if len(titleLines) > 0 {
		y += sectionGap
	}
	y = drawLines(img, bodyLines, e.palette.Body, y)
	if len(footerLines) > 0 {
		y += sectionGap
		drawLines(img, footerLines, e.palette.Footer, y)
	}
	return img, nil
}

// drawLines draws each line starting at top y and returns the next y.
func drawLines(dst draw.Image, lines []string, c color.Color, y int) int {
	face := basicfont.Face7x13
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: face,
	}
	for _, line := range lines {
		d.Dot = fixed.P(cardPadding, y+face.Ascent)
		d.DrawString(line)
		y += lineHeight
	}
	return y
}

func wrapNonEmpty(s string, cols int) []string {
	if s == "" {
		return nil
	}
	return util.WrapWidth(s, cols)
}
