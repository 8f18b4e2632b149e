// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/jeranaias/corptranslate/internal/logging"
	"github.com/jeranaias/corptranslate/internal/model"
)

// CopiedMessage is the status shown after a successful copy.
const CopiedMessage = "Copied! Now go fake it 'til you make it."

// ManualShareHint is appended when no share facility exists.
const ManualShareHint = "sharing is not available here; take a screenshot to share it manually"

// ErrNothingToCopy is returned when the text to copy is blank.
var ErrNothingToCopy = errors.New("nothing to copy")

// ShareResult describes a share attempt.
type ShareResult struct {
	// Path is the written image, set whenever rendering succeeded.
	Path string
	// Shared is true when the share facility accepted the file.
	Shared bool
}

// Manager serializes clipboard and share operations.
type Manager struct {
	clipMu  sync.Mutex
	shareMu sync.Mutex

	clipboard Clipboard
	share     ShareExportProvider
	opts      Options
}

// NewManager creates a manager. Nil capabilities become their unavailable
// variants; nil options use DefaultOptions.
func NewManager(clip Clipboard, share ShareExportProvider, opts *Options) *Manager {
	if clip == nil {
		clip = NoClipboard{}
	}
	if share == nil {
		share = NoShare{}
	}
	if opts == nil {
		opts = DefaultOptions()
	}
	return &Manager{clipboard: clip, share: share, opts: *opts}
}

// SetShareProvider swaps the share facility, e.g. after a config reload.
func (m *Manager) SetShareProvider(share ShareExportProvider) {
	if share == nil {
		share = NoShare{}
	}
	m.shareMu.Lock()
	defer m.shareMu.Unlock()
	m.share = share
}

// SetOptions replaces the export options.
func (m *Manager) SetOptions(opts Options) {
	m.shareMu.Lock()
	defer m.shareMu.Unlock()
	m.opts = opts
}

// CanCopy reports whether clipboard access is available.
func (m *Manager) CanCopy() bool {
	return m.clipboard.Available()
}

// CanShare reports whether a share facility is available.
func (m *Manager) CanShare() bool {
	m.shareMu.Lock()
	defer m.shareMu.Unlock()
	return m.share.Available()
}

// CopyToClipboard writes text to the clipboard. Access is exclusive for the
// duration of the write. Failures are logged and returned, never fatal.
func (m *Manager) CopyToClipboard(text string) error {
	if strings.TrimSpace(text) == "" {
		return ErrNothingToCopy
	}

	m.clipMu.Lock()
	defer m.clipMu.Unlock()

	log := logging.For("export")
	if !m.clipboard.Available() {
		log.Info().Msg("clipboard not available")
		return model.ErrUnsupportedCapability
	}
	if err := m.clipboard.WriteText(text); err != nil {
		log.Warn().Err(err).Msg("clipboard write failed")
		return fmt.Errorf("copy to clipboard: %w", err)
	}
	log.Debug().Int("chars", len(text)).Msg("copied result to clipboard")
	return nil
}

// ShareAsImage renders s to a PNG card, saves it and hands it to the share
// facility.
//
// Errors:
//   - model.ErrExportFailure when rendering or writing fails
//   - model.ErrUnsupportedCapability when there is no share facility; the
//     image is still saved and its path returned
//   - model.ErrExportFailure when the share facility rejects the file
func (m *Manager) ShareAsImage(ctx context.Context, s Surface) (ShareResult, error) {
	m.shareMu.Lock()
	defer m.shareMu.Unlock()

	log := logging.For("export")

	exporter := NewPNGExporter(m.opts.ImageWidth, PaletteFor(m.opts.Theme))
	path, err := ExportToFile(s, exporter, &m.opts)
	if err != nil {
		log.Warn().Err(err).Msg("share image export failed")
		return ShareResult{}, fmt.Errorf("%w: %v", model.ErrExportFailure, err)
	}
	res := ShareResult{Path: path}

	if !m.share.Available() {
		log.Info().Str("path", path).Msg("share facility unavailable, image saved")
		return res, fmt.Errorf("%w: image saved to %s; %s", model.ErrUnsupportedCapability, path, ManualShareHint)
	}

	if err := m.share.Share(ctx, path); err != nil {
		if errors.Is(err, model.ErrUnsupportedCapability) {
			return res, fmt.Errorf("%w: image saved to %s; %s", model.ErrUnsupportedCapability, path, ManualShareHint)
		}
		log.Warn().Err(err).Str("path", path).Msg("share facility failed")
		return res, fmt.Errorf("%w: %v", model.ErrExportFailure, err)
	}

	res.Shared = true
	log.Info().Str("path", path).Msg("shared result image")
	return res, nil
}

// SaveMarkdown writes s as a Markdown file and returns its path.
func (m *Manager) SaveMarkdown(s Surface) (string, error) {
	m.shareMu.Lock()
	opts := m.opts
	m.shareMu.Unlock()

	path, err := ExportToFile(s, NewMarkdownExporter(), &opts)
	if err != nil {
		return "", fmt.Errorf("%w: %v", model.ErrExportFailure, err)
	}
	return path, nil
}
