// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package export moves a generated email out of the app: clipboard copy,
// a shareable PNG card, and a Markdown file.
//
// Capabilities that depend on the host (clipboard, share facility) sit
// behind interfaces with "not available" variants so callers can report
// model.ErrUnsupportedCapability instead of failing hard.
//
// # Key Types
//
//   - Surface: The content to export (title, body, footer)
//   - Exporter: Format interface (PNGExporter, MarkdownExporter)
//   - Clipboard: Clipboard access (SystemClipboard, NoClipboard)
//   - ShareExportProvider: Share facility (CommandShare, NoShare)
//   - Manager: Serialized copy and share operations
//
// # Usage
//
// Copy and share a result:
//
//	mgr := export.NewManager(export.SystemClipboard{}, export.NewShareProvider(true, ""), opts)
//	if err := mgr.CopyToClipboard(text); err != nil {
//	    // show "Failed to copy"
//	}
//	res, err := mgr.ShareAsImage(ctx, export.Surface{Title: "Passive Aggressive", Body: text})
//	if errors.Is(err, model.ErrUnsupportedCapability) {
//	    fmt.Println("saved to", res.Path, "- take a screenshot to share")
//	}
//
// Save Markdown:
//
//	path, err := export.ExportToFile(surface, export.NewMarkdownExporter(), opts)
package export
