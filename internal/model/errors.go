// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import "errors"

// =============================================================================
// ERROR KINDS
// =============================================================================

// ErrorKind classifies why a rewrite could not be produced.
type ErrorKind string

const (
	ErrorKindNone                  ErrorKind = ""
	ErrorKindMissingCredential     ErrorKind = "missing_credential"
	ErrorKindEmptyInput            ErrorKind = "empty_input"
	ErrorKindUnknownTone           ErrorKind = "unknown_tone"
	ErrorKindRateLimited           ErrorKind = "rate_limited"
	ErrorKindRemoteError           ErrorKind = "remote_error"
	ErrorKindEmptyResponse         ErrorKind = "empty_response"
	ErrorKindNetworkFailure        ErrorKind = "network_failure"
	ErrorKindUnsupportedCapability ErrorKind = "unsupported_capability"
	ErrorKindExportFailure         ErrorKind = "export_failure"
)

// String returns the string representation of the kind.
func (k ErrorKind) String() string {
	if k == ErrorKindNone {
		return "none"
	}
	return string(k)
}

// DefaultMessage returns the fixed user-facing text for the kind. Kinds whose
// message depends on the failure (remote errors, network failures) return a
// generic prefix that callers extend with the detail.
func (k ErrorKind) DefaultMessage() string {
	switch k {
	case ErrorKindMissingCredential:
		return "No API key configured. Set GEMINI_API_KEY and try again."
	case ErrorKindEmptyInput:
		return "Type something first. Even a rant needs words."
	case ErrorKindUnknownTone:
		return "That tone is not in the catalog."
	case ErrorKindRateLimited:
		return "Too many requests. The AI needs a coffee break."
	case ErrorKindRemoteError:
		return "The AI provider rejected the request"
	case ErrorKindEmptyResponse:
		return "The AI returned nothing. Please try again."
	case ErrorKindNetworkFailure:
		return "Network error"
	case ErrorKindUnsupportedCapability:
		return "Not available on this device."
	case ErrorKindExportFailure:
		return "Export failed"
	default:
		return ""
	}
}

// =============================================================================
// SENTINEL ERRORS
// =============================================================================

// Sentinel errors for each failure kind. Callers wrap these with context
// using fmt.Errorf("...: %w", err) and test with errors.Is.
var (
	// ErrMissingCredential indicates no API key is available.
	ErrMissingCredential = errors.New("missing credential")

	// ErrEmptyInput indicates the input text is empty after trimming.
	ErrEmptyInput = errors.New("empty input")

	// ErrUnknownTone indicates the requested tone is not in the catalog.
	ErrUnknownTone = errors.New("unknown tone")

	// ErrRateLimited indicates the provider refused the request for quota reasons.
	ErrRateLimited = errors.New("rate limited")

	// ErrRemote indicates the provider returned an error payload.
	ErrRemote = errors.New("remote error")

	// ErrEmptyResponse indicates the provider returned no candidate text.
	ErrEmptyResponse = errors.New("empty response")

	// ErrNetworkFailure indicates a transport failure or an unreadable body.
	ErrNetworkFailure = errors.New("network failure")

	// ErrUnsupportedCapability indicates speech input or sharing is not available.
	ErrUnsupportedCapability = errors.New("capability not supported")

	// ErrExportFailure indicates the share image could not be produced.
	ErrExportFailure = errors.New("export failed")
)

var kindSentinels = []struct {
	err  error
	kind ErrorKind
}{
	{ErrMissingCredential, ErrorKindMissingCredential},
	{ErrEmptyInput, ErrorKindEmptyInput},
	{ErrUnknownTone, ErrorKindUnknownTone},
	{ErrRateLimited, ErrorKindRateLimited},
	{ErrRemote, ErrorKindRemoteError},
	{ErrEmptyResponse, ErrorKindEmptyResponse},
	{ErrNetworkFailure, ErrorKindNetworkFailure},
	{ErrUnsupportedCapability, ErrorKindUnsupportedCapability},
	{ErrExportFailure, ErrorKindExportFailure},
}

// KindOf maps an error to its kind by walking the wrap chain.
// Returns ErrorKindNone for nil and unclassified errors.
func KindOf(err error) ErrorKind {
	if err == nil {
		return ErrorKindNone
	}
	for _, s := range kindSentinels {
		if errors.Is(err, s.err) {
			return s.kind
		}
	}
	return ErrorKindNone
}

// Sentinel returns the sentinel error for a kind, or nil for ErrorKindNone.
func (k ErrorKind) Sentinel() error {
	for _, s := range kindSentinels {
		if s.kind == k {
			return s.err
		}
	}
	return nil
}
