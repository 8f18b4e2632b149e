// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"fmt"
	"strings"
)

// FixedCooldownSeconds is the wait imposed after a rate-limit response.
// Provider retry hints are not consulted.
const FixedCooldownSeconds = 60

// =============================================================================
// OUTCOME
// =============================================================================

// Outcome tags which variant a Result holds.
type Outcome int

const (
	OutcomeSuccess Outcome = iota
	OutcomeFailure
	OutcomeRateLimited
)

// String returns the string representation of the outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomeFailure:
		return "failure"
	case OutcomeRateLimited:
		return "rate_limited"
	default:
		return "unknown"
	}
}

// =============================================================================
// RESULT
// =============================================================================

// Result is the outcome of one generation attempt. Exactly one variant is
// meaningful, selected by Kind:
//   - OutcomeSuccess: Text holds the rewritten email
//   - OutcomeFailure: Err and Message describe the failure
//   - OutcomeRateLimited: RetryAfterSeconds holds the cooldown length
type Result struct {
	Kind              Outcome   `json:"kind"`
	Text              string    `json:"text,omitempty"`
	Err               ErrorKind `json:"error,omitempty"`
	Message           string    `json:"message,omitempty"`
	RetryAfterSeconds int       `json:"retry_after_seconds,omitempty"`
}

// Success creates a successful result.
func Success(text string) Result {
	return Result{Kind: OutcomeSuccess, Text: text}
}

// Failure creates a failed result. An empty message falls back to the
// kind's default message.
func Failure(kind ErrorKind, message string) Result {
	return Result{Kind: OutcomeFailure, Err: kind, Message: message}
}

// RateLimited creates a rate-limited result.
func RateLimited(seconds int) Result {
	return Result{Kind: OutcomeRateLimited, Err: ErrorKindRateLimited, RetryAfterSeconds: seconds}
}

// IsSuccess reports whether the result carries rewritten text.
func (r Result) IsSuccess() bool {
	return r.Kind == OutcomeSuccess
}

// UserMessage returns the message to display for a non-success result.
// Remote errors are shown verbatim; network failures include their cause.
func (r Result) UserMessage() string {
	switch r.Kind {
	case OutcomeSuccess:
		return ""
	case OutcomeRateLimited:
		return ErrorKindRateLimited.DefaultMessage()
	}

	msg := strings.TrimSpace(r.Message)
	switch r.Err {
	case ErrorKindRemoteError:
		if msg != "" {
			return msg
		}
	case ErrorKindNetworkFailure, ErrorKindExportFailure:
		if msg != "" {
			return fmt.Sprintf("%s: %s", r.Err.DefaultMessage(), msg)
		}
	default:
		if msg != "" {
			return msg
		}
	}
	return r.Err.DefaultMessage()
}

// AsError converts a non-success result into an error wrapping the sentinel
// for its kind. Returns nil for success.
func (r Result) AsError() error {
	switch r.Kind {
	case OutcomeSuccess:
		return nil
	case OutcomeRateLimited:
		return fmt.Errorf("%w: retry in %ds", ErrRateLimited, r.RetryAfterSeconds)
	}
	sentinel := r.Err.Sentinel()
	if sentinel == nil {
		return fmt.Errorf("generation failed: %s", r.Message)
	}
	if r.Message == "" {
		return sentinel
	}
	return fmt.Errorf("%w: %s", sentinel, r.Message)
}
