// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// json_output.go - JSON output for scripting.
//
// Every command that accepts --json prints exactly one JSONResponse.
package cli

import (
	"encoding/json"
	"io"
	"time"

	"github.com/jeranaias/corptranslate/internal/model"
)

// JSONResponse is the response envelope for --json output.
type JSONResponse struct {
	// Success indicates whether the command completed successfully
	Success bool `json:"success"`

	// Data contains the command-specific response data
	Data any `json:"data"`

	// Error contains the error message if Success is false, null otherwise
	Error *string `json:"error"`

	// Kind is the failure category (rate_limited, network_failure, ...)
	Kind string `json:"kind,omitempty"`

	// Timestamp is when the response was generated (RFC 3339, UTC)
	Timestamp string `json:"timestamp"`

	// Command is the command that was executed
	Command string `json:"command,omitempty"`
}

// NewJSONResponse creates a successful response.
func NewJSONResponse(command string, data any) *JSONResponse {
	return &JSONResponse{
		Success:   true,
		Data:      data,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Command:   command,
	}
}

// NewJSONErrorResponse creates a failed response. The kind is derived from
// the error's sentinel when it has one.
func NewJSONErrorResponse(command string, err error) *JSONResponse {
	msg := err.Error()
	resp := &JSONResponse{
		Success:   false,
		Error:     &msg,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Command:   command,
	}
	if k := model.KindOf(err); k != model.ErrorKindNone {
		resp.Kind = k.String()
	}
	return resp
}

// Write encodes the response to w with indentation.
func (r *JSONResponse) Write(w io.Writer) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(r)
}
