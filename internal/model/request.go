// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Request is a single rewrite request. Created per submission and discarded
// once its result is applied.
type Request struct {
	ID        string    `json:"id"`
	RawInput  string    `json:"raw_input"`
	ToneID    string    `json:"tone_id"`
	CreatedAt time.Time `json:"created_at"`
}

// NewRequest creates a request with a fresh ID. The input is kept verbatim.
func NewRequest(rawInput, toneID string) Request {
	return Request{
		ID:        uuid.NewString(),
		RawInput:  rawInput,
		ToneID:    toneID,
		CreatedAt: time.Now(),
	}
}

// HasInput reports whether the raw input contains anything besides whitespace.
func (r Request) HasInput() bool {
	return strings.TrimSpace(r.RawInput) != ""
}
