// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures shared by every layer of the
// rewrite pipeline.
//
// This package defines the request a user submits, the tagged outcome of a
// generation attempt, and the error taxonomy used to classify failures.
//
// # Key Types
//
//   - Request: Raw user text plus the selected tone, identified by a UUID
//   - Result: Tagged outcome (success, failure, rate limited)
//   - ErrorKind: Failure classification with a user-facing message
//
// # Usage
//
// Build a request and inspect an outcome:
//
//	req := model.NewRequest("stop emailing me", "cold")
//	res := client.RequestRewrite(ctx, prompt, key)
//	switch res.Kind {
//	case model.OutcomeSuccess:
//	    fmt.Println(res.Text)
//	case model.OutcomeRateLimited:
//	    fmt.Printf("retry in %ds\n", res.RetryAfterSeconds)
//	case model.OutcomeFailure:
//	    fmt.Println(res.UserMessage())
//	}
//
// Map an error back to a kind:
//
//	if model.KindOf(err) == model.ErrorKindEmptyInput {
//	    // prompt for text
//	}
package model
