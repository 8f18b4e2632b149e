// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session implements the generation state machine that ties a
// "generate" action to one terminal outcome: a rewritten email, an error
// message, or a rate-limit cooldown.
//
// # Phases
//
//	Idle --Submit--> Submitting
//	Submitting --success--> DoneSuccess
//	Submitting --rate limited--> Cooldown (arms the cooldown)
//	Submitting --failure--> DoneFailure
//	Cooldown --tick reaches 0--> Idle
//	Done* --Submit--> Submitting
//
// Submissions while Submitting or during the cooldown are rejected before
// any network call. Results are matched to submissions by ticket ID and
// stale ones are dropped.
//
// # Usage
//
// One-shot (CLI):
//
//	o := session.New(client, cfg.Credential, cooldown.New())
//	o.SetInput("i quit")
//	res, err := o.Generate(ctx)
//
// Bubble Tea: call Submit in Update, return ExecuteCmd, and feed the
// ResultMsg to Complete. Forward CooldownTicks through WaitCooldownTick.
package session
