// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/jeranaias/corptranslate/internal/logging"
	"github.com/jeranaias/corptranslate/internal/model"
	"github.com/jeranaias/corptranslate/internal/prompt"
	"github.com/jeranaias/corptranslate/internal/tone"
	"github.com/jeranaias/corptranslate/internal/voice"
)

var (
	// ErrBusy is returned when a submission is already in flight.
	ErrBusy = errors.New("a rewrite is already in progress")

	// ErrCoolingDown is returned while the rate-limit cooldown is active.
	ErrCoolingDown = errors.New("cooling down after rate limit")
)

// =============================================================================
// DEPENDENCIES
// =============================================================================

// Completer performs one rewrite call. *gemini.Client satisfies it.
type Completer interface {
	RequestRewrite(ctx context.Context, prompt, credential string) model.Result
}

// CredentialSource returns the current API key. It is consulted once per
// submission so a key added to the environment or config takes effect
// without a restart.
type CredentialSource func() string

// Cooldown is the countdown armed after a rate limit. *cooldown.Controller
// satisfies it.
type Cooldown interface {
	Start(seconds int)
	Cancel()
	IsActive() bool
	Remaining() int
	Ticks() <-chan int
}

// =============================================================================
// PHASE
// =============================================================================

// Phase is the orchestrator state.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseSubmitting
	PhaseCooldown
	PhaseDoneSuccess
	PhaseDoneFailure
)

// String returns the string representation of the phase.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseSubmitting:
		return "submitting"
	case PhaseCooldown:
		return "cooldown"
	case PhaseDoneSuccess:
		return "done_success"
	case PhaseDoneFailure:
		return "done_failure"
	default:
		return "unknown"
	}
}

// Ticket identifies one accepted submission.
type Ticket struct {
	ID      string
	Request model.Request
	Prompt  string
}

// =============================================================================
// ORCHESTRATOR
// =============================================================================

// Orchestrator is the generation state machine. Every state change goes
// through its mutex, so the TUI update loop, the CLI and the REPL share the
// same guarantees: at most one request in flight, no submission during
// cooldown, and stale results discarded by ticket ID.
type Orchestrator struct {
	mu sync.Mutex

	client   Completer
	creds    CredentialSource
	catalog  *tone.Catalog
	builder  *prompt.Builder
	cooldown Cooldown
	capture  *voice.Capture

	input     string
	toneID    string
	phase     Phase
	current   string
	result    *model.Result
	errMsg    string
	listening bool

	rejectLog rate.Sometimes
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithCatalog uses a custom tone catalog.
func WithCatalog(c *tone.Catalog) Option {
	return func(o *Orchestrator) {
		if c != nil {
			o.catalog = c
		}
	}
}

// WithTone sets the initially selected tone. Unknown IDs are ignored.
func WithTone(id string) Option {
	return func(o *Orchestrator) { o.toneID = id }
}

// WithCapture attaches speech input.
func WithCapture(c *voice.Capture) Option {
	return func(o *Orchestrator) { o.capture = c }
}

// New creates an orchestrator in PhaseIdle. A nil capture means speech input
// is unavailable.
func New(client Completer, creds CredentialSource, cd Cooldown, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		client:    client,
		creds:     creds,
		catalog:   tone.Default(),
		cooldown:  cd,
		phase:     PhaseIdle,
		rejectLog: rate.Sometimes{First: 1, Interval: 5 * time.Second},
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.creds == nil {
		o.creds = func() string { return "" }
	}
	if o.capture == nil {
		o.capture = voice.NewCapture(nil)
	}
	if !o.catalog.Has(o.toneID) {
		o.toneID = o.catalog.At(0).ID
		if o.catalog.Has(tone.DefaultToneID) {
			o.toneID = tone.DefaultToneID
		}
	}
	o.builder = prompt.NewBuilder(o.catalog)
	return o
}

// Catalog returns the tone catalog in use.
func (o *Orchestrator) Catalog() *tone.Catalog {
	return o.catalog
}

// CooldownTicks exposes the cooldown tick channel for the UI to forward to
// CooldownTick.
func (o *Orchestrator) CooldownTicks() <-chan int {
	return o.cooldown.Ticks()
}

// SetInput replaces the input text.
func (o *Orchestrator) SetInput(text string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.input = text
}

// SelectTone changes the selected tone.
func (o *Orchestrator) SelectTone(id string) error {
	if !o.catalog.Has(id) {
		return fmt.Errorf("select tone %q: %w", id, model.ErrUnknownTone)
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	o.toneID = id
	return nil
}

// CycleTone selects the next tone in catalog order and returns it.
func (o *Orchestrator) CycleTone() tone.Variant {
	o.mu.Lock()
	defer o.mu.Unlock()
	next := o.catalog.Next(o.toneID)
	o.toneID = next.ID
	return next
}

// AppendTranscript adds recognized speech to the input.
func (o *Orchestrator) AppendTranscript(transcript string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.input = voice.AppendTranscript(o.input, transcript)
}

// =============================================================================
// SUBMISSION
// =============================================================================

// Submit validates the current input and tone and, when accepted, moves to
// PhaseSubmitting and clears the previous outcome. Rejections happen before
// any network call:
//   - ErrBusy while a request is in flight
//   - ErrCoolingDown while the cooldown is active
//   - model.ErrEmptyInput / model.ErrUnknownTone on invalid input; these also
//     set the session error message
func (o *Orchestrator) Submit() (Ticket, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	log := logging.For("session")

	if o.phase == PhaseSubmitting {
		log.Debug().Msg("submission rejected: busy")
		return Ticket{}, ErrBusy
	}
	if o.cooldown.IsActive() {
		o.rejectLog.Do(func() {
			log.Info().Int("remaining", o.cooldown.Remaining()).Msg("submission rejected: cooling down")
		})
		return Ticket{}, ErrCoolingDown
	}
	if o.phase == PhaseCooldown {
		// The final tick has not been delivered yet.
		o.phase = PhaseIdle
	}

	req := model.NewRequest(o.input, o.toneID)
	text, err := o.builder.Build(req.ToneID, req.RawInput)
	if err != nil {
		o.result = nil
		o.errMsg = model.KindOf(err).DefaultMessage()
		log.Debug().Err(err).Msg("submission rejected: invalid")
		return Ticket{}, err
	}

	o.phase = PhaseSubmitting
	o.current = req.ID
	o.result = nil
	o.errMsg = ""

	log.Debug().Str("ticket", req.ID).Msg("submission accepted: " + prompt.Describe(req.ToneID, req.RawInput))
	return Ticket{ID: req.ID, Request: req, Prompt: text}, nil
}

// Execute performs the network call for t. It does not touch session state,
// so it is safe to run off the UI thread.
func (o *Orchestrator) Execute(ctx context.Context, t Ticket) model.Result {
	return o.client.RequestRewrite(ctx, t.Prompt, o.creds())
}

// Complete applies the outcome of ticket id. Results for any ticket other
// than the one in flight are discarded and false is returned.
func (o *Orchestrator) Complete(id string, r model.Result) bool {
	o.mu.Lock()
	defer o.mu.Unlock()

	log := logging.For("session")

	if o.phase != PhaseSubmitting || id == "" || id != o.current {
		log.Debug().Str("ticket", id).Msg("discarding stale result")
		return false
	}
	o.current = ""

	switch r.Kind {
	case model.OutcomeSuccess:
		o.phase = PhaseDoneSuccess
		o.errMsg = ""
		log.Info().Str("ticket", id).Msg("rewrite succeeded")

	case model.OutcomeRateLimited:
		secs := r.RetryAfterSeconds
		if secs <= 0 {
			secs = model.FixedCooldownSeconds
		}
		o.phase = PhaseCooldown
		// The cooldown banner replaces the error message.
		o.errMsg = ""
		o.cooldown.Start(secs)
		log.Warn().Str("ticket", id).Int("cooldown", secs).Msg("rate limited")

	default:
		o.phase = PhaseDoneFailure
		o.errMsg = r.UserMessage()
		log.Warn().Str("ticket", id).Str("kind", r.Err.String()).Msg("rewrite failed")
	}

	res := r
	o.result = &res
	return true
}

// Generate runs one full submission synchronously. The error is non-nil
// only when the submission was rejected; provider outcomes are reported in
// the result.
func (o *Orchestrator) Generate(ctx context.Context) (model.Result, error) {
	t, err := o.Submit()
	if err != nil {
		return model.Result{}, err
	}
	r := o.Execute(ctx, t)
	o.Complete(t.ID, r)
	return r, nil
}

// CooldownTick applies a cooldown tick. Reaching zero in PhaseCooldown
// returns to PhaseIdle. A zero left over from an earlier cooldown is ignored
// while the controller is armed again.
func (o *Orchestrator) CooldownTick(remaining int) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if remaining <= 0 && o.phase == PhaseCooldown && !o.cooldown.IsActive() {
		o.phase = PhaseIdle
		o.result = nil
		logging.For("session").Info().Msg("cooldown finished")
	}
}

// Reset cancels any cooldown and returns to PhaseIdle with empty input. An
// in-flight request is orphaned and its result will be discarded.
func (o *Orchestrator) Reset() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.cooldown.Cancel()
	o.phase = PhaseIdle
	o.current = ""
	o.input = ""
	o.result = nil
	o.errMsg = ""
}

// =============================================================================
// VOICE
// =============================================================================

// SetCapture swaps the speech input, e.g. after a config reload. A nil
// capture makes speech input unavailable.
func (o *Orchestrator) SetCapture(c *voice.Capture) {
	if c == nil {
		c = voice.NewCapture(nil)
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	o.capture = c
}

func (o *Orchestrator) currentCapture() *voice.Capture {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.capture
}

// VoiceAvailable reports whether speech input can be attempted.
func (o *Orchestrator) VoiceAvailable() bool {
	return o.currentCapture().Available()
}

// BeginListening starts speech capture. The input is not touched until a
// final transcript is passed to HandleVoiceEvent. Returns
// model.ErrUnsupportedCapability when speech input is unavailable and
// voice.ErrAlreadyListening, without touching state, while a session runs.
func (o *Orchestrator) BeginListening(ctx context.Context) (<-chan voice.Event, error) {
	ch, err := o.currentCapture().BeginListening(ctx)
	if err != nil {
		return nil, err
	}
	o.mu.Lock()
	o.listening = true
	o.mu.Unlock()
	return ch, nil
}

// HandleVoiceEvent applies one capture event.
func (o *Orchestrator) HandleVoiceEvent(ev voice.Event) {
	o.mu.Lock()
	defer o.mu.Unlock()
	switch ev.Kind {
	case voice.EventFinal:
		o.input = voice.AppendTranscript(o.input, ev.Text)
	case voice.EventEnd:
		o.listening = false
	}
}

// =============================================================================
// SNAPSHOT
// =============================================================================

// Snapshot returns a copy of the presentation state.
func (o *Orchestrator) Snapshot() State {
	o.mu.Lock()
	defer o.mu.Unlock()

	s := State{
		Input:             o.input,
		ToneID:            o.toneID,
		Phase:             o.phase,
		Loading:           o.phase == PhaseSubmitting,
		ErrorMessage:      o.errMsg,
		CooldownRemaining: o.cooldown.Remaining(),
		Listening:         o.listening,
	}
	if v, err := o.catalog.Get(o.toneID); err == nil {
		s.ToneLabel = v.Label
	}
	if o.result != nil {
		r := *o.result
		s.LastResult = &r
	}
	return s
}

// CanSubmit reports whether Submit would get past the busy and cooldown
// checks. Input validation is not included.
func (o *Orchestrator) CanSubmit() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.phase != PhaseSubmitting && !o.cooldown.IsActive()
}

// HasInput reports whether the input contains non-whitespace text.
func (s State) HasInput() bool {
	return strings.TrimSpace(s.Input) != ""
}
