// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package voice bridges speech-to-text into the input field.
//
// Recognition is delegated to a SpeechInputProvider. The terminal has no
// microphone API of its own, so the production provider runs an external
// speech-to-text command and reads its transcript from stdout. When no
// command is configured the Unavailable provider is used and callers get
// model.ErrUnsupportedCapability.
package voice

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/jeranaias/corptranslate/internal/logging"
	"github.com/jeranaias/corptranslate/internal/model"
	"github.com/jeranaias/corptranslate/internal/util"
)

// ErrAlreadyListening is returned by BeginListening while a session is in
// progress. The running session is not affected.
var ErrAlreadyListening = errors.New("already listening")

// DefaultListenTimeout bounds a single listening session.
const DefaultListenTimeout = 15 * time.Second

// maxTranscriptBytes caps how much command output is read.
const maxTranscriptBytes = 64 * 1024

// =============================================================================
// PROVIDERS
// =============================================================================

// SpeechInputProvider performs one speech recognition session.
type SpeechInputProvider interface {
	// Available reports whether recognition can be attempted at all.
	Available() bool
	// Recognize listens once and returns the final transcript. An empty
	// transcript with a nil error means nothing was heard.
	Recognize(ctx context.Context) (string, error)
}

// Unavailable is the provider for devices without speech input.
type Unavailable struct{}

// Available always returns false.
func (Unavailable) Available() bool { return false }

// Recognize always fails with model.ErrUnsupportedCapability.
func (Unavailable) Recognize(context.Context) (string, error) {
	return "", model.ErrUnsupportedCapability
}

// CommandProvider runs an external speech-to-text program. The program is
// expected to record until the speaker stops and print the transcript.
type CommandProvider struct {
	cmd     util.Command
	timeout time.Duration
}

// NewCommandProvider parses commandLine. A non-positive timeout uses
// DefaultListenTimeout.
func NewCommandProvider(commandLine string, timeout time.Duration) (*CommandProvider, error) {
	cmd, err := util.ParseCommand(commandLine)
	if err != nil {
		return nil, fmt.Errorf("voice command: %w", err)
	}
	if timeout <= 0 {
		timeout = DefaultListenTimeout
	}
	return &CommandProvider{cmd: cmd, timeout: timeout}, nil
}

// Available reports whether the program is on PATH.
func (p *CommandProvider) Available() bool {
	return p.cmd.Available()
}

// Command returns the configured command.
func (p *CommandProvider) Command() util.Command {
	return p.cmd
}

// Recognize runs the command and returns its trimmed stdout. Hitting the
// listen timeout is treated as silence.
func (p *CommandProvider) Recognize(ctx context.Context) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	c := exec.CommandContext(ctx, p.cmd.Argv[0], p.cmd.Argv[1:]...)
	var stdout, stderr bytes.Buffer
	c.Stdout = &limitedWriter{w: &stdout, n: maxTranscriptBytes}
	c.Stderr = &limitedWriter{w: &stderr, n: 4096}

	err := c.Run()
	if ctx.Err() == context.DeadlineExceeded {
		return "", nil
	}
	if err != nil {
		detail := strings.TrimSpace(stderr.String())
		if detail != "" {
			return "", fmt.Errorf("speech command %s failed: %w: %s", p.cmd.Program(), err, detail)
		}
		return "", fmt.Errorf("speech command %s failed: %w", p.cmd.Program(), err)
	}
	return normalizeTranscript(stdout.String()), nil
}

// normalizeTranscript collapses the command output to a single line.
func normalizeTranscript(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// limitedWriter discards everything past n bytes without failing the command.
type limitedWriter struct {
	w io.Writer
	n int
}

func (l *limitedWriter) Write(p []byte) (int, error) {
	total := len(p)
	if l.n <= 0 {
		return total, nil
	}
	if len(p) > l.n {
		p = p[:l.n]
	}
	n, err := l.w.Write(p)
	l.n -= n
	if err != nil {
		return n, err
	}
	return total, nil
}

// NewProvider picks the provider for a configured command line. An empty or
// invalid command, or one whose program is missing, yields Unavailable.
func NewProvider(commandLine string, timeout time.Duration) SpeechInputProvider {
	if strings.TrimSpace(commandLine) == "" {
		return Unavailable{}
	}
	p, err := NewCommandProvider(commandLine, timeout)
	if err != nil {
		logging.For("voice").Warn().Err(err).Msg("speech input disabled")
		return Unavailable{}
	}
	if !p.Available() {
		logging.For("voice").Warn().Str("program", p.cmd.Program()).Msg("speech program not found on PATH")
		return Unavailable{}
	}
	return p
}

// =============================================================================
// CAPTURE
// =============================================================================

// EventKind tags a listening event.
type EventKind int

const (
	// EventFinal carries the final transcript. Sent at most once.
	EventFinal EventKind = iota
	// EventEnd marks the end of the session. Always the last event.
	EventEnd
)

// Event is one notification from a listening session.
type Event struct {
	Kind EventKind
	Text string
}

// Capture runs single-shot listening sessions, one at a time.
type Capture struct {
	mu        sync.Mutex
	provider  SpeechInputProvider
	listening bool
}

// NewCapture wraps a provider. A nil provider is treated as Unavailable.
func NewCapture(provider SpeechInputProvider) *Capture {
	if provider == nil {
		provider = Unavailable{}
	}
	return &Capture{provider: provider}
}

// Available reports whether speech input can be attempted.
func (c *Capture) Available() bool {
	return c.provider.Available()
}

// Listening reports whether a session is in progress.
func (c *Capture) Listening() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.listening
}

// BeginListening starts a session. The returned channel yields at most one
// EventFinal followed by EventEnd, then closes. Recognition errors and
// silence produce only EventEnd. Calling while a session is active is a
// no-op that returns ErrAlreadyListening.
func (c *Capture) BeginListening(ctx context.Context) (<-chan Event, error) {
	if !c.provider.Available() {
		return nil, model.ErrUnsupportedCapability
	}

	c.mu.Lock()
	if c.listening {
		c.mu.Unlock()
		return nil, ErrAlreadyListening
	}
	c.listening = true
	c.mu.Unlock()

	events := make(chan Event, 2)
	go func() {
		defer close(events)
		defer func() {
			c.mu.Lock()
			c.listening = false
			c.mu.Unlock()
		}()

		log := logging.For("voice")
		text, err := c.provider.Recognize(ctx)
		switch {
		case err != nil:
			log.Debug().Err(err).Msg("speech recognition ended with error")
		case strings.TrimSpace(text) == "":
			log.Debug().Msg("speech recognition heard nothing")
		default:
			events <- Event{Kind: EventFinal, Text: text}
		}
		events <- Event{Kind: EventEnd}
	}()
	return events, nil
}

// AppendTranscript appends transcript to existing input, separated by a
// single space. Blank transcripts leave the input unchanged.
func AppendTranscript(existing, transcript string) string {
	transcript = strings.TrimSpace(transcript)
	if transcript == "" {
		return existing
	}
	if strings.TrimSpace(existing) == "" {
		return transcript
	}
	return strings.TrimRight(existing, " \t") + " " + transcript
}
