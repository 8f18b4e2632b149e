// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package voice

import (
	"context"
	"errors"
	"os/exec"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/corptranslate/internal/model"
)

// fakeProvider returns a canned transcript, optionally after a gate opens.
type fakeProvider struct {
	text string
	err  error
	gate chan struct{}
}

func (f *fakeProvider) Available() bool { return true }

func (f *fakeProvider) Recognize(ctx context.Context) (string, error) {
	if f.gate != nil {
		select {
		case <-f.gate:
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return f.text, f.err
}

func drain(t *testing.T, ch <-chan Event) []Event {
	t.Helper()
	var out []Event
	timeout := time.After(2 * time.Second)
	for {
		select {
		case ev, ok := <-ch:
			if !ok {
				return out
			}
			out = append(out, ev)
		case <-timeout:
			t.Fatal("event channel never closed")
		}
	}
}

func TestCapture_Unsupported(t *testing.T) {
	c := NewCapture(Unavailable{})
	input := "stop emailing me"

	ch, err := c.BeginListening(context.Background())
	assert.ErrorIs(t, err, model.ErrUnsupportedCapability)
	assert.Nil(t, ch)
	assert.False(t, c.Available())
	assert.False(t, c.Listening())
	assert.Equal(t, "stop emailing me", input)
}

func TestCapture_NilProvider(t *testing.T) {
	_, err := NewCapture(nil).BeginListening(context.Background())
	assert.ErrorIs(t, err, model.ErrUnsupportedCapability)
}

func TestCapture_FinalThenEnd(t *testing.T) {
	c := NewCapture(&fakeProvider{text: "i quit"})
	ch, err := c.BeginListening(context.Background())
	require.NoError(t, err)

	events := drain(t, ch)
	require.Len(t, events, 2)
	assert.Equal(t, Event{Kind: EventFinal, Text: "i quit"}, events[0])
	assert.Equal(t, EventEnd, events[1].Kind)
	assert.False(t, c.Listening())
}

func TestCapture_ErrorIsSilent(t *testing.T) {
	c := NewCapture(&fakeProvider{err: errors.New("mic unplugged")})
	ch, err := c.BeginListening(context.Background())
	require.NoError(t, err)

	events := drain(t, ch)
	require.Len(t, events, 1)
	assert.Equal(t, EventEnd, events[0].Kind)
}

func TestCapture_SilenceEndsWithoutFinal(t *testing.T) {
	c := NewCapture(&fakeProvider{text: "   "})
	ch, err := c.BeginListening(context.Background())
	require.NoError(t, err)

	events := drain(t, ch)
	require.Len(t, events, 1)
	assert.Equal(t, EventEnd, events[0].Kind)
}

func TestCapture_SecondCallWhileListeningIsNoop(t *testing.T) {
	gate := make(chan struct{})
	c := NewCapture(&fakeProvider{text: "hello", gate: gate})

	first, err := c.BeginListening(context.Background())
	require.NoError(t, err)
	require.True(t, c.Listening())

	second, err := c.BeginListening(context.Background())
	assert.ErrorIs(t, err, ErrAlreadyListening)
	assert.Nil(t, second)
	assert.True(t, c.Listening(), "first session keeps running")

	close(gate)
	events := drain(t, first)
	require.Len(t, events, 2)
	assert.Equal(t, "hello", events[0].Text)

	third, err := c.BeginListening(context.Background())
	require.NoError(t, err)
	assert.Len(t, drain(t, third), 2, "new session allowed after the first ends")
}

func TestAppendTranscript(t *testing.T) {
	assert.Equal(t, "hello world", AppendTranscript("hello", "world"))
	assert.Equal(t, "hello world", AppendTranscript("hello  ", " world "))
	assert.Equal(t, "world", AppendTranscript("", "world"))
	assert.Equal(t, "hello", AppendTranscript("hello", "  "))
	assert.Equal(t, "line one\nline two", AppendTranscript("line one\nline", "two"))
}

func TestNewProvider(t *testing.T) {
	assert.IsType(t, Unavailable{}, NewProvider("", 0))
	assert.IsType(t, Unavailable{}, NewProvider(`bad "quote`, 0))
	assert.IsType(t, Unavailable{}, NewProvider("no-such-speech-binary-xyz", 0))
}

func requireUnix(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("requires unix tools")
	}
}

func TestCommandProvider_Transcript(t *testing.T) {
	requireUnix(t)
	if _, err := exec.LookPath("echo"); err != nil {
		t.Skip("echo not on PATH")
	}

	p, err := NewCommandProvider(`echo "  please   advise  "`, time.Second)
	require.NoError(t, err)
	require.True(t, p.Available())

	text, err := p.Recognize(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "please advise", text)
}

func TestCommandProvider_TimeoutIsSilence(t *testing.T) {
	requireUnix(t)
	if _, err := exec.LookPath("sleep"); err != nil {
		t.Skip("sleep not on PATH")
	}

	p, err := NewCommandProvider("sleep 5", 50*time.Millisecond)
	require.NoError(t, err)

	text, err := p.Recognize(context.Background())
	assert.NoError(t, err)
	assert.Empty(t, text)
}

func TestCommandProvider_Failure(t *testing.T) {
	requireUnix(t)
	if _, err := exec.LookPath("false"); err != nil {
		t.Skip("false not on PATH")
	}

	p, err := NewCommandProvider("false", time.Second)
	require.NoError(t, err)

	_, err = p.Recognize(context.Background())
	assert.Error(t, err)
}
