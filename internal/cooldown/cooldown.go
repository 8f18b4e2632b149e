// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cooldown implements the post-rate-limit countdown.
//
// A Controller holds at most one armed ticker. Starting while active replaces
// the remaining count instead of stacking timers. Each tick decrements the
// count by exactly one and publishes the new value; the ticker is released
// when the count reaches zero.
package cooldown

import (
	"sync"
	"time"
)

// Ticker is the subset of *time.Ticker the controller uses.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

// TickerFactory creates a ticker firing once per countdown step.
type TickerFactory func() Ticker

type realTicker struct{ t *time.Ticker }

func (r realTicker) C() <-chan time.Time { return r.t.C }
func (r realTicker) Stop()               { r.t.Stop() }

// SecondTicker is the production factory: one tick per second.
func SecondTicker() Ticker {
	return realTicker{t: time.NewTicker(time.Second)}
}

// Option configures a Controller.
type Option func(*Controller)

// WithTicker replaces the ticker factory. Tests use it to drive ticks by hand.
func WithTicker(f TickerFactory) Option {
	return func(c *Controller) {
		c.newTicker = f
	}
}

// WithBuffer sets the capacity of the tick notification channel.
func WithBuffer(n int) Option {
	return func(c *Controller) {
		if n > 0 {
			c.bufSize = n
		}
	}
}

// Controller tracks the remaining cooldown seconds.
type Controller struct {
	mu        sync.Mutex
	remaining int
	gen       uint64
	stop      chan struct{}

	newTicker TickerFactory
	bufSize   int
	ticks     chan int
}

// New creates an idle controller.
func New(opts ...Option) *Controller {
	c := &Controller{
		newTicker: SecondTicker,
		bufSize:   64,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.ticks = make(chan int, c.bufSize)
	return c
}

// Start arms the countdown with seconds. An active countdown is replaced, not
// extended. Non-positive values cancel.
func (c *Controller) Start(seconds int) {
	if seconds <= 0 {
		c.Cancel()
		return
	}

	c.mu.Lock()
	c.disarmLocked()
	c.gen++
	gen := c.gen
	c.remaining = seconds
	stop := make(chan struct{})
	c.stop = stop
	t := c.newTicker()
	c.mu.Unlock()

	go c.run(gen, t, stop)
}

// run consumes ticks for one generation until the count reaches zero or the
// generation is superseded.
func (c *Controller) run(gen uint64, t Ticker, stop <-chan struct{}) {
	defer t.Stop()
	for {
		select {
		case <-stop:
			return
		case <-t.C():
			remaining, done, ok := c.tick(gen)
			if !ok {
				return
			}
			c.publish(remaining)
			if done {
				return
			}
		}
	}
}

// tick decrements the count for gen. ok is false when gen is stale.
func (c *Controller) tick(gen uint64) (remaining int, done, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen || c.remaining <= 0 {
		return 0, true, false
	}
	c.remaining--
	if c.remaining == 0 {
		c.stop = nil
		return 0, true, true
	}
	return c.remaining, false, true
}

// publish delivers a tick without blocking the countdown. When the buffer is
// full the oldest value is dropped; the latest value always gets through.
func (c *Controller) publish(remaining int) {
	for {
		select {
		case c.ticks <- remaining:
			return
		default:
		}
		select {
		case <-c.ticks:
		default:
		}
	}
}

// Cancel stops the countdown and zeroes the count. No tick is published.
func (c *Controller) Cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.disarmLocked()
	c.gen++
	c.remaining = 0
}

func (c *Controller) disarmLocked() {
	if c.stop != nil {
		close(c.stop)
		c.stop = nil
	}
}

// IsActive reports whether the count is above zero.
func (c *Controller) IsActive() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.remaining > 0
}

// Remaining returns the seconds left.
func (c *Controller) Remaining() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.remaining
}

// Ticks delivers the remaining count after every tick, ending with 0.
func (c *Controller) Ticks() <-chan int {
	return c.ticks
}
