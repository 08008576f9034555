// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package snapshot

import (
	"io"
	"sync"
	"sync/atomic"
)

// Producer runs a Source on its own goroutine and forwards every snapshot it
// reports into an event queue.
//
// Lifecycle:
//
//	p := snapshot.NewProducer(src)
//	p.Start()
//	...
//	for snap := range p.Events().Drain() { ... } // once per frame, never blocks
//	...
//	p.Shutdown() // fire-and-forget
//
// The producer owns the source: it is the only caller of WaitForEvent and
// it closes the source (if it implements io.Closer) on its way out.
type Producer struct {
	source  Source
	events  *Queue[WindowSnapshot]
	control *Queue[Control]

	started      atomic.Bool
	shutdownOnce sync.Once
	done         chan struct{}
}

// NewProducer creates a producer for src. The goroutine is not started
// until Start is called.
func NewProducer(src Source) *Producer {
	return &Producer{
		source:  src,
		events:  NewQueue[WindowSnapshot](),
		control: NewQueue[Control](),
		done:    make(chan struct{}),
	}
}

// Start launches the producer goroutine. Calling Start more than once has
// no effect.
func (p *Producer) Start() {
	if !p.started.CompareAndSwap(false, true) {
		return
	}
	go p.run()
}

// Events returns the queue snapshots are delivered on. Only one goroutine
// may receive from it.
func (p *Producer) Events() *Queue[WindowSnapshot] {
	return p.events
}

// Shutdown asks the producer goroutine to stop and returns immediately.
//
// The request is a single Shutdown message on the control queue; the
// goroutine observes it after its current WaitForEvent returns. Shutdown
// does not wait for that to happen and there is no acknowledgement. If the
// goroutine has already exited the message is dropped. Calling Shutdown
// more than once sends nothing further.
//
// Shutdown also closes the event queue, so snapshots the producer reports
// while it winds down are discarded rather than delivered to a consumer
// that is gone.
func (p *Producer) Shutdown() {
	p.shutdownOnce.Do(func() {
		Logger().Debug("snapshot: shutdown requested")
		p.control.Send(Shutdown)
		p.events.Close()
	})
}

// Done returns a channel that is closed once the producer goroutine has
// exited and released its source. Shutdown never waits on it; it exists for
// callers (and tests) that choose to.
func (p *Producer) Done() <-chan struct{} {
	return p.done
}

func (p *Producer) run() {
	defer close(p.done)
	defer p.release()
	defer func() {
		if r := recover(); r != nil {
			Logger().Error("snapshot: source panicked, producer stopped", "panic", r)
		}
	}()

	Logger().Info("snapshot: producer started")
	for {
		if snap, ok := p.source.WaitForEvent(); ok {
			p.events.Send(snap)
		}
		if p.shutdownRequested() {
			return
		}
	}
}

func (p *Producer) shutdownRequested() bool {
	for msg := range p.control.Drain() {
		if msg == Shutdown {
			return true
		}
	}
	return false
}

// release closes the control queue so later Shutdown sends are dropped,
// then releases the source.
func (p *Producer) release() {
	p.control.Close()
	if c, ok := p.source.(io.Closer); ok {
		if err := c.Close(); err != nil {
			Logger().Warn("snapshot: closing source", "err", err)
		}
	}
	Logger().Info("snapshot: producer stopped")
}
