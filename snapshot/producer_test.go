// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package snapshot

import (
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

// chanSource reports snapshots pushed into in, waking every tick so the
// producer can poll for shutdown.
type chanSource struct {
	in     chan WindowSnapshot
	tick   time.Duration
	closed atomic.Int32
	err    error
}

func newChanSource() *chanSource {
	return &chanSource{in: make(chan WindowSnapshot, 16), tick: 5 * time.Millisecond}
}

func (s *chanSource) WaitForEvent() (WindowSnapshot, bool) {
	select {
	case snap := <-s.in:
		return snap, true
	case <-time.After(s.tick):
		return WindowSnapshot{}, false
	}
}

func (s *chanSource) Close() error {
	s.closed.Add(1)
	return s.err
}

func waitDone(t *testing.T, p *Producer) {
	t.Helper()
	select {
	case <-p.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("producer did not exit after Shutdown")
	}
}

func drainUntil(t *testing.T, q *Queue[WindowSnapshot], n int) []WindowSnapshot {
	t.Helper()
	var got []WindowSnapshot
	deadline := time.Now().Add(2 * time.Second)
	for len(got) < n {
		for snap := range q.Drain() {
			got = append(got, snap)
		}
		if time.Now().After(deadline) {
			t.Fatalf("received %d snapshots, want %d", len(got), n)
		}
		time.Sleep(time.Millisecond)
	}
	return got
}

func TestProducer_ForwardsSnapshots(t *testing.T) {
	src := newChanSource()
	p := NewProducer(src)
	p.Start()
	defer p.Shutdown()

	want := []WindowSnapshot{Rect(0, 0, 100, 100), Rect(10, 20, 300, 200)}
	for _, s := range want {
		src.in <- s
	}

	got := drainUntil(t, p.Events(), len(want))
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("snapshot %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestProducer_ShutdownReleasesSource(t *testing.T) {
	src := newChanSource()
	p := NewProducer(src)
	p.Start()

	p.Shutdown()
	waitDone(t, p)

	if n := src.closed.Load(); n != 1 {
		t.Errorf("source closed %d times, want 1", n)
	}
}

func TestProducer_ShutdownIsIdempotent(t *testing.T) {
	src := newChanSource()
	p := NewProducer(src)
	p.Start()

	p.Shutdown()
	p.Shutdown()
	waitDone(t, p)

	// After exit the control queue is closed; a late request is dropped
	// instead of piling up or panicking.
	p.control.Send(Shutdown)
	if p.control.Dropped() != 1 {
		t.Errorf("late control message: Dropped() = %d, want 1", p.control.Dropped())
	}
}

func TestProducer_ShutdownDoesNotBlock(t *testing.T) {
	// A source that blocks for a long time still lets Shutdown return at once.
	release := make(chan struct{})
	src := SourceFunc(func() (WindowSnapshot, bool) {
		<-release
		return WindowSnapshot{}, false
	})
	p := NewProducer(src)
	p.Start()

	returned := make(chan struct{})
	go func() {
		p.Shutdown()
		close(returned)
	}()
	select {
	case <-returned:
	case <-time.After(time.Second):
		t.Fatal("Shutdown blocked on a busy source")
	}

	select {
	case <-p.Done():
		t.Fatal("producer exited while its source was still blocked")
	default:
	}

	close(release)
	waitDone(t, p)
}

func TestProducer_SnapshotsAfterShutdownAreDropped(t *testing.T) {
	src := newChanSource()
	p := NewProducer(src)
	p.Shutdown()

	src.in <- Rect(1, 2, 3, 4)
	p.Start()
	waitDone(t, p)

	if p.Events().Len() != 0 {
		t.Errorf("Events().Len() = %d, want 0 after shutdown", p.Events().Len())
	}
}

func TestProducer_StartTwice(t *testing.T) {
	var calls atomic.Int32
	src := SourceFunc(func() (WindowSnapshot, bool) {
		calls.Add(1)
		time.Sleep(time.Millisecond)
		return WindowSnapshot{}, false
	})
	p := NewProducer(src)
	p.Start()
	p.Start()
	p.Shutdown()
	waitDone(t, p)
}

func TestProducer_SourceCloseErrorIsSwallowed(t *testing.T) {
	src := newChanSource()
	src.err = errors.New("display gone")
	p := NewProducer(src)
	p.Start()
	p.Shutdown()
	waitDone(t, p)
}

func TestProducer_SourcePanicStopsProducer(t *testing.T) {
	src := SourceFunc(func() (WindowSnapshot, bool) {
		panic("boom")
	})
	p := NewProducer(src)
	p.Start()
	waitDone(t, p)
}
