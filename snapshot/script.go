// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package snapshot

import (
	"sync"
	"time"
)

// Step is one scripted focus change: after Delay, the focused window
// becomes Window.
type Step struct {
	Delay  time.Duration
	Window WindowSnapshot
}

// Script is a Source that replays a fixed list of focus changes. It stands
// in for a real window-system observer in demos and tests.
//
// After the last step, Script either starts over (Loop) or keeps waking up
// every Idle interval without reporting anything, so the producer can still
// notice a shutdown request.
type Script struct {
	Steps []Step
	Loop  bool
	Idle  time.Duration

	mu   sync.Mutex
	next int
	stop chan struct{}
	once sync.Once
}

// NewScript creates a script over steps.
func NewScript(steps []Step, loop bool) *Script {
	return &Script{
		Steps: steps,
		Loop:  loop,
		Idle:  50 * time.Millisecond,
	}
}

// WaitForEvent sleeps until the next step is due and returns its window.
func (s *Script) WaitForEvent() (WindowSnapshot, bool) {
	stop := s.stopChan()

	s.mu.Lock()
	if s.next >= len(s.Steps) && s.Loop && len(s.Steps) > 0 {
		s.next = 0
	}
	if s.next >= len(s.Steps) {
		s.mu.Unlock()
		s.sleep(s.idle(), stop)
		return WindowSnapshot{}, false
	}
	step := s.Steps[s.next]
	s.next++
	s.mu.Unlock()

	if !s.sleep(step.Delay, stop) {
		return WindowSnapshot{}, false
	}
	return step.Window, true
}

// Close wakes a pending WaitForEvent and makes every later call return
// immediately with nothing to report.
func (s *Script) Close() error {
	stop := s.stopChan()
	s.once.Do(func() { close(stop) })
	return nil
}

func (s *Script) stopChan() chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stop == nil {
		s.stop = make(chan struct{})
	}
	return s.stop
}

func (s *Script) idle() time.Duration {
	if s.Idle <= 0 {
		return 50 * time.Millisecond
	}
	return s.Idle
}

// sleep waits for d or until stop is closed. It reports whether the full
// duration elapsed.
func (s *Script) sleep(d time.Duration, stop <-chan struct{}) bool {
	if d <= 0 {
		select {
		case <-stop:
			return false
		default:
			return true
		}
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return true
	case <-stop:
		return false
	}
}
