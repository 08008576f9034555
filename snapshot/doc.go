// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package snapshot carries focused-window geometry from a background
// observer to the per-frame animator.
//
// # Overview
//
// A [Source] blocks until the window focus changes and then reports the
// focused window's bounding box as a [WindowSnapshot]. A [Producer] runs the
// source on its own goroutine and forwards every snapshot into an unbounded
// [Queue]. The render loop drains that queue once per frame with
// [Queue.Drain], which never blocks.
//
//	Source ──WaitForEvent──▶ Producer ──Send──▶ Queue ──Drain──▶ animator
//	                            ▲
//	                            └──── Shutdown (control queue, polled)
//
// # Shutdown
//
// Shutdown is cooperative and best-effort. [Producer.Shutdown] enqueues a
// single [Shutdown] message and returns immediately. The producer checks the
// control queue after each blocking wait on its source, so teardown latency
// is bounded by how long the source blocks, not by the caller. A send to a
// producer that has already exited is dropped silently: the consumer is
// going away, so nobody needs the signal.
//
// # Thread Safety
//
// [Queue] is safe for any number of concurrent senders and exactly one
// receiver. The producer goroutine shares no mutable state with the render
// loop; the two queues are the only synchronization between them.
package snapshot
