// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package snapshot

import (
	"iter"
	"sync/atomic"
)

// node is a single linked-list cell of a Queue.
type node[T any] struct {
	next atomic.Pointer[node[T]]
	val  T
}

// Queue is an unbounded multi-producer, single-consumer FIFO.
//
// Send never blocks and never fails observably: after Close, values are
// dropped and counted instead of being delivered. The receive side
// (TryReceive, Drain) never blocks either and must only be used from a single
// goroutine.
//
// The implementation is an intrusive linked list in the style of Vyukov's
// MPSC queue: producers publish with one atomic swap on head, the consumer
// walks from a stub node it owns exclusively. Per producer, values are
// received in the order they were sent.
type Queue[T any] struct {
	head atomic.Pointer[node[T]] // most recently sent node
	tail *node[T]                // consumer-owned; tail.next is the oldest value

	length  atomic.Int64
	dropped atomic.Uint64
	closed  atomic.Bool
}

// NewQueue creates an empty queue.
func NewQueue[T any]() *Queue[T] {
	stub := &node[T]{}
	q := &Queue[T]{tail: stub}
	q.head.Store(stub)
	return q
}

// Send enqueues v. It is safe to call from any goroutine.
//
// Sending to a closed queue drops v silently; Dropped reports how many values
// were lost that way.
func (q *Queue[T]) Send(v T) {
	if q.closed.Load() {
		q.dropped.Add(1)
		return
	}
	n := &node[T]{val: v}
	q.length.Add(1)
	prev := q.head.Swap(n)
	// Between the swap and this store the list is briefly unlinked; the
	// consumer treats that as "empty for now" and picks n up next time.
	prev.next.Store(n)
}

// TryReceive dequeues the oldest value without blocking.
// It returns false if no value is currently available.
func (q *Queue[T]) TryReceive() (T, bool) {
	var zero T
	next := q.tail.next.Load()
	if next == nil {
		return zero, false
	}
	q.tail = next
	v := next.val
	next.val = zero // next is the new stub; don't keep v reachable
	q.length.Add(-1)
	return v, true
}

// Drain returns a sequence over the values queued at the time iteration
// starts, consuming each one as it is yielded.
//
// Iteration never blocks and is always finite: values sent after iteration
// began are left for the next call. Breaking out of the loop early leaves the
// remaining values queued.
func (q *Queue[T]) Drain() iter.Seq[T] {
	return func(yield func(T) bool) {
		last := q.head.Load()
		for q.tail != last {
			v, ok := q.TryReceive()
			if !ok {
				// A sender has swapped head but not linked its node yet.
				return
			}
			if !yield(v) {
				return
			}
		}
	}
}

// Len returns the number of values sent but not yet received.
// It is a snapshot and may be stale by the time it is used.
func (q *Queue[T]) Len() int {
	return int(q.length.Load())
}

// Close marks the queue as closed. Later sends are dropped.
// Values already queued can still be received. Close is idempotent.
func (q *Queue[T]) Close() {
	q.closed.Store(true)
}

// Closed reports whether Close has been called.
func (q *Queue[T]) Closed() bool {
	return q.closed.Load()
}

// Dropped returns the number of values discarded because the queue was closed.
func (q *Queue[T]) Dropped() uint64 {
	return q.dropped.Load()
}
