// Copyright The corefx Authors
// SPDX-License-Identifier: Apache-2.0

// Package fifo provides an unbounded thread-safe FIFO queue that can be
// shared between producers and consumers without external locking.
package fifo // import "github.com/OzieGamma/corefx/internal/fifo"

import (
	"sync/atomic"

	uatomic "go.uber.org/atomic"
)

type node[T any] struct {
	value T
	next  atomic.Pointer[node[T]]
}

// Queue is a Michael-Scott two-pointer linked queue. Push and Pop are
// individually atomic and safe for any number of concurrent callers.
type Queue[T any] struct {
	head atomic.Pointer[node[T]] // sentinel; head.next is the front element
	tail atomic.Pointer[node[T]]
	len  uatomic.Int64
}

// New returns an empty queue.
func New[T any]() *Queue[T] {
	q := &Queue[T]{}
	sentinel := &node[T]{}
	q.head.Store(sentinel)
	q.tail.Store(sentinel)
	return q
}

// Push appends v to the tail of the queue.
func (q *Queue[T]) Push(v T) {
	n := &node[T]{value: v}
	for {
		tail := q.tail.Load()
		next := tail.next.Load()
		if next != nil {
			// Tail is lagging, help it along before retrying.
			q.tail.CompareAndSwap(tail, next)
			continue
		}
		if tail.next.CompareAndSwap(nil, n) {
			q.tail.CompareAndSwap(tail, n)
			q.len.Inc()
			return
		}
	}
}

// Pop removes and returns the front element, or false if the queue is empty.
func (q *Queue[T]) Pop() (T, bool) {
	var zero T
	for {
		head := q.head.Load()
		next := head.next.Load()
		if next == nil {
			return zero, false
		}
		if q.head.CompareAndSwap(head, next) {
			v := next.value
			// The new sentinel keeps its next pointer but must not pin the
			// value for the garbage collector.
			next.value = zero
			q.len.Dec()
			return v, true
		}
	}
}

// Empty reports whether the queue had no elements at the time of the call.
func (q *Queue[T]) Empty() bool {
	return q.head.Load().next.Load() == nil
}

// Len returns the number of buffered elements. The count trails in-flight
// Push/Pop pairs and is intended for introspection only.
func (q *Queue[T]) Len() int64 {
	if n := q.len.Load(); n > 0 {
		return n
	}
	return 0
}
