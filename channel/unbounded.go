// Copyright The corefx Authors
// SPDX-License-Identifier: Apache-2.0

package channel // import "github.com/OzieGamma/corefx/channel"

import (
	"context"
	"sync"

	"go.uber.org/atomic"

	"github.com/OzieGamma/corefx/internal/deque"
	"github.com/OzieGamma/corefx/internal/fifo"
	"github.com/OzieGamma/corefx/internal/waiter"
)

// closeState is the write-once done-writing marker. A nil pointer means the
// channel is open; a non-nil pointer with a nil err means completed normally.
type closeState struct {
	err error
}

// unboundedChannel is the core shared by the reader and writer facades.
//
// The item buffer is internally thread-safe and may be touched without the
// core lock. Every other mutable field (parked, dataWaiter, the done
// transition) is guarded by mu, held only for short non-blocking critical
// sections. Waiters and the completion signal are always resolved after mu
// is released, so a caller-supplied continuation can never reenter the core
// mid-transition.
type unboundedChannel[T any] struct {
	items              *fifo.Queue[T]
	completion         *Completion
	asyncContinuations bool

	mu         sync.Mutex
	parked     deque.Deque[*waiter.Waiter[T]]
	dataWaiter *waiter.Waiter[bool]
	done       atomic.Pointer[closeState] // written once, under mu
}

func newUnboundedChannel[T any](set UnboundedSettings) *unboundedChannel[T] {
	return &unboundedChannel[T]{
		items:              fifo.New[T](),
		completion:         newCompletion(),
		asyncContinuations: set.RunContinuationsAsynchronously,
	}
}

// tryWrite delivers item to the oldest parked reader, or buffers it when no
// reader is parked. It fails only on a completed channel.
func (ch *unboundedChannel[T]) tryWrite(item T) bool {
	for {
		if ch.done.Load() != nil {
			return false
		}

		ch.mu.Lock()
		ch.checkInvariants()
		if ch.done.Load() != nil {
			ch.mu.Unlock()
			return false
		}

		if ch.parked.Len() == 0 {
			ch.items.Push(item)
			dw := ch.dataWaiter
			ch.dataWaiter = nil
			ch.mu.Unlock()
			if dw != nil {
				dw.Resolve(true)
			}
			return true
		}

		rw, _ := ch.parked.PopFront()
		ch.mu.Unlock()
		if rw.Resolve(item) {
			return true
		}
		// The dequeued reader canceled concurrently. Cancellation is terminal
		// for that waiter and it is already out of the queue, so retrying
		// either finds another parked reader or falls into the buffer branch.
	}
}

// tryRead removes and returns the head of the buffer. When it drains the last
// item of a completed channel it resolves the completion signal.
func (ch *unboundedChannel[T]) tryRead() (T, bool) {
	item, ok := ch.items.Pop()
	if !ok {
		var zero T
		return zero, false
	}
	if cs := ch.done.Load(); cs != nil && ch.items.Empty() {
		ch.completion.resolve(cs.err)
	}
	return item, true
}

// read is the slow path behind Reader.Read, entered after a failed tryRead.
func (ch *unboundedChannel[T]) read(ctx context.Context) (T, error) {
	var zero T

	ch.mu.Lock()
	ch.checkInvariants()

	// A producer may have appended between the fast-path attempt and the
	// lock acquisition.
	if item, ok := ch.items.Pop(); ok {
		var resolve *closeState
		if cs := ch.done.Load(); cs != nil && ch.items.Empty() {
			resolve = cs
		}
		ch.mu.Unlock()
		if resolve != nil {
			ch.completion.resolve(resolve.err)
		}
		return item, nil
	}

	if cs := ch.done.Load(); cs != nil {
		ch.mu.Unlock()
		return zero, newClosedError(cs.err)
	}

	rw := waiter.New[T](ch.asyncContinuations)
	ch.parked.PushBack(rw)
	ch.mu.Unlock()

	select {
	case <-rw.Done():
		return rw.Result()
	case <-ctx.Done():
		if ch.cancelParked(rw, ctx.Err()) {
			return zero, ctx.Err()
		}
		// A writer resolved the waiter before the cancellation landed; the
		// item was delivered to this call and must not be dropped.
		return rw.Result()
	}
}

// cancelParked removes rw from the pending-reader queue and cancels it. It
// reports false if a writer won the race and rw already carries an outcome.
func (ch *unboundedChannel[T]) cancelParked(rw *waiter.Waiter[T], cause error) bool {
	ch.mu.Lock()
	ch.parked.Remove(rw)
	ch.mu.Unlock()
	return rw.Cancel(cause)
}

// waitToRead is the slow path behind Reader.WaitToRead.
func (ch *unboundedChannel[T]) waitToRead(ctx context.Context) (bool, error) {
	ch.mu.Lock()
	ch.checkInvariants()

	if !ch.items.Empty() {
		ch.mu.Unlock()
		return true, nil
	}
	if cs := ch.done.Load(); cs != nil {
		ch.mu.Unlock()
		if cs.err != nil {
			return false, cs.err
		}
		return false, nil
	}

	// All concurrent callers coalesce onto one aggregated waiter; its
	// resolution carries no payload beyond the boolean.
	if ch.dataWaiter == nil {
		ch.dataWaiter = waiter.New[bool](ch.asyncContinuations)
	}
	dw := ch.dataWaiter
	ch.mu.Unlock()

	select {
	case <-dw.Done():
		return dw.Result()
	case <-ctx.Done():
		// Abandon the shared waiter without canceling it, so sibling callers
		// parked on the same slot are unaffected.
		return false, ctx.Err()
	}
}

// tryComplete performs the done-writing transition. Only the first call
// transitions; the completion signal resolves here when the buffer is already
// empty, and otherwise when the last buffered item is read out.
func (ch *unboundedChannel[T]) tryComplete(err error) bool {
	ch.mu.Lock()
	ch.checkInvariants()
	if ch.done.Load() != nil {
		ch.mu.Unlock()
		return false
	}
	ch.done.Store(&closeState{err: err})
	wasEmpty := ch.items.Empty()
	swept := ch.parked.Drain()
	dw := ch.dataWaiter
	ch.dataWaiter = nil
	ch.mu.Unlock()

	// Resolve the completion before waking anyone, so a woken reader
	// observes a consistent terminal state. After the transition above,
	// parked and dataWaiter are never mutated again.
	if wasEmpty {
		ch.completion.resolve(err)
	}
	failure := newClosedError(err)
	for _, rw := range swept {
		rw.Fail(failure)
	}
	if dw != nil {
		if err != nil {
			dw.Fail(err)
		} else {
			dw.Resolve(false)
		}
	}
	return true
}

type unboundedReader[T any] struct {
	ch *unboundedChannel[T]
}

func (r *unboundedReader[T]) TryRead() (T, bool) {
	return r.ch.tryRead()
}

func (r *unboundedReader[T]) Read(ctx context.Context) (T, error) {
	if item, ok := r.ch.tryRead(); ok {
		return item, nil
	}
	if err := ctx.Err(); err != nil {
		var zero T
		return zero, err
	}
	return r.ch.read(ctx)
}

func (r *unboundedReader[T]) WaitToRead(ctx context.Context) (bool, error) {
	if !r.ch.items.Empty() {
		return true, nil
	}
	if err := ctx.Err(); err != nil {
		return false, err
	}
	return r.ch.waitToRead(ctx)
}

func (r *unboundedReader[T]) Completion() *Completion {
	return r.ch.completion
}

func (r *unboundedReader[T]) Len() int {
	return int(r.ch.items.Len())
}

type unboundedWriter[T any] struct {
	ch *unboundedChannel[T]
}

func (w *unboundedWriter[T]) TryWrite(item T) bool {
	return w.ch.tryWrite(item)
}

func (w *unboundedWriter[T]) Write(ctx context.Context, item T) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if w.ch.tryWrite(item) {
		return nil
	}
	return newClosedError(w.ch.done.Load().err)
}

func (w *unboundedWriter[T]) WaitToWrite(ctx context.Context) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	cs := w.ch.done.Load()
	if cs == nil {
		return true, nil
	}
	if cs.err != nil {
		return false, cs.err
	}
	return false, nil
}

func (w *unboundedWriter[T]) TryComplete(err error) bool {
	return w.ch.tryComplete(err)
}
