// Copyright The corefx Authors
// SPDX-License-Identifier: Apache-2.0

// Package waiter provides a one-shot, cancellable slot that a suspended
// operation parks in until another goroutine resolves it.
package waiter // import "github.com/OzieGamma/corefx/internal/waiter"

import "sync"

type state int8

const (
	statePending state = iota
	stateResolved
	stateFailed
	stateCanceled
)

// Waiter holds exactly one outcome: a value, a failure, or a cancellation.
// The first of Resolve, Fail or Cancel wins; later calls report false so the
// loser can react (a producer whose Resolve loses to a cancellation retries
// with a different waiter, keeping its item).
type Waiter[T any] struct {
	async bool

	mu       sync.Mutex
	state    state
	val      T
	err      error
	done     chan struct{}
	watchers []func(T, error)
}

// New returns a pending waiter. When async is true, continuations registered
// with Watch run on their own goroutine instead of the resolving one.
func New[T any](async bool) *Waiter[T] {
	return &Waiter[T]{
		async: async,
		done:  make(chan struct{}),
	}
}

// Resolve completes the waiter with v. It reports false if the waiter already
// has an outcome, in which case v was not delivered.
func (w *Waiter[T]) Resolve(v T) bool {
	return w.finish(v, nil, stateResolved)
}

// Fail completes the waiter with err.
func (w *Waiter[T]) Fail(err error) bool {
	var zero T
	return w.finish(zero, err, stateFailed)
}

// Cancel completes the waiter on behalf of the parked party itself, recording
// cause as the outcome error. A resolver racing with Cancel observes false
// from Resolve/Fail and knows the parked party is gone.
func (w *Waiter[T]) Cancel(cause error) bool {
	var zero T
	return w.finish(zero, cause, stateCanceled)
}

// Done returns a channel closed once the waiter has any outcome.
func (w *Waiter[T]) Done() <-chan struct{} {
	return w.done
}

// Result returns the outcome. It must only be called after Done is closed.
func (w *Waiter[T]) Result() (T, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.val, w.err
}

// Watch registers a continuation invoked with the outcome. If the waiter is
// already complete the continuation fires immediately, per the configured
// dispatch mode.
func (w *Waiter[T]) Watch(fn func(T, error)) {
	w.mu.Lock()
	if w.state == statePending {
		w.watchers = append(w.watchers, fn)
		w.mu.Unlock()
		return
	}
	v, err := w.val, w.err
	w.mu.Unlock()
	w.dispatch([]func(T, error){fn}, v, err)
}

func (w *Waiter[T]) finish(v T, err error, s state) bool {
	w.mu.Lock()
	if w.state != statePending {
		w.mu.Unlock()
		return false
	}
	w.state = s
	w.val = v
	w.err = err
	watchers := w.watchers
	w.watchers = nil
	close(w.done)
	w.mu.Unlock()

	w.dispatch(watchers, v, err)
	return true
}

func (w *Waiter[T]) dispatch(watchers []func(T, error), v T, err error) {
	for _, fn := range watchers {
		if w.async {
			go fn(v, err)
		} else {
			fn(v, err)
		}
	}
}
