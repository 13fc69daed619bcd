// Copyright The corefx Authors
// SPDX-License-Identifier: Apache-2.0

package channel // import "github.com/OzieGamma/corefx/channel"

import (
	"context"
)

// Reader is the consuming facade of a channel.
type Reader[T any] interface {
	// TryRead removes and returns the head of the buffer without blocking.
	// It returns false if no item was buffered.
	TryRead() (T, bool)
	// Read returns the next item, blocking until one is written, the channel
	// is completed (ErrClosed, wrapping the completion fault if any), or ctx
	// is done (ctx.Err()).
	Read(ctx context.Context) (T, error)
	// WaitToRead blocks until data may be available. It returns true when an
	// item may be read, false once the channel completed normally and
	// drained, the completion fault if the channel faulted, or ctx.Err().
	// A true result is advisory: a concurrent reader may win the item.
	WaitToRead(ctx context.Context) (bool, error)
	// Completion exposes the channel's terminal-state signal.
	Completion() *Completion
	// Len returns the number of buffered items. The count is advisory and
	// carries no consistency guarantee under concurrent use.
	Len() int
}

// Writer is the producing facade of a channel.
type Writer[T any] interface {
	// TryWrite delivers item to a parked reader or appends it to the buffer.
	// It returns false only if the channel has been completed; an unbounded
	// channel never refuses an item for capacity reasons.
	TryWrite(item T) bool
	// Write behaves as TryWrite, reporting a completed channel as ErrClosed
	// and a pre-canceled ctx as ctx.Err(). It never blocks.
	Write(ctx context.Context, item T) error
	// WaitToWrite reports whether further writes will be accepted: true while
	// the channel is open, false once completed normally, the completion
	// fault if the channel faulted, or ctx.Err(). It never blocks, since
	// writers are not admission-controlled.
	WaitToWrite(ctx context.Context) (bool, error)
	// TryComplete marks the channel as done writing, with err as the fault
	// (nil for normal completion). Parked readers are failed, and the
	// Completion signal resolves once the buffer drains. Only the first call
	// transitions; later calls return false.
	TryComplete(err error) bool
}

// UnboundedSettings configures NewUnbounded.
type UnboundedSettings struct {
	// RunContinuationsAsynchronously controls where continuations observing
	// a wakeup run. When true (the safe default for callers that reenter the
	// channel from a continuation), a woken party's continuation is scheduled
	// on its own goroutine instead of the goroutine performing the wakeup,
	// and the channel additionally enforces that buffered items and parked
	// readers never coexist.
	RunContinuationsAsynchronously bool
}

// NewUnbounded creates an unbounded channel and returns its two facades.
// Both facades share one core and stay valid for the life of the channel.
func NewUnbounded[T any](set UnboundedSettings) (Reader[T], Writer[T]) {
	ch := newUnboundedChannel[T](set)
	return &unboundedReader[T]{ch: ch}, &unboundedWriter[T]{ch: ch}
}
