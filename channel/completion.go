// Copyright The corefx Authors
// SPDX-License-Identifier: Apache-2.0

package channel // import "github.com/OzieGamma/corefx/channel"

import (
	"context"
	"sync"
)

// Completion is a one-shot broadcast signal marking a channel's terminal
// state: completed and fully drained. It resolves exactly once, either with
// success or with the fault the channel was completed with.
type Completion struct {
	mu      sync.Mutex
	settled bool
	err     error
	done    chan struct{}
}

func newCompletion() *Completion {
	return &Completion{done: make(chan struct{})}
}

// Done returns a channel closed once the completion has resolved.
func (c *Completion) Done() <-chan struct{} {
	return c.done
}

// Err returns the fault the channel was completed with. It returns nil both
// while the completion is still pending and after a successful resolution;
// use Done to distinguish the two.
func (c *Completion) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

// Wait blocks until the completion resolves or ctx is done. It returns the
// resolution outcome, or ctx.Err() if the context won.
func (c *Completion) Wait(ctx context.Context) error {
	select {
	case <-c.done:
		return c.Err()
	case <-ctx.Done():
		return ctx.Err()
	}
}

// resolve settles the completion. Only the first call has any effect.
func (c *Completion) resolve(err error) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.settled {
		return false
	}
	c.settled = true
	c.err = err
	close(c.done)
	return true
}

func (c *Completion) resolved() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.settled
}
