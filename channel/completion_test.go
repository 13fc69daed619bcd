// Copyright The corefx Authors
// SPDX-License-Identifier: Apache-2.0

package channel

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompletionResolveOnce(t *testing.T) {
	c := newCompletion()
	assert.NoError(t, c.Err())
	assert.False(t, c.resolved())

	fault := errors.New("boom")
	assert.True(t, c.resolve(fault))
	assert.False(t, c.resolve(nil))

	assert.True(t, c.resolved())
	assert.ErrorIs(t, c.Err(), fault)
	assert.ErrorIs(t, c.Wait(context.Background()), fault)

	select {
	case <-c.Done():
	default:
		t.Fatal("Done must be closed after resolution")
	}
}

func TestCompletionWaitCancellation(t *testing.T) {
	c := newCompletion()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, c.Wait(ctx), context.DeadlineExceeded)

	require.True(t, c.resolve(nil))
	assert.NoError(t, c.Wait(context.Background()))
}

func TestClosedErrorWrapping(t *testing.T) {
	assert.ErrorIs(t, newClosedError(nil), ErrClosed)

	cause := errors.New("cause")
	err := newClosedError(cause)
	assert.ErrorIs(t, err, ErrClosed)
	assert.ErrorIs(t, err, cause)
}
