// Copyright The corefx Authors
// SPDX-License-Identifier: Apache-2.0

package channel

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestObservableDelegation(t *testing.T) {
	r, w := NewUnbounded[string](UnboundedSettings{RunContinuationsAsynchronously: true})
	or, ow, err := NewObservable(r, w, TelemetrySettings{Name: "test"})
	require.NoError(t, err)

	require.True(t, ow.TryWrite("a"))
	require.NoError(t, ow.Write(context.Background(), "b"))
	assert.Equal(t, 2, or.Len())

	item, ok := or.TryRead()
	require.True(t, ok)
	assert.Equal(t, "a", item)

	item, err = or.Read(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "b", item)

	require.True(t, ow.TryComplete(nil))
	assert.False(t, ow.TryWrite("c"))
	assert.ErrorIs(t, ow.Write(context.Background(), "c"), ErrClosed)

	_, err = or.Read(context.Background())
	assert.ErrorIs(t, err, ErrClosed)
	require.NoError(t, or.Completion().Wait(context.Background()))
}

func TestObservableCompletionLogging(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)

	r, w := NewUnbounded[int](UnboundedSettings{RunContinuationsAsynchronously: true})
	_, ow, err := NewObservable(r, w, TelemetrySettings{
		Logger: zap.New(core),
		Name:   "faulty",
	})
	require.NoError(t, err)

	fault := errors.New("downstream gone")
	require.True(t, ow.TryComplete(fault))
	// The repeated call does not transition and must not log again.
	require.False(t, ow.TryComplete(fault))

	entries := logs.FilterMessage("channel completed with fault").All()
	require.Len(t, entries, 1)
	assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
	assert.Equal(t, "faulty", entries[0].ContextMap()["channel"])
}
