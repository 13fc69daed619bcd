// Copyright The corefx Authors
// SPDX-License-Identifier: Apache-2.0

package waiter

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveWinsOnce(t *testing.T) {
	w := New[int](false)

	assert.True(t, w.Resolve(42))
	assert.False(t, w.Resolve(43))
	assert.False(t, w.Fail(errors.New("late")))
	assert.False(t, w.Cancel(errors.New("late")))

	<-w.Done()
	v, err := w.Result()
	assert.Equal(t, 42, v)
	assert.NoError(t, err)
}

func TestFail(t *testing.T) {
	w := New[int](false)
	fault := errors.New("boom")

	assert.True(t, w.Fail(fault))
	assert.False(t, w.Resolve(1))

	_, err := w.Result()
	assert.ErrorIs(t, err, fault)
}

func TestCancelBeatsResolver(t *testing.T) {
	w := New[int](false)
	cause := errors.New("canceled")

	require.True(t, w.Cancel(cause))
	// The resolver must learn it lost, so it can retry elsewhere.
	assert.False(t, w.Resolve(7))

	_, err := w.Result()
	assert.ErrorIs(t, err, cause)
}

func TestWatchInline(t *testing.T) {
	w := New[int](false)

	var got int
	w.Watch(func(v int, err error) {
		assert.NoError(t, err)
		got = v
	})

	// Inline mode runs the continuation on the resolving goroutine, so the
	// effect is visible as soon as Resolve returns.
	require.True(t, w.Resolve(5))
	assert.Equal(t, 5, got)
}

func TestWatchAsync(t *testing.T) {
	w := New[int](true)

	var wg sync.WaitGroup
	wg.Add(1)
	var got int
	w.Watch(func(v int, err error) {
		defer wg.Done()
		assert.NoError(t, err)
		got = v
	})

	require.True(t, w.Resolve(9))
	wg.Wait()
	assert.Equal(t, 9, got)
}

func TestWatchAfterResolution(t *testing.T) {
	w := New[string](false)
	require.True(t, w.Resolve("done"))

	var got string
	w.Watch(func(v string, err error) {
		assert.NoError(t, err)
		got = v
	})
	assert.Equal(t, "done", got)
}

func TestConcurrentFinishers(t *testing.T) {
	w := New[int](false)

	const contenders = 16
	wins := make(chan bool, contenders)
	var wg sync.WaitGroup
	for i := 0; i < contenders; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			wins <- w.Resolve(i)
		}(i)
	}
	wg.Wait()
	close(wins)

	won := 0
	for ok := range wins {
		if ok {
			won++
		}
	}
	assert.Equal(t, 1, won)
}
