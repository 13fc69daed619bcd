// Copyright The corefx Authors
// SPDX-License-Identifier: Apache-2.0

// Package deque provides a growable double-ended queue. It carries no
// internal synchronization; callers serialize access themselves.
package deque // import "github.com/OzieGamma/corefx/internal/deque"

const minCapacity = 8

// Deque is a slice-backed ring buffer holding values in insertion order.
// The zero value is ready to use.
type Deque[T comparable] struct {
	buf  []T
	head int
	size int
}

// Len returns the number of queued values.
func (d *Deque[T]) Len() int {
	return d.size
}

// PushBack appends v at the tail.
func (d *Deque[T]) PushBack(v T) {
	d.grow()
	d.buf[(d.head+d.size)%len(d.buf)] = v
	d.size++
}

// PopFront removes and returns the head value, or false if the deque is empty.
func (d *Deque[T]) PopFront() (T, bool) {
	var zero T
	if d.size == 0 {
		return zero, false
	}
	v := d.buf[d.head]
	d.buf[d.head] = zero
	d.head = (d.head + 1) % len(d.buf)
	d.size--
	return v, true
}

// Remove deletes the first occurrence of v, preserving the order of the
// remaining values. It reports whether v was present.
func (d *Deque[T]) Remove(v T) bool {
	for i := 0; i < d.size; i++ {
		if d.buf[(d.head+i)%len(d.buf)] != v {
			continue
		}
		// Shift the tail segment left by one slot.
		for j := i; j < d.size-1; j++ {
			d.buf[(d.head+j)%len(d.buf)] = d.buf[(d.head+j+1)%len(d.buf)]
		}
		var zero T
		d.buf[(d.head+d.size-1)%len(d.buf)] = zero
		d.size--
		return true
	}
	return false
}

// Drain removes all values and returns them in order.
func (d *Deque[T]) Drain() []T {
	if d.size == 0 {
		return nil
	}
	out := make([]T, 0, d.size)
	for {
		v, ok := d.PopFront()
		if !ok {
			return out
		}
		out = append(out, v)
	}
}

func (d *Deque[T]) grow() {
	if d.size < len(d.buf) {
		return
	}
	newCap := minCapacity
	if len(d.buf) > 0 {
		newCap = 2 * len(d.buf)
	}
	buf := make([]T, newCap)
	for i := 0; i < d.size; i++ {
		buf[i] = d.buf[(d.head+i)%len(d.buf)]
	}
	d.buf = buf
	d.head = 0
}
