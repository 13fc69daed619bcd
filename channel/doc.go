// Copyright The corefx Authors
// SPDX-License-Identifier: Apache-2.0

// Package channel provides a typed, unbounded, asynchronous handoff queue
// that decouples producers from consumers.
//
// A channel is created with NewUnbounded, which returns its two facades: a
// Reader for the consuming side and a Writer for the producing side. Writes
// never block; a write either buffers the item or hands it directly to a
// reader that is already parked. Reads drain buffered items in FIFO order
// and otherwise suspend until an item or the channel's terminal state
// arrives. Completing the writer side transitions the channel into a
// terminal state observable through Reader.Completion.
package channel // import "github.com/OzieGamma/corefx/channel"
