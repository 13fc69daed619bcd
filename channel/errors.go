// Copyright The corefx Authors
// SPDX-License-Identifier: Apache-2.0

package channel // import "github.com/OzieGamma/corefx/channel"

import (
	"errors"
	"fmt"
)

// ErrClosed is returned by read and write operations once the channel has
// been completed. When the channel was completed with a fault, the returned
// error additionally wraps that fault, so errors.Is matches both ErrClosed
// and the original cause.
var ErrClosed = errors.New("channel is closed")

func newClosedError(cause error) error {
	if cause == nil {
		return ErrClosed
	}
	return fmt.Errorf("%w: %w", ErrClosed, cause)
}
