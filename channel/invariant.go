// Copyright The corefx Authors
// SPDX-License-Identifier: Apache-2.0

package channel // import "github.com/OzieGamma/corefx/channel"

import (
	"fmt"

	"go.opentelemetry.io/collector/featuregate"
)

// strictInvariantsGate enables state-machine validation at the start of every
// critical section. The checks are meant for tests and debug deployments;
// they are never required for correctness and stay off by default.
var strictInvariantsGate = featuregate.GlobalRegistry().MustRegister(
	"channel.strictInvariants",
	featuregate.StageAlpha,
	featuregate.WithRegisterDescription("When enabled, channels validate their internal invariants on every state transition and panic on violation."),
)

// checkInvariants must be called with ch.mu held.
func (ch *unboundedChannel[T]) checkInvariants() {
	if !strictInvariantsGate.IsEnabled() {
		return
	}

	// With asynchronous continuations, buffered items and parked readers
	// (or aggregated data waiters) never coexist. Inline continuation mode
	// intentionally relaxes this.
	if ch.asyncContinuations && !ch.items.Empty() {
		if n := ch.parked.Len(); n != 0 {
			panic(fmt.Sprintf("channel: %d readers parked while %d items are buffered", n, ch.items.Len()))
		}
		if ch.dataWaiter != nil {
			panic(fmt.Sprintf("channel: data waiter registered while %d items are buffered", ch.items.Len()))
		}
	}

	// The completion signal only resolves once the done-writing transition
	// happened.
	if ch.completion.resolved() && ch.done.Load() == nil {
		panic("channel: completion resolved while the channel is still open")
	}
}
