// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package disruptor

import (
	"code.hybscloud.com/iox"
	"code.hybscloud.com/spin"
)

// WaitPolicy selects how a gated coordinator waits for its condition.
//
// Waiting never blocks on an OS primitive; both policies re-check the gating
// condition continuously. The difference is what happens between checks.
type WaitPolicy int

const (
	// WaitSpin busy-waits with CPU pause instructions. Lowest latency,
	// burns a core while gated.
	WaitSpin WaitPolicy = iota
	// WaitBackoff backs off progressively under sustained pressure,
	// trading latency for CPU when the pipeline stalls.
	WaitBackoff
)

// waiter is one coordinator loop's private wait state.
// Each producer or consumer goroutine gets its own instance.
type waiter interface {
	wait()
	reset()
}

type spinWaiter struct {
	w spin.Wait
}

func (s *spinWaiter) wait()  { s.w.Once() }
func (s *spinWaiter) reset() { s.w = spin.Wait{} }

type backoffWaiter struct {
	b iox.Backoff
}

func (w *backoffWaiter) wait()  { w.b.Wait() }
func (w *backoffWaiter) reset() { w.b.Reset() }

func (p WaitPolicy) newWaiter() waiter {
	if p == WaitBackoff {
		return &backoffWaiter{}
	}
	return &spinWaiter{}
}
