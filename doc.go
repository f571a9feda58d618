// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package disruptor provides a lock-free single-producer multi-consumer
// bounded ring buffer for fixed-size messages, following the Disruptor
// pattern: a circular buffer of cache-line slots plus a set of padded
// sequence cursors that gate who may read or write which slot. There are no
// locks and no CAS retry loops; coordination is monotonic sequence counters
// with acquire-release ordering, and all waiting is spinning on atomic loads.
//
// # Quick Start
//
//	d := disruptor.New(1 << 8).Consumers(4).Build()
//
//	// Producer goroutine
//	p := d.Producer()
//	for d.ProducerRunning() {
//	    p.Produce(payload)
//	}
//
//	// One goroutine per consumer stage
//	for i := range d.NumConsumers() {
//	    go d.Consumer(i).Run(func(seq uint64, payload []byte) {
//	        process(seq, payload)
//	    })
//	}
//
//	// Shutdown: stop the producer first, then let consumers drain
//	d.StopProducer()
//	d.StopConsumers()
//
// # Pipeline Topology
//
// Consumers form a single-file pipeline by default: consumer i may not pass
// consumer i+1, and the highest index is the terminal stage that sees every
// message first. Each stage therefore knows the later stages have finished
// with a position before it touches it — staged processing (e.g. journal,
// replicate, apply) without handing messages between queues.
//
// Gates generalizes the chain to any acyclic gating graph:
//
//	// Consumer 0 waits on both 1 and 2; 1 and 2 are terminal peers.
//	d := disruptor.New(1024).Consumers(3).Gates([][]int{{1, 2}, nil, nil}).Build()
//
// # Backpressure
//
// The producer admits a claim only while every consumer is less than one
// full buffer behind; otherwise it waits. That is the only throttle — a
// consumer that never progresses stalls the producer indefinitely. There is
// no timeout and no escape valve; size the buffer for the slowest stage.
//
// # Waiting
//
// WaitPolicy selects what gated coordinators do between re-checks: WaitSpin
// (CPU pause instructions, lowest latency) or WaitBackoff (progressive
// backoff via iox.Backoff). Neither ever blocks on an OS primitive.
//
// # Counter Wraparound
//
// Sequence cursors are uint64 item counts. All gating comparisons use
// modular differences, so cursors may wrap without corrupting slot mapping
// or backpressure. By default the producer still performs an epoch rebase
// when its sequence reaches the maximum value, shifting every cursor down by
// a multiple of capacity so reported counts stay small; NaturalWrap disables
// this and lets the counters wrap.
//
// # Race Detection
//
// Go's race detector cannot observe happens-before edges established through
// atomic memory orderings on separate variables. The cursor protocol
// protects slot memory through release stores and acquire loads of the
// cursors, which the detector does not track; concurrent tests are excluded
// via //go:build !race.
//
// # Dependencies
//
// This package uses [code.hybscloud.com/iox] for semantic errors and
// backoff, [code.hybscloud.com/atomix] for atomic primitives with explicit
// memory ordering, and [code.hybscloud.com/spin] for CPU pause instructions.
package disruptor
