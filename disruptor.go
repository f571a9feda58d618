// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package disruptor

import "code.hybscloud.com/atomix"

// maxSequence is the largest representable cursor value. Reaching it
// triggers an epoch rebase unless NaturalWrap is set.
const maxSequence = ^uint64(0)

// Disruptor is the pipeline context: the slot store, the producer cursor,
// one cursor per consumer, the gating graph, and the lifecycle flags.
//
// One Disruptor supports exactly one producer goroutine and one goroutine
// per consumer index. Each cursor is written only by its owning goroutine;
// everything is created up front and nothing is resized or destroyed before
// shutdown.
type Disruptor struct {
	ring      *Ring
	producer  Cursor
	consumers []Cursor
	gates     [][]int

	producing atomix.Bool
	consuming atomix.Bool

	policy   WaitPolicy
	wrap     bool
	capacity uint64
}

// Producer returns the single producer's view of the pipeline.
// Call once and use from one goroutine only.
func (d *Disruptor) Producer() *Producer {
	return &Producer{
		d: d,
		w: d.policy.newWaiter(),
	}
}

// Consumer returns the view for consumer i.
// Call once per index and use each from one goroutine only.
func (d *Disruptor) Consumer(i int) *Consumer {
	return &Consumer{
		d:     d,
		id:    i,
		cur:   &d.consumers[i],
		gates: d.gates[i],
		w:     d.policy.newWaiter(),
	}
}

// Cap returns the buffer capacity in slots.
func (d *Disruptor) Cap() int {
	return d.ring.Cap()
}

// NumConsumers returns the number of consumer stages.
func (d *Disruptor) NumConsumers() int {
	return len(d.consumers)
}

// Produced returns the producer's current sequence: items published so far.
func (d *Disruptor) Produced() uint64 {
	return d.producer.Load()
}

// Consumed returns consumer i's current sequence: items it has fully read.
func (d *Disruptor) Consumed(i int) uint64 {
	return d.consumers[i].Load()
}

// ProducerRunning reports whether the producer should keep producing.
func (d *Disruptor) ProducerRunning() bool {
	return d.producing.Load()
}

// StopProducer clears the producer lifecycle flag. Cooperative: a Produce
// call already admitted still completes.
func (d *Disruptor) StopProducer() {
	d.producing.Store(false)
}

// StopConsumers clears the consumer lifecycle flag. Consumers keep draining
// until they catch up with the final producer sequence, so no published
// message is dropped.
func (d *Disruptor) StopConsumers() {
	d.consuming.Store(false)
}

// Rebase shifts the producer cursor and every consumer cursor down by a
// whole multiple of capacity, moving the producer sequence well below
// maxSequence. The shift is a multiple of capacity, so every cursor keeps
// its residue mod capacity and every slot mapping is unchanged.
//
// Rebase is not fenced against concurrent consumer advancement: it writes
// cursors it does not own. Gating arithmetic is wraparound-safe, so the
// rebase is never needed for correctness; it only keeps the reported
// counter values from wrapping. Trigger it from the producer loop (the
// automatic path) or while the pipeline is quiescent.
func (d *Disruptor) Rebase() {
	shift := (maxSequence/d.capacity - 2) * d.capacity
	for i := range d.consumers {
		c := &d.consumers[i]
		c.set(c.Load() - shift)
	}
	d.producer.set(d.producer.loadOwn() - shift)
}
