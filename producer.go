// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package disruptor

// Producer is the single producer's view of the pipeline.
// All methods must be called from the one producing goroutine.
type Producer struct {
	d *Disruptor
	w waiter
}

// TryProduce claims the next sequence, writes payload into its slot, and
// publishes it (non-blocking).
//
// Returns ErrWouldBlock while any consumer lags a full buffer behind — the
// sole backpressure mechanism: production is throttled purely by the slowest
// consumer's progress. Returns ErrPayloadTooLarge, without claiming, if the
// payload does not fit a slot.
//
// The publish is a release store of the advanced producer cursor. A consumer
// that observes the new value through an acquire load is guaranteed to see
// the slot contents written here; the slot memory itself carries no ordering.
func (p *Producer) TryProduce(payload []byte) error {
	if len(payload) > MaxPayload {
		return ErrPayloadTooLarge
	}

	d := p.d
	seq := d.producer.loadOwn()

	// Modular difference: lag stays correct across counter wraparound
	// because unsigned subtraction yields the true distance mod 2^64.
	for i := range d.consumers {
		if seq-d.consumers[i].Load() >= d.capacity {
			return ErrWouldBlock
		}
	}

	if seq == maxSequence && !d.wrap {
		d.Rebase()
		seq = d.producer.loadOwn()
	}

	if err := d.ring.Write(seq, payload); err != nil {
		return err
	}
	d.producer.publish(seq + 1)
	return nil
}

// Produce writes payload at the next sequence, waiting per the configured
// policy while backpressure holds.
//
// There is no timeout: a consumer that never progresses stalls Produce
// indefinitely. Cooperative shutdown still drains — once StopConsumers is
// called, consumers catch up with the producer and the lag clears.
//
// The only error is ErrPayloadTooLarge, returned without waiting.
func (p *Producer) Produce(payload []byte) error {
	for {
		err := p.TryProduce(payload)
		if err == nil {
			p.w.reset()
			return nil
		}
		if !IsWouldBlock(err) {
			return err
		}
		p.w.wait()
	}
}
