// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package disruptor

// Handler processes one message: its sequence position and its payload.
// The payload slice is only valid for the duration of the call.
type Handler func(seq uint64, payload []byte)

// Consumer is one pipeline stage's view of the pipeline.
// All methods must be called from that stage's one goroutine.
type Consumer struct {
	d     *Disruptor
	id    int
	cur   *Cursor
	gates []int
	w     waiter
}

// ID returns the consumer's index.
func (c *Consumer) ID() int {
	return c.id
}

// TryConsume reads the slot at the consumer's current position into buf and
// advances its cursor (non-blocking). Returns the payload length.
//
// Advancement requires both gating conditions:
//   - the position is strictly behind the producer cursor (data published)
//   - the position is strictly behind every gate cursor (each stage this
//     consumer is gated on has already moved past it); a terminal stage
//     has no gates.
//
// Returns (0, ErrWouldBlock) while either condition fails. The cursor
// advance is a release store, visible to the producer's lag computation and
// to any stage gated on this consumer.
func (c *Consumer) TryConsume(buf []byte) (int, error) {
	d := c.d
	mine := c.cur.loadOwn()

	// The producer is at most capacity ahead, so the modular difference is
	// in [0, capacity]; zero means nothing published past us.
	if d.producer.Load()-mine == 0 {
		return 0, ErrWouldBlock
	}
	for _, g := range c.gates {
		if d.consumers[g].Load()-mine == 0 {
			return 0, ErrWouldBlock
		}
	}

	n := d.ring.Read(mine, buf)
	c.cur.publish(mine + 1)
	return n, nil
}

// Run consumes messages until StopConsumers is called and the backlog is
// drained: the loop keeps going while this consumer's sequence still lags
// the final producer sequence, so no published message is dropped at
// shutdown. h may be nil to consume without processing.
func (c *Consumer) Run(h Handler) {
	buf := make([]byte, MaxPayload)
	for {
		seq := c.cur.loadOwn()
		n, err := c.TryConsume(buf)
		if err == nil {
			c.w.reset()
			if h != nil {
				h(seq, buf[:n])
			}
			continue
		}
		if !c.d.consuming.Load() && c.d.producer.Load()-seq == 0 {
			return
		}
		c.w.wait()
	}
}
