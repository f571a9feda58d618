// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package disruptor

const (
	// BlockSize is the footprint of one slot: exactly one cache line.
	BlockSize = 64
	// MaxPayload is the largest payload a slot can hold.
	// One byte of the cache line records the length.
	MaxPayload = BlockSize - 1
)

// block is one ring slot: a length-prefixed payload sized to a cache line.
// Slots never share a cache line, so the producer's write to one slot cannot
// invalidate a neighboring slot a consumer is reading.
type block struct {
	data [MaxPayload]byte
	size uint8
}

// Ring is the slot store: a fixed power-of-two array of cache-line blocks.
//
// Ring performs no synchronization and no ownership checking. A position may
// be written or read only by the goroutine that currently owns it under the
// cursor protocol; the sequence counters (not the slot memory) carry all
// ordering guarantees. Slot contents are meaningful only between the
// producer's publish of the position and the producer's next wrap over the
// same physical slot, one capacity later.
type Ring struct {
	blocks []block
	mask   uint64
}

// NewRing creates a slot store with capacity 2^exponent.
// Panics if exponent is outside [1, 32].
func NewRing(exponent int) *Ring {
	if exponent < 1 || exponent > 32 {
		panic("disruptor: capacity exponent must be in [1, 32]")
	}
	n := uint64(1) << exponent
	return &Ring{
		blocks: make([]block, n),
		mask:   n - 1,
	}
}

// Write copies payload into the slot at position mod capacity and records
// its length. Returns ErrPayloadTooLarge, before touching the slot, if the
// payload does not fit.
//
// The caller must own the position per the cursor protocol.
func (r *Ring) Write(pos uint64, payload []byte) error {
	if len(payload) > MaxPayload {
		return ErrPayloadTooLarge
	}
	b := &r.blocks[pos&r.mask]
	b.size = uint8(copy(b.data[:], payload))
	return nil
}

// Read copies the payload at position mod capacity into buf and returns its
// length. buf should hold at least MaxPayload bytes; a shorter buf truncates.
//
// The caller must own the position per the cursor protocol.
func (r *Ring) Read(pos uint64, buf []byte) int {
	b := &r.blocks[pos&r.mask]
	return copy(buf, b.data[:b.size])
}

// Cap returns the number of slots.
func (r *Ring) Cap() int {
	return int(r.mask + 1)
}
