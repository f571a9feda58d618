// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package disruptor

import (
	"errors"
	"fmt"
	"testing"
	"unsafe"
)

// TestBlockLayout tests that a slot occupies exactly one cache line.
func TestBlockLayout(t *testing.T) {
	if s := unsafe.Sizeof(block{}); s != BlockSize {
		t.Fatalf("block size: got %d, want %d", s, BlockSize)
	}
	var b block
	if off := unsafe.Offsetof(b.size); off != MaxPayload {
		t.Fatalf("size field offset: got %d, want %d", off, MaxPayload)
	}
}

// TestCursorLayout tests that adjacent cursors never share a cache line.
func TestCursorLayout(t *testing.T) {
	if s := unsafe.Sizeof(Cursor{}); s%64 != 0 {
		t.Fatalf("cursor size %d is not a cache line multiple", s)
	}

	cs := make([]Cursor, 2)
	a := uintptr(unsafe.Pointer(&cs[0].v))
	b := uintptr(unsafe.Pointer(&cs[1].v))
	if d := b - a; d < 64 {
		t.Fatalf("adjacent cursor values %d bytes apart, want >= 64", d)
	}
}

// TestChainGates tests the default chain topology construction.
func TestChainGates(t *testing.T) {
	gates := chainGates(4)
	want := [][]int{{1}, {2}, {3}, nil}
	if len(gates) != len(want) {
		t.Fatalf("gate count: got %d, want %d", len(gates), len(want))
	}
	for i := range want {
		if len(gates[i]) != len(want[i]) {
			t.Fatalf("gates[%d]: got %v, want %v", i, gates[i], want[i])
		}
		for j := range want[i] {
			if gates[i][j] != want[i][j] {
				t.Fatalf("gates[%d]: got %v, want %v", i, gates[i], want[i])
			}
		}
	}
}

// TestRebaseTransparency forces the producer sequence to the counter
// maximum and checks that producing across the rebase preserves every slot
// mapping: position residues mod capacity are unchanged and contents keep
// flowing to the right slots.
func TestRebaseTransparency(t *testing.T) {
	d := New(8).Build()
	p := d.Producer()
	c := d.Consumer(0)
	buf := make([]byte, MaxPayload)

	d.producer.set(maxSequence - 1)
	d.consumers[0].set(maxSequence - 1)

	if err := p.TryProduce([]byte("pre")); err != nil {
		t.Fatalf("TryProduce at max-1: %v", err)
	}
	if n, err := c.TryConsume(buf); err != nil || string(buf[:n]) != "pre" {
		t.Fatalf("TryConsume at max-1: %q %v", buf[:n], err)
	}

	// Producer now sits at the maximum; the next claim must rebase first.
	preResidue := d.producer.loadOwn() % 8
	if err := p.TryProduce([]byte("post")); err != nil {
		t.Fatalf("TryProduce across rebase: %v", err)
	}

	produced := d.producer.loadOwn()
	if produced >= maxSequence-3*8 {
		t.Fatalf("rebase did not move the producer down: %d", produced)
	}
	if got := (produced - 1) % 8; got != preResidue {
		t.Fatalf("rebase changed slot residue: got %d, want %d", got, preResidue)
	}

	// The rebased consumer cursor still maps to the written slot.
	if n, err := c.TryConsume(buf); err != nil || string(buf[:n]) != "post" {
		t.Fatalf("TryConsume across rebase: %q %v", buf[:n], err)
	}
	if d.Consumed(0) != d.Produced() {
		t.Fatalf("counters diverged across rebase: %d vs %d", d.Consumed(0), d.Produced())
	}
}

// TestRebaseShiftMultipleOfCapacity tests the rebase amount directly.
func TestRebaseShiftMultipleOfCapacity(t *testing.T) {
	d := New(16).Build()
	before := maxSequence - 5
	d.producer.set(before)
	d.consumers[0].set(before - 3)

	d.Rebase()

	prodShift := before - d.producer.loadOwn()
	consShift := (before - 3) - d.consumers[0].loadOwn()
	if prodShift != consShift {
		t.Fatalf("uneven shift: producer %d, consumer %d", prodShift, consShift)
	}
	if prodShift%16 != 0 {
		t.Fatalf("shift %d is not a capacity multiple", prodShift)
	}
	if d.producer.loadOwn()%16 != before%16 {
		t.Fatal("rebase changed the producer residue")
	}
}

// TestNaturalWrapCrossesZero tests wraparound-safe gating: with rebase
// disabled, cursors pass the counter maximum and wrap to zero while
// backpressure and slot mapping stay correct throughout.
func TestNaturalWrapCrossesZero(t *testing.T) {
	d := New(8).NaturalWrap().Build()
	p := d.Producer()
	c := d.Consumer(0)
	buf := make([]byte, MaxPayload)

	start := maxSequence - 3
	d.producer.set(start)
	d.consumers[0].set(start)

	// Fill the buffer: sequences max-3 .. max, 0 .. 3.
	for i := range 8 {
		if err := p.TryProduce(fmt.Appendf(nil, "w%d", i)); err != nil {
			t.Fatalf("TryProduce(%d): %v", i, err)
		}
	}
	if d.producer.loadOwn() != 4 {
		t.Fatalf("producer after wrap: got %d, want 4", d.producer.loadOwn())
	}

	// Full across the wrap boundary: modular lag still throttles.
	if err := p.TryProduce([]byte("w8")); !errors.Is(err, ErrWouldBlock) {
		t.Fatalf("TryProduce on wrapped full buffer: got %v, want ErrWouldBlock", err)
	}

	for i := range 8 {
		n, err := c.TryConsume(buf)
		if err != nil {
			t.Fatalf("TryConsume(%d): %v", i, err)
		}
		if want := fmt.Sprintf("w%d", i); string(buf[:n]) != want {
			t.Fatalf("TryConsume(%d): got %q, want %q", i, buf[:n], want)
		}
	}
	if d.Consumed(0) != d.Produced() {
		t.Fatalf("counters diverged across wrap: %d vs %d", d.Consumed(0), d.Produced())
	}
}

// TestWaitPolicyWaiters tests waiter selection and basic operation.
func TestWaitPolicyWaiters(t *testing.T) {
	if _, ok := WaitSpin.newWaiter().(*spinWaiter); !ok {
		t.Fatal("WaitSpin: want *spinWaiter")
	}
	if _, ok := WaitBackoff.newWaiter().(*backoffWaiter); !ok {
		t.Fatal("WaitBackoff: want *backoffWaiter")
	}

	for _, p := range []WaitPolicy{WaitSpin, WaitBackoff} {
		w := p.newWaiter()
		for range 3 {
			w.wait()
		}
		w.reset()
		w.wait()
	}
}
