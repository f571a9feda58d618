// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package disruptor

// Options configures pipeline construction.
type Options struct {
	// Capacity exponent: capacity = 1 << exponent.
	exponent int

	// Consumer topology
	consumers int
	gates     [][]int

	// Waiting behavior for gated coordinators
	policy WaitPolicy

	// Let sequence counters wrap instead of auto-rebasing
	naturalWrap bool
}

// Builder creates pipelines with fluent configuration.
//
// The default topology is a linear chain: consumer i may not pass consumer
// i+1, and the highest index is the terminal stage that sees each message
// first. Gates replaces the chain with an arbitrary acyclic gating graph.
//
// Example:
//
//	d := disruptor.New(1024).Consumers(4).WaitPolicy(disruptor.WaitBackoff).Build()
type Builder struct {
	opts Options
}

// New creates a pipeline builder with the given capacity.
//
// Capacity must be a power of two: slot mapping is position & (capacity-1),
// and the backpressure and gating arithmetic relies on capacity dividing the
// counter range evenly. Panics otherwise.
func New(capacity int) *Builder {
	if capacity < 2 || capacity&(capacity-1) != 0 {
		panic("disruptor: capacity must be a power of two >= 2")
	}
	e := 0
	for c := capacity; c > 1; c >>= 1 {
		e++
	}
	return NewExp(e)
}

// NewExp creates a pipeline builder with capacity 2^exponent.
// Panics if exponent is outside [1, 32].
func NewExp(exponent int) *Builder {
	if exponent < 1 || exponent > 32 {
		panic("disruptor: capacity exponent must be in [1, 32]")
	}
	return &Builder{opts: Options{
		exponent:  exponent,
		consumers: 1,
		policy:    WaitSpin,
	}}
}

// Consumers sets the number of pipeline consumers (default 1).
// Panics if n < 1.
func (b *Builder) Consumers(n int) *Builder {
	if n < 1 {
		panic("disruptor: consumer count must be >= 1")
	}
	b.opts.consumers = n
	return b
}

// Gates replaces the default chain topology. gates[i] lists the consumers
// that must be strictly ahead of consumer i before i may advance; an empty
// list makes i a terminal stage. The graph must be acyclic.
//
// Build panics if the gate list is inconsistent with the consumer count,
// references an index out of range, gates a consumer on itself, or contains
// a cycle.
func (b *Builder) Gates(gates [][]int) *Builder {
	b.opts.gates = gates
	return b
}

// WaitPolicy sets how coordinators wait when gated (default WaitSpin).
func (b *Builder) WaitPolicy(p WaitPolicy) *Builder {
	b.opts.policy = p
	return b
}

// NaturalWrap disables the automatic epoch rebase. Gating comparisons use
// modular differences, so counters remain correct across wraparound; the
// only effect is that reported counter values are the raw wrapped sequences.
func (b *Builder) NaturalWrap() *Builder {
	b.opts.naturalWrap = true
	return b
}

// Build creates the pipeline. Panics on an invalid gating topology.
func (b *Builder) Build() *Disruptor {
	gates := b.opts.gates
	if gates == nil {
		gates = chainGates(b.opts.consumers)
	}
	validateGates(gates, b.opts.consumers)

	n := uint64(1) << b.opts.exponent
	d := &Disruptor{
		ring:      NewRing(b.opts.exponent),
		consumers: make([]Cursor, b.opts.consumers),
		gates:     gates,
		policy:    b.opts.policy,
		wrap:      b.opts.naturalWrap,
		capacity:  n,
	}
	d.producing.Store(true)
	d.consuming.Store(true)
	return d
}

// chainGates builds the default linear pipeline: each consumer waits on the
// next higher index, the highest index is terminal.
func chainGates(n int) [][]int {
	gates := make([][]int, n)
	for i := 0; i < n-1; i++ {
		gates[i] = []int{i + 1}
	}
	return gates
}

func validateGates(gates [][]int, n int) {
	if len(gates) != n {
		panic("disruptor: gate list length must equal consumer count")
	}
	for i, g := range gates {
		for _, j := range g {
			if j < 0 || j >= n {
				panic("disruptor: gate index out of range")
			}
			if j == i {
				panic("disruptor: consumer cannot gate on itself")
			}
		}
	}

	// Kahn's algorithm: every consumer must be reachable in a topological
	// order, otherwise the gating graph deadlocks.
	indeg := make([]int, n)
	for i := range gates {
		indeg[i] = len(gates[i])
	}
	queue := make([]int, 0, n)
	for i, d := range indeg {
		if d == 0 {
			queue = append(queue, i)
		}
	}
	seen := 0
	for len(queue) > 0 {
		j := queue[0]
		queue = queue[1:]
		seen++
		for i := range gates {
			for _, k := range gates[i] {
				if k == j {
					indeg[i]--
					if indeg[i] == 0 {
						queue = append(queue, i)
					}
				}
			}
		}
	}
	if seen != n {
		panic("disruptor: gating graph contains a cycle")
	}
}

// pad is cache line padding to prevent false sharing.
type pad [64]byte

// padShort is padding to fill a cache line after an 8-byte field.
type padShort [64 - 8]byte
