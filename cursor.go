// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package disruptor

import "code.hybscloud.com/atomix"

// Cursor is a monotonic sequence counter: the number of items its owner has
// fully produced or consumed. Padding on both sides keeps each cursor on its
// own cache line, so concurrent polling of one cursor never contends with
// updates to another (false sharing).
//
// A cursor has exactly one writer. The owner publishes with a release store;
// any observer that sees the new value through an acquire load also sees
// every slot write that preceded the publish.
type Cursor struct {
	_ pad
	v atomix.Uint64
	_ padShort
}

// Load returns the cursor value with acquire ordering.
// This is the observer side of the publish edge.
func (c *Cursor) Load() uint64 {
	return c.v.LoadAcquire()
}

// loadOwn is the owner's read of its own cursor. No ordering needed:
// only the owner writes it.
func (c *Cursor) loadOwn() uint64 {
	return c.v.LoadRelaxed()
}

// publish stores v with release ordering, making every preceding slot
// access visible to acquire loaders.
func (c *Cursor) publish(v uint64) {
	c.v.StoreRelease(v)
}

// set stores v with no ordering. Used at construction and during rebase.
func (c *Cursor) set(v uint64) {
	c.v.StoreRelaxed(v)
}
