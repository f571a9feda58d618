// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package disruptor

import (
	"errors"

	"code.hybscloud.com/iox"
)

// ErrWouldBlock indicates the operation cannot proceed immediately.
//
// For TryProduce: some consumer still lags a full buffer behind (backpressure).
// For TryConsume: the gating condition is not yet satisfied (no published
// data, or the downstream pipeline stage has not passed this position).
//
// ErrWouldBlock is a control flow signal, not a failure. The caller should
// retry, typically through Produce/Run which apply the configured wait policy.
//
// This is an alias for [iox.ErrWouldBlock] for ecosystem consistency.
var ErrWouldBlock = iox.ErrWouldBlock

// ErrPayloadTooLarge indicates a payload longer than MaxPayload.
//
// Unlike ErrWouldBlock this is a real failure: the write is rejected before
// any slot memory is touched, and retrying with the same payload will never
// succeed.
var ErrPayloadTooLarge = errors.New("disruptor: payload exceeds slot capacity")

// IsWouldBlock reports whether err indicates the operation would block.
// Delegates to [iox.IsWouldBlock] for wrapped error support.
func IsWouldBlock(err error) bool {
	return iox.IsWouldBlock(err)
}

// IsSemantic reports whether err is a control flow signal (not a failure).
// Delegates to [iox.IsSemantic].
func IsSemantic(err error) bool {
	return iox.IsSemantic(err)
}

// IsNonFailure reports whether err represents a non-failure condition.
// Delegates to [iox.IsNonFailure].
func IsNonFailure(err error) bool {
	return iox.IsNonFailure(err)
}
