package edge

import "code.hybscloud.com/iox"

// ErrWouldBlock indicates the operation cannot proceed immediately.
//
// For Push: the edge is full (backpressure).
// For Pop: the edge is empty (no IP available right now — this is not by
// itself EOF; check IsAbandoned alongside IsEmpty for that).
//
// ErrWouldBlock is a control-flow signal, not a failure: callers retry,
// notify, or block on their own wake-up rather than propagating it.
//
// This is an alias for [iox.ErrWouldBlock] for ecosystem consistency with
// the rest of the hybscloud lock-free stack this transport is built on.
var ErrWouldBlock = iox.ErrWouldBlock

// IsWouldBlock reports whether err indicates the operation would block.
func IsWouldBlock(err error) bool {
	return iox.IsWouldBlock(err)
}
