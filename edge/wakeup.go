package edge

import "sync"

// WakeUp is a (flag, condition) pair enabling one waiter to park until
// notified, per spec.md §4.2.
//
// The flag absorbs a notification that arrives before the waiter sleeps:
// without it, a Notify landing between the waiter's empty-check and its
// Wait call would be lost, and the waiter would block forever. This is the
// lost-wake-up guard the original runtime's condvar_notify!/condvar_block!
// macros implement; WakeUp is the Go equivalent.
//
// Exactly one waiter is supported per handle. Calling Block from two
// goroutines on the same handle concurrently is undefined — a port with
// multiple consumers gets one WakeUp per consumer (see SPMC edges).
type WakeUp struct {
	mu   sync.Mutex
	cond *sync.Cond
	flag bool
}

// NewWakeUp creates a WakeUp ready for use.
func NewWakeUp() *WakeUp {
	w := &WakeUp{}
	w.cond = sync.NewCond(&w.mu)
	return w
}

// Notify sets the flag and wakes the waiter if one is parked. Idempotent
// with respect to any single pending wait: calling Notify several times
// before the waiter calls Block coalesces into one absorbed wake-up.
func (w *WakeUp) Notify() {
	w.mu.Lock()
	w.flag = true
	w.mu.Unlock()
	w.cond.Signal()
}

// Block waits until notified, then clears the flag and returns. If the
// flag is already set (a Notify happened before this call), it clears the
// flag and returns immediately without suspending.
func (w *WakeUp) Block() {
	w.mu.Lock()
	defer w.mu.Unlock()
	for !w.flag {
		w.cond.Wait()
	}
	w.flag = false
}
