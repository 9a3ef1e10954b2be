package edge_test

import (
	"testing"
	"time"

	"github.com/ERnsTL/flowd-go/edge"
)

// TestWakeUpNotifyBeforeBlock verifies the lost-wake-up guard: a Notify
// that happens-before Block must not cause Block to suspend (spec.md §8,
// invariant 2).
func TestWakeUpNotifyBeforeBlock(t *testing.T) {
	w := edge.NewWakeUp()
	w.Notify()

	done := make(chan struct{})
	go func() {
		w.Block()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Block suspended despite a prior Notify")
	}
}

// TestWakeUpBlockThenNotify verifies the ordinary case: Block suspends
// until a later Notify arrives.
func TestWakeUpBlockThenNotify(t *testing.T) {
	w := edge.NewWakeUp()
	done := make(chan struct{})
	go func() {
		w.Block()
		close(done)
	}()

	select {
	case <-done:
		t.Fatal("Block returned before any Notify")
	case <-time.After(50 * time.Millisecond):
	}

	w.Notify()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Block did not return after Notify")
	}
}
