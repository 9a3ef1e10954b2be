package components_test

import (
	"testing"
	"time"

	"github.com/ERnsTL/flowd-go/component"
	"github.com/ERnsTL/flowd-go/components"
	"github.com/ERnsTL/flowd-go/edge"
	"github.com/ERnsTL/flowd-go/signal"
)

// TestSplitLinesS2 is scenario S2 from spec.md §8.
func TestSplitLinesS2(t *testing.T) {
	wake := edge.NewWakeUp()
	in := edge.NewEdge(4, edge.SingleSingle, 1, []*edge.WakeUp{wake})
	out := edge.NewEdge(8, edge.SingleSingle, 1, nil)
	sig := signal.NewChannel()

	inst, err := components.NewSplitLines(
		component.Inports{"IN": in},
		component.Outports{"OUT": out},
		sig, nil, wake,
	)
	if err != nil {
		t.Fatalf("NewSplitLines: %v", err)
	}

	done := make(chan struct{})
	go func() {
		inst.Run()
		close(done)
	}()

	if err := in.Push(edge.IP("alpha\nbeta\ngamma")); err != nil {
		t.Fatalf("Push: %v", err)
	}
	in.NotifyConsumers()

	want := []string{"alpha", "beta", "gamma"}
	for i, w := range want {
		ip := popWithin(t, out, time.Second)
		if string(ip) != w {
			t.Fatalf("OUT[%d]: got %q, want %q", i, ip, w)
		}
	}
	if _, err := out.Pop(); err == nil {
		t.Fatal("expected exactly three lines, got a trailing one")
	}

	in.ReleaseProducer()
	in.NotifyConsumers()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("SplitLines did not exit after IN was closed")
	}
}

// TestSplitLinesS4PingPong is scenario S4 from spec.md §8: three pings
// produce three pongs, in order, before a subsequent stop is observed.
func TestSplitLinesS4PingPong(t *testing.T) {
	wake := edge.NewWakeUp()
	in := edge.NewEdge(4, edge.SingleSingle, 1, []*edge.WakeUp{wake})
	out := edge.NewEdge(4, edge.SingleSingle, 1, nil)
	sig := signal.NewChannel()

	inst, err := components.NewSplitLines(
		component.Inports{"IN": in},
		component.Outports{"OUT": out},
		sig, nil, wake,
	)
	if err != nil {
		t.Fatalf("NewSplitLines: %v", err)
	}

	done := make(chan struct{})
	go func() {
		inst.Run()
		close(done)
	}()

	for i := 0; i < 3; i++ {
		if err := sig.Signal(signal.Ping); err != nil {
			t.Fatalf("Signal(Ping) #%d: %v", i, err)
		}
		wake.Notify()

		deadline := time.Now().Add(time.Second)
		var got signal.Envelope
		var err error
		for time.Now().Before(deadline) {
			got, err = sig.PollOut()
			if err == nil {
				break
			}
			time.Sleep(time.Millisecond)
		}
		if err != nil {
			t.Fatalf("PollOut #%d: %v", i, err)
		}
		if got != signal.Pong {
			t.Fatalf("PollOut #%d: got %q, want pong", i, got)
		}
	}

	if err := sig.Signal(signal.Stop); err != nil {
		t.Fatalf("Signal(Stop): %v", err)
	}
	wake.Notify()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("SplitLines did not exit after stop")
	}
}
