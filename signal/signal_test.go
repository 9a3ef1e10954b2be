package signal_test

import (
	"errors"
	"testing"

	"github.com/ERnsTL/flowd-go/edge"
	"github.com/ERnsTL/flowd-go/signal"
)

func TestChannelStopDelivery(t *testing.T) {
	c := signal.NewChannel()

	if err := c.Signal(signal.Stop); err != nil {
		t.Fatalf("Signal(Stop): %v", err)
	}

	got, err := c.TryRecv()
	if err != nil {
		t.Fatalf("TryRecv: %v", err)
	}
	if got != signal.Stop {
		t.Fatalf("TryRecv: got %q, want %q", got, signal.Stop)
	}

	if _, err := c.TryRecv(); !errors.Is(err, edge.ErrWouldBlock) {
		t.Fatalf("TryRecv on drained channel: got %v, want ErrWouldBlock", err)
	}
}

// TestChannelPingPongNoCoalescing is S4 from spec.md §8: three pings must
// produce three distinct pongs, in order, with no coalescing.
func TestChannelPingPongNoCoalescing(t *testing.T) {
	c := signal.NewChannel()

	for i := 0; i < 3; i++ {
		if err := c.Signal(signal.Ping); err != nil {
			t.Fatalf("Signal(Ping) #%d: %v", i, err)
		}
	}

	for i := 0; i < 3; i++ {
		e, err := c.TryRecv()
		if err != nil {
			t.Fatalf("TryRecv #%d: %v", i, err)
		}
		if e != signal.Ping {
			t.Fatalf("TryRecv #%d: got %q, want ping", i, e)
		}
		if err := c.Reply(signal.Pong); err != nil {
			t.Fatalf("Reply(Pong) #%d: %v", i, err)
		}
	}

	for i := 0; i < 3; i++ {
		e, err := c.PollOut()
		if err != nil {
			t.Fatalf("PollOut #%d: %v", i, err)
		}
		if e != signal.Pong {
			t.Fatalf("PollOut #%d: got %q, want pong", i, e)
		}
	}
	if _, err := c.PollOut(); !errors.Is(err, edge.ErrWouldBlock) {
		t.Fatalf("PollOut after draining: got %v, want ErrWouldBlock", err)
	}
}

func TestRecognized(t *testing.T) {
	for _, e := range []signal.Envelope{signal.Stop, signal.Ping, signal.Pong} {
		if !signal.Recognized(e) {
			t.Fatalf("Recognized(%q) = false, want true", e)
		}
	}
	if signal.Recognized("frobnicate") {
		t.Fatal("Recognized(\"frobnicate\") = true, want false")
	}
}
