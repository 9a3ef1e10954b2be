package components_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ERnsTL/flowd-go/component"
	"github.com/ERnsTL/flowd-go/components"
	"github.com/ERnsTL/flowd-go/edge"
	"github.com/ERnsTL/flowd-go/signal"
)

// TestFileReaderS1 is scenario S1 from spec.md §8.
func TestFileReaderS1(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a")
	b := filepath.Join(dir, "b")
	if err := os.WriteFile(a, []byte("hello\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(b, []byte("world"), 0o644); err != nil {
		t.Fatal(err)
	}

	out := edge.NewEdge(4, edge.SingleSingle, 1, nil)
	wake := edge.NewWakeUp()
	names := edge.NewEdge(4, edge.SingleSingle, 1, []*edge.WakeUp{wake})

	sig := signal.NewChannel()
	inst, err := components.NewFileReader(
		component.Inports{"NAMES": names},
		component.Outports{"OUT": out},
		sig, nil, wake,
	)
	if err != nil {
		t.Fatalf("NewFileReader: %v", err)
	}

	done := make(chan struct{})
	go func() {
		inst.Run()
		close(done)
	}()

	if err := names.Push(edge.IP(a)); err != nil {
		t.Fatalf("Push: %v", err)
	}
	names.NotifyConsumers()
	if err := names.Push(edge.IP(b)); err != nil {
		t.Fatalf("Push: %v", err)
	}
	names.NotifyConsumers()

	want := []string{"hello\n", "world"}
	for i, w := range want {
		ip := popWithin(t, out, time.Second)
		if string(ip) != w {
			t.Fatalf("OUT[%d]: got %q, want %q", i, ip, w)
		}
	}

	names.ReleaseProducer()
	names.NotifyConsumers()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("FileReader did not exit after NAMES was closed")
	}
	if !out.IsAbandoned() {
		t.Fatal("OUT should be abandoned once FileReader exits")
	}
}

func popWithin(t *testing.T, e *edge.Edge, d time.Duration) edge.IP {
	t.Helper()
	deadline := time.Now().Add(d)
	for time.Now().Before(deadline) {
		if ip, err := e.Pop(); err == nil {
			return ip
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal("timed out waiting for an IP")
	return nil
}
