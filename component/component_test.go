package component_test

import (
	"errors"
	"testing"

	"github.com/ERnsTL/flowd-go/component"
	"github.com/ERnsTL/flowd-go/edge"
)

func TestInportsRequireRemoves(t *testing.T) {
	e := edge.NewEdge(4, edge.SingleSingle, 1, nil)
	ins := component.Inports{"IN": e}

	got, err := ins.Require("IN")
	if err != nil {
		t.Fatalf("Require: %v", err)
	}
	if got != e {
		t.Fatal("Require returned a different edge")
	}
	if _, ok := ins["IN"]; ok {
		t.Fatal("Require did not remove the port from the map")
	}
}

func TestInportsRequireMissing(t *testing.T) {
	ins := component.Inports{}
	if _, err := ins.Require("IN"); err == nil {
		t.Fatal("Require on a missing port should fail, not panic")
	}
}

func TestGraphPortHolderInjectObserve(t *testing.T) {
	h := component.NewGraphPortHolder()
	in := edge.NewEdge(4, edge.SingleSingle, 1, nil)
	out := edge.NewEdge(4, edge.SingleSingle, 1, nil)
	h.BindIn("NAMES", in)
	h.BindOut("OUT", out)

	if err := h.Inject("NAMES", edge.IP("/tmp/a")); err != nil {
		t.Fatalf("Inject: %v", err)
	}
	ip, err := in.Pop()
	if err != nil {
		t.Fatalf("Pop on bound in-edge: %v", err)
	}
	if string(ip) != "/tmp/a" {
		t.Fatalf("got %q", ip)
	}

	if err := out.Push(edge.IP("hello")); err != nil {
		t.Fatalf("Push: %v", err)
	}
	got, err := h.Observe("OUT")
	if err != nil {
		t.Fatalf("Observe: %v", err)
	}
	if string(got) != "hello" {
		t.Fatalf("got %q", got)
	}

	if _, err := h.Observe("NOSUCHPORT"); err == nil {
		t.Fatal("Observe on unbound port should fail")
	}
}

func TestGraphPortHolderInjectFull(t *testing.T) {
	h := component.NewGraphPortHolder()
	in := edge.NewEdge(2, edge.SingleSingle, 1, nil)
	h.BindIn("NAMES", in)
	for i := 0; i < in.Cap(); i++ {
		if err := h.Inject("NAMES", edge.IP{byte(i)}); err != nil {
			t.Fatalf("Inject #%d: %v", i, err)
		}
	}
	if err := h.Inject("NAMES", edge.IP("overflow")); !errors.Is(err, edge.ErrWouldBlock) {
		t.Fatalf("Inject on full edge: got %v, want ErrWouldBlock", err)
	}
}
