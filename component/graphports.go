package component

import (
	"fmt"
	"sync"

	"github.com/ERnsTL/flowd-go/edge"
)

// GraphPortHolder is the shared, mutex-protected mapping from a
// graph-external port name to the edge endpoint it is bound to, through
// which the management adapter injects IPs at graph in-ports and observes
// graph out-ports (spec.md §3, §9 "shared mutable graph holder"). It is
// mutated only during graph load and teardown; no I/O happens under the
// lock.
type GraphPortHolder struct {
	mu       sync.Mutex
	inports  map[string]*edge.Edge
	outports map[string]*edge.Edge
}

// NewGraphPortHolder creates an empty holder ready for graph loading to
// populate via BindIn/BindOut.
func NewGraphPortHolder() *GraphPortHolder {
	return &GraphPortHolder{
		inports:  make(map[string]*edge.Edge),
		outports: make(map[string]*edge.Edge),
	}
}

// BindIn registers a graph-external in-port name against the edge that
// feeds the internal component it is wired to.
func (h *GraphPortHolder) BindIn(name string, e *edge.Edge) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.inports[name] = e
}

// BindOut registers a graph-external out-port name against the edge that
// the internal component publishes into.
func (h *GraphPortHolder) BindOut(name string, e *edge.Edge) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.outports[name] = e
}

// Inject pushes ip into the graph in-port named name. Returns
// edge.ErrWouldBlock if the bound edge is currently full, or an error if no
// such graph in-port exists.
func (h *GraphPortHolder) Inject(name string, ip edge.IP) error {
	h.mu.Lock()
	e, ok := h.inports[name]
	h.mu.Unlock()
	if !ok {
		return fmt.Errorf("component: no such graph in-port %q", name)
	}
	if err := e.Push(ip); err != nil {
		return err
	}
	e.NotifyConsumers()
	return nil
}

// Observe pops the next IP from the graph out-port named name. Returns
// edge.ErrWouldBlock if nothing is available yet.
func (h *GraphPortHolder) Observe(name string) (edge.IP, error) {
	h.mu.Lock()
	e, ok := h.outports[name]
	h.mu.Unlock()
	if !ok {
		return nil, fmt.Errorf("component: no such graph out-port %q", name)
	}
	return e.Pop()
}

// InPortNames and OutPortNames list the currently bound graph-external
// ports, for runtime/ports responses (spec.md §6).
func (h *GraphPortHolder) InPortNames() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	names := make([]string, 0, len(h.inports))
	for name := range h.inports {
		names = append(names, name)
	}
	return names
}

func (h *GraphPortHolder) OutPortNames() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	names := make([]string, 0, len(h.outports))
	for name := range h.outports {
		names = append(names, name)
	}
	return names
}
