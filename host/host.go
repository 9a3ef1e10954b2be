// Package host instantiates a graph document into running components,
// wires their edges, routes signals, and tears the network back down
// (spec.md §4.5).
package host

import (
	"fmt"
	"time"

	"code.hybscloud.com/atomix"
	"github.com/rs/zerolog/log"

	"github.com/ERnsTL/flowd-go/component"
	"github.com/ERnsTL/flowd-go/edge"
	"github.com/ERnsTL/flowd-go/registry"
	"github.com/ERnsTL/flowd-go/signal"
)

// defaultCapacity is the edge capacity used when a connection's metadata
// does not request a buffersize override (spec.md §4.1 expansion).
const defaultCapacity = 128

// defaultTraceExporters sizes the exporter pool draining the trace bus.
const defaultTraceExporters = 2

// Host owns every running component of one loaded graph.
type Host struct {
	registry *registry.Registry
	ports    *component.GraphPortHolder
	trace    *TraceBus

	components map[string]component.Component
	signals    map[string]*signal.Channel
	wakes      map[string]*edge.WakeUp
	outEdges   map[string][]*edge.Edge // process name -> its out-edges, notified on exit and released if it panics
	done       chan struct{}

	graphName         string
	started           atomix.Bool
	running           atomix.Bool
	startedAtUnixNano atomix.Int64

	defaultCapacity int
}

// New creates a host bound to reg with default settings, ready to Start a
// graph document. Equivalent to NewBuilder(reg).Build().
func New(reg *registry.Registry) *Host {
	return NewBuilder(reg).Build()
}

// Ports returns the graph in/out holder the management adapter injects
// IPs through and observes graph out-ports from.
func (h *Host) Ports() *component.GraphPortHolder {
	return h.ports
}

// Trace returns the host's trace bus, into which spawn emits a start and
// an exit event for every component.
func (h *Host) Trace() *TraceBus {
	return h.trace
}

// Start instantiates doc: resolves every process's constructor from the
// registry, wires every connection and external port into edges, and
// spawns one goroutine per component. No goroutine is spawned until every
// edge is wired (spec.md §4.5 host-side invariant).
func (h *Host) Start(doc Document) error {
	graphName := doc.Properties.Name
	if graphName == "" {
		graphName = "default_graph"
	}

	wakes := make(map[string]*edge.WakeUp, len(doc.Processes))
	for name := range doc.Processes {
		wakes[name] = edge.NewWakeUp()
	}

	built, iips, err := buildEdges(doc, wakes, h.defaultCapacity)
	if err != nil {
		return err
	}

	ins := make(map[string]component.Inports, len(doc.Processes))
	outs := make(map[string]component.Outports, len(doc.Processes))
	outEdges := make(map[string][]*edge.Edge, len(doc.Processes))
	for name := range doc.Processes {
		ins[name] = component.Inports{}
		outs[name] = component.Outports{}
	}

	for _, b := range built {
		if b.isOut {
			outs[b.process][b.port] = b.edge
			outEdges[b.process] = append(outEdges[b.process], b.edge)
		} else {
			ins[b.process][b.port] = b.edge
		}
	}

	for extName, ref := range doc.Inports {
		e := edge.NewEdge(h.defaultCapacity, edge.SingleSingle, 1, []*edge.WakeUp{wakes[ref.Process]})
		ins[ref.Process][ref.Port] = e
		h.ports.BindIn(extName, e)
	}
	for extName, ref := range doc.Outports {
		e := edge.NewEdge(h.defaultCapacity, edge.SingleSingle, 1, nil)
		outs[ref.Process][ref.Port] = e
		outEdges[ref.Process] = append(outEdges[ref.Process], e)
		h.ports.BindOut(extName, e)
	}

	components := make(map[string]component.Component, len(doc.Processes))
	signals := make(map[string]*signal.Channel, len(doc.Processes))
	for name, proc := range doc.Processes {
		entry, ok := h.registry.Lookup(proc.Component)
		if !ok {
			return fmt.Errorf("host: unknown component type %q for process %q", proc.Component, name)
		}
		sig := signal.NewChannel()
		inst, err := entry.Constructor(ins[name], outs[name], sig, h.ports, wakes[name])
		if err != nil {
			return fmt.Errorf("host: constructing process %q (%s): %w", name, proc.Component, err)
		}
		components[name] = inst
		signals[name] = sig
	}

	for _, p := range iips {
		if err := p.edge.Push(p.data); err != nil {
			log.Warn().Str("process", p.ref.Process).Str("port", p.ref.Port).Err(err).Msg("dropping IIP: edge full at graph load")
			continue
		}
		p.edge.ReleaseProducer()
	}

	h.components = components
	h.signals = signals
	h.wakes = wakes
	h.outEdges = outEdges
	h.graphName = graphName
	h.done = make(chan struct{})

	h.started.StoreRelease(true)
	h.running.StoreRelease(true)
	h.startedAtUnixNano.StoreRelease(time.Now().UnixNano())

	remaining := make(chan struct{}, len(components))
	for name, inst := range components {
		go h.spawn(name, inst, remaining)
	}
	go func() {
		for range components {
			<-remaining
		}
		h.running.StoreRelease(false)
		close(h.done)
	}()

	return nil
}

func (h *Host) spawn(name string, inst component.Component, remaining chan<- struct{}) {
	defer func() {
		panicked := false
		if r := recover(); r != nil {
			panicked = true
			log.Error().Str("process", name).Interface("panic", r).Msg("component panicked; treating as implicit stop")
		}
		for _, e := range h.outEdges[name] {
			// A component that returns normally has already released its
			// own out-edges; releasing again would abandon a shared
			// ManySingle edge while other producers are still attached.
			if panicked {
				e.ReleaseProducer()
			}
			e.NotifyConsumers()
		}
		h.trace.Emit(TraceEvent{Process: name, Kind: "exit"})
		remaining <- struct{}{}
	}()
	h.trace.Emit(TraceEvent{Process: name, Kind: "start"})
	inst.Run()
}

// Stop broadcasts stop to every component and blocks until all have
// exited. Idempotent: calling it a second time is a no-op.
func (h *Host) Stop() {
	if h.done == nil {
		return
	}
	for name, sig := range h.signals {
		if err := sig.Signal(signal.Stop); err != nil {
			log.Warn().Str("process", name).Err(err).Msg("could not deliver stop signal")
		}
	}
	for _, w := range h.wakes {
		w.Notify()
	}
	<-h.done
}

// Status is the runtime snapshot exposed to network/getstatus.
type Status struct {
	Graph         string
	UptimeSeconds uint32
	Started       bool
	Running       bool
}

// Snapshot reports the current network status without blocking or
// touching any component state.
func (h *Host) Snapshot() Status {
	started := h.started.LoadAcquire()
	running := h.running.LoadAcquire()
	var uptime uint32
	if started {
		uptime = uint32(time.Duration(time.Now().UnixNano()-h.startedAtUnixNano.LoadAcquire()) / time.Second)
	}
	return Status{
		Graph:         h.graphName,
		UptimeSeconds: uptime,
		Started:       started,
		Running:       running,
	}
}
