// Package component defines the fixed contract every worker in the graph
// implements: a constructor taking its ports and signal endpoints, a
// blocking Run, and a static metadata descriptor used for advertisement.
package component

import (
	"fmt"

	"github.com/ERnsTL/flowd-go/edge"
	"github.com/ERnsTL/flowd-go/signal"
)

// Component is the runtime shape every worker satisfies. Run takes
// ownership of the receiver and executes until termination; it is not
// restartable.
type Component interface {
	Run()
}

// Inports maps a component's declared in-port name to the edge it
// consumes from. Constructor must remove each port it claims via delete,
// per spec.md §4.4 ("remove, not merely borrow").
type Inports map[string]*edge.Edge

// Outports maps a component's declared out-port name to the edge it
// produces into.
type Outports map[string]*edge.Edge

// Require pops name out of ports and returns its edge, or an error if the
// port was not wired — the standard way a Constructor enforces a required
// port without panicking (spec.md §4.4, §7 "Missing required port").
func (p Inports) Require(name string) (*edge.Edge, error) {
	e, ok := p[name]
	if !ok {
		return nil, fmt.Errorf("component: required in-port %q not wired", name)
	}
	delete(p, name)
	return e, nil
}

// Require pops name out of ports and returns its edge, or an error if the
// port was not wired.
func (p Outports) Require(name string) (*edge.Edge, error) {
	e, ok := p[name]
	if !ok {
		return nil, fmt.Errorf("component: required out-port %q not wired", name)
	}
	delete(p, name)
	return e, nil
}

// Constructor builds one Component instance from its wired ports, its
// signal channel, the shared graph port holder, and its own wake-up
// handle. It must fail, not panic, when a required port is missing.
type Constructor func(ins Inports, outs Outports, sig *signal.Channel, graph *GraphPortHolder, wake *edge.WakeUp) (Component, error)

// Port describes one named port of a component, mirroring the teacher
// corpus's ComponentPort wire shape (spec.md §3).
type Port struct {
	Name          string   `json:"name"`
	AllowedType   string   `json:"allowedType"`
	Schema        string   `json:"schema,omitempty"`
	Required      bool     `json:"required"`
	IsArrayPort   bool     `json:"addressable"`
	Description   string   `json:"description,omitempty"`
	ValuesAllowed []string `json:"values,omitempty"`
	ValueDefault  string   `json:"default,omitempty"`
}

// Metadata is the immutable descriptor advertised by component/list and
// component/component (spec.md §3, §6).
type Metadata struct {
	Name        string
	Description string
	Icon        string
	Subgraph    bool
	InPorts     []Port
	OutPorts    []Port
}
