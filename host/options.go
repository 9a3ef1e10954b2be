package host

import (
	"github.com/ERnsTL/flowd-go/component"
	"github.com/ERnsTL/flowd-go/registry"
)

// Builder configures and creates a Host in a fluent configure-then-build
// style: NewBuilder fills in defaults, chained setters override them, and
// a terminal Build creates the Host.
type Builder struct {
	reg  *registry.Registry
	opts options
}

type options struct {
	defaultCapacity int
	traceExporters  int
}

// NewBuilder creates a host builder bound to reg, with spec.md's default
// edge capacity and trace exporter pool size.
func NewBuilder(reg *registry.Registry) *Builder {
	return &Builder{
		reg: reg,
		opts: options{
			defaultCapacity: defaultCapacity,
			traceExporters:  defaultTraceExporters,
		},
	}
}

// WithDefaultCapacity overrides the edge capacity used for connections
// whose metadata does not request a buffersize (spec.md §4.1 expansion,
// config.Config.DefaultEdgeCapacity). Ignored if n <= 0.
func (b *Builder) WithDefaultCapacity(n int) *Builder {
	if n > 0 {
		b.opts.defaultCapacity = n
	}
	return b
}

// WithTraceExporters overrides the number of goroutines draining the trace
// bus. Ignored if n <= 0.
func (b *Builder) WithTraceExporters(n int) *Builder {
	if n > 0 {
		b.opts.traceExporters = n
	}
	return b
}

// Build creates the configured Host.
func (b *Builder) Build() *Host {
	return &Host{
		registry:        b.reg,
		ports:           component.NewGraphPortHolder(),
		trace:           NewTraceBus(b.opts.traceExporters),
		defaultCapacity: b.opts.defaultCapacity,
	}
}
