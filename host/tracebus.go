package host

import (
	"sync"

	"code.hybscloud.com/spin"
	"github.com/rs/zerolog/log"

	"github.com/ERnsTL/flowd-go/edge"
)

// TraceEvent is one flow-trace record a component's run loop may emit,
// giving protocol:trace (spec.md §6 capability list) a real backing
// instead of being an inert advertised flag.
type TraceEvent struct {
	Process string
	Port    string
	Kind    string // "start" or "exit", as emitted by Host.spawn
	Size    int
}

const traceBusCapacity = 1024

// TraceBus is a many-producer, many-consumer work-distribution queue:
// every running component may emit trace events concurrently, and a
// small pool of exporter goroutines competes to drain and log them. This
// is exactly the shape edge.MPMC models — each event goes to exactly one
// exporter, never to all of them (see DESIGN.md).
type TraceBus struct {
	q       *edge.MPMC[TraceEvent]
	stop    chan struct{}
	wg      sync.WaitGroup
	started bool
}

// NewTraceBus creates a trace bus and starts the given number of exporter
// goroutines.
func NewTraceBus(exporters int) *TraceBus {
	if exporters < 1 {
		exporters = 1
	}
	tb := &TraceBus{
		q:    edge.NewMPMC[TraceEvent](traceBusCapacity),
		stop: make(chan struct{}),
	}
	tb.wg.Add(exporters)
	for i := 0; i < exporters; i++ {
		go tb.export()
	}
	tb.started = true
	return tb
}

// Emit records ev, dropping it (and logging at debug level) if the bus is
// momentarily full rather than blocking the emitting component's hot path.
func (tb *TraceBus) Emit(ev TraceEvent) {
	if err := tb.q.Push(ev); err != nil {
		log.Debug().Str("process", ev.Process).Str("port", ev.Port).Msg("trace bus full, dropping event")
	}
}

func (tb *TraceBus) export() {
	defer tb.wg.Done()
	sw := spin.Wait{}
	for {
		select {
		case <-tb.stop:
			tb.q.Drain()
			for {
				ev, err := tb.q.Pop()
				if err != nil {
					return
				}
				tb.log(ev)
			}
		default:
		}

		ev, err := tb.q.Pop()
		if err != nil {
			sw.Once()
			continue
		}
		tb.log(ev)
	}
}

func (tb *TraceBus) log(ev TraceEvent) {
	log.Trace().
		Str("process", ev.Process).
		Str("port", ev.Port).
		Str("kind", ev.Kind).
		Int("size", ev.Size).
		Msg("trace event")
}

// Close signals every exporter goroutine to drain what remains and exit,
// then waits for them to finish.
func (tb *TraceBus) Close() {
	if !tb.started {
		return
	}
	close(tb.stop)
	tb.wg.Wait()
}
