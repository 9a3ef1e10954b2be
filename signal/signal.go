// Package signal implements the per-component control channel: a small,
// bounded, non-blocking pair of queues carrying stop/ping/pong envelopes
// between the process host and one running component.
package signal

import (
	"errors"

	"github.com/ERnsTL/flowd-go/edge"
)

// Envelope is a recognized control message. Anything else received is
// logged and ignored by the component, per spec.md §4.3.
type Envelope string

const (
	Stop Envelope = "stop"
	Ping Envelope = "ping"
	Pong Envelope = "pong"
)

// defaultCapacity is generous relative to how rarely the host signals a
// component; signals never carry IP payloads, so a small queue is plenty.
const defaultCapacity = 16

// Channel is the pair of endpoints one component shares with the host:
// `in` carries host-to-component envelopes (stop, ping), `out` carries
// component-to-host envelopes (pong). Both are edge.SPSC, since each side
// has exactly one reader and one writer (spec.md §4.3: "two endpoints per
// component").
type Channel struct {
	in  *edge.SPSC[Envelope]
	out *edge.SPSC[Envelope]
}

// NewChannel creates a fresh signal channel for one component.
func NewChannel() *Channel {
	return &Channel{
		in:  edge.NewSPSC[Envelope](defaultCapacity),
		out: edge.NewSPSC[Envelope](defaultCapacity),
	}
}

// Signal is the host-side send: deliver stop or ping to the component.
// Non-blocking; returns edge.ErrWouldBlock if the component has not drained
// fast enough to make room, which should not happen at this queue depth
// under spec.md's "at least once per iteration" polling discipline.
func (c *Channel) Signal(e Envelope) error {
	return c.in.Push(e)
}

// PollOut is the host-side receive: observe a pong (or any other envelope)
// the component sent back. Non-blocking.
func (c *Channel) PollOut() (Envelope, error) {
	return c.out.Pop()
}

// TryRecv is the component-side receive: non-blockingly drain one envelope
// from the host, per the run-loop's step 1 (spec.md §4.4).
func (c *Channel) TryRecv() (Envelope, error) {
	return c.in.Pop()
}

// Reply is the component-side send: publish an envelope (normally Pong)
// back to the host. Non-blocking.
func (c *Channel) Reply(e Envelope) error {
	return c.out.Push(e)
}

// IsEmpty reports whether TryRecv currently has nothing to return.
func (c *Channel) IsEmpty() bool {
	return c.in.IsEmpty()
}

var errUnrecognized = errors.New("signal: unrecognized envelope")

// ErrUnrecognized is returned by nothing in this package directly; it is
// exported so components can tag their own "logged and ignored" path with
// errors.Is against a stable sentinel instead of a string comparison.
var ErrUnrecognized = errUnrecognized

// Recognized reports whether e is one of the envelopes this package
// assigns meaning to. Components use this to decide whether to log-and-
// ignore an envelope per spec.md §4.3's "other: log and ignore" row.
func Recognized(e Envelope) bool {
	switch e {
	case Stop, Ping, Pong:
		return true
	default:
		return false
	}
}
