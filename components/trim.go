package components

import (
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/ERnsTL/flowd-go/component"
	"github.com/ERnsTL/flowd-go/edge"
	"github.com/ERnsTL/flowd-go/signal"
)

// Trim reads each IP on IN as a UTF-8 string, trims leading and trailing
// whitespace, and forwards the trimmed string on OUT (spec.md §8 scenario
// S3).
type Trim struct {
	in   *edge.Edge
	out  *edge.Edge
	sig  *signal.Channel
	wake *edge.WakeUp
}

// NewTrim is the component.Constructor for Trim.
func NewTrim(ins component.Inports, outs component.Outports, sig *signal.Channel, _ *component.GraphPortHolder, wake *edge.WakeUp) (component.Component, error) {
	in, err := ins.Require("IN")
	if err != nil {
		return nil, err
	}
	out, err := outs.Require("OUT")
	if err != nil {
		return nil, err
	}
	return &Trim{in: in, out: out, sig: sig, wake: wake}, nil
}

func (c *Trim) Run() {
	log.Debug().Msg("Trim is now running")
	for {
		if ip, err := c.sig.TryRecv(); err == nil {
			switch ip {
			case signal.Stop:
				log.Info().Msg("Trim got stop signal, exiting")
				c.out.ReleaseProducer()
				c.out.NotifyConsumers()
				return
			case signal.Ping:
				_ = c.sig.Reply(signal.Pong)
			default:
				log.Warn().Str("envelope", string(ip)).Msg("Trim received unrecognized signal")
			}
		}

		for {
			ip, err := c.in.Pop()
			if err != nil {
				break
			}
			trimmed := strings.TrimSpace(string(ip))
			for c.out.Push(edge.IP(trimmed)) != nil {
				c.out.NotifyConsumers()
			}
			c.out.NotifyConsumers()
		}

		if c.in.IsAbandoned() && c.in.IsEmpty() {
			log.Info().Msg("Trim: EOF on IN, shutting down")
			c.out.ReleaseProducer()
			c.out.NotifyConsumers()
			return
		}

		c.wake.Block()
	}
}

// TrimMetadata is Trim's static descriptor.
func TrimMetadata() component.Metadata {
	return component.Metadata{
		Name:        "Trim",
		Description: "Reads IPs as UTF-8 strings and trims whitespace at beginning and end, forwarding the trimmed string.",
		Icon:        "cut",
		InPorts: []component.Port{{
			Name:        "IN",
			AllowedType: "any",
			Required:    true,
			Description: "IPs with strings to trim, one string per IP",
		}},
		OutPorts: []component.Port{{
			Name:        "OUT",
			AllowedType: "any",
			Required:    true,
			Description: "trimmed strings",
		}},
	}
}
