package components

import (
	"bufio"
	"bytes"

	"github.com/rs/zerolog/log"

	"github.com/ERnsTL/flowd-go/component"
	"github.com/ERnsTL/flowd-go/edge"
	"github.com/ERnsTL/flowd-go/signal"
)

// SplitLines splits each IP on IN by newline and forwards each line as its
// own IP on OUT, with no trailing empty IP (spec.md §8 scenario S2).
type SplitLines struct {
	in   *edge.Edge
	out  *edge.Edge
	sig  *signal.Channel
	wake *edge.WakeUp
}

// NewSplitLines is the component.Constructor for SplitLines.
func NewSplitLines(ins component.Inports, outs component.Outports, sig *signal.Channel, _ *component.GraphPortHolder, wake *edge.WakeUp) (component.Component, error) {
	in, err := ins.Require("IN")
	if err != nil {
		return nil, err
	}
	out, err := outs.Require("OUT")
	if err != nil {
		return nil, err
	}
	return &SplitLines{in: in, out: out, sig: sig, wake: wake}, nil
}

func (c *SplitLines) Run() {
	log.Debug().Msg("SplitLines is now running")
	for {
		if ip, err := c.sig.TryRecv(); err == nil {
			switch ip {
			case signal.Stop:
				log.Info().Msg("SplitLines got stop signal, exiting")
				c.out.ReleaseProducer()
				c.out.NotifyConsumers()
				return
			case signal.Ping:
				_ = c.sig.Reply(signal.Pong)
			default:
				log.Warn().Str("envelope", string(ip)).Msg("SplitLines received unrecognized signal")
			}
		}

		for {
			ip, err := c.in.Pop()
			if err != nil {
				break
			}
			scanner := bufio.NewScanner(bytes.NewReader(ip))
			for scanner.Scan() {
				line := append([]byte(nil), scanner.Bytes()...)
				for c.out.Push(edge.IP(line)) != nil {
					c.out.NotifyConsumers()
				}
			}
			c.out.NotifyConsumers()
		}

		if c.in.IsAbandoned() && c.in.IsEmpty() {
			log.Info().Msg("SplitLines: EOF on IN, shutting down")
			c.out.ReleaseProducer()
			c.out.NotifyConsumers()
			return
		}

		c.wake.Block()
	}
}

// SplitLinesMetadata is SplitLines's static descriptor.
func SplitLinesMetadata() component.Metadata {
	return component.Metadata{
		Name:        "SplitLines",
		Description: `Splits IP contents by newline (\n) and forwards the parts in separate IPs.`,
		Icon:        "cut",
		InPorts: []component.Port{{
			Name:        "IN",
			AllowedType: "any",
			Required:    true,
			Description: "IPs with text to split",
		}},
		OutPorts: []component.Port{{
			Name:        "OUT",
			AllowedType: "any",
			Required:    true,
			Description: "split lines",
		}},
	}
}
