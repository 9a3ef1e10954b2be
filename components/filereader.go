package components

import (
	"os"

	"github.com/rs/zerolog/log"

	"github.com/ERnsTL/flowd-go/component"
	"github.com/ERnsTL/flowd-go/edge"
	"github.com/ERnsTL/flowd-go/signal"
)

// FileReader reads the contents of the files named on NAMES and forwards
// their contents on OUT, one IP per file.
type FileReader struct {
	names *edge.Edge
	out   *edge.Edge
	sig   *signal.Channel
	graph *component.GraphPortHolder
	wake  *edge.WakeUp
}

// NewFileReader is the component.Constructor for FileReader.
func NewFileReader(ins component.Inports, outs component.Outports, sig *signal.Channel, graph *component.GraphPortHolder, wake *edge.WakeUp) (component.Component, error) {
	names, err := ins.Require("NAMES")
	if err != nil {
		return nil, err
	}
	out, err := outs.Require("OUT")
	if err != nil {
		return nil, err
	}
	return &FileReader{names: names, out: out, sig: sig, graph: graph, wake: wake}, nil
}

func (c *FileReader) Run() {
	log.Debug().Msg("FileReader is now running")
	for {
		if ip, err := c.sig.TryRecv(); err == nil {
			switch ip {
			case signal.Stop:
				log.Info().Msg("FileReader got stop signal, exiting")
				c.out.ReleaseProducer()
				c.out.NotifyConsumers()
				return
			case signal.Ping:
				_ = c.sig.Reply(signal.Pong)
			default:
				log.Warn().Str("envelope", string(ip)).Msg("FileReader received unrecognized signal")
			}
		}

		for {
			ip, err := c.names.Pop()
			if err != nil {
				break
			}
			path := string(ip)
			contents, err := os.ReadFile(path)
			if err != nil {
				log.Error().Str("path", path).Err(err).Msg("FileReader could not read file")
				continue
			}
			for c.out.Push(edge.IP(contents)) != nil {
				c.out.NotifyConsumers()
			}
			c.out.NotifyConsumers()
		}

		if c.names.IsAbandoned() && c.names.IsEmpty() {
			log.Info().Msg("FileReader: EOF on NAMES, shutting down")
			c.out.ReleaseProducer()
			c.out.NotifyConsumers()
			return
		}

		c.wake.Block()
	}
}

// FileReaderMetadata is FileReader's static descriptor.
func FileReaderMetadata() component.Metadata {
	return component.Metadata{
		Name:        "FileReader",
		Description: "Reads the contents of the given files and sends the contents.",
		Icon:        "file",
		InPorts: []component.Port{{
			Name:        "NAMES",
			AllowedType: "any",
			Required:    true,
			Description: "filenames, one per IP",
		}},
		OutPorts: []component.Port{{
			Name:        "OUT",
			AllowedType: "any",
			Required:    true,
			Description: "contents of the given files",
		}},
	}
}
