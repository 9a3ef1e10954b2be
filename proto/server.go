package proto

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/ERnsTL/flowd-go/edge"
	"github.com/ERnsTL/flowd-go/host"
	"github.com/ERnsTL/flowd-go/registry"
)

// Server is the management-protocol adapter: it answers runtime, component,
// network, and graph protocol requests from the registry and host state
// (spec.md §4.7).
type Server struct {
	reg         *registry.Registry
	host        *host.Host
	runtimeID   string
	graphName   string
	graphSource string

	upgrader websocket.Upgrader
}

// NewServer creates an adapter bound to reg and h, advertising runtimeID
// as runtime:runtime's id (spec.md §6 expansion — a real UUID instead of
// the original's hardcoded placeholder).
func NewServer(reg *registry.Registry, h *host.Host, runtimeID string) *Server {
	return &Server{
		reg:       reg,
		host:      h,
		runtimeID: runtimeID,
		graphName: "default_graph",
		upgrader: websocket.Upgrader{
			Subprotocols:    []string{"noflo"},
			CheckOrigin:     func(r *http.Request) bool { return true },
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
		},
	}
}

// SetGraphSource records the JSON text returned for
// component/getsource{name: graphName}.
func (s *Server) SetGraphSource(src string) {
	s.graphSource = src
}

// Handler returns the http.Handler to mount the websocket endpoint on.
func (s *Server) Handler() http.Handler {
	return http.HandlerFunc(s.serveWS)
}

func (s *Server) serveWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error().Err(err).Msg("proto: websocket upgrade failed")
		return
	}
	defer conn.Close()

	for {
		msgType, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		if msgType != websocket.TextMessage && msgType != websocket.BinaryMessage {
			continue
		}

		var env envelope
		if err := json.Unmarshal(data, &env); err != nil {
			log.Warn().Err(err).Msg("proto: malformed inbound JSON, closing connection")
			return
		}

		for _, resp := range s.dispatch(env) {
			out, err := json.Marshal(resp)
			if err != nil {
				log.Error().Err(err).Msg("proto: failed to serialize response")
				continue
			}
			if err := conn.WriteMessage(websocket.TextMessage, out); err != nil {
				return
			}
		}
	}
}

// dispatch turns one inbound envelope into zero or more outbound
// envelopes, per the recognized commands of spec.md §6.
func (s *Server) dispatch(env envelope) []envelope {
	switch env.Protocol + "/" + env.Command {
	case "runtime/getruntime":
		return []envelope{s.runtimeRuntime(), s.runtimePorts()}

	case "component/list":
		resps := s.componentList()
		resps = append(resps, envelope{
			Protocol: "component",
			Command:  "componentsready",
			Payload:  mustJSON(len(s.reg.List())),
		})
		return resps

	case "network/getstatus":
		return []envelope{s.networkStatus()}

	case "component/getsource":
		var p componentGetsourcePayload
		_ = json.Unmarshal(env.Payload, &p)
		return []envelope{s.componentSource(p.Name)}

	case "graph/clear":
		var p graphClearPayload
		_ = json.Unmarshal(env.Payload, &p)
		p.Secret = ""
		return []envelope{{Protocol: "graph", Command: "clear", Payload: mustJSON(p)}}

	case "graph/changenode":
		var p graphChangenodePayload
		_ = json.Unmarshal(env.Payload, &p)
		p.Secret = ""
		return []envelope{{Protocol: "graph", Command: "changenode", Payload: mustJSON(p)}}

	default:
		log.Debug().Str("protocol", env.Protocol).Str("command", env.Command).Msg("proto: unrecognized command, ignoring")
		return nil
	}
}

func (s *Server) runtimeRuntime() envelope {
	payload := runtimeRuntimePayload{
		ID:                s.runtimeID,
		Label:             "flowd-go FBP runtime",
		Version:           "0.7",
		AllCapabilities:   defaultCapabilities,
		Capabilities:      defaultCapabilities,
		Graph:             s.graphName,
		Type:              "flowd",
		Namespace:         "main",
		Repository:        "https://github.com/ERnsTL/flowd-go",
		RepositoryVersion: "dev",
	}
	return envelope{Protocol: "runtime", Command: "runtime", Payload: mustJSON(payload)}
}

func (s *Server) runtimePorts() envelope {
	payload := runtimePortsPayload{Graph: s.graphName, InPorts: []string{}, OutPorts: []string{}}
	if s.host != nil {
		payload.InPorts = s.host.Ports().InPortNames()
		payload.OutPorts = s.host.Ports().OutPortNames()
	}
	return envelope{Protocol: "runtime", Command: "ports", Payload: mustJSON(payload)}
}

func (s *Server) componentList() []envelope {
	entries := s.reg.List()
	out := make([]envelope, 0, len(entries))
	for _, e := range entries {
		payload := componentComponentPayload{
			Name:        e.Metadata.Name,
			Description: e.Metadata.Description,
			Icon:        e.Metadata.Icon,
			Subgraph:    e.Metadata.Subgraph,
			InPorts:     e.Metadata.InPorts,
			OutPorts:    e.Metadata.OutPorts,
		}
		out = append(out, envelope{Protocol: "component", Command: "component", Payload: mustJSON(payload)})
	}
	return out
}

func (s *Server) networkStatus() envelope {
	payload := networkStatusPayload{Graph: s.graphName}
	if s.host != nil {
		snap := s.host.Snapshot()
		payload.Graph = snap.Graph
		payload.UptimeSeconds = snap.UptimeSeconds
		payload.Started = snap.Started
		payload.Running = snap.Running
	}
	return envelope{Protocol: "network", Command: "status", Payload: mustJSON(payload)}
}

func (s *Server) componentSource(name string) envelope {
	if name == s.graphName {
		return envelope{Protocol: "component", Command: "source", Payload: mustJSON(componentSourcePayload{
			Name:     s.graphName,
			Language: "json",
			Library:  "main_library",
			Code:     s.graphSource,
			Tests:    "",
		})}
	}
	entry, ok := s.reg.Lookup(name)
	if !ok {
		return envelope{Protocol: "component", Command: "source", Payload: mustJSON(componentSourcePayload{
			Name:     name,
			Language: "go",
			Library:  "main_library",
			Code:     "// unknown component",
		})}
	}
	return envelope{Protocol: "component", Command: "source", Payload: mustJSON(componentSourcePayload{
		Name:     entry.Metadata.Name,
		Language: "go",
		Library:  "main_library",
		Code:     "// source for " + entry.Metadata.Name + " is not exposed over this protocol",
	})}
}

func mustJSON(v any) json.RawMessage {
	b, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("proto: marshal failure on an internal payload")
		return json.RawMessage("null")
	}
	return b
}

// InjectIP is the runtime:packet boundary spec.md §4.7 and §9 describe:
// accepted and acknowledged, not yet wired to live graph mutation beyond
// in-port injection.
func (s *Server) InjectIP(graphPort string, data []byte) error {
	if s.host == nil {
		return nil
	}
	return s.host.Ports().Inject(graphPort, edge.IP(data))
}
