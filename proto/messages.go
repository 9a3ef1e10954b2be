// Package proto implements the management-protocol adapter: a
// gorilla/websocket listener speaking the noflo runtime wire protocol
// (spec.md §4.7, §6).
package proto

import (
	"encoding/json"

	"github.com/ERnsTL/flowd-go/component"
)

// Capability is one advertised runtime capability string (spec.md §6).
type Capability string

const (
	CapProtocolNetwork    Capability = "protocol:network"
	CapNetworkPersist     Capability = "network:persist"
	CapNetworkStatus      Capability = "network:status"
	CapNetworkData        Capability = "network:data"
	CapNetworkControl     Capability = "network:control"
	CapProtocolComponent  Capability = "protocol:component"
	CapComponentGetsource Capability = "component:getsource"
	CapComponentSetsource Capability = "component:setsource"
	CapProtocolRuntime    Capability = "protocol:runtime"
	CapGraphReadonly      Capability = "graph:readonly"
	CapProtocolGraph      Capability = "protocol:graph"
	CapProtocolTrace      Capability = "protocol:trace"
)

// defaultCapabilities is the eleven-entry list spec.md §6 mandates.
// CapGraphReadonly is a known constant but deliberately not advertised —
// see DESIGN.md for why.
var defaultCapabilities = []Capability{
	CapProtocolNetwork,
	CapNetworkPersist,
	CapNetworkStatus,
	CapNetworkData,
	CapNetworkControl,
	CapProtocolComponent,
	CapComponentGetsource,
	CapComponentSetsource,
	CapProtocolRuntime,
	CapProtocolGraph,
	CapProtocolTrace,
}

// envelope is the outer wire shape every message carries (spec.md §6).
type envelope struct {
	Protocol string          `json:"protocol"`
	Command  string          `json:"command"`
	Payload  json.RawMessage `json:"payload"`
}

type runtimeGetruntimePayload struct {
	Secret string `json:"secret"`
}

type runtimeRuntimePayload struct {
	ID                 string       `json:"id"`
	Label              string       `json:"label"`
	Version            string       `json:"version"`
	AllCapabilities    []Capability `json:"allCapabilities"`
	Capabilities       []Capability `json:"capabilities"`
	Graph              string       `json:"graph"`
	Type               string       `json:"type"`
	Namespace          string       `json:"namespace"`
	Repository         string       `json:"repository"`
	RepositoryVersion  string       `json:"repositoryVersion"`
}

type runtimePortsPayload struct {
	Graph    string   `json:"graph"`
	InPorts  []string `json:"inPorts"`
	OutPorts []string `json:"outPorts"`
}

type componentListPayload struct {
	Secret string `json:"secret"`
}

type componentComponentPayload struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Icon        string          `json:"icon"`
	Subgraph    bool            `json:"subgraph"`
	InPorts     []component.Port `json:"inPorts"`
	OutPorts    []component.Port `json:"outPorts"`
}

type networkGetstatusPayload struct {
	Graph  string `json:"graph"`
	Secret string `json:"secret"`
}

type networkStatusPayload struct {
	Graph         string `json:"graph"`
	UptimeSeconds uint32 `json:"uptime_seconds"`
	Started       bool   `json:"started"`
	Running       bool   `json:"running"`
	Debug         bool   `json:"debug"`
}

type componentGetsourcePayload struct {
	Name   string `json:"name"`
	Secret string `json:"secret"`
}

type componentSourcePayload struct {
	Name     string `json:"name"`
	Language string `json:"language"`
	Library  string `json:"library"`
	Code     string `json:"code"`
	Tests    string `json:"tests"`
}

type graphClearPayload struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Library     string `json:"library"`
	Main        bool   `json:"main"`
	Icon        string `json:"icon"`
	Description string `json:"description"`
	Secret      string `json:"secret,omitempty"`
}

type graphChangenodeMetadata struct {
	X      int    `json:"x"`
	Y      int    `json:"y"`
	Height int    `json:"height"`
	Width  int    `json:"width"`
	Label  string `json:"label"`
}

type graphChangenodePayload struct {
	ID       string                  `json:"id"`
	Metadata graphChangenodeMetadata `json:"metadata"`
	Graph    string                  `json:"graph"`
	Secret   string                  `json:"secret,omitempty"`
}
