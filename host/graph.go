package host

import "encoding/json"

// Document is a noflo-compatible graph document (spec.md §3 expansion,
// §6 component/getsource): the wire format both the management adapter's
// component/getsource response and an on-disk graph file use.
type Document struct {
	CaseSensitive bool                  `json:"caseSensitive,omitempty"`
	Properties    DocumentProperties    `json:"properties,omitempty"`
	Inports       map[string]PortRef    `json:"inports,omitempty"`
	Outports      map[string]PortRef    `json:"outports,omitempty"`
	Processes     map[string]ProcessDef `json:"processes"`
	Connections   []ConnectionDef       `json:"connections"`
}

// DocumentProperties is the graph-wide metadata block noflo-ui expects on
// a graph document (spec.md §6's example payload).
type DocumentProperties struct {
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
	Icon        string `json:"icon,omitempty"`
}

// PortRef names one node's named port, used both for graph-external port
// bindings (inports/outports) and connection endpoints.
type PortRef struct {
	Process string `json:"process"`
	Port    string `json:"port"`
}

// ProcessDef is one node: which component type it instantiates, plus
// editor-only metadata this runtime does not interpret.
type ProcessDef struct {
	Component string          `json:"component"`
	Metadata  json.RawMessage `json:"metadata,omitempty"`
}

// ConnectionDef is one edge between two process ports, or an initial
// information packet (IIP) when Data is set instead of Src. BufferSize
// overrides the default edge capacity (spec.md §4.1 expansion).
type ConnectionDef struct {
	Src        *PortRef        `json:"src,omitempty"`
	Tgt        PortRef         `json:"tgt"`
	Data       json.RawMessage `json:"data,omitempty"`
	Metadata   ConnMetadata    `json:"metadata,omitempty"`
}

// ConnMetadata carries the noflo-convention buffer size override.
type ConnMetadata struct {
	BufferSize int `json:"buffersize,omitempty"`
}
