package host

import (
	"fmt"

	"github.com/ERnsTL/flowd-go/edge"
)

// builtEdge is one (process, port) -> edge binding resolved from the
// graph document, tagged with which side of the port it is so Start can
// file it into the right Inports/Outports map.
type builtEdge struct {
	process string
	port    string
	isOut   bool
	edge    *edge.Edge
}

// pendingIIP is an initial information packet waiting to be pushed once
// its target edge exists.
type pendingIIP struct {
	ref  PortRef
	edge *edge.Edge
	data edge.IP
}

func portKey(ref PortRef) string {
	return ref.Process + "\x00" + ref.Port
}

// buildEdges resolves doc.Connections into edges, handling the fan-in
// (array in-port, edge.ManySingle) and fan-out (array out-port,
// edge.SingleMany) cases described in spec.md §3 expansion: a source port
// referenced by more than one connection gets one shared SingleMany edge;
// a target port referenced by more than one connection gets one shared
// ManySingle edge; anything else is a plain SingleSingle edge.
func buildEdges(doc Document, wakes map[string]*edge.WakeUp, defaultCap int) ([]builtEdge, []pendingIIP, error) {
	var conns []ConnectionDef
	var iipConns []ConnectionDef
	for _, c := range doc.Connections {
		if c.Src == nil {
			iipConns = append(iipConns, c)
			continue
		}
		conns = append(conns, c)
	}

	srcCount := make(map[string]int)
	tgtCount := make(map[string]int)
	for _, c := range conns {
		srcCount[portKey(*c.Src)]++
		tgtCount[portKey(c.Tgt)]++
	}

	srcEdges := make(map[string]*edge.Edge)
	tgtEdges := make(map[string]*edge.Edge)
	assigned := make(map[int]bool)
	var built []builtEdge

	for i, c := range conns {
		if assigned[i] {
			continue
		}
		sKey, tKey := portKey(*c.Src), portKey(c.Tgt)

		switch {
		case srcCount[sKey] > 1:
			capacity := capacityFor(c, defaultCap)
			e, ok := srcEdges[sKey]
			if !ok {
				var consumerWakes []*edge.WakeUp
				for j, c2 := range conns {
					if portKey(*c2.Src) == sKey {
						assigned[j] = true
						consumerWakes = append(consumerWakes, wakes[c2.Tgt.Process])
					}
				}
				e = edge.NewEdge(capacity, edge.SingleMany, 1, consumerWakes)
				srcEdges[sKey] = e
				built = append(built, builtEdge{process: c.Src.Process, port: c.Src.Port, isOut: true, edge: e})
				for _, c2 := range conns {
					if portKey(*c2.Src) == sKey {
						built = append(built, builtEdge{process: c2.Tgt.Process, port: c2.Tgt.Port, isOut: false, edge: e})
					}
				}
			}

		case tgtCount[tKey] > 1:
			capacity := capacityFor(c, defaultCap)
			e, ok := tgtEdges[tKey]
			if !ok {
				producers := tgtCount[tKey]
				e = edge.NewEdge(capacity, edge.ManySingle, producers, []*edge.WakeUp{wakes[c.Tgt.Process]})
				tgtEdges[tKey] = e
				built = append(built, builtEdge{process: c.Tgt.Process, port: c.Tgt.Port, isOut: false, edge: e})
			}
			for j, c2 := range conns {
				if portKey(c2.Tgt) == tKey {
					assigned[j] = true
					built = append(built, builtEdge{process: c2.Src.Process, port: c2.Src.Port, isOut: true, edge: e})
				}
			}

		default:
			e := edge.NewEdge(capacityFor(c, defaultCap), edge.SingleSingle, 1, []*edge.WakeUp{wakes[c.Tgt.Process]})
			built = append(built, builtEdge{process: c.Src.Process, port: c.Src.Port, isOut: true, edge: e})
			built = append(built, builtEdge{process: c.Tgt.Process, port: c.Tgt.Port, isOut: false, edge: e})
			assigned[i] = true
		}
	}

	var iips []pendingIIP
	for _, c := range iipConns {
		e := edge.NewEdge(capacityFor(c, defaultCap), edge.SingleSingle, 1, []*edge.WakeUp{wakes[c.Tgt.Process]})
		built = append(built, builtEdge{process: c.Tgt.Process, port: c.Tgt.Port, isOut: false, edge: e})
		if len(c.Data) == 0 {
			return nil, nil, fmt.Errorf("host: connection to %s.%s has neither src nor data", c.Tgt.Process, c.Tgt.Port)
		}
		iips = append(iips, pendingIIP{ref: c.Tgt, edge: e, data: edge.IP(c.Data)})
	}

	return built, iips, nil
}

func capacityFor(c ConnectionDef, defaultCap int) int {
	if c.Metadata.BufferSize > 0 {
		return c.Metadata.BufferSize
	}
	return defaultCap
}
