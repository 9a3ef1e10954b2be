package edge

// IP is an information packet: an opaque byte sequence flowing along an
// edge. The transport makes no claim about encoding; individual components
// interpret the bytes (e.g. as UTF-8 text or a file path). An IP is owned
// by exactly one side of an edge at a time — Push transfers ownership to
// the edge, Pop transfers it to the caller.
type IP []byte
