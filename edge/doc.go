// Package edge provides the bounded queues that carry information packets
// (IPs) between components, plus the wake-up primitive components use to
// park when idle.
//
// Three backing algorithms are available, selected by how many goroutines
// attach to either side of a port:
//
//	SPSC - one producer, one consumer (the common case: a single connection)
//	MPSC - many producers, one consumer (an array in-port fed by several connections)
//	SPMC - one producer, many consumers (an array out-port distributing to several workers)
//
// All three share the same Push/Pop shape and return ErrWouldBlock
// instead of blocking; Edge wraps whichever one backs a given port with the
// abandonment flag and consumer wake-up(s) that turn it into the transport
// spec.md §3/§4.1 describes.
package edge
