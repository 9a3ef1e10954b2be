// Package buildinfo holds the process-wide identity stamped into
// runtime:runtime responses (spec.md §6 expansion): a real UUID generated
// once at startup, plus static repository metadata.
package buildinfo

import "github.com/google/uuid"

// Repository is this runtime's source location, advertised verbatim in
// runtime:runtime.
const Repository = "https://github.com/ERnsTL/flowd-go"

// Version is the supported management-protocol version (spec.md §6,
// matching the original runtime's "0.7").
const Version = "0.7"

// runtimeID is generated once per process, resolving spec.md §9's "dummy
// UUID" open question (see DESIGN.md).
var runtimeID = uuid.NewString()

// RuntimeID returns this process's runtime identity.
func RuntimeID() string {
	return runtimeID
}
