// Package tools defines outbound forwarders for the auxiliary tool endpoints.
package tools

import "context"

type Forwarder interface {
	Name() string
	Description() string
	Forward(ctx context.Context, req Request) (string, error)
}

// Request carries the per-call target and payload. Targets come from the
// credential resolver, not from construction time, because callers may supply
// them in the request body.
type Request struct {
	Target  string
	Token   string
	Payload string
}
