// Package assistant is the gateway to the natural-language planning
// assistant. A Provider produces exactly one complete reply per request (no
// streaming); the Gateway moves that blocking call off the session's event
// loop onto a worker goroutine and hands back a one-shot channel.
package assistant

import (
	"context"
)

// Turn is one ordered conversation turn.
type Turn struct {
	Role    string
	Content string
}

// Reply is the single outcome of one request: generated text on success,
// a human-readable error string otherwise. Exactly one of the two is set.
type Reply struct {
	Content string
	Err     string
}

// Provider is a concrete assistant backend. Converse receives the ordered
// conversation plus an opaque context blob (a serialized snapshot of the
// current tasks) and returns one complete reply. The provider's transport
// timeout is the only time bound; callers never cancel mid-flight.
type Provider interface {
	Converse(ctx context.Context, turns []Turn, taskContext string) (string, error)
}

// Gateway dispatches assistant requests without blocking the caller.
type Gateway struct {
	provider Provider
}

// NewGateway wraps a provider.
func NewGateway(p Provider) *Gateway {
	return &Gateway{provider: p}
}

// Send spawns one worker goroutine for the request and returns the channel
// its single outcome will arrive on. The channel is buffered, so the worker
// always runs to completion and exits even if the receiver has moved on;
// it sends immutable text only and never touches shared state. There is no
// retry and no cancellation: one request, one outcome.
func (g *Gateway) Send(turns []Turn, taskContext string) <-chan Reply {
	out := make(chan Reply, 1)
	go func() {
		text, err := g.provider.Converse(context.Background(), turns, taskContext)
		if err != nil {
			out <- Reply{Err: err.Error()}
			return
		}
		out <- Reply{Content: text}
	}()
	return out
}
