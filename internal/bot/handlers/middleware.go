// Package handlers contains the event handlers, the static route table they
// are registered in, and the middleware types wrapping them.
package handlers

import (
	"context"

	"github.com/edgard/swapguard/internal/event"
)

// HandlerFunc handles one inbound event. Handlers report failures through
// logging only.
type HandlerFunc func(ctx context.Context, ev *event.Event)

// Middleware wraps a HandlerFunc.
type Middleware func(next HandlerFunc) HandlerFunc

// Chain wraps handler with mw so that mw[0] is the outermost.
func Chain(handler HandlerFunc, mw ...Middleware) HandlerFunc {
	for i := len(mw) - 1; i >= 0; i-- {
		handler = mw[i](handler)
	}
	return handler
}
