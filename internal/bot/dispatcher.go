package bot

import (
	"context"
	"log/slog"
	"runtime/debug"

	"github.com/edgard/swapguard/internal/bot/handlers"
	"github.com/edgard/swapguard/internal/event"
)

type route struct {
	kind    event.Kind
	handler handlers.HandlerFunc
}

// Dispatcher routes events through the static handler table.
type Dispatcher struct {
	logger *slog.Logger
	routes map[string]route
}

// NewDispatcher builds the dispatcher. Global middleware wraps every route
// outside the route's own middleware.
func NewDispatcher(logger *slog.Logger, table map[string]handlers.RegisteredHandler, global ...handlers.Middleware) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	log := logger.With("component", "dispatcher")

	routes := make(map[string]route, len(table))
	for key, reg := range table {
		if reg.Handler == nil {
			log.Warn("Skipping registration for nil handler", "route", key)
			continue
		}
		h := handlers.Chain(reg.Handler, reg.Middleware...)
		h = handlers.Chain(h, global...)
		routes[key] = route{kind: reg.Kind, handler: h}
		log.Debug("Registered handler", "route", key, "kind", reg.Kind, "middleware_count", len(reg.Middleware)+len(global))
	}

	log.Info("Registered event handlers successfully", "count", len(routes))
	return &Dispatcher{logger: log, routes: routes}
}

// Dispatch runs the handler for ev and reports whether one was found.
// A panicking handler is logged and does not escape.
func (d *Dispatcher) Dispatch(ctx context.Context, ev *event.Event) (handled bool) {
	r, ok := d.routes[ev.Route()]
	if !ok || r.kind != ev.Kind {
		d.logger.DebugContext(ctx, "No handler for event", "trace_id", ev.TraceID, "kind", ev.Kind, "command", ev.Command)
		return false
	}

	defer func() {
		if p := recover(); p != nil {
			d.logger.ErrorContext(ctx, "Handler panicked", "trace_id", ev.TraceID, "route", ev.Route(), "panic", p, "stack", string(debug.Stack()))
		}
	}()

	handled = true
	r.handler(ctx, ev)
	return handled
}
