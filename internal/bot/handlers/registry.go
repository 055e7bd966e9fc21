package handlers

import (
	"github.com/edgard/swapguard/internal/event"
)

// RegisteredHandler is one entry of the route table.
type RegisteredHandler struct {
	Kind       event.Kind
	Handler    HandlerFunc
	Middleware []Middleware
}

// RegisterAllHandlers returns the static route table, keyed by event.Route().
// Commands are keyed "/name"; there is no runtime registration.
func RegisterAllHandlers(deps HandlerDeps) map[string]RegisteredHandler {
	handlers := make(map[string]RegisteredHandler)

	handlers["/start"] = RegisteredHandler{
		Kind:    event.KindCommand,
		Handler: NewStartHandler(deps),
	}
	handlers["/help"] = RegisteredHandler{
		Kind:    event.KindCommand,
		Handler: NewHelpHandler(deps),
	}
	handlers[event.RouteNewMembers] = RegisteredHandler{
		Kind:    event.KindNewMembers,
		Handler: NewWelcomeHandler(deps),
	}
	handlers[event.RouteText] = RegisteredHandler{
		Kind:    event.KindText,
		Handler: NewTextFilterHandler(deps),
	}

	return handlers
}
