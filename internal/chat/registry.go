package chat

import "context"

// Registry maps intents to their category handlers. Handlers register
// under the name Classify emits for their category, so dispatch is a
// classification followed by a lookup.
type Registry struct {
	handlers []Handler
}

// NewRegistry creates a new handler registry.
func NewRegistry() *Registry {
	return &Registry{
		handlers: make([]Handler, 0),
	}
}

// Register adds a handler to the registry.
func (r *Registry) Register(h Handler) {
	r.handlers = append(r.handlers, h)
}

// Dispatch classifies the query and routes it to the handler registered
// under that intent, returning the handler's name alongside the
// response. ok is false for general queries and for intents with no
// registered handler; the caller falls through to external search.
func (r *Registry) Dispatch(ctx context.Context, query, greeting string) (response, name string, ok bool) {
	intent := Classify(query)
	if intent == IntentGeneral {
		return "", "", false
	}

	h := r.GetHandler(string(intent))
	if h == nil {
		return "", "", false
	}
	return h.Handle(ctx, query, greeting), h.Name(), true
}

// GetHandler returns a handler by name.
func (r *Registry) GetHandler(name string) Handler {
	for _, h := range r.handlers {
		if h.Name() == name {
			return h
		}
	}
	return nil
}
