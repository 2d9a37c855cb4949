// Package chat provides the handler interface, intent classification and
// the query resolver that ties the category modules together. Each module
// (college, exam, scholarship, admission) implements the Handler interface
// and registers under its intent name; the classifier's fixed priority
// order decides which module a query reaches.
package chat

import "context"

// Handler defines the interface that all chat category modules implement.
type Handler interface {
	// Name returns the module name. It must match the Intent string the
	// classifier emits for the category, and doubles as the intent label
	// in logs and metrics.
	Name() string

	// Handle builds the response for the query. The greeting is the
	// time-of-day prefix computed once per request by the resolver.
	Handle(ctx context.Context, query, greeting string) string
}
