package controller

import (
	"context"
	"errors"
)

// Record is the domain entity a form creates, edits, previews, or deletes.
// The controller holds only a transient, request-scoped reference; ownership
// stays with the record store.
type Record interface {
	// Identifier returns the record's unique identifier, empty for records
	// that have not been persisted yet.
	Identifier() string
	// Attribute returns a named attribute value. Redirect templates use it
	// for route parameter substitution.
	Attribute(name string) (any, bool)
}

// Query describes a record lookup. The host controller may extend it with
// additional conditions before execution (see Host.ExtendQuery).
type Query struct {
	Identifier string
	Conditions map[string]any
}

// Condition adds a filter condition, allocating the map on first use.
func (q *Query) Condition(name string, value any) {
	if q.Conditions == nil {
		q.Conditions = make(map[string]any)
	}
	q.Conditions[name] = value
}

// ErrNoRecord is returned by Store.Find when no record matches the query.
// The controller translates it into a *NotFoundError carrying the resolved
// user-facing message.
var ErrNoRecord = errors.New("controller: no record matches the query")

// Store executes persistence for the controller. Atomicity of a single save
// and any retry policy belong to the implementation, not to this module.
type Store interface {
	// Find resolves a query to a record, or fails with ErrNoRecord.
	Find(ctx context.Context, query Query) (Record, error)
	// Save persists the payload onto the record. sessionKey scopes any
	// deferred bindings collected by the rendering collaborator.
	Save(ctx context.Context, record Record, payload map[string]any, sessionKey string) error
	// Delete removes the record.
	Delete(ctx context.Context, record Record) error
}
