// Package session associates an external contact identifier (e.g. a
// phone number) with accumulated conversation state across turns.
package session

import "context"

// Context is the open-ended per-contact conversation state.
type Context map[string]any

// Clone returns a shallow copy of the context.
func (c Context) Clone() Context {
	out := make(Context, len(c))
	for k, v := range c {
		out[k] = v
	}
	return out
}

// Store is the session state backend.
//
// Concurrency contract: Update is atomic per identifier
// (last-writer-wins, never a partial interleave of two writes), and
// updates on different identifiers do not block each other.
type Store interface {
	// Get returns the context for id. Absent ids yield an empty,
	// non-nil context.
	Get(ctx context.Context, id string) (Context, error)

	// Update replaces the context for id.
	Update(ctx context.Context, id string, sc Context) error
}
