package store

import "context"

// DocumentStore is the key-value document interface the telemetry layer
// writes through, addressed by (collection, document id). Merge has
// field-level semantics: writing one field must leave every other field
// of the document intact, and dotted keys address nested fields.
type DocumentStore interface {
	// Get returns the document, or nil when it does not exist.
	Get(ctx context.Context, collection, id string) (map[string]any, error)

	// Merge upserts the given fields into the document without touching
	// any field not named.
	Merge(ctx context.Context, collection, id string, fields map[string]any) error

	// Append adds a value to an array field, creating it if absent.
	Append(ctx context.Context, collection, id, field string, value any) error
}
