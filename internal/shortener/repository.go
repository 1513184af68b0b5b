package shortener

import "context"

// Repository is the narrow storage contract the Service depends on.
type Repository interface {
	// Exists reports whether a mapping with the given code is persisted.
	Exists(ctx context.Context, code Code) (bool, error)

	// Insert persists the mapping exactly once. It must return ErrConflict
	// (possibly wrapped) when another writer already committed the same code,
	// independent of any earlier Exists call.
	Insert(ctx context.Context, mapping *Mapping) error
}
