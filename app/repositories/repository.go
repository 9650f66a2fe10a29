// Package repositories maps domain entities to and from table rows. Each
// repository owns its SQL text and its row-to-entity transform; store
// errors propagate to callers unchanged, and lookups that find nothing
// return nil rather than an error.
package repositories

import "context"

// Repository is the common shape of an entity repository, parameterized
// by entity and input types. OrderRepository deviates (filtered reads,
// status-only update) and declares its own method set.
type Repository[E any, C any, U any] interface {
	GetAll(ctx context.Context) ([]E, error)
	GetByID(ctx context.Context, id int64) (*E, error)
	Create(ctx context.Context, input C) (*E, error)
	Update(ctx context.Context, id int64, input U) (*E, error)
	Delete(ctx context.Context, id int64) (bool, error)
}
