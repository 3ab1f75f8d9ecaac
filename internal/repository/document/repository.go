package document

import "context"

// Repository is the storage contract every JSONB collection satisfies.
type Repository[T any] interface {
	List(ctx context.Context) ([]T, error)
	Get(ctx context.Context, id string) (*T, error)
	Insert(ctx context.Context, id string, doc T) error
	Upsert(ctx context.Context, id string, doc T) error
	Delete(ctx context.Context, id string) error
}
