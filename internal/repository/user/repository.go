package user

import (
	"context"

	"storefront/internal/domain"
)

// Repository persists and fetches storefront users.
type Repository interface {
	List(ctx context.Context) ([]domain.User, error)
	Insert(ctx context.Context, id string, u domain.User) error
	Upsert(ctx context.Context, id string, u domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}
