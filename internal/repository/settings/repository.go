package settings

import (
	"context"

	"storefront/internal/domain"
)

// Repository stores the single settings document.
type Repository interface {
	Get(ctx context.Context) (*domain.Settings, error)
	Save(ctx context.Context, s domain.Settings) error
}
