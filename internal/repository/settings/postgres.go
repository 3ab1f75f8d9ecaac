package settings

import (
	"context"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
	"storefront/internal/domain"
	"storefront/internal/repository/document"
)

type postgresRepo struct {
	docs *document.Collection[domain.Settings]
}

func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Repository {
	return &postgresRepo{docs: document.NewPostgres[domain.Settings](pool, document.Settings, logger)}
}

func (r *postgresRepo) Get(ctx context.Context) (*domain.Settings, error) {
	return r.docs.Get(ctx, domain.SettingsID)
}

// Save creates the settings document or replaces it in place.
func (r *postgresRepo) Save(ctx context.Context, s domain.Settings) error {
	return r.docs.Upsert(ctx, domain.SettingsID, s)
}
