package user

import (
	"context"
	"io"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
	"storefront/internal/domain"
	"storefront/internal/repository/document"
)

type postgresRepo struct {
	*document.Collection[domain.User]
	pool   *pgxpool.Pool
	logger *log.Logger
}

// NewPostgres returns a Repository backed by Postgres.
func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{
		Collection: document.NewPostgres[domain.User](pool, document.Users, logger),
		pool:       pool,
		logger:     logger,
	}
}

func (r *postgresRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	const q = `
SELECT doc
FROM users
WHERE lower(doc->>'email') = lower($1)
LIMIT 1
`
	u, err := document.ScanDoc[domain.User](r.pool.QueryRow(ctx, q, email))
	if err != nil && err != domain.ErrNotFound {
		r.logger.Printf("user repo: get by email error=%v", err)
	}
	return u, err
}
