package order

import (
	"context"
	"io"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
	"storefront/internal/domain"
	"storefront/internal/repository/document"
)

type postgresRepo struct {
	*document.Collection[domain.Order]
	pool   *pgxpool.Pool
	logger *log.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{
		Collection: document.NewPostgres[domain.Order](pool, document.Orders, logger),
		pool:       pool,
		logger:     logger,
	}
}

// List returns orders most recent first.
func (r *postgresRepo) List(ctx context.Context) ([]domain.Order, error) {
	const q = `
SELECT doc
FROM orders
ORDER BY seq DESC
`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		r.logger.Printf("order repo: list error=%v", err)
		return nil, err
	}
	return document.ScanDocs[domain.Order](rows)
}

// UpdateStatus rewrites only the status field of the stored document.
func (r *postgresRepo) UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) (*domain.Order, error) {
	const q = `
UPDATE orders
SET doc = jsonb_set(doc, '{status}', to_jsonb($2::text))
WHERE id = $1
RETURNING doc
`
	o, err := document.ScanDoc[domain.Order](r.pool.QueryRow(ctx, q, id, string(status)))
	if err != nil {
		if err != domain.ErrNotFound {
			r.logger.Printf("order repo: update status id=%s error=%v", id, err)
		}
		return nil, err
	}
	r.logger.Printf("order repo: update status id=%s status=%s", id, status)
	return o, nil
}
