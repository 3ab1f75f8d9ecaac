package product

import (
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
	"storefront/internal/domain"
	"storefront/internal/repository/document"
)

func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Repository {
	return document.NewPostgres[domain.Product](pool, document.Products, logger)
}
