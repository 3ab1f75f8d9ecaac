package product

import (
	"storefront/internal/domain"
	"storefront/internal/repository/document"
)

// Repository persists catalog products.
type Repository interface {
	document.Repository[domain.Product]
}
