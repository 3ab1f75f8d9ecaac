package category

import (
	"storefront/internal/domain"
	"storefront/internal/repository/document"
)

type Repository interface {
	document.Repository[domain.Category]
}
