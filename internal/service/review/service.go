package review

import (
	"context"
	"time"

	"github.com/google/uuid"
	"storefront/internal/domain"
	"storefront/internal/repository/document"
)

type Service struct {
	repo document.Repository[domain.Review]
	now  func() time.Time
}

func New(repo document.Repository[domain.Review]) *Service {
	return &Service{repo: repo, now: time.Now}
}

// List returns every review, or only those of productID when it is set.
func (s *Service) List(ctx context.Context, productID string) ([]domain.Review, error) {
	all, err := s.repo.List(ctx)
	if err != nil || productID == "" {
		return all, err
	}
	out := make([]domain.Review, 0, len(all))
	for _, r := range all {
		if r.ProductID == productID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *Service) Create(ctx context.Context, r domain.Review) (*domain.Review, error) {
	if r.ProductID == "" {
		return nil, domain.Invalid("productId", "required")
	}
	if r.Rating < 1 || r.Rating > 5 {
		return nil, domain.Invalid("rating", "must be between 1 and 5")
	}
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	r.CreatedAt = s.now().UTC()
	if err := s.repo.Insert(ctx, r.ID, r); err != nil {
		return nil, err
	}
	return &r, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
