package category

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"storefront/internal/domain"
	categoryrepo "storefront/internal/repository/category"
)

type Service struct {
	repo categoryrepo.Repository
}

func New(repo categoryrepo.Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context) ([]domain.Category, error) {
	return s.repo.List(ctx)
}

func (s *Service) Create(ctx context.Context, c domain.Category) (*domain.Category, error) {
	if strings.TrimSpace(c.Name) == "" {
		return nil, domain.Invalid("name", "required")
	}
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if err := s.repo.Insert(ctx, c.ID, c); err != nil {
		return nil, err
	}
	return &c, nil
}
