// Package content manages the homepage slides and banners.
package content

import (
	"context"

	"github.com/google/uuid"
	"storefront/internal/domain"
	"storefront/internal/repository/document"
)

type Service struct {
	slides  document.Repository[domain.Slide]
	banners document.Repository[domain.Banner]
}

func New(slides document.Repository[domain.Slide], banners document.Repository[domain.Banner]) *Service {
	return &Service{slides: slides, banners: banners}
}

func (s *Service) Slides(ctx context.Context) ([]domain.Slide, error) {
	return s.slides.List(ctx)
}

func (s *Service) CreateSlide(ctx context.Context, sl domain.Slide) (*domain.Slide, error) {
	if sl.Image == "" {
		return nil, domain.Invalid("image", "required")
	}
	if sl.ID == "" {
		sl.ID = uuid.NewString()
	}
	if err := s.slides.Insert(ctx, sl.ID, sl); err != nil {
		return nil, err
	}
	return &sl, nil
}

func (s *Service) Banners(ctx context.Context) ([]domain.Banner, error) {
	return s.banners.List(ctx)
}

func (s *Service) CreateBanner(ctx context.Context, b domain.Banner) (*domain.Banner, error) {
	if b.Image == "" {
		return nil, domain.Invalid("image", "required")
	}
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	if err := s.banners.Insert(ctx, b.ID, b); err != nil {
		return nil, err
	}
	return &b, nil
}
