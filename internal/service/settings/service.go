package settings

import (
	"context"
	"errors"
	"strings"

	"storefront/internal/domain"
	settingsrepo "storefront/internal/repository/settings"
)

type Service struct {
	repo settingsrepo.Repository
}

func New(repo settingsrepo.Repository) *Service {
	return &Service{repo: repo}
}

// Get returns the stored settings or domain.ErrNotFound.
func (s *Service) Get(ctx context.Context) (*domain.Settings, error) {
	return s.repo.Get(ctx)
}

// Current returns the stored settings, or the zero value when none exist.
func (s *Service) Current(ctx context.Context) (domain.Settings, error) {
	cur, err := s.repo.Get(ctx)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.Settings{}, nil
	}
	if err != nil {
		return domain.Settings{}, err
	}
	return *cur, nil
}

// Save replaces the settings document wholesale.
func (s *Service) Save(ctx context.Context, in domain.Settings) (*domain.Settings, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	in.Currency = strings.ToUpper(strings.TrimSpace(in.Currency))
	if err := s.repo.Save(ctx, in); err != nil {
		return nil, err
	}
	return &in, nil
}
