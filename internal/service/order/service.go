package order

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"storefront/internal/domain"
	orderrepo "storefront/internal/repository/order"
)

// Notifier confirms placed orders to the customer.
type Notifier interface {
	OrderPlaced(o domain.Order, s domain.Settings)
}

type SettingsSource interface {
	Current(ctx context.Context) (domain.Settings, error)
}

type Service struct {
	repo     orderrepo.Repository
	notifier Notifier
	settings SettingsSource
	now      func() time.Time
}

func New(repo orderrepo.Repository, notifier Notifier, settings SettingsSource) *Service {
	return &Service{repo: repo, notifier: notifier, settings: settings, now: time.Now}
}

// List returns orders newest first.
func (s *Service) List(ctx context.Context) ([]domain.Order, error) {
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Order, error) {
	return s.repo.Get(ctx, id)
}

// Create stores an order and mails its confirmation. Orders arriving without
// totals are priced with the current settings.
func (s *Service) Create(ctx context.Context, o domain.Order) (*domain.Order, error) {
	if len(o.Items) == 0 {
		return nil, domain.Invalid("items", "order has no items")
	}
	for i, it := range o.Items {
		if it.ID == "" {
			return nil, domain.Invalid(fmt.Sprintf("items[%d].id", i), "required")
		}
		if it.Quantity < 1 {
			return nil, domain.Invalid(fmt.Sprintf("items[%d].quantity", i), "must be at least 1")
		}
	}
	if o.Status == "" {
		o.Status = domain.StatusProcessing
	}
	if !o.Status.Valid() {
		return nil, domain.Invalid("status", fmt.Sprintf("unknown status %q", o.Status))
	}
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	if o.UserID == "" {
		o.UserID = domain.GuestUserID
	}
	if o.CreatedAt.IsZero() {
		o.CreatedAt = s.now().UTC()
	}

	settings, err := s.currentSettings(ctx)
	if err != nil {
		return nil, err
	}
	if o.Total.IsZero() {
		t := domain.ComputeTotals(o.Items, settings)
		o.Subtotal, o.Tax, o.Shipping, o.Total = t.Subtotal, t.Tax, t.Shipping, t.Total
	}

	if err := s.repo.Insert(ctx, o.ID, o); err != nil {
		return nil, err
	}
	if s.notifier != nil {
		s.notifier.OrderPlaced(o, settings)
	}
	return &o, nil
}

// UpdateStatus changes only the order's status.
func (s *Service) UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) (*domain.Order, error) {
	if !status.Valid() {
		return nil, domain.Invalid("status", fmt.Sprintf("unknown status %q", status))
	}
	return s.repo.UpdateStatus(ctx, id, status)
}

func (s *Service) currentSettings(ctx context.Context) (domain.Settings, error) {
	if s.settings == nil {
		return domain.Settings{}, nil
	}
	return s.settings.Current(ctx)
}
