package settings

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"storefront/internal/domain"
)

type memoryRepo struct {
	cur *domain.Settings
}

func (r *memoryRepo) Get(context.Context) (*domain.Settings, error) {
	if r.cur == nil {
		return nil, domain.ErrNotFound
	}
	clone := *r.cur
	return &clone, nil
}

func (r *memoryRepo) Save(_ context.Context, s domain.Settings) error {
	r.cur = &s
	return nil
}

func TestGetBeforeSave(t *testing.T) {
	svc := New(&memoryRepo{})
	if _, err := svc.Get(context.Background()); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	cur, err := svc.Current(context.Background())
	if err != nil || cur.StoreName != "" {
		t.Fatalf("expected zero settings, got %+v, %v", cur, err)
	}
}

func TestSaveReplaces(t *testing.T) {
	svc := New(&memoryRepo{})
	ctx := context.Background()
	if _, err := svc.Save(ctx, domain.Settings{StoreName: "A", Currency: "usd", ContactPhone: "1"}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, err := svc.Save(ctx, domain.Settings{StoreName: "B", Currency: "eur"}); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := svc.Get(ctx)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.StoreName != "B" || got.Currency != "EUR" || got.ContactPhone != "" {
		t.Fatalf("unexpected settings: %+v", got)
	}
}

func TestSaveValidation(t *testing.T) {
	svc := New(&memoryRepo{})
	cases := map[string]domain.Settings{
		"no name":       {},
		"negative tax":  {StoreName: "A", TaxRate: decimal.NewFromInt(-1)},
		"negative ship": {StoreName: "A", ShippingCost: decimal.NewFromInt(-1)},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := svc.Save(context.Background(), in); !domain.IsValidation(err) {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}
