package order

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"storefront/internal/domain"
	"storefront/internal/repository/document"
)

type memoryRepo struct {
	*document.Memory[domain.Order]
}

func (r memoryRepo) UpdateStatus(_ context.Context, id string, status domain.OrderStatus) (*domain.Order, error) {
	return r.Update(id, func(o *domain.Order) { o.Status = status })
}

type recordingNotifier struct {
	placed []domain.Order
}

func (n *recordingNotifier) OrderPlaced(o domain.Order, _ domain.Settings) {
	n.placed = append(n.placed, o)
}

type fixedSettings domain.Settings

func (f fixedSettings) Current(context.Context) (domain.Settings, error) {
	return domain.Settings(f), nil
}

func line(id, price string, qty int) domain.CartItem {
	return domain.CartItem{Product: domain.Product{ID: id, Name: id, Price: decimal.RequireFromString(price)}, Quantity: qty}
}

func newService(n Notifier) (*Service, memoryRepo) {
	repo := memoryRepo{Memory: document.NewMemory[domain.Order]()}
	svc := New(repo, n, fixedSettings{TaxRate: decimal.RequireFromString("0.1"), ShippingCost: decimal.RequireFromString("4")})
	svc.now = func() time.Time { return time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC) }
	return svc, repo
}

func TestCreateAppliesDefaultsAndNotifies(t *testing.T) {
	notifier := &recordingNotifier{}
	svc, repo := newService(notifier)

	o, err := svc.Create(context.Background(), domain.Order{Items: []domain.CartItem{line("1", "10", 2)}})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if o.ID == "" || o.UserID != domain.GuestUserID || o.Status != domain.StatusProcessing {
		t.Fatalf("unexpected defaults: %+v", o)
	}
	if o.CreatedAt.IsZero() {
		t.Fatalf("createdAt not set")
	}
	if !o.Total.Equal(decimal.RequireFromString("26")) {
		t.Fatalf("total = %s, want 26", o.Total)
	}
	if _, err := repo.Get(context.Background(), o.ID); err != nil {
		t.Fatalf("order not stored: %v", err)
	}
	if len(notifier.placed) != 1 || notifier.placed[0].ID != o.ID {
		t.Fatalf("notification missing: %+v", notifier.placed)
	}
}

func TestCreateKeepsClientTotals(t *testing.T) {
	svc, _ := newService(nil)
	o, err := svc.Create(context.Background(), domain.Order{
		ID:    "o1",
		Items: []domain.CartItem{line("1", "8.50", 5)},
		Total: decimal.RequireFromString("42.50"),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if !o.Total.Equal(decimal.RequireFromString("42.50")) {
		t.Fatalf("total = %s", o.Total)
	}
}

func TestCreateValidation(t *testing.T) {
	svc, _ := newService(nil)
	cases := map[string]domain.Order{
		"no items":     {},
		"zero qty":     {Items: []domain.CartItem{line("1", "1", 0)}},
		"bad status":   {Items: []domain.CartItem{line("1", "1", 1)}, Status: "Lost"},
		"missing item": {Items: []domain.CartItem{line("", "1", 1)}},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := svc.Create(context.Background(), in); !domain.IsValidation(err) {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}

func TestUpdateStatus(t *testing.T) {
	svc, _ := newService(nil)
	ctx := context.Background()
	created, err := svc.Create(ctx, domain.Order{ID: "o1", Items: []domain.CartItem{line("1", "8.50", 5)}})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	updated, err := svc.UpdateStatus(ctx, "o1", domain.StatusShipped)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Status != domain.StatusShipped || !updated.Total.Equal(created.Total) {
		t.Fatalf("unexpected order after update: %+v", updated)
	}

	if _, err := svc.UpdateStatus(ctx, "o1", "Teleported"); !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if _, err := svc.UpdateStatus(ctx, "missing", domain.StatusShipped); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
