package product

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"storefront/internal/domain"
	"storefront/internal/repository/document"
)

func TestCreateAssignsIDAndValidates(t *testing.T) {
	svc := New(document.NewMemory[domain.Product]())
	ctx := context.Background()

	p, err := svc.Create(ctx, domain.Product{Name: "Tee", Price: decimal.RequireFromString("9.99")})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if p.ID == "" {
		t.Fatalf("expected generated id")
	}

	if _, err := svc.Create(ctx, domain.Product{Name: "Bad", Discount: 140}); !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if _, err := svc.Create(ctx, domain.Product{ID: p.ID, Name: "Dup"}); !errors.Is(err, domain.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}

	list, err := svc.List(ctx)
	if err != nil || len(list) != 1 {
		t.Fatalf("list = %+v, %v", list, err)
	}
	if err := svc.Delete(ctx, p.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := svc.Delete(ctx, p.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
