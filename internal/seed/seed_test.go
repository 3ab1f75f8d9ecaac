package seed

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"storefront/internal/domain"
)

type memUpserter[T any] struct {
	ids []string
	err error
}

func (m *memUpserter[T]) Upsert(_ context.Context, id string, _ T) error {
	if m.err != nil {
		return m.err
	}
	m.ids = append(m.ids, id)
	return nil
}

type memSettings struct {
	saved *domain.Settings
}

func (m *memSettings) Save(_ context.Context, s domain.Settings) error {
	m.saved = &s
	return nil
}

func TestDefault_ParsesBuiltinDataset(t *testing.T) {
	d, err := Default()
	if err != nil {
		t.Fatalf("Default: %v", err)
	}
	if len(d.Products) == 0 || d.Products[0].ID != "1" {
		t.Fatalf("expected seeded products starting at id 1, got %+v", d.Products)
	}
	if d.Settings == nil || !d.Settings.TaxRate.Equal(decimal.RequireFromString("0.08")) {
		t.Fatalf("unexpected settings %+v", d.Settings)
	}
	if !d.Products[0].Price.Equal(decimal.RequireFromString("49.99")) {
		t.Fatalf("unexpected price %s", d.Products[0].Price)
	}
	if len(d.Users) == 0 || d.Users[0].JoinedAt.IsZero() {
		t.Fatalf("expected users with join dates, got %+v", d.Users)
	}
}

func TestDefault_ReturnsIndependentCopies(t *testing.T) {
	a := MustDefault()
	a.Products[0].Name = "changed"
	a.Products[0].Images[0] = "changed"

	b := MustDefault()
	if b.Products[0].Name == "changed" || b.Products[0].Images[0] == "changed" {
		t.Fatalf("Default leaked a mutation between callers")
	}
}

func TestParse_RejectsInvalidVariants(t *testing.T) {
	raw := []byte(`
products:
  - id: "x"
    name: Broken
    price: "1"
    variants:
      - type: size
        options: []
`)
	if _, err := Parse(raw); !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestApply_WritesEveryCollection(t *testing.T) {
	products := &memUpserter[domain.Product]{}
	categories := &memUpserter[domain.Category]{}
	users := &memUpserter[domain.User]{}
	settings := &memSettings{}

	d := MustDefault()
	counts, err := Apply(context.Background(), Targets{
		Products:   products,
		Categories: categories,
		Users:      users,
		Settings:   settings,
	}, d)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if counts["products"] != len(d.Products) || len(products.ids) != len(d.Products) {
		t.Fatalf("unexpected product count %v", counts)
	}
	if counts["slides"] != 0 {
		t.Fatalf("slides target was nil, expected no writes, got %d", counts["slides"])
	}
	if settings.saved == nil || counts["settings"] != 1 {
		t.Fatalf("settings not saved")
	}
}

func TestApply_StopsOnError(t *testing.T) {
	boom := errors.New("boom")
	_, err := Apply(context.Background(), Targets{
		Products: &memUpserter[domain.Product]{err: boom},
	}, domain.Dataset{Products: []domain.Product{{ID: "1", Name: "A"}}})
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped boom, got %v", err)
	}
}

func TestApply_RequiresIDs(t *testing.T) {
	_, err := Apply(context.Background(), Targets{
		Categories: &memUpserter[domain.Category]{},
	}, domain.Dataset{Categories: []domain.Category{{Name: "No id"}}})
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
