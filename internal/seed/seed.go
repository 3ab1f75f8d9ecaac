package seed

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"sync"

	"gopkg.in/yaml.v3"
	"storefront/internal/domain"
)

//go:embed data.yaml
var builtin []byte

var (
	defaultOnce sync.Once
	defaultData domain.Dataset
	defaultErr  error
)

// Default returns the built-in dataset. Each call returns a fresh copy of
// the slices so callers may keep it as their own fallback state.
func Default() (domain.Dataset, error) {
	defaultOnce.Do(func() {
		defaultData, defaultErr = Parse(builtin)
	})
	if defaultErr != nil {
		return domain.Dataset{}, defaultErr
	}
	return clone(defaultData), nil
}

// MustDefault is Default for program start-up paths.
func MustDefault() domain.Dataset {
	d, err := Default()
	if err != nil {
		panic(fmt.Sprintf("seed: parse built-in data: %v", err))
	}
	return d
}

// Parse decodes a YAML dataset and validates its products.
func Parse(raw []byte) (domain.Dataset, error) {
	var d domain.Dataset
	if err := yaml.Unmarshal(raw, &d); err != nil {
		return domain.Dataset{}, fmt.Errorf("decode dataset: %w", err)
	}
	for _, p := range d.Products {
		if err := p.Validate(); err != nil {
			return domain.Dataset{}, fmt.Errorf("product %q: %w", p.ID, err)
		}
	}
	return d, nil
}

// Load reads a YAML dataset from disk, or the built-in one when path is empty.
func Load(path string) (domain.Dataset, error) {
	if path == "" {
		return Default()
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return domain.Dataset{}, fmt.Errorf("read dataset: %w", err)
	}
	return Parse(raw)
}

// Upserter is the write half of a document collection.
type Upserter[T any] interface {
	Upsert(ctx context.Context, id string, doc T) error
}

// SettingsSaver stores the settings singleton.
type SettingsSaver interface {
	Save(ctx context.Context, s domain.Settings) error
}

// Targets are the collections a dataset is written into.
type Targets struct {
	Products   Upserter[domain.Product]
	Categories Upserter[domain.Category]
	Slides     Upserter[domain.Slide]
	Banners    Upserter[domain.Banner]
	Users      Upserter[domain.User]
	Orders     Upserter[domain.Order]
	Reviews    Upserter[domain.Review]
	Settings   SettingsSaver
}

// Counts reports how many documents Apply wrote per collection.
type Counts map[string]int

// Apply upserts every collection present in d. It is idempotent: re-running
// with the same dataset rewrites the same ids.
func Apply(ctx context.Context, t Targets, d domain.Dataset) (Counts, error) {
	counts := Counts{}
	if err := upsertAll(ctx, t.Products, d.Products, func(p domain.Product) string { return p.ID }, "products", counts); err != nil {
		return counts, err
	}
	if err := upsertAll(ctx, t.Categories, d.Categories, func(c domain.Category) string { return c.ID }, "categories", counts); err != nil {
		return counts, err
	}
	if err := upsertAll(ctx, t.Slides, d.Slides, func(s domain.Slide) string { return s.ID }, "slides", counts); err != nil {
		return counts, err
	}
	if err := upsertAll(ctx, t.Banners, d.Banners, func(b domain.Banner) string { return b.ID }, "banners", counts); err != nil {
		return counts, err
	}
	if err := upsertAll(ctx, t.Users, d.Users, func(u domain.User) string { return u.ID }, "users", counts); err != nil {
		return counts, err
	}
	if err := upsertAll(ctx, t.Orders, d.Orders, func(o domain.Order) string { return o.ID }, "orders", counts); err != nil {
		return counts, err
	}
	if err := upsertAll(ctx, t.Reviews, d.Reviews, func(r domain.Review) string { return r.ID }, "reviews", counts); err != nil {
		return counts, err
	}
	if d.Settings != nil && t.Settings != nil {
		if err := t.Settings.Save(ctx, *d.Settings); err != nil {
			return counts, fmt.Errorf("save settings: %w", err)
		}
		counts["settings"] = 1
	}
	return counts, nil
}

func upsertAll[T any](ctx context.Context, dst Upserter[T], docs []T, id func(T) string, name string, counts Counts) error {
	if len(docs) == 0 || dst == nil {
		return nil
	}
	for _, doc := range docs {
		key := id(doc)
		if key == "" {
			return domain.Invalid(name+".id", "required")
		}
		if err := dst.Upsert(ctx, key, doc); err != nil {
			return fmt.Errorf("upsert %s %s: %w", name, key, err)
		}
		counts[name]++
	}
	return nil
}

func clone(d domain.Dataset) domain.Dataset {
	out := domain.Dataset{
		Categories:   append([]domain.Category(nil), d.Categories...),
		Slides:       append([]domain.Slide(nil), d.Slides...),
		Banners:      append([]domain.Banner(nil), d.Banners...),
		PromoBanners: append([]domain.PromoBanner(nil), d.PromoBanners...),
		Users:        append([]domain.User(nil), d.Users...),
		Reviews:      append([]domain.Review(nil), d.Reviews...),
	}
	if d.Products != nil {
		out.Products = make([]domain.Product, len(d.Products))
		for i, p := range d.Products {
			out.Products[i] = p.Clone()
		}
	}
	if d.Orders != nil {
		out.Orders = make([]domain.Order, len(d.Orders))
		for i, o := range d.Orders {
			o.Items = domain.CloneItems(o.Items)
			out.Orders[i] = o
		}
	}
	if d.Settings != nil {
		s := *d.Settings
		out.Settings = &s
	}
	return out
}

// Seed applies d to the targets.
func (t Targets) Seed(ctx context.Context, d domain.Dataset) (Counts, error) {
	return Apply(ctx, t, d)
}
