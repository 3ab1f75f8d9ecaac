package category

import (
	"context"
	"testing"

	"storefront/internal/db/dbtest"
	"storefront/internal/domain"
	"storefront/internal/migrate"
)

func TestPostgres_UpsertAndList(t *testing.T) {
	ctx := context.Background()
	pool := dbtest.Pool(ctx, t)
	defer pool.Close()

	if err := migrate.Apply(ctx, pool); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	dbtest.ResetTables(ctx, t, pool)

	repo := NewPostgres(pool, nil)
	if err := repo.Upsert(ctx, "men", domain.Category{ID: "men", Name: "Men", SubCategories: []string{"Shirts"}}); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if err := repo.Upsert(ctx, "men", domain.Category{ID: "men", Name: "Men", SubCategories: []string{"Shirts", "Shoes"}}); err != nil {
		t.Fatalf("upsert update: %v", err)
	}

	list, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 || len(list[0].SubCategories) != 2 || list[0].SubCategories[1] != "Shoes" {
		t.Fatalf("unexpected list %+v", list)
	}
}
