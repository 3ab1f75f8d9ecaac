package importer

import (
	"context"
	"strings"
	"testing"

	"storefront/internal/domain"
)

type stubProductRepo struct {
	items []domain.Product
}

type stubCategoryRepo struct {
	items []domain.Category
}

func (s *stubProductRepo) Upsert(_ context.Context, _ string, p domain.Product) error {
	s.items = append(s.items, p)
	return nil
}

func (s *stubCategoryRepo) Upsert(_ context.Context, _ string, c domain.Category) error {
	s.items = append(s.items, c)
	return nil
}

func TestCSVImporter_Run(t *testing.T) {
	csvData := `id,name,description,brand,category,subCategory,price,stock,images,isNew,discount
p-1,Oxford Shirt,Crisp cotton,Northwind,Men,Shirts,49.99,12,https://example.com/1a.jpg,true,
,,,,,,,,https://example.com/1b.jpg;https://example.com/1c.jpg,,
p-2,Linen Shirt,,Northwind,Men,Shirts,39.50,4,,false,15%
,Silk Scarf,,Aurora,Women & Girls,Scarves,25,0,,,`

	repo := &stubProductRepo{}
	catRepo := &stubCategoryRepo{}
	imp := NewCSVImporter(strings.NewReader(csvData), repo, catRepo)

	res, err := imp.Run(context.Background())
	if err != nil {
		t.Fatalf("import run: %v", err)
	}
	if res.Products != 3 || len(repo.items) != 3 {
		t.Fatalf("expected 3 products imported, got %d (%d saved)", res.Products, len(repo.items))
	}

	first := repo.items[0]
	if first.ID != "p-1" || first.Brand != "Northwind" || first.Price.String() != "49.99" || first.Stock != 12 || !first.IsNew {
		t.Fatalf("unexpected product data: %+v", first)
	}
	if len(first.Images) != 3 {
		t.Fatalf("expected 3 images on first product, got %v", first.Images)
	}
	if repo.items[1].Discount != 15 {
		t.Fatalf("expected discount 15, got %d", repo.items[1].Discount)
	}
	if repo.items[2].ID == "" {
		t.Fatalf("expected generated id for row without one")
	}

	if res.Categories != 2 || len(catRepo.items) != 2 {
		t.Fatalf("expected 2 categories, got %d", len(catRepo.items))
	}
	men := catRepo.items[0]
	if men.ID != "men" || len(men.SubCategories) != 1 || men.SubCategories[0] != "Shirts" {
		t.Fatalf("unexpected category %+v", men)
	}
	if catRepo.items[1].ID != "women-girls" {
		t.Fatalf("unexpected slug %q", catRepo.items[1].ID)
	}
}

func TestCSVImporter_WithoutCategoryWriter(t *testing.T) {
	csvData := "id,name,price,category\np-1,Tee,5,Men\n"
	repo := &stubProductRepo{}
	res, err := NewCSVImporter(strings.NewReader(csvData), repo, nil).Run(context.Background())
	if err != nil {
		t.Fatalf("import run: %v", err)
	}
	if res.Products != 1 || res.Categories != 0 {
		t.Fatalf("unexpected result %+v", res)
	}
}

func TestCSVImporter_RejectsBadRows(t *testing.T) {
	cases := map[string]string{
		"bad price":       "id,name,price\np-1,Tee,cheap\n",
		"negative stock":  "id,name,price,stock\np-1,Tee,5,-1\n",
		"discount range":  "id,name,price,discount\np-1,Tee,5,120\n",
		"missing name":    "id,name,price\np-1,,5\n",
		"no name column":  "id,title\np-1,Tee\n",
		"bad isNew value": "id,name,isNew\np-1,Tee,maybe\n",
	}
	for name, data := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := NewCSVImporter(strings.NewReader(data), &stubProductRepo{}, nil).Run(context.Background())
			if err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}
