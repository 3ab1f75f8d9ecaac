package catalog

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"storefront/internal/domain"
)

func priced(id string, price int64) domain.Product {
	return domain.Product{ID: id, Name: id, Price: decimal.NewFromInt(price)}
}

func ids(products []domain.Product) []string {
	out := make([]string, 0, len(products))
	for _, p := range products {
		out = append(out, p.ID)
	}
	return out
}

func sampleCatalog() []domain.Product {
	return []domain.Product{
		{ID: "1", Name: "Oxford Shirt", Brand: "Harbor", Category: "Men", SubCategory: "Shirts", Description: "cotton"},
		{ID: "2", Name: "Field Jacket", Brand: "Trailhead", Category: "Men", SubCategory: "Jackets"},
		{ID: "3", Name: "Wrap Dress", Brand: "Meadow", Category: "Women", SubCategory: "Dresses", Description: "Linen"},
		{ID: "4", Name: "Weekender", Brand: "Harbor", Category: "Accessories", SubCategory: "Bags"},
	}
}

func TestFilter(t *testing.T) {
	tests := []struct {
		name    string
		filters domain.Filters
		want    []string
	}{
		{"no filters", domain.Filters{}, []string{"1", "2", "3", "4"}},
		{"category", domain.Filters{Category: "Men"}, []string{"1", "2"}},
		{"category and sub", domain.Filters{Category: "Men", SubCategory: "Jackets"}, []string{"2"}},
		{"sub without category", domain.Filters{SubCategory: "Bags"}, []string{"4"}},
		{"search brand case-insensitive", domain.Filters{Search: "HARBOR"}, []string{"1", "4"}},
		{"search description", domain.Filters{Search: "linen"}, []string{"3"}},
		{"search category field", domain.Filters{Search: "access"}, []string{"4"}},
		{"search within category", domain.Filters{Category: "Men", Search: "harbor"}, []string{"1"}},
		{"blank search is no-op", domain.Filters{Search: "   "}, []string{"1", "2", "3", "4"}},
		{"no match", domain.Filters{Search: "zzz"}, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(Filter(sampleCatalog(), tt.filters)))
		})
	}
}

func TestSort_PriceAscending(t *testing.T) {
	in := []domain.Product{priced("a", 30), priced("b", 10), priced("c", 20)}
	got := Sort(in, SortPriceAsc)

	require.Len(t, got, 3)
	for i, want := range []int64{10, 20, 30} {
		assert.True(t, got[i].Price.Equal(decimal.NewFromInt(want)), "position %d: got %s", i, got[i].Price)
	}
	assert.Equal(t, []string{"a", "b", "c"}, ids(in), "input must not be reordered")
}

func TestSort_Keys(t *testing.T) {
	in := []domain.Product{
		{ID: "1", Name: "Beta", Brand: "Zed", Price: decimal.NewFromInt(5)},
		{ID: "2", Name: "Alpha", Brand: "Acme", Price: decimal.NewFromInt(15)},
		{ID: "3", Name: "Gamma", Brand: "Moss", Price: decimal.RequireFromString("9.5")},
	}
	tests := []struct {
		key  SortKey
		want []string
	}{
		{SortNone, []string{"1", "2", "3"}},
		{SortPriceDesc, []string{"2", "3", "1"}},
		{SortNameAsc, []string{"2", "1", "3"}},
		{SortNameDesc, []string{"3", "1", "2"}},
		{SortBrandAsc, []string{"2", "3", "1"}},
		{SortBrandDesc, []string{"1", "3", "2"}},
	}
	for _, tt := range tests {
		t.Run(string(tt.key), func(t *testing.T) {
			assert.Equal(t, tt.want, ids(Sort(in, tt.key)))
		})
	}
}

func TestSort_PopularityIsStable(t *testing.T) {
	in := []domain.Product{
		{ID: "plain-1"},
		{ID: "discount", Discount: 10},
		{ID: "new-discount", IsNew: true, Discount: 10},
		{ID: "plain-2"},
		{ID: "new", IsNew: true},
	}
	got := Sort(in, SortPopularity)
	assert.Equal(t, []string{"new-discount", "new", "discount", "plain-1", "plain-2"}, ids(got))
	assert.Equal(t, 15, Popularity(in[2]))
	assert.Equal(t, 5, Popularity(in[1]))
}

func TestParseSortKey(t *testing.T) {
	k, err := ParseSortKey(" Price-ASC ")
	require.NoError(t, err)
	assert.Equal(t, SortPriceAsc, k)

	_, err = ParseSortKey("rating")
	assert.True(t, domain.IsValidation(err))
}

func TestVisibleAndSubCategories(t *testing.T) {
	got := Visible(sampleCatalog(), domain.Filters{Category: "Men"}, SortNameAsc)
	assert.Equal(t, []string{"2", "1"}, ids(got))

	cats := []domain.Category{{Name: "Men", SubCategories: []string{"Shirts", "Jackets"}}}
	assert.Equal(t, []string{"Shirts", "Jackets"}, SubCategoriesOf(cats, "Men"))
	assert.Nil(t, SubCategoriesOf(cats, "Kids"))
}
