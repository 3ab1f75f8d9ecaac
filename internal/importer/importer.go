package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"storefront/internal/domain"
)

// Columns is the expected CSV header.
var Columns = []string{"id", "name", "description", "brand", "category", "subCategory", "price", "stock", "images", "isNew", "discount"}

type ProductWriter interface {
	Upsert(ctx context.Context, id string, p domain.Product) error
}

type CategoryWriter interface {
	Upsert(ctx context.Context, id string, c domain.Category) error
}

// Result summarises one import run.
type Result struct {
	Products   int
	Categories int
}

// CSVImporter reads product CSV files and upserts products. A row with no
// id and no name only contributes its images to the preceding product.
type CSVImporter struct {
	reader     *csv.Reader
	products   ProductWriter
	categories CategoryWriter
}

// NewCSVImporter builds an importer. categories may be nil, in which case
// categories seen in the file are not written.
func NewCSVImporter(r io.Reader, products ProductWriter, categories CategoryWriter) *CSVImporter {
	csvr := csv.NewReader(r)
	csvr.FieldsPerRecord = -1 // rows may have trailing commas
	return &CSVImporter{
		reader:     csvr,
		products:   products,
		categories: categories,
	}
}

// Run parses CSV rows and upserts products in file order.
func (i *CSVImporter) Run(ctx context.Context) (Result, error) {
	var res Result
	headers, err := i.reader.Read()
	if err != nil {
		return res, fmt.Errorf("read headers: %w", err)
	}
	index := headerIndex(headers)
	if _, ok := index["name"]; !ok {
		return res, fmt.Errorf("read headers: missing name column")
	}

	var (
		current *domain.Product
		line    = 1
		seen    = newCategorySet()
	)
	flush := func() error {
		if current == nil {
			return nil
		}
		if err := i.save(ctx, *current); err != nil {
			return err
		}
		seen.add(current.Category, current.SubCategory)
		res.Products++
		return nil
	}

	for {
		record, err := i.reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return res, fmt.Errorf("read row %d: %w", line, err)
		}

		if isContinuation(record, index) {
			if current != nil {
				current.Images = append(current.Images, splitList(pick(record, index, "images"))...)
			}
			continue
		}
		p, err := parseRow(record, index)
		if err != nil {
			return res, fmt.Errorf("row %d: %w", line, err)
		}
		if p == nil {
			continue
		}
		if err := flush(); err != nil {
			return res, err
		}
		current = p
	}
	if err := flush(); err != nil {
		return res, err
	}

	if i.categories != nil {
		for _, c := range seen.list() {
			if err := i.categories.Upsert(ctx, c.ID, c); err != nil {
				return res, fmt.Errorf("upsert category %q: %w", c.Name, err)
			}
			res.Categories++
		}
	}
	return res, nil
}

func (i *CSVImporter) save(ctx context.Context, p domain.Product) error {
	if err := p.Validate(); err != nil {
		return fmt.Errorf("product %q: %w", p.ID, err)
	}
	if err := i.products.Upsert(ctx, p.ID, p); err != nil {
		return fmt.Errorf("upsert product %q: %w", p.ID, err)
	}
	return nil
}

func headerIndex(headers []string) map[string]int {
	idx := make(map[string]int, len(headers))
	for i, h := range headers {
		idx[strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))] = i
	}
	return idx
}

func isContinuation(record []string, index map[string]int) bool {
	return pick(record, index, "id") == "" && pick(record, index, "name") == "" && pick(record, index, "images") != ""
}

// parseRow returns nil for blank rows.
func parseRow(record []string, index map[string]int) (*domain.Product, error) {
	name := pick(record, index, "name")
	id := pick(record, index, "id")
	if name == "" && id == "" {
		return nil, nil
	}
	if id == "" {
		id = uuid.NewString()
	}

	p := &domain.Product{
		ID:          id,
		Name:        name,
		Description: pick(record, index, "description"),
		Brand:       pick(record, index, "brand"),
		Category:    pick(record, index, "category"),
		SubCategory: pick(record, index, "subCategory"),
		Images:      splitList(pick(record, index, "images")),
	}

	if v := pick(record, index, "price"); v != "" {
		price, err := decimal.NewFromString(v)
		if err != nil {
			return nil, domain.Invalid("price", fmt.Sprintf("not a number: %q", v))
		}
		p.Price = price
	}
	if v := pick(record, index, "stock"); v != "" {
		stock, err := strconv.Atoi(v)
		if err != nil {
			return nil, domain.Invalid("stock", fmt.Sprintf("not an integer: %q", v))
		}
		p.Stock = stock
	}
	if v := pick(record, index, "discount"); v != "" {
		discount, err := strconv.Atoi(strings.TrimSuffix(v, "%"))
		if err != nil {
			return nil, domain.Invalid("discount", fmt.Sprintf("not an integer: %q", v))
		}
		p.Discount = discount
	}
	if v := pick(record, index, "isNew"); v != "" {
		isNew, err := strconv.ParseBool(v)
		if err != nil {
			return nil, domain.Invalid("isNew", fmt.Sprintf("not a boolean: %q", v))
		}
		p.IsNew = isNew
	}
	return p, nil
}

// splitList splits a semicolon separated cell.
func splitList(cell string) []string {
	if cell == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(cell, ";") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func pick(record []string, index map[string]int, key string) string {
	pos, ok := index[key]
	if !ok || pos >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[pos])
}

// categorySet collects categories and their sub-categories in first-seen order.
type categorySet struct {
	order []string
	subs  map[string][]string
}

func newCategorySet() *categorySet {
	return &categorySet{subs: make(map[string][]string)}
}

func (s *categorySet) add(category, sub string) {
	if category == "" {
		return
	}
	subs, ok := s.subs[category]
	if !ok {
		s.order = append(s.order, category)
	}
	if sub != "" && !contains(subs, sub) {
		subs = append(subs, sub)
	}
	s.subs[category] = subs
}

func (s *categorySet) list() []domain.Category {
	out := make([]domain.Category, 0, len(s.order))
	for _, name := range s.order {
		out = append(out, domain.Category{ID: slug(name), Name: name, SubCategories: s.subs[name]})
	}
	return out
}

func contains(items []string, v string) bool {
	for _, it := range items {
		if it == v {
			return true
		}
	}
	return false
}

func slug(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			dash = false
		case !dash && b.Len() > 0:
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
