package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Variant is one selectable axis of a product, e.g. "size" or "color".
type Variant struct {
	Type    string   `json:"type" yaml:"type"`
	Options []string `json:"options" yaml:"options"`
}

type Product struct {
	ID          string          `json:"id" yaml:"id"`
	Name        string          `json:"name" yaml:"name"`
	Description string          `json:"description,omitempty" yaml:"description"`
	Brand       string          `json:"brand,omitempty" yaml:"brand"`
	Category    string          `json:"category,omitempty" yaml:"category"`
	SubCategory string          `json:"subCategory,omitempty" yaml:"subCategory"`
	Price       decimal.Decimal `json:"price" yaml:"price"`
	Stock       int             `json:"stock" yaml:"stock"`
	Images      []string        `json:"images,omitempty" yaml:"images"`
	Variants    []Variant       `json:"variants,omitempty" yaml:"variants"`
	IsNew       bool            `json:"isNew,omitempty" yaml:"isNew"`
	Discount    int             `json:"discount,omitempty" yaml:"discount"`
	Rating      float64         `json:"rating,omitempty" yaml:"rating"`
}

// Validate checks identity, money and variant rules.
func (p Product) Validate() error {
	if strings.TrimSpace(p.ID) == "" {
		return Invalid("id", "required")
	}
	if strings.TrimSpace(p.Name) == "" {
		return Invalid("name", "required")
	}
	if p.Price.IsNegative() {
		return Invalid("price", "must not be negative")
	}
	if p.Stock < 0 {
		return Invalid("stock", "must not be negative")
	}
	if p.Discount < 0 || p.Discount > 100 {
		return Invalid("discount", "must be between 0 and 100")
	}
	seen := make(map[string]struct{}, len(p.Variants))
	for _, v := range p.Variants {
		if _, dup := seen[v.Type]; dup {
			return Invalid("variants", "duplicate type "+v.Type)
		}
		seen[v.Type] = struct{}{}
		if len(v.Options) == 0 {
			return Invalid("variants", "type "+v.Type+" has no options")
		}
	}
	return nil
}

// Clone returns a copy that shares no slices with p.
func (p Product) Clone() Product {
	out := p
	if p.Images != nil {
		out.Images = append([]string(nil), p.Images...)
	}
	if p.Variants != nil {
		out.Variants = make([]Variant, len(p.Variants))
		for i, v := range p.Variants {
			out.Variants[i] = Variant{Type: v.Type, Options: append([]string(nil), v.Options...)}
		}
	}
	return out
}
