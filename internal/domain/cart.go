package domain

import "github.com/shopspring/decimal"

// CartItem is a frozen product snapshot plus the shopper's selection.
// Line identity is (ID, SelectedColor, SelectedSize).
type CartItem struct {
	Product          `yaml:",inline"`
	Quantity         int               `json:"quantity" yaml:"quantity"`
	SelectedColor    string            `json:"selectedColor,omitempty" yaml:"selectedColor"`
	SelectedSize     string            `json:"selectedSize,omitempty" yaml:"selectedSize"`
	SelectedVariants map[string]string `json:"selectedVariants,omitempty" yaml:"selectedVariants"`
}

// SameLine reports whether two items occupy the same cart line.
func (c CartItem) SameLine(productID, color, size string) bool {
	return c.ID == productID && c.SelectedColor == color && c.SelectedSize == size
}

func (c CartItem) LineTotal() decimal.Decimal {
	return c.Price.Mul(decimal.NewFromInt(int64(c.Quantity)))
}

// Clone deep-copies the item so later catalog edits cannot reach it.
func (c CartItem) Clone() CartItem {
	out := c
	out.Product = c.Product.Clone()
	if c.SelectedVariants != nil {
		out.SelectedVariants = make(map[string]string, len(c.SelectedVariants))
		for k, v := range c.SelectedVariants {
			out.SelectedVariants[k] = v
		}
	}
	return out
}

// CloneItems deep-copies a slice of cart items.
func CloneItems(items []CartItem) []CartItem {
	if items == nil {
		return nil
	}
	out := make([]CartItem, len(items))
	for i, it := range items {
		out[i] = it.Clone()
	}
	return out
}

// SelectionLabel renders the chosen variant values, e.g. "Red / M".
func (c CartItem) SelectionLabel() string {
	label := ""
	add := func(v string) {
		if v == "" {
			return
		}
		if label != "" {
			label += " / "
		}
		label += v
	}
	add(c.SelectedColor)
	add(c.SelectedSize)
	return label
}
