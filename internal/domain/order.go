package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

const (
	StatusProcessing OrderStatus = "Processing"
	StatusShipped    OrderStatus = "Shipped"
	StatusDelivered  OrderStatus = "Delivered"
	StatusCancelled  OrderStatus = "Cancelled"
	StatusReturned   OrderStatus = "Returned"
)

// OrderStatuses lists every accepted status in display order.
var OrderStatuses = []OrderStatus{StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled, StatusReturned}

func (s OrderStatus) Valid() bool {
	for _, known := range OrderStatuses {
		if s == known {
			return true
		}
	}
	return false
}

type Address struct {
	Line1      string `json:"line1" yaml:"line1"`
	City       string `json:"city" yaml:"city"`
	PostalCode string `json:"postalCode" yaml:"postalCode"`
	Country    string `json:"country" yaml:"country"`
}

// Order is frozen once created; only Status changes afterwards.
type Order struct {
	ID              string          `json:"id" yaml:"id"`
	UserID          string          `json:"userId" yaml:"userId"`
	CustomerName    string          `json:"customerName,omitempty" yaml:"customerName"`
	CustomerEmail   string          `json:"customerEmail,omitempty" yaml:"customerEmail"`
	Items           []CartItem      `json:"items" yaml:"items"`
	Subtotal        decimal.Decimal `json:"subtotal" yaml:"subtotal"`
	Tax             decimal.Decimal `json:"tax" yaml:"tax"`
	Shipping        decimal.Decimal `json:"shipping" yaml:"shipping"`
	Total           decimal.Decimal `json:"total" yaml:"total"`
	Status          OrderStatus     `json:"status" yaml:"status"`
	CreatedAt       time.Time       `json:"createdAt" yaml:"createdAt"`
	ShippingAddress Address         `json:"shippingAddress" yaml:"shippingAddress"`
}

// Totals is the computed money block of an order.
type Totals struct {
	Subtotal decimal.Decimal
	Tax      decimal.Decimal
	Shipping decimal.Decimal
	Total    decimal.Decimal
}

// ComputeTotals prices a set of lines under the store settings.
func ComputeTotals(items []CartItem, settings Settings) Totals {
	subtotal := decimal.Zero
	for _, it := range items {
		subtotal = subtotal.Add(it.LineTotal())
	}
	shipping := decimal.Zero
	if len(items) > 0 {
		shipping = settings.ShippingCost
	}
	tax := subtotal.Mul(settings.TaxRate).Round(2)
	subtotal = subtotal.Round(2)
	return Totals{
		Subtotal: subtotal,
		Tax:      tax,
		Shipping: shipping.Round(2),
		Total:    subtotal.Add(tax).Add(shipping).Round(2),
	}
}
