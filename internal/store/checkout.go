package store

import (
	"time"

	"storefront/internal/domain"
)

// CheckoutInput carries what the cart alone does not know.
type CheckoutInput struct {
	ID      string
	Address domain.Address
	Now     time.Time
}

// Checkout prices the current cart into a new Processing order owned by the
// signed-in user, or by the guest sentinel. The order holds its own copy of
// the cart lines.
func Checkout(s State, in CheckoutInput) (domain.Order, error) {
	if len(s.Cart) == 0 {
		return domain.Order{}, domain.Invalid("cart", "is empty")
	}
	if in.ID == "" {
		return domain.Order{}, domain.Invalid("order.id", "required")
	}
	if in.Address.Line1 == "" || in.Address.City == "" || in.Address.Country == "" {
		return domain.Order{}, domain.Invalid("shippingAddress", "line1, city and country required")
	}

	totals := domain.ComputeTotals(s.Cart, s.Settings)
	o := domain.Order{
		ID:              in.ID,
		UserID:          domain.GuestUserID,
		Items:           domain.CloneItems(s.Cart),
		Subtotal:        totals.Subtotal,
		Tax:             totals.Tax,
		Shipping:        totals.Shipping,
		Total:           totals.Total,
		Status:          domain.StatusProcessing,
		CreatedAt:       in.Now.UTC(),
		ShippingAddress: in.Address,
	}
	if u := s.CurrentUser; u != nil {
		o.UserID = u.ID
		o.CustomerName = u.Name
		o.CustomerEmail = u.Email
	}
	return o, nil
}
