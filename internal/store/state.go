package store

import (
	"github.com/shopspring/decimal"
	"storefront/internal/domain"
)

// State is one immutable snapshot of the session. Reduce never writes into
// the slices of a State it was given; it allocates new ones instead.
type State struct {
	Products     []domain.Product
	Categories   []domain.Category
	Slides       []domain.Slide
	Banners      []domain.Banner
	PromoBanners []domain.PromoBanner
	Users        []domain.User
	Orders       []domain.Order
	Reviews      []domain.Review
	Settings     domain.Settings

	Cart        []domain.CartItem
	Wishlist    []string
	CurrentUser *domain.User
	Filters     domain.Filters

	// Connected is false until the persistence service answered a probe.
	Connected bool
}

// FromDataset builds a disconnected state from a seed dataset.
func FromDataset(d domain.Dataset) State {
	s := State{
		Products:     d.Products,
		Categories:   d.Categories,
		Slides:       d.Slides,
		Banners:      d.Banners,
		PromoBanners: d.PromoBanners,
		Users:        d.Users,
		Orders:       d.Orders,
		Reviews:      d.Reviews,
	}
	if d.Settings != nil {
		s.Settings = *d.Settings
	}
	return s
}

// CartCount is the number of units in the cart.
func (s State) CartCount() int {
	n := 0
	for _, it := range s.Cart {
		n += it.Quantity
	}
	return n
}

// CartTotal is the sum of line totals, before tax and shipping.
func (s State) CartTotal() decimal.Decimal {
	total := decimal.Zero
	for _, it := range s.Cart {
		total = total.Add(it.LineTotal())
	}
	return total
}

// InWishlist reports whether productID is wishlisted.
func (s State) InWishlist(productID string) bool {
	for _, id := range s.Wishlist {
		if id == productID {
			return true
		}
	}
	return false
}

// Product looks a product up by id.
func (s State) Product(id string) (domain.Product, bool) {
	for _, p := range s.Products {
		if p.ID == id {
			return p, true
		}
	}
	return domain.Product{}, false
}

// Order looks an order up by id.
func (s State) Order(id string) (domain.Order, bool) {
	for _, o := range s.Orders {
		if o.ID == id {
			return o, true
		}
	}
	return domain.Order{}, false
}

// OrdersFor lists the orders owned by userID, most recent first.
func (s State) OrdersFor(userID string) []domain.Order {
	var out []domain.Order
	for _, o := range s.Orders {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	return out
}

// ReviewsFor lists the reviews of one product.
func (s State) ReviewsFor(productID string) []domain.Review {
	var out []domain.Review
	for _, r := range s.Reviews {
		if r.ProductID == productID {
			out = append(out, r)
		}
	}
	return out
}
