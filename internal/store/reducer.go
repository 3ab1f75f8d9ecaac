package store

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"storefront/internal/domain"
)

// Effect is a remote write requested by a state transition. The driver in
// Store runs it after the new state is committed.
type Effect struct {
	Method string
	Path   string
	Body   any
}

// StatusPatch is the body of a partial order update.
type StatusPatch struct {
	Status domain.OrderStatus `json:"status"`
}

// Reduce applies a to s. It is pure: s is never modified and no I/O happens.
// On error the returned state is s itself and there are no effects.
func Reduce(s State, a Action) (State, []Effect, error) {
	next, effects, err := reduce(s, a)
	if err != nil {
		return s, nil, err
	}
	return next, effects, nil
}

func reduce(s State, a Action) (State, []Effect, error) {
	switch a := a.(type) {
	case AddToCart:
		return addToCart(s, a)
	case RemoveFromCart:
		s.Cart = without(s.Cart, func(it domain.CartItem) bool {
			return it.SameLine(a.ProductID, a.SelectedColor, a.SelectedSize)
		})
		return s, nil, nil
	case DecreaseQuantity:
		return decreaseQuantity(s, a), nil, nil
	case ClearCart:
		s.Cart = []domain.CartItem{}
		return s, nil, nil
	case ToggleWishlist:
		if a.ProductID == "" {
			return s, nil, domain.Invalid("productId", "required")
		}
		if s.InWishlist(a.ProductID) {
			s.Wishlist = without(s.Wishlist, func(id string) bool { return id == a.ProductID })
		} else {
			s.Wishlist = appended(s.Wishlist, a.ProductID)
		}
		return s, nil, nil
	case Login:
		return login(s, a)
	case Logout:
		s.CurrentUser = nil
		return s, nil, nil
	case RegisterUser:
		return registerUser(s, a)
	case AddProduct:
		return addProduct(s, a)
	case UpdateProduct:
		return updateProduct(s, a)
	case DeleteProduct:
		i := indexOf(s.Products, func(p domain.Product) bool { return p.ID == a.ID })
		if i < 0 {
			return s, nil, fmt.Errorf("product %q: %w", a.ID, domain.ErrNotFound)
		}
		s.Products = removeAt(s.Products, i)
		return s, []Effect{{Method: http.MethodDelete, Path: "/products/" + url.PathEscape(a.ID)}}, nil
	case AddCategory:
		if a.Category.ID == "" || strings.TrimSpace(a.Category.Name) == "" {
			return s, nil, domain.Invalid("category", "id and name required")
		}
		s.Categories = appended(s.Categories, a.Category)
		return s, []Effect{{Method: http.MethodPost, Path: "/categories", Body: a.Category}}, nil
	case AddSlide:
		if a.Slide.ID == "" {
			return s, nil, domain.Invalid("slide.id", "required")
		}
		s.Slides = appended(s.Slides, a.Slide)
		return s, []Effect{{Method: http.MethodPost, Path: "/slides", Body: a.Slide}}, nil
	case AddBanner:
		if a.Banner.ID == "" {
			return s, nil, domain.Invalid("banner.id", "required")
		}
		s.Banners = appended(s.Banners, a.Banner)
		return s, []Effect{{Method: http.MethodPost, Path: "/banners", Body: a.Banner}}, nil
	case AddOrder:
		return addOrder(s, a)
	case UpdateOrderStatus:
		return updateOrderStatus(s, a)
	case AddReview:
		r := a.Review
		if r.ID == "" || r.ProductID == "" {
			return s, nil, domain.Invalid("review", "id and productId required")
		}
		if r.Rating < 1 || r.Rating > 5 {
			return s, nil, domain.Invalid("rating", "must be between 1 and 5")
		}
		s.Reviews = appended(s.Reviews, r)
		return s, []Effect{{Method: http.MethodPost, Path: "/reviews", Body: r}}, nil
	case DeleteReview:
		i := indexOf(s.Reviews, func(r domain.Review) bool { return r.ID == a.ID })
		if i < 0 {
			return s, nil, fmt.Errorf("review %q: %w", a.ID, domain.ErrNotFound)
		}
		s.Reviews = removeAt(s.Reviews, i)
		return s, []Effect{{Method: http.MethodDelete, Path: "/reviews/" + url.PathEscape(a.ID)}}, nil
	case SetCategoryFilter:
		s.Filters.Category = a.Category
		s.Filters.SubCategory = ""
		return s, nil, nil
	case SetSubCategoryFilter:
		s.Filters.SubCategory = a.SubCategory
		return s, nil, nil
	case SetSearch:
		s.Filters.Search = a.Search
		return s, nil, nil
	case UpdateSettings:
		if err := a.Settings.Validate(); err != nil {
			return s, nil, err
		}
		s.Settings = a.Settings
		return s, []Effect{{Method: http.MethodPost, Path: "/settings", Body: a.Settings}}, nil
	case Hydrate:
		return hydrate(s, a), nil, nil
	case SetConnection:
		s.Connected = a.Connected
		return s, nil, nil
	default:
		return s, nil, nil
	}
}

func addToCart(s State, a AddToCart) (State, []Effect, error) {
	if a.Product.ID == "" {
		return s, nil, domain.Invalid("productId", "required")
	}
	if a.Quantity < 1 {
		return s, nil, domain.Invalid("quantity", "must be at least 1")
	}
	i := indexOf(s.Cart, func(it domain.CartItem) bool {
		return it.SameLine(a.Product.ID, a.SelectedColor, a.SelectedSize)
	})
	if i >= 0 {
		cart := copied(s.Cart)
		cart[i].Quantity += a.Quantity
		s.Cart = cart
		return s, nil, nil
	}
	item := domain.CartItem{
		Product:          a.Product,
		Quantity:         a.Quantity,
		SelectedColor:    a.SelectedColor,
		SelectedSize:     a.SelectedSize,
		SelectedVariants: a.SelectedVariants,
	}
	s.Cart = appended(s.Cart, item.Clone())
	return s, nil, nil
}

func decreaseQuantity(s State, a DecreaseQuantity) State {
	i := indexOf(s.Cart, func(it domain.CartItem) bool {
		return it.SameLine(a.ProductID, a.SelectedColor, a.SelectedSize)
	})
	if i < 0 {
		return s
	}
	if s.Cart[i].Quantity > 1 {
		cart := copied(s.Cart)
		cart[i].Quantity--
		s.Cart = cart
		return s
	}
	s.Cart = removeAt(s.Cart, i)
	return s
}

func login(s State, a Login) (State, []Effect, error) {
	email := strings.TrimSpace(a.Email)
	if email == "" {
		return s, nil, domain.Invalid("email", "required")
	}
	for _, u := range s.Users {
		if strings.EqualFold(u.Email, email) {
			match := u
			s.CurrentUser = &match
			return s, nil, nil
		}
	}
	return s, nil, fmt.Errorf("user %q: %w", email, domain.ErrNotFound)
}

func registerUser(s State, a RegisterUser) (State, []Effect, error) {
	u := a.User
	if u.ID == "" {
		return s, nil, domain.Invalid("user.id", "required")
	}
	if strings.TrimSpace(u.Email) == "" {
		return s, nil, domain.Invalid("email", "required")
	}
	if indexOf(s.Users, func(existing domain.User) bool { return strings.EqualFold(existing.Email, u.Email) }) >= 0 {
		return s, nil, fmt.Errorf("user %q: %w", u.Email, domain.ErrAlreadyExists)
	}
	s.Users = appended(s.Users, u)
	current := u
	s.CurrentUser = &current
	return s, []Effect{{Method: http.MethodPost, Path: "/users", Body: u}}, nil
}

func addProduct(s State, a AddProduct) (State, []Effect, error) {
	if err := a.Product.Validate(); err != nil {
		return s, nil, err
	}
	if _, exists := s.Product(a.Product.ID); exists {
		return s, nil, fmt.Errorf("product %q: %w", a.Product.ID, domain.ErrAlreadyExists)
	}
	p := a.Product.Clone()
	s.Products = appended(s.Products, p)
	return s, []Effect{{Method: http.MethodPost, Path: "/products", Body: p}}, nil
}

func updateProduct(s State, a UpdateProduct) (State, []Effect, error) {
	if err := a.Product.Validate(); err != nil {
		return s, nil, err
	}
	i := indexOf(s.Products, func(p domain.Product) bool { return p.ID == a.Product.ID })
	if i < 0 {
		return s, nil, fmt.Errorf("product %q: %w", a.Product.ID, domain.ErrNotFound)
	}
	products := copied(s.Products)
	products[i] = a.Product.Clone()
	s.Products = products
	return s, nil, nil
}

func addOrder(s State, a AddOrder) (State, []Effect, error) {
	o := a.Order
	if o.ID == "" {
		return s, nil, domain.Invalid("order.id", "required")
	}
	if o.Status == "" {
		o.Status = domain.StatusProcessing
	}
	if !o.Status.Valid() {
		return s, nil, domain.Invalid("status", fmt.Sprintf("unknown status %q", o.Status))
	}
	if o.UserID == "" {
		o.UserID = domain.GuestUserID
	}
	o.Items = domain.CloneItems(o.Items)
	orders := make([]domain.Order, 0, len(s.Orders)+1)
	orders = append(orders, o)
	s.Orders = append(orders, s.Orders...)
	return s, []Effect{{Method: http.MethodPost, Path: "/orders", Body: o}}, nil
}

func updateOrderStatus(s State, a UpdateOrderStatus) (State, []Effect, error) {
	if !a.Status.Valid() {
		return s, nil, domain.Invalid("status", fmt.Sprintf("unknown status %q", a.Status))
	}
	i := indexOf(s.Orders, func(o domain.Order) bool { return o.ID == a.ID })
	if i < 0 {
		return s, nil, fmt.Errorf("order %q: %w", a.ID, domain.ErrNotFound)
	}
	orders := copied(s.Orders)
	orders[i].Status = a.Status
	s.Orders = orders
	return s, []Effect{{
		Method: http.MethodPut,
		Path:   "/orders/" + url.PathEscape(a.ID),
		Body:   StatusPatch{Status: a.Status},
	}}, nil
}

func hydrate(s State, a Hydrate) State {
	d := a.Data
	if d.Products != nil {
		s.Products = d.Products
	}
	if d.Categories != nil {
		s.Categories = d.Categories
	}
	if d.Slides != nil {
		s.Slides = d.Slides
	}
	if d.Banners != nil {
		s.Banners = d.Banners
	}
	if d.PromoBanners != nil {
		s.PromoBanners = d.PromoBanners
	}
	if d.Users != nil {
		s.Users = d.Users
	}
	if d.Orders != nil {
		s.Orders = d.Orders
	}
	if d.Reviews != nil {
		s.Reviews = d.Reviews
	}
	if d.Settings != nil {
		s.Settings = *d.Settings
	}
	s.Connected = a.Connected
	return s
}

func indexOf[T any](items []T, match func(T) bool) int {
	for i, it := range items {
		if match(it) {
			return i
		}
	}
	return -1
}

func copied[T any](items []T) []T {
	out := make([]T, len(items))
	copy(out, items)
	return out
}

func appended[T any](items []T, v T) []T {
	out := make([]T, 0, len(items)+1)
	out = append(out, items...)
	return append(out, v)
}

func removeAt[T any](items []T, i int) []T {
	out := make([]T, 0, len(items)-1)
	out = append(out, items[:i]...)
	return append(out, items[i+1:]...)
}

func without[T any](items []T, drop func(T) bool) []T {
	out := make([]T, 0, len(items))
	for _, it := range items {
		if !drop(it) {
			out = append(out, it)
		}
	}
	return out
}
