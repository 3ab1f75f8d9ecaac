package store

import "storefront/internal/domain"

// Action is a mutation request. Kinds Reduce does not know are ignored.
type Action interface {
	Kind() string
}

// AddToCart adds Quantity units of a product snapshot. Lines merge when
// (product id, color, size) match.
type AddToCart struct {
	Product          domain.Product
	Quantity         int
	SelectedColor    string
	SelectedSize     string
	SelectedVariants map[string]string
}

// RemoveFromCart drops every line matching the identity tuple.
type RemoveFromCart struct {
	ProductID     string
	SelectedColor string
	SelectedSize  string
}

// DecreaseQuantity takes one unit off a line, removing it at quantity 1.
type DecreaseQuantity struct {
	ProductID     string
	SelectedColor string
	SelectedSize  string
}

type ClearCart struct{}

type ToggleWishlist struct {
	ProductID string
}

// Login selects the user whose email matches case-insensitively.
// Credentials are verified elsewhere.
type Login struct {
	Email string
}

type Logout struct{}

type RegisterUser struct {
	User domain.User
}

type AddProduct struct {
	Product domain.Product
}

// UpdateProduct replaces a product by id. It is not mirrored remotely.
type UpdateProduct struct {
	Product domain.Product
}

type DeleteProduct struct {
	ID string
}

type AddCategory struct {
	Category domain.Category
}

type AddSlide struct {
	Slide domain.Slide
}

type AddBanner struct {
	Banner domain.Banner
}

type AddOrder struct {
	Order domain.Order
}

type UpdateOrderStatus struct {
	ID     string
	Status domain.OrderStatus
}

type AddReview struct {
	Review domain.Review
}

type DeleteReview struct {
	ID string
}

// SetCategoryFilter also clears the subcategory filter.
type SetCategoryFilter struct {
	Category string
}

type SetSubCategoryFilter struct {
	SubCategory string
}

type SetSearch struct {
	Search string
}

type UpdateSettings struct {
	Settings domain.Settings
}

// Hydrate swaps in freshly loaded collections in one step.
type Hydrate struct {
	Data      domain.Dataset
	Connected bool
}

type SetConnection struct {
	Connected bool
}

func (AddToCart) Kind() string            { return "ADD_TO_CART" }
func (RemoveFromCart) Kind() string       { return "REMOVE_FROM_CART" }
func (DecreaseQuantity) Kind() string     { return "DECREASE_QUANTITY" }
func (ClearCart) Kind() string            { return "CLEAR_CART" }
func (ToggleWishlist) Kind() string       { return "TOGGLE_WISHLIST" }
func (Login) Kind() string                { return "LOGIN" }
func (Logout) Kind() string               { return "LOGOUT" }
func (RegisterUser) Kind() string         { return "REGISTER_USER" }
func (AddProduct) Kind() string           { return "ADD_PRODUCT" }
func (UpdateProduct) Kind() string        { return "UPDATE_PRODUCT" }
func (DeleteProduct) Kind() string        { return "DELETE_PRODUCT" }
func (AddCategory) Kind() string          { return "ADD_CATEGORY" }
func (AddSlide) Kind() string             { return "ADD_SLIDE" }
func (AddBanner) Kind() string            { return "ADD_BANNER" }
func (AddOrder) Kind() string             { return "ADD_ORDER" }
func (UpdateOrderStatus) Kind() string    { return "UPDATE_ORDER_STATUS" }
func (AddReview) Kind() string            { return "ADD_REVIEW" }
func (DeleteReview) Kind() string         { return "DELETE_REVIEW" }
func (SetCategoryFilter) Kind() string    { return "SET_CATEGORY_FILTER" }
func (SetSubCategoryFilter) Kind() string { return "SET_SUBCATEGORY_FILTER" }
func (SetSearch) Kind() string            { return "SET_SEARCH" }
func (UpdateSettings) Kind() string       { return "UPDATE_SETTINGS" }
func (Hydrate) Kind() string              { return "HYDRATE" }
func (SetConnection) Kind() string        { return "SET_CONNECTION" }
