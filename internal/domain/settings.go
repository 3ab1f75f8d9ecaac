package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// SettingsID is the fixed key of the one settings document.
const SettingsID = "default"

// Settings is the store-wide configuration singleton.
type Settings struct {
	StoreName      string          `json:"storeName" yaml:"storeName"`
	LogoURL        string          `json:"logoUrl,omitempty" yaml:"logoUrl"`
	PrimaryColor   string          `json:"primaryColor,omitempty" yaml:"primaryColor"`
	SecondaryColor string          `json:"secondaryColor,omitempty" yaml:"secondaryColor"`
	Currency       string          `json:"currency" yaml:"currency"`
	TaxRate        decimal.Decimal `json:"taxRate" yaml:"taxRate"`
	ShippingCost   decimal.Decimal `json:"shippingCost" yaml:"shippingCost"`
	ContactEmail   string          `json:"contactEmail,omitempty" yaml:"contactEmail"`
	ContactPhone   string          `json:"contactPhone,omitempty" yaml:"contactPhone"`
	Address        string          `json:"address,omitempty" yaml:"address"`
}

// Validate rejects settings the persistence service would refuse.
func (s Settings) Validate() error {
	if strings.TrimSpace(s.StoreName) == "" {
		return Invalid("storeName", "required")
	}
	if s.TaxRate.IsNegative() {
		return Invalid("taxRate", "must not be negative")
	}
	if s.ShippingCost.IsNegative() {
		return Invalid("shippingCost", "must not be negative")
	}
	return nil
}

// Filters is transient catalog browsing state.
type Filters struct {
	Category    string `json:"category,omitempty"`
	SubCategory string `json:"subCategory,omitempty"`
	Search      string `json:"search,omitempty"`
}

// Dataset bundles every collection. It is the shape of the seed file,
// of bulk seed requests and of a hydrated store snapshot.
type Dataset struct {
	Products     []Product     `json:"products,omitempty" yaml:"products"`
	Categories   []Category    `json:"categories,omitempty" yaml:"categories"`
	Slides       []Slide       `json:"slides,omitempty" yaml:"slides"`
	Banners      []Banner      `json:"banners,omitempty" yaml:"banners"`
	PromoBanners []PromoBanner `json:"promoBanners,omitempty" yaml:"promoBanners"`
	Users        []User        `json:"users,omitempty" yaml:"users"`
	Orders       []Order       `json:"orders,omitempty" yaml:"orders"`
	Reviews      []Review      `json:"reviews,omitempty" yaml:"reviews"`
	Settings     *Settings     `json:"settings,omitempty" yaml:"settings"`
}
