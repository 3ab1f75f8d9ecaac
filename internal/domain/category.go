package domain

type Category struct {
	ID            string   `json:"id" yaml:"id"`
	Name          string   `json:"name" yaml:"name"`
	SubCategories []string `json:"subCategories,omitempty" yaml:"subCategories"`
	Image         string   `json:"image,omitempty" yaml:"image"`
}
