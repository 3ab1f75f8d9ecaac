package domain

import "time"

// Slide is a homepage carousel entry.
type Slide struct {
	ID       string `json:"id" yaml:"id"`
	Title    string `json:"title" yaml:"title"`
	Subtitle string `json:"subtitle,omitempty" yaml:"subtitle"`
	Image    string `json:"image" yaml:"image"`
	Link     string `json:"link,omitempty" yaml:"link"`
	CTA      string `json:"cta,omitempty" yaml:"cta"`
}

type Banner struct {
	ID       string `json:"id" yaml:"id"`
	Title    string `json:"title" yaml:"title"`
	Image    string `json:"image" yaml:"image"`
	Link     string `json:"link,omitempty" yaml:"link"`
	Position string `json:"position,omitempty" yaml:"position"`
}

type PromoBanner struct {
	ID          string `json:"id" yaml:"id"`
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description,omitempty" yaml:"description"`
	Image       string `json:"image,omitempty" yaml:"image"`
	Link        string `json:"link,omitempty" yaml:"link"`
	Active      bool   `json:"active" yaml:"active"`
}

type Review struct {
	ID        string    `json:"id" yaml:"id"`
	ProductID string    `json:"productId" yaml:"productId"`
	UserID    string    `json:"userId,omitempty" yaml:"userId"`
	UserName  string    `json:"userName,omitempty" yaml:"userName"`
	Rating    int       `json:"rating" yaml:"rating"`
	Comment   string    `json:"comment,omitempty" yaml:"comment"`
	CreatedAt time.Time `json:"createdAt" yaml:"createdAt"`
}
