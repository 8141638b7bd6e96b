package models

import "time"

type Category struct {
	ID          string
	Name        string
	Slug        string
	Description string
	Position    int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type Product struct {
	ID          string
	CategoryID  string
	Name        string
	Slug        string
	Description string
	PriceCents  int64
	Featured    bool
	Active      bool
	Position    int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type ProductImage struct {
	ID        string
	ProductID string
	Path      string
	AltText   string
	Position  int
	CreatedAt time.Time
}

type HeroImage struct {
	ID        string
	Path      string
	Title     string
	Subtitle  string
	LinkURL   string
	Position  int
	Active    bool
	CreatedAt time.Time
}
