package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Product is a catalog entry. Price is in the smallest currency unit
// (FCFA has no subunit). Images holds at most one reference, either a
// URL or an inlined data URI.
type Product struct {
	ID           string    `json:"id" gorm:"primaryKey"`
	Name         string    `json:"name" gorm:"not null"`
	Brand        string    `json:"brand" gorm:"not null"`
	Price        int       `json:"price" gorm:"not null"`
	Currency     string    `json:"currency"`
	Rubrique     string    `json:"rubrique"`
	SousRubrique string    `json:"sous_rubrique"`
	Categorie    string    `json:"categorie"`
	Description  string    `json:"description"`
	Images       []string  `json:"images" gorm:"serializer:json"`
	Active       bool      `json:"active"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TableName specifies the table name
func (Product) TableName() string {
	return "products"
}

// Image returns the single stored image reference, or "".
func (p *Product) Image() string {
	if len(p.Images) > 0 {
		return p.Images[0]
	}
	return ""
}

// DefaultCurrency is applied to any record written without one.
const DefaultCurrency = "FCFA"

// ProductInput is the wire shape accepted by every write endpoint.
// Active is a pointer so that an absent flag defaults to true, and a
// singular "image" field is accepted alongside "images".
type ProductInput struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Brand        string   `json:"brand"`
	Price        int      `json:"price"`
	Currency     string   `json:"currency"`
	Rubrique     string   `json:"rubrique"`
	SousRubrique string   `json:"sous_rubrique"`
	Categorie    string   `json:"categorie"`
	Description  string   `json:"description"`
	Images       []string `json:"images"`
	Image        string   `json:"image"`
	Active       *bool    `json:"active"`
}

// NewProductID returns a collision-resistant catalog id.
func NewProductID() string {
	return "BD-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
}

// Normalize coerces an input record into a stored Product: id generated
// when absent, currency and active defaulted, images collapsed to at
// most one entry, updated_at stamped with now.
func Normalize(in ProductInput, now time.Time) Product {
	id := strings.TrimSpace(in.ID)
	if id == "" {
		id = NewProductID()
	}

	image := ""
	if len(in.Images) > 0 {
		image = in.Images[0]
	} else if in.Image != "" {
		image = in.Image
	}
	images := []string{}
	if image != "" {
		images = []string{image}
	}

	currency := in.Currency
	if currency == "" {
		currency = DefaultCurrency
	}

	price := in.Price
	if price < 0 {
		price = 0
	}

	// Only an explicit false disables a record.
	active := in.Active == nil || *in.Active

	return Product{
		ID:           id,
		Name:         in.Name,
		Brand:        in.Brand,
		Price:        price,
		Currency:     currency,
		Rubrique:     in.Rubrique,
		SousRubrique: in.SousRubrique,
		Categorie:    in.Categorie,
		Description:  in.Description,
		Images:       images,
		Active:       active,
		UpdatedAt:    now,
	}
}

// Validate checks the fields an admin form must fill before any write.
func Validate(p Product) error {
	if strings.TrimSpace(p.Name) == "" || strings.TrimSpace(p.Brand) == "" || p.Price <= 0 {
		return &ValidationError{Message: "name, brand and price are required"}
	}
	if p.Rubrique == "" || p.SousRubrique == "" || p.Categorie == "" {
		return &ValidationError{Message: "rubrique, sous-rubrique and categorie are required"}
	}
	return nil
}

// ProductPatch carries the fields a partial update may touch. Pointer
// fields distinguish "not sent" from zero values.
type ProductPatch struct {
	Price       *int     `json:"price"`
	Description *string  `json:"description"`
	Image       *string  `json:"image"`
	Images      []string `json:"images"`
	Active      *bool    `json:"active"`
}

// Apply overlays the patch onto p, restamping updated_at.
func (pt ProductPatch) Apply(p Product, now time.Time) Product {
	if pt.Price != nil {
		p.Price = *pt.Price
	}
	if pt.Description != nil {
		p.Description = *pt.Description
	}
	image := p.Image()
	if pt.Image != nil {
		image = *pt.Image
	} else if len(pt.Images) > 0 {
		image = pt.Images[0]
	}
	if image != "" {
		p.Images = []string{image}
	} else {
		p.Images = []string{}
	}
	if pt.Active != nil {
		p.Active = *pt.Active
	}
	p.UpdatedAt = now
	return p
}
