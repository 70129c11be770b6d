package model

import (
	"strings"

	"github.com/google/uuid"
)

type Category string

const (
	CategoryHomme Category = "homme"
	CategoryFemme Category = "femme"
	CategoryMixte Category = "mixte"
)

func (c Category) Valid() bool {
	switch c {
	case CategoryHomme, CategoryFemme, CategoryMixte:
		return true
	}
	return false
}

type Product struct {
	BaseModel
	Name        string        `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	Brand       string        `gorm:"type:varchar(255);not null" json:"brand" validate:"required"`
	Category    Category      `gorm:"type:varchar(10);not null;index" json:"category" validate:"required,oneof=homme femme mixte"`
	Description string        `gorm:"type:text" json:"description"`
	ImageURL    string        `gorm:"type:varchar(512)" json:"image_url"`
	Sizes       []SizeVariant `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"sizes" validate:"min=1,dive"`
}

// SizeVariant is one sellable bottle size of a product, with its own price and stock.
type SizeVariant struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_product_size" json:"-"`
	Label     string    `gorm:"type:varchar(20);not null;uniqueIndex:idx_product_size" json:"size" validate:"required"`
	Price     int64     `gorm:"not null" json:"price" validate:"gte=0"`
	Stock     int       `gorm:"not null;default:0" json:"stock"`
}

// Size returns the variant with the given label, or nil.
func (p *Product) Size(label string) *SizeVariant {
	for i := range p.Sizes {
		if p.Sizes[i].Label == label {
			return &p.Sizes[i]
		}
	}
	return nil
}

// TotalStock sums the stock of every size variant.
func (p *Product) TotalStock() int {
	total := 0
	for _, s := range p.Sizes {
		total += s.Stock
	}
	return total
}

// Matches reports whether the product name or brand contains term (case-insensitive).
func (p *Product) Matches(term string) bool {
	if term == "" {
		return true
	}
	term = strings.ToLower(term)
	return strings.Contains(strings.ToLower(p.Name), term) ||
		strings.Contains(strings.ToLower(p.Brand), term)
}
