package model

import (
	"time"

	"github.com/google/uuid"
)

type PaymentMethod string

const (
	PaymentCash   PaymentMethod = "cash"
	PaymentCard   PaymentMethod = "card"
	PaymentMobile PaymentMethod = "mobile"
)

func (p PaymentMethod) Valid() bool {
	switch p {
	case PaymentCash, PaymentCard, PaymentMobile:
		return true
	}
	return false
}

// Sale is a point-of-sale transaction finalized by a clerk. It is immutable once written.
type Sale struct {
	BaseModel
	BoutiqueID    uuid.UUID     `gorm:"type:uuid;index" json:"boutique_id"`
	ClerkID       uuid.UUID     `gorm:"type:uuid;not null;index" json:"clerk_id"`
	CustomerID    *uuid.UUID    `gorm:"type:uuid;index" json:"customer_id,omitempty"` // nil = walk-in buyer
	CustomerName  string        `gorm:"type:varchar(255);not null" json:"customer_name"`
	Items         []SaleItem    `gorm:"foreignKey:SaleID;constraint:OnDelete:CASCADE" json:"items"`
	Total         int64         `gorm:"not null" json:"total"`
	PaymentMethod PaymentMethod `gorm:"type:varchar(10);not null" json:"payment_method"`
	PointsAwarded int64         `gorm:"not null;default:0" json:"points_awarded"`
}

type SaleItem struct {
	LineItem
	SaleID uuid.UUID `gorm:"type:uuid;not null;index" json:"-"`
}

// NewSale builds a sale from cart lines with precomputed total and points.
// Item names carry the size, as printed on the receipt.
func NewSale(boutiqueID, clerkID uuid.UUID, customerID *uuid.UUID, customerName string,
	lines []CartLine, method PaymentMethod, total, points int64, now time.Time) *Sale {
	s := &Sale{
		BoutiqueID:    boutiqueID,
		ClerkID:       clerkID,
		CustomerID:    customerID,
		CustomerName:  customerName,
		Total:         total,
		PaymentMethod: method,
		PointsAwarded: points,
	}
	s.EnsureID()
	s.CreatedAt = now
	s.UpdatedAt = now
	for _, l := range lines {
		item := lineItemFromCart(l)
		if l.Size != "" {
			item.ProductName = l.ProductName + " " + l.Size
		}
		s.Items = append(s.Items, SaleItem{LineItem: item, SaleID: s.ID})
	}
	return s
}
