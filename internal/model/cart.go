package model

import "github.com/google/uuid"

// MaxLineQuantity caps the quantity of a single cart line. The lte=1000 validate tags mirror it.
const MaxLineQuantity = 1000

// CartLine pairs a product, one of its sizes and a quantity while a transaction is being composed.
// UnitPrice is captured when the line is added to the cart and is not re-read at commit time.
// Cart lines are never persisted.
type CartLine struct {
	ProductID   uuid.UUID `json:"product_id" validate:"uuid_required"`
	ProductName string    `json:"product_name"`
	Size        string    `json:"size" validate:"required"`
	UnitPrice   int64     `json:"unit_price" validate:"gte=0"`
	Quantity    int       `json:"quantity" validate:"gte=1,lte=1000"`
}

// LineItem is the persisted snapshot of a cart line inside an order or a sale.
type LineItem struct {
	ID          uint      `gorm:"primaryKey" json:"-"`
	ProductID   uuid.UUID `gorm:"type:uuid;not null;index" json:"product_id"`
	ProductName string    `gorm:"type:varchar(255);not null" json:"product_name"`
	Size        string    `gorm:"type:varchar(20)" json:"size"`
	Quantity    int       `gorm:"not null" json:"quantity"`
	UnitPrice   int64     `gorm:"not null" json:"unit_price"`
}

// Subtotal is quantity × unit price.
func (li LineItem) Subtotal() int64 {
	return li.UnitPrice * int64(li.Quantity)
}

func lineItemFromCart(l CartLine) LineItem {
	return LineItem{
		ProductID:   l.ProductID,
		ProductName: l.ProductName,
		Size:        l.Size,
		Quantity:    l.Quantity,
		UnitPrice:   l.UnitPrice,
	}
}
