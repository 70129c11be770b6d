package model

import (
	"time"

	"github.com/google/uuid"
)

type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderConfirmed OrderStatus = "confirmed"
	OrderReady     OrderStatus = "ready"
	OrderCollected OrderStatus = "collected"
	OrderCancelled OrderStatus = "cancelled"
)

// Fulfillment moves one step forward at a time; any open order may be cancelled.
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderPending:   {OrderConfirmed, OrderCancelled},
	OrderConfirmed: {OrderReady, OrderCancelled},
	OrderReady:     {OrderCollected, OrderCancelled},
}

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderPending, OrderConfirmed, OrderReady, OrderCollected, OrderCancelled:
		return true
	}
	return false
}

// IsTerminal is true for collected and cancelled orders.
func (s OrderStatus) IsTerminal() bool {
	return s == OrderCollected || s == OrderCancelled
}

func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range orderTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Order is a customer reservation awaiting pickup in a boutique. It never reserves stock.
type Order struct {
	BaseModel
	CustomerID   uuid.UUID   `gorm:"type:uuid;not null;index" json:"customer_id"`
	CustomerName string      `gorm:"type:varchar(255)" json:"customer_name"`
	BoutiqueID   uuid.UUID   `gorm:"type:uuid;not null;index" json:"boutique_id"`
	BoutiqueName string      `gorm:"type:varchar(255)" json:"boutique_name"`
	Items        []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	Total        int64       `gorm:"not null" json:"total"`
	Status       OrderStatus `gorm:"type:varchar(20);not null;index" json:"status"`
	PointsEarned int64       `gorm:"not null;default:0" json:"points_earned"`
}

type OrderItem struct {
	LineItem
	OrderID uuid.UUID `gorm:"type:uuid;not null;index" json:"-"`
}

// NewOrder builds a pending order from cart lines with precomputed total and points.
func NewOrder(customerID uuid.UUID, customerName string, boutiqueID uuid.UUID, boutiqueName string,
	lines []CartLine, total, points int64, now time.Time) *Order {
	o := &Order{
		CustomerID:   customerID,
		CustomerName: customerName,
		BoutiqueID:   boutiqueID,
		BoutiqueName: boutiqueName,
		Total:        total,
		Status:       OrderPending,
		PointsEarned: points,
	}
	o.EnsureID()
	o.CreatedAt = now
	o.UpdatedAt = now
	for _, l := range lines {
		o.Items = append(o.Items, OrderItem{LineItem: lineItemFromCart(l), OrderID: o.ID})
	}
	return o
}

// TransitionTo moves the order to next, or returns an InvalidTransitionError.
func (o *Order) TransitionTo(next OrderStatus) error {
	if !o.Status.CanTransitionTo(next) {
		return &InvalidTransitionError{From: o.Status, To: next}
	}
	o.Status = next
	return nil
}
