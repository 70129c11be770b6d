package repository

import (
	"context"

	"perfume-boutique-ws/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type orderRepo struct {
	db *gorm.DB
}

func NewOrderRepo(db *gorm.DB) OrderRepository {
	return &orderRepo{db}
}

// Append inserts the order together with its items
func (r *orderRepo) Append(ctx context.Context, order *model.Order) error {
	return translate(r.db.WithContext(ctx).Create(order).Error)
}

func (r *orderRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	var order model.Order
	if err := r.db.WithContext(ctx).Preload("Items").First(&order, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &order, nil
}

func (r *orderRepo) FindAll(ctx context.Context, filter OrderFilter) ([]model.Order, error) {
	var orders []model.Order
	query := r.db.WithContext(ctx).Preload("Items")
	if filter.CustomerID != nil {
		query = query.Where("customer_id = ?", *filter.CustomerID)
	}
	if len(filter.BoutiqueIDs) > 0 {
		query = query.Where("boutique_id IN ?", filter.BoutiqueIDs)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if !filter.From.IsZero() {
		query = query.Where("created_at >= ?", filter.From)
	}
	if !filter.To.IsZero() {
		query = query.Where("created_at < ?", filter.To)
	}
	err := query.Order("created_at DESC").Find(&orders).Error
	return orders, translate(err)
}

func (r *orderRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status model.OrderStatus) error {
	res := r.db.WithContext(ctx).Model(&model.Order{}).Where("id = ?", id).Update("status", status)
	return requireOne(res)
}
