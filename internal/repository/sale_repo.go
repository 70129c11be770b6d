package repository

import (
	"context"

	"perfume-boutique-ws/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type saleRepo struct {
	db *gorm.DB
}

func NewSaleRepo(db *gorm.DB) SaleRepository {
	return &saleRepo{db}
}

// Append inserts the sale together with its items
func (r *saleRepo) Append(ctx context.Context, sale *model.Sale) error {
	return translate(r.db.WithContext(ctx).Create(sale).Error)
}

func (r *saleRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Sale, error) {
	var sale model.Sale
	if err := r.db.WithContext(ctx).Preload("Items").First(&sale, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &sale, nil
}

func (r *saleRepo) FindAll(ctx context.Context, filter SaleFilter) ([]model.Sale, error) {
	var sales []model.Sale
	query := r.db.WithContext(ctx).Preload("Items")
	if len(filter.BoutiqueIDs) > 0 {
		query = query.Where("boutique_id IN ?", filter.BoutiqueIDs)
	}
	if filter.ClerkID != nil {
		query = query.Where("clerk_id = ?", *filter.ClerkID)
	}
	if filter.CustomerID != nil {
		query = query.Where("customer_id = ?", *filter.CustomerID)
	}
	if !filter.From.IsZero() {
		query = query.Where("created_at >= ?", filter.From)
	}
	if !filter.To.IsZero() {
		query = query.Where("created_at < ?", filter.To)
	}
	err := query.Order("created_at DESC").Find(&sales).Error
	return sales, translate(err)
}
