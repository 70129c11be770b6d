package repository

import (
	"context"
	"strings"

	"perfume-boutique-ws/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type productRepo struct {
	db   *gorm.DB
	lock bool // inside a transaction: FindByID takes a row lock
}

func NewProductRepo(db *gorm.DB) ProductRepository {
	return &productRepo{db: db}
}

func sizesByID(db *gorm.DB) *gorm.DB {
	return db.Order("id ASC")
}

func (r *productRepo) Create(ctx context.Context, product *model.Product) error {
	return translate(r.db.WithContext(ctx).Create(product).Error)
}

func (r *productRepo) FindAll(ctx context.Context, filter ProductFilter) ([]model.Product, error) {
	var products []model.Product
	query := r.db.WithContext(ctx).Preload("Sizes", sizesByID)
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if term := strings.TrimSpace(filter.Search); term != "" {
		like := "%" + strings.ToLower(term) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(brand) LIKE ?", like, like)
	}
	err := query.Order("name ASC").Find(&products).Error
	return products, translate(err)
}

func (r *productRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	var product model.Product
	query := r.db.WithContext(ctx)
	if r.lock {
		// Pessimistic locking: concurrent sales of the same product serialize here
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	if err := query.Preload("Sizes", sizesByID).First(&product, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &product, nil
}

// SetStock writes the new stock count of one size variant.
func (r *productRepo) SetStock(ctx context.Context, productID uuid.UUID, size string, newStock int) error {
	res := r.db.WithContext(ctx).Model(&model.SizeVariant{}).
		Where("product_id = ? AND label = ?", productID, size).
		Update("stock", newStock)
	return requireOne(res)
}
