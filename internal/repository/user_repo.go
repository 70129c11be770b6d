package repository

import (
	"context"
	"strings"
	"time"

	"perfume-boutique-ws/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type userRepo struct {
	db *gorm.DB
}

func NewUserRepo(db *gorm.DB) UserRepository {
	return &userRepo{db}
}

func (r *userRepo) Create(ctx context.Context, user *model.User) error {
	return translate(r.db.WithContext(ctx).Create(user).Error)
}

func (r *userRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Preload("Boutiques").First(&user, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (r *userRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Preload("Boutiques").
		Where("LOWER(email) = ?", strings.ToLower(email)).First(&user).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (r *userRepo) FindAll(ctx context.Context, filter UserFilter) ([]model.User, error) {
	var users []model.User
	query := r.db.WithContext(ctx).Preload("Boutiques")
	if filter.Role != "" {
		query = query.Where("role = ?", filter.Role)
	}
	if filter.BoutiqueID != nil {
		query = query.Where("boutique_id = ?", *filter.BoutiqueID)
	}
	if term := strings.TrimSpace(filter.Search); term != "" {
		like := "%" + strings.ToLower(term) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(email) LIKE ? OR phone LIKE ?", like, like, like)
	}
	err := query.Order("name ASC").Find(&users).Error
	return users, translate(err)
}

func (r *userRepo) UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	res := r.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).Update("last_login_at", at)
	return requireOne(res)
}

func (r *userRepo) AdjustLoyaltyPoints(ctx context.Context, id uuid.UUID, delta int64) error {
	res := r.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).
		Update("loyalty_points", gorm.Expr("loyalty_points + ?", delta))
	return requireOne(res)
}

func (r *userRepo) AdjustCurrentSales(ctx context.Context, id uuid.UUID, delta int64) error {
	res := r.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).
		Update("current_sales", gorm.Expr("current_sales + ?", delta))
	return requireOne(res)
}
