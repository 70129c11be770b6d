package repository

import (
	"context"

	"perfume-boutique-ws/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type boutiqueRepo struct {
	db *gorm.DB
}

func NewBoutiqueRepo(db *gorm.DB) BoutiqueRepository {
	return &boutiqueRepo{db: db}
}

func (r *boutiqueRepo) Create(ctx context.Context, boutique *model.Boutique) error {
	return translate(r.db.WithContext(ctx).Create(boutique).Error)
}

func (r *boutiqueRepo) FindAll(ctx context.Context) ([]model.Boutique, error) {
	var boutiques []model.Boutique
	err := r.db.WithContext(ctx).Order("name ASC").Find(&boutiques).Error
	return boutiques, translate(err)
}

func (r *boutiqueRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Boutique, error) {
	var boutique model.Boutique
	if err := r.db.WithContext(ctx).First(&boutique, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &boutique, nil
}
