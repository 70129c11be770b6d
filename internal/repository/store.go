package repository

import (
	"context"

	"perfume-boutique-ws/internal/model"

	"gorm.io/gorm"
)

type gormStore struct {
	db *gorm.DB
}

// NewGormStore backs the repositories with gorm. Transactions lock the product rows they read.
func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) Repos() Repositories {
	return newRepositories(s.db, false)
}

func (s *gormStore) Transaction(ctx context.Context, fn func(r Repositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(newRepositories(tx, true))
	})
}

func newRepositories(db *gorm.DB, lock bool) Repositories {
	return Repositories{
		Products:  &productRepo{db: db, lock: lock},
		Users:     NewUserRepo(db),
		Boutiques: NewBoutiqueRepo(db),
		Orders:    NewOrderRepo(db),
		Sales:     NewSaleRepo(db),
	}
}

// AutoMigrate creates or updates every table the service uses.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.Boutique{},
		&model.User{},
		&model.Product{},
		&model.SizeVariant{},
		&model.Order{},
		&model.OrderItem{},
		&model.Sale{},
		&model.SaleItem{},
	)
}
