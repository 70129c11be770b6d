package repository

import (
	"context"
	"errors"
	"time"

	"perfume-boutique-ws/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("record already exists")
)

// Repositories groups every repository bound to the same connection or transaction.
type Repositories struct {
	Products  ProductRepository
	Users     UserRepository
	Boutiques BoutiqueRepository
	Orders    OrderRepository
	Sales     SaleRepository
}

// Store hands out repositories and runs work inside a transaction boundary.
// Inside Transaction every read-modify-write is atomic; if fn returns an error nothing is written.
type Store interface {
	Repos() Repositories
	Transaction(ctx context.Context, fn func(r Repositories) error) error
}

type ProductFilter struct {
	Category model.Category
	Search   string
}

type ProductRepository interface {
	Create(ctx context.Context, product *model.Product) error
	FindAll(ctx context.Context, filter ProductFilter) ([]model.Product, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Product, error)
	SetStock(ctx context.Context, productID uuid.UUID, size string, newStock int) error
}

type UserFilter struct {
	Role       model.Role
	BoutiqueID *uuid.UUID
	Search     string
}

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindAll(ctx context.Context, filter UserFilter) ([]model.User, error)
	UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error
	AdjustLoyaltyPoints(ctx context.Context, id uuid.UUID, delta int64) error
	AdjustCurrentSales(ctx context.Context, id uuid.UUID, delta int64) error
}

type BoutiqueRepository interface {
	Create(ctx context.Context, boutique *model.Boutique) error
	FindAll(ctx context.Context) ([]model.Boutique, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Boutique, error)
}

// OrderFilter narrows FindAll. Zero values mean "no constraint"; From is inclusive, To exclusive.
type OrderFilter struct {
	CustomerID  *uuid.UUID
	BoutiqueIDs []uuid.UUID
	Status      model.OrderStatus
	From        time.Time
	To          time.Time
}

type OrderRepository interface {
	Append(ctx context.Context, order *model.Order) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Order, error)
	FindAll(ctx context.Context, filter OrderFilter) ([]model.Order, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status model.OrderStatus) error
}

// SaleFilter narrows FindAll. Zero values mean "no constraint"; From is inclusive, To exclusive.
type SaleFilter struct {
	BoutiqueIDs []uuid.UUID
	ClerkID     *uuid.UUID
	CustomerID  *uuid.UUID
	From        time.Time
	To          time.Time
}

// SaleRepository has no update: sales are immutable once appended.
type SaleRepository interface {
	Append(ctx context.Context, sale *model.Sale) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Sale, error)
	FindAll(ctx context.Context, filter SaleFilter) ([]model.Sale, error)
}

// translate maps gorm's not-found error to ErrNotFound
func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicate
	}
	return err
}

// requireOne turns a zero-row update into ErrNotFound.
func requireOne(res *gorm.DB) error {
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
