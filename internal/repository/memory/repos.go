package memory

import (
	"context"
	"sort"
	"strings"
	"time"

	"perfume-boutique-ws/internal/model"
	"perfume-boutique-ws/internal/repository"

	"github.com/google/uuid"
)

func stamp(base *model.BaseModel) {
	base.EnsureID()
	now := time.Now()
	if base.CreatedAt.IsZero() {
		base.CreatedAt = now
	}
	if base.UpdatedAt.IsZero() {
		base.UpdatedAt = base.CreatedAt
	}
}

func inWindow(t, from, to time.Time) bool {
	if !from.IsZero() && t.Before(from) {
		return false
	}
	if !to.IsZero() && !t.Before(to) {
		return false
	}
	return true
}

func containsID(ids []uuid.UUID, id uuid.UUID) bool {
	if len(ids) == 0 {
		return true
	}
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}

type productRepo struct{ *access }

func (r *productRepo) Create(ctx context.Context, product *model.Product) error {
	data, unlock := r.write()
	defer unlock()
	stamp(&product.BaseModel)
	if _, exists := data.products[product.ID]; exists {
		return repository.ErrDuplicate
	}
	for i := range product.Sizes {
		product.Sizes[i].ProductID = product.ID
	}
	data.products[product.ID] = cloneProduct(product)
	return nil
}

func (r *productRepo) FindAll(ctx context.Context, filter repository.ProductFilter) ([]model.Product, error) {
	data, unlock := r.read()
	defer unlock()
	products := make([]model.Product, 0, len(data.products))
	for _, p := range data.products {
		if filter.Category != "" && p.Category != filter.Category {
			continue
		}
		if !p.Matches(strings.TrimSpace(filter.Search)) {
			continue
		}
		products = append(products, *cloneProduct(p))
	}
	sort.Slice(products, func(i, j int) bool { return products[i].Name < products[j].Name })
	return products, nil
}

func (r *productRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	data, unlock := r.read()
	defer unlock()
	p, ok := data.products[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return cloneProduct(p), nil
}

func (r *productRepo) SetStock(ctx context.Context, productID uuid.UUID, size string, newStock int) error {
	data, unlock := r.write()
	defer unlock()
	p, ok := data.products[productID]
	if !ok {
		return repository.ErrNotFound
	}
	variant := p.Size(size)
	if variant == nil {
		return repository.ErrNotFound
	}
	variant.Stock = newStock
	p.UpdatedAt = time.Now()
	return nil
}

type userRepo struct{ *access }

func (r *userRepo) Create(ctx context.Context, user *model.User) error {
	data, unlock := r.write()
	defer unlock()
	stamp(&user.BaseModel)
	for _, existing := range data.users {
		if existing.ID == user.ID || strings.EqualFold(existing.Email, user.Email) {
			return repository.ErrDuplicate
		}
	}
	data.users[user.ID] = cloneUser(user)
	return nil
}

func (r *userRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	data, unlock := r.read()
	defer unlock()
	u, ok := data.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return cloneUser(u), nil
}

func (r *userRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	data, unlock := r.read()
	defer unlock()
	for _, u := range data.users {
		if strings.EqualFold(u.Email, email) {
			return cloneUser(u), nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *userRepo) FindAll(ctx context.Context, filter repository.UserFilter) ([]model.User, error) {
	data, unlock := r.read()
	defer unlock()
	term := strings.ToLower(strings.TrimSpace(filter.Search))
	users := make([]model.User, 0, len(data.users))
	for _, u := range data.users {
		if filter.Role != "" && u.Role != filter.Role {
			continue
		}
		if filter.BoutiqueID != nil && (u.BoutiqueID == nil || *u.BoutiqueID != *filter.BoutiqueID) {
			continue
		}
		if term != "" &&
			!strings.Contains(strings.ToLower(u.Name), term) &&
			!strings.Contains(strings.ToLower(u.Email), term) &&
			!strings.Contains(u.Phone, term) {
			continue
		}
		users = append(users, *cloneUser(u))
	}
	sort.Slice(users, func(i, j int) bool { return users[i].Name < users[j].Name })
	return users, nil
}

func (r *userRepo) UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	return r.mutate(id, func(u *model.User) { u.LastLoginAt = &at })
}

func (r *userRepo) AdjustLoyaltyPoints(ctx context.Context, id uuid.UUID, delta int64) error {
	return r.mutate(id, func(u *model.User) { u.LoyaltyPoints += delta })
}

func (r *userRepo) AdjustCurrentSales(ctx context.Context, id uuid.UUID, delta int64) error {
	return r.mutate(id, func(u *model.User) { u.CurrentSales += delta })
}

func (r *userRepo) mutate(id uuid.UUID, fn func(u *model.User)) error {
	data, unlock := r.write()
	defer unlock()
	u, ok := data.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	fn(u)
	u.UpdatedAt = time.Now()
	return nil
}

type boutiqueRepo struct{ *access }

func (r *boutiqueRepo) Create(ctx context.Context, boutique *model.Boutique) error {
	data, unlock := r.write()
	defer unlock()
	stamp(&boutique.BaseModel)
	if _, exists := data.boutiques[boutique.ID]; exists {
		return repository.ErrDuplicate
	}
	cp := *boutique
	data.boutiques[boutique.ID] = &cp
	return nil
}

func (r *boutiqueRepo) FindAll(ctx context.Context) ([]model.Boutique, error) {
	data, unlock := r.read()
	defer unlock()
	boutiques := make([]model.Boutique, 0, len(data.boutiques))
	for _, b := range data.boutiques {
		boutiques = append(boutiques, *b)
	}
	sort.Slice(boutiques, func(i, j int) bool { return boutiques[i].Name < boutiques[j].Name })
	return boutiques, nil
}

func (r *boutiqueRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Boutique, error) {
	data, unlock := r.read()
	defer unlock()
	b, ok := data.boutiques[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *b
	return &cp, nil
}

type orderRepo struct{ *access }

func (r *orderRepo) Append(ctx context.Context, order *model.Order) error {
	data, unlock := r.write()
	defer unlock()
	stamp(&order.BaseModel)
	if _, exists := data.orders[order.ID]; exists {
		return repository.ErrDuplicate
	}
	for i := range order.Items {
		order.Items[i].OrderID = order.ID
	}
	data.orders[order.ID] = cloneOrder(order)
	return nil
}

func (r *orderRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	data, unlock := r.read()
	defer unlock()
	o, ok := data.orders[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return cloneOrder(o), nil
}

func (r *orderRepo) FindAll(ctx context.Context, filter repository.OrderFilter) ([]model.Order, error) {
	data, unlock := r.read()
	defer unlock()
	orders := make([]model.Order, 0)
	for _, o := range data.orders {
		if filter.CustomerID != nil && o.CustomerID != *filter.CustomerID {
			continue
		}
		if !containsID(filter.BoutiqueIDs, o.BoutiqueID) {
			continue
		}
		if filter.Status != "" && o.Status != filter.Status {
			continue
		}
		if !inWindow(o.CreatedAt, filter.From, filter.To) {
			continue
		}
		orders = append(orders, *cloneOrder(o))
	}
	sort.Slice(orders, func(i, j int) bool { return orders[i].CreatedAt.After(orders[j].CreatedAt) })
	return orders, nil
}

func (r *orderRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status model.OrderStatus) error {
	data, unlock := r.write()
	defer unlock()
	o, ok := data.orders[id]
	if !ok {
		return repository.ErrNotFound
	}
	o.Status = status
	o.UpdatedAt = time.Now()
	return nil
}

type saleRepo struct{ *access }

func (r *saleRepo) Append(ctx context.Context, sale *model.Sale) error {
	data, unlock := r.write()
	defer unlock()
	stamp(&sale.BaseModel)
	if _, exists := data.sales[sale.ID]; exists {
		return repository.ErrDuplicate
	}
	for i := range sale.Items {
		sale.Items[i].SaleID = sale.ID
	}
	data.sales[sale.ID] = cloneSale(sale)
	return nil
}

func (r *saleRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Sale, error) {
	data, unlock := r.read()
	defer unlock()
	s, ok := data.sales[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return cloneSale(s), nil
}

func (r *saleRepo) FindAll(ctx context.Context, filter repository.SaleFilter) ([]model.Sale, error) {
	data, unlock := r.read()
	defer unlock()
	sales := make([]model.Sale, 0)
	for _, s := range data.sales {
		if !containsID(filter.BoutiqueIDs, s.BoutiqueID) {
			continue
		}
		if filter.ClerkID != nil && s.ClerkID != *filter.ClerkID {
			continue
		}
		if filter.CustomerID != nil && (s.CustomerID == nil || *s.CustomerID != *filter.CustomerID) {
			continue
		}
		if !inWindow(s.CreatedAt, filter.From, filter.To) {
			continue
		}
		sales = append(sales, *cloneSale(s))
	}
	sort.Slice(sales, func(i, j int) bool { return sales[i].CreatedAt.After(sales[j].CreatedAt) })
	return sales, nil
}
