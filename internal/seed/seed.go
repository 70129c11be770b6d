// Package seed loads the demo boutiques, staff, customers and perfume catalog.
package seed

import (
	"context"
	"errors"
	"fmt"

	"perfume-boutique-ws/internal/model"
	"perfume-boutique-ws/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AdminEmail marks a seeded store; Run is a no-op once it exists.
const AdminEmail = "admin@nefertiti.com"

var namespace = uuid.MustParse("6f1c8a52-3d4e-4b7a-9c1d-2e5f8a7b9c0d")

// ID derives a stable identifier from a demo key such as "prod1" or "boutique2".
func ID(key string) uuid.UUID {
	return uuid.NewSHA1(namespace, []byte(key))
}

type boutiqueSeed struct {
	key, name, address, city, phone string
}

var boutiques = []boutiqueSeed{
	{"boutique1", "Nefertiti Tunis Centre", "Avenue Habib Bourguiba", "Tunis", "+216 71 123 456"},
	{"boutique2", "Nefertiti Sousse", "Avenue Léopold Sédar Senghor", "Sousse", "+216 73 456 789"},
	{"boutique3", "Nefertiti Sfax", "Avenue Majida Boulila", "Sfax", "+216 74 987 654"},
}

type userSeed struct {
	key, email, password, name, phone string
	role                              model.Role
	boutique                          string   // clerks
	boutiques                         []string // managers
	salesTarget                       int64
	loyaltyPoints                     int64
}

var users = []userSeed{
	{key: "admin1", email: AdminEmail, password: "admin123", name: "Administrateur Nefertiti", role: model.RoleAdmin},
	{key: "manager1", email: "gerant@nefertiti.com", password: "gerant123", name: "Mohamed Gharbi", role: model.RoleManager,
		boutiques: []string{"boutique1", "boutique2"}},
	{key: "vendor1", email: "vendeur1@nefertiti.com", password: "vendeur123", name: "Fatima Benali", role: model.RoleClerk,
		boutique: "boutique1", salesTarget: 15000},
	{key: "vendor2", email: "vendeur2@nefertiti.com", password: "vendeur123", name: "Karim Mansouri", role: model.RoleClerk,
		boutique: "boutique2", salesTarget: 12000},
	{key: "client1", email: "client@email.com", password: "client123", name: "Amina Chakri", phone: "+216 20 123 456",
		role: model.RoleCustomer, loyaltyPoints: 450},
	{key: "client2", email: "sarah@email.com", password: "client123", name: "Sarah Alami", phone: "+216 22 987 654",
		role: model.RoleCustomer, loyaltyPoints: 230},
}

type productSeed struct {
	key, name, brand string
	category         model.Category
	description      string
	image            string
	sizes            []model.SizeVariant
}

var products = []productSeed{
	{
		key:         "prod1",
		name:        "La Vie Est Belle",
		brand:       "Lancôme",
		category:    model.CategoryFemme,
		description: "Eau de Parfum pour femme, notes florales et gourmandes",
		image:       "https://images.unsplash.com/photo-1541643600914-78b084683601?w=400",
		sizes: []model.SizeVariant{
			{Label: "15ml", Price: 299, Stock: 30},
			{Label: "30ml", Price: 549, Stock: 45},
			{Label: "50ml", Price: 899, Stock: 35},
			{Label: "100ml", Price: 1599, Stock: 20},
		},
	},
	{
		key:         "prod2",
		name:        "Sauvage",
		brand:       "Dior",
		category:    model.CategoryHomme,
		description: "Eau de Toilette pour homme, frais et épicé",
		image:       "https://images.unsplash.com/photo-1587017539504-67cfbddac569?w=400",
		sizes: []model.SizeVariant{
			{Label: "15ml", Price: 350, Stock: 25},
			{Label: "30ml", Price: 650, Stock: 38},
			{Label: "60ml", Price: 1050, Stock: 30},
			{Label: "100ml", Price: 1750, Stock: 15},
		},
	},
	{
		key:         "prod3",
		name:        "Chanel N°5",
		brand:       "Chanel",
		category:    model.CategoryFemme,
		description: "Parfum iconique pour femme, bouquet floral aldehydé",
		image:       "https://images.unsplash.com/photo-1592945403244-b3fbafd7f539?w=400",
		sizes: []model.SizeVariant{
			{Label: "15ml", Price: 450, Stock: 20},
			{Label: "35ml", Price: 850, Stock: 25},
			{Label: "50ml", Price: 1250, Stock: 18},
			{Label: "100ml", Price: 2200, Stock: 10},
		},
	},
	{
		key:         "prod4",
		name:        "Bleu de Chanel",
		brand:       "Chanel",
		category:    model.CategoryHomme,
		description: "Eau de Parfum pour homme, boisé aromatique",
		image:       "https://images.unsplash.com/photo-1595425970377-c9703cf48b6d?w=400",
		sizes: []model.SizeVariant{
			{Label: "20ml", Price: 400, Stock: 28},
			{Label: "50ml", Price: 950, Stock: 32},
			{Label: "100ml", Price: 1650, Stock: 16},
			{Label: "150ml", Price: 2300, Stock: 8},
		},
	},
	{
		key:         "prod5",
		name:        "Black Opium",
		brand:       "Yves Saint Laurent",
		category:    model.CategoryFemme,
		description: "Eau de Parfum pour femme, oriental gourmand",
		image:       "https://images.unsplash.com/photo-1588405748879-acb4afc2f30c?w=400",
		sizes: []model.SizeVariant{
			{Label: "15ml", Price: 320, Stock: 40},
			{Label: "30ml", Price: 580, Stock: 50},
			{Label: "50ml", Price: 950, Stock: 35},
			{Label: "90ml", Price: 1600, Stock: 25},
		},
	},
	{
		key:         "prod6",
		name:        "L'Homme",
		brand:       "Yves Saint Laurent",
		category:    model.CategoryHomme,
		description: "Eau de Toilette pour homme, frais et boisé",
		image:       "https://images.unsplash.com/photo-1594035910387-fea47794261f?w=400",
		sizes: []model.SizeVariant{
			{Label: "20ml", Price: 350, Stock: 35},
			{Label: "40ml", Price: 650, Stock: 40},
			{Label: "60ml", Price: 850, Stock: 28},
			{Label: "100ml", Price: 1400, Stock: 20},
		},
	},
	{
		key:         "prod7",
		name:        "Acqua di Gioia",
		brand:       "Giorgio Armani",
		category:    model.CategoryFemme,
		description: "Eau de Parfum pour femme, frais aquatique",
		image:       "https://images.unsplash.com/photo-1590736969955-71cc94901144?w=400",
		sizes: []model.SizeVariant{
			{Label: "15ml", Price: 280, Stock: 30},
			{Label: "30ml", Price: 520, Stock: 35},
			{Label: "50ml", Price: 780, Stock: 25},
			{Label: "100ml", Price: 1350, Stock: 17},
		},
	},
	{
		key:         "prod8",
		name:        "Armani Code",
		brand:       "Giorgio Armani",
		category:    model.CategoryHomme,
		description: "Eau de Toilette pour homme, oriental sensuel",
		image:       "https://images.unsplash.com/photo-1585386959984-a4155224a1ad?w=400",
		sizes: []model.SizeVariant{
			{Label: "20ml", Price: 380, Stock: 25},
			{Label: "50ml", Price: 920, Stock: 28},
			{Label: "75ml", Price: 1350, Stock: 18},
			{Label: "110ml", Price: 1840, Stock: 14},
		},
	},
	{
		key:         "prod9",
		name:        "Good Girl",
		brand:       "Carolina Herrera",
		category:    model.CategoryFemme,
		description: "Eau de Parfum pour femme, floral oriental",
		image:       "https://images.unsplash.com/photo-1574169208507-84376144848b?w=400",
		sizes: []model.SizeVariant{
			{Label: "15ml", Price: 370, Stock: 22},
			{Label: "30ml", Price: 680, Stock: 30},
			{Label: "50ml", Price: 1080, Stock: 20},
			{Label: "80ml", Price: 1720, Stock: 15},
		},
	},
	{
		key:         "prod10",
		name:        "CK One",
		brand:       "Calvin Klein",
		category:    model.CategoryMixte,
		description: "Eau de Toilette mixte, frais et universel",
		image:       "https://images.unsplash.com/photo-1592124549776-a7f0cc973b24?w=400",
		sizes: []model.SizeVariant{
			{Label: "15ml", Price: 180, Stock: 50},
			{Label: "50ml", Price: 450, Stock: 60},
			{Label: "100ml", Price: 750, Stock: 40},
			{Label: "200ml", Price: 1100, Stock: 30},
		},
	},
}

// Run writes the demo data in one transaction. It reports false when the store was already seeded.
func Run(ctx context.Context, store repository.Store, logger *zap.Logger) (bool, error) {
	_, err := store.Repos().Users.FindByEmail(ctx, AdminEmail)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return false, err
	}

	err = store.Transaction(ctx, func(r repository.Repositories) error {
		byKey := make(map[string]model.Boutique, len(boutiques))
		for _, b := range boutiques {
			boutique := model.Boutique{Name: b.name, Address: b.address, City: b.city, Phone: b.phone}
			boutique.ID = ID(b.key)
			if err := r.Boutiques.Create(ctx, &boutique); err != nil {
				return fmt.Errorf("boutique %s: %w", b.key, err)
			}
			byKey[b.key] = boutique
		}

		for _, u := range users {
			user := &model.User{
				Email:         u.email,
				Name:          u.name,
				Phone:         u.phone,
				Role:          u.role,
				LoyaltyPoints: u.loyaltyPoints,
				SalesTarget:   u.salesTarget,
			}
			user.ID = ID(u.key)
			if u.boutique != "" {
				id := byKey[u.boutique].ID
				user.BoutiqueID = &id
			}
			for _, key := range u.boutiques {
				user.Boutiques = append(user.Boutiques, byKey[key])
			}
			if err := user.SetPassword(u.password); err != nil {
				return err
			}
			if err := r.Users.Create(ctx, user); err != nil {
				return fmt.Errorf("user %s: %w", u.email, err)
			}
		}

		for _, p := range products {
			product := &model.Product{
				Name:        p.name,
				Brand:       p.brand,
				Category:    p.category,
				Description: p.description,
				ImageURL:    p.image,
				Sizes:       append([]model.SizeVariant(nil), p.sizes...),
			}
			product.ID = ID(p.key)
			if err := r.Products.Create(ctx, product); err != nil {
				return fmt.Errorf("product %s: %w", p.name, err)
			}
		}
		return nil
	})
	if err != nil {
		return false, err
	}

	logger.Info("demo data seeded",
		zap.Int("boutiques", len(boutiques)),
		zap.Int("users", len(users)),
		zap.Int("products", len(products)),
	)
	return true, nil
}
