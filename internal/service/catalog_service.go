package service

import (
	"context"

	"perfume-boutique-ws/internal/model"
	"perfume-boutique-ws/internal/repository"

	"github.com/google/uuid"
)

// CatalogService is the read side of products and boutiques.
type CatalogService interface {
	ListProducts(ctx context.Context, filter repository.ProductFilter) ([]model.Product, error)
	GetProduct(ctx context.Context, id uuid.UUID) (*model.Product, error)
	ListBoutiques(ctx context.Context) ([]model.Boutique, error)
	GetBoutique(ctx context.Context, id uuid.UUID) (*model.Boutique, error)
}

type catalogService struct {
	productRepo  repository.ProductRepository
	boutiqueRepo repository.BoutiqueRepository
}

func NewCatalogService(productRepo repository.ProductRepository, boutiqueRepo repository.BoutiqueRepository) CatalogService {
	return &catalogService{productRepo: productRepo, boutiqueRepo: boutiqueRepo}
}

func (s *catalogService) ListProducts(ctx context.Context, filter repository.ProductFilter) ([]model.Product, error) {
	if filter.Category != "" && !filter.Category.Valid() {
		return nil, &model.ValidationError{Field: "category", Reason: "must be one of homme, femme, mixte"}
	}
	return s.productRepo.FindAll(ctx, filter)
}

func (s *catalogService) GetProduct(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound("product", id, err)
	}
	return product, nil
}

func (s *catalogService) ListBoutiques(ctx context.Context) ([]model.Boutique, error) {
	return s.boutiqueRepo.FindAll(ctx)
}

func (s *catalogService) GetBoutique(ctx context.Context, id uuid.UUID) (*model.Boutique, error) {
	boutique, err := s.boutiqueRepo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound("boutique", id, err)
	}
	return boutique, nil
}
