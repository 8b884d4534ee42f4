package service

import (
	"context"
	"strings"

	"github.com/flamesco/shopfront/internal/domain"
	"github.com/flamesco/shopfront/internal/repository"
)

// CatalogService is a read-only view over products and categories. The cart
// and checkout engines never write to the catalog.
type CatalogService struct {
	repo repository.CatalogRepository
}

func NewCatalogService(repo repository.CatalogRepository) *CatalogService {
	return &CatalogService{repo: repo}
}

func (s *CatalogService) ListProducts(ctx context.Context, category, search string) ([]domain.Product, error) {
	return s.repo.ListProducts(ctx, strings.TrimSpace(category), strings.TrimSpace(search))
}

func (s *CatalogService) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	return s.repo.GetProduct(ctx, id)
}

func (s *CatalogService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	return s.repo.ListCategories(ctx)
}
