package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"storefront-backend/internal/domains/catalog/model"
	"storefront-backend/internal/domains/catalog/repository"
	"storefront-backend/pkg/cache"
	"storefront-backend/pkg/logger"
)

// CacheKeyList format: "catalog:list:{category}:{promo}:{sort}"
const CacheKeyList = "catalog:list:%s:%t:%s"

type ServiceInterface interface {
	// List returns products matching the filter.
	// Category matches case-insensitively, Promo keeps on-sale products only.
	List(ctx context.Context, filter model.ListFilter) ([]model.Product, error)

	// GetByID returns ErrProductNotFound for unknown ids
	GetByID(ctx context.Context, id string) (*model.Product, error)

	Categories(ctx context.Context) ([]model.Category, error)
}

type CatalogService struct {
	repository repository.RepositoryInterface
	cache      cache.Cache // optional
	cacheTTL   time.Duration
}

// NewCatalogService builds the service; c may be nil to disable listing cache
func NewCatalogService(r repository.RepositoryInterface, c cache.Cache, cacheTTL time.Duration) ServiceInterface {
	return &CatalogService{
		repository: r,
		cache:      c,
		cacheTTL:   cacheTTL,
	}
}

func (s *CatalogService) List(ctx context.Context, filter model.ListFilter) ([]model.Product, error) {
	if filter.Sort == "" {
		filter.Sort = model.SortNewest
	}
	if !filter.Sort.IsValid() {
		return nil, model.ErrInvalidSort
	}
	filter.Category = strings.ToLower(strings.TrimSpace(filter.Category))

	key := fmt.Sprintf(CacheKeyList, filter.Category, filter.Promo, filter.Sort)
	if s.cache != nil {
		var cached []model.Product
		found, err := s.cache.Get(ctx, key, &cached)
		if err != nil {
			logger.Error("Failed to read catalog cache", err)
		} else if found {
			return cached, nil
		}
	}

	all, err := s.repository.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	products := make([]model.Product, 0, len(all))
	for _, p := range all {
		if filter.Category != "" && strings.ToLower(p.Category) != filter.Category {
			continue
		}
		if filter.Promo && !p.IsOnSale {
			continue
		}
		products = append(products, p)
	}

	switch filter.Sort {
	case model.SortPriceAsc:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Price.LessThan(products[j].Price)
		})
	case model.SortPriceDesc:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Price.GreaterThan(products[j].Price)
		})
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, products, s.cacheTTL); err != nil {
			logger.Error("Failed to write catalog cache", err)
		}
	}

	return products, nil
}

func (s *CatalogService) GetByID(ctx context.Context, id string) (*model.Product, error) {
	product, err := s.repository.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	if product == nil {
		return nil, model.ErrProductNotFound
	}
	return product, nil
}

func (s *CatalogService) Categories(ctx context.Context) ([]model.Category, error) {
	categories, err := s.repository.Categories(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}
