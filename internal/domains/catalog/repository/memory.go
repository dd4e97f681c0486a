package repository

import (
	"context"

	"storefront-backend/internal/domains/catalog/model"
)

// MemoryRepository serves a fixed product list
type MemoryRepository struct {
	products   []model.Product
	byID       map[string]int
	categories []model.Category
}

func NewMemoryRepository(products []model.Product, categories []model.Category) *MemoryRepository {
	r := &MemoryRepository{
		products:   make([]model.Product, len(products)),
		byID:       make(map[string]int, len(products)),
		categories: append([]model.Category(nil), categories...),
	}
	for i, p := range products {
		r.products[i] = p.Clone()
		r.byID[p.ID] = i
	}
	return r
}

// NewSeededRepository returns the storefront's default catalog
func NewSeededRepository() *MemoryRepository {
	return NewMemoryRepository(SeedProducts(), SeedCategories())
}

func (r *MemoryRepository) List(ctx context.Context) ([]model.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make([]model.Product, len(r.products))
	for i, p := range r.products {
		out[i] = p.Clone()
	}
	return out, nil
}

func (r *MemoryRepository) GetByID(ctx context.Context, id string) (*model.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	i, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	p := r.products[i].Clone()
	return &p, nil
}

func (r *MemoryRepository) Categories(ctx context.Context) ([]model.Category, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return append([]model.Category(nil), r.categories...), nil
}
