package repository

import (
	"context"

	"storefront-backend/internal/domains/catalog/model"
)

// RepositoryInterface defines read access to the catalog
type RepositoryInterface interface {
	// List returns every product in catalog order
	List(ctx context.Context) ([]model.Product, error)

	// GetByID returns nil when the product does not exist
	GetByID(ctx context.Context, id string) (*model.Product, error)

	Categories(ctx context.Context) ([]model.Category, error)
}
