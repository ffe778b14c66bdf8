package catalog

import (
	"context"
	"errors"

	"github.com/apper-canvas/quantum-marketpulse-ecommerce/internal/domain"
)

var ErrProductNotFound = errors.New("product not found")

// Catalog is the read-only product source the storefront consumes. Cart
// and order code never mutates it.
type Catalog interface {
	GetAll(ctx context.Context) ([]*domain.Product, error)
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
	GetByCategory(ctx context.Context, category string) ([]*domain.Product, error)
	Search(ctx context.Context, term string) ([]*domain.Product, error)
	GetFeatured(ctx context.Context, limit int) ([]*domain.Product, error)
	GetRelated(ctx context.Context, id int64, limit int) ([]*domain.Product, error)
}
