package ports

import (
	"context"

	"github.com/farmapp/pharmacy-pos/internal/core/domain"
)

// ProductRepository defines the persistence contract for inventory items.
// List and Search join the category name for display.
type ProductRepository interface {
	List(ctx context.Context) ([]domain.Product, error)
	Search(ctx context.Context, query string) ([]domain.Product, error)
	FindByID(ctx context.Context, id int64) (*domain.Product, error)
	Create(ctx context.Context, product *domain.Product) (*domain.Product, error)
	Update(ctx context.Context, product *domain.Product) (*domain.Product, error)
	Delete(ctx context.Context, id int64) error
}
