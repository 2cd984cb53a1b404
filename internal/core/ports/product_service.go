package ports

import (
	"context"

	"github.com/farmapp/pharmacy-pos/internal/core/domain"
)

// ProductInput carries the writable fields of a product for create/update.
type ProductInput struct {
	Name        string
	Description string
	CategoryID  *int64
	Barcode     string
	Price       float64
	CostPrice   float64
	Stock       int
}

type ProductService interface {
	List(ctx context.Context) ([]domain.Product, error)
	Search(ctx context.Context, query string) ([]domain.Product, error)
	Get(ctx context.Context, id int64) (*domain.Product, error)
	Create(ctx context.Context, input ProductInput) (*domain.Product, error)
	Update(ctx context.Context, id int64, input ProductInput) (*domain.Product, error)
	Delete(ctx context.Context, id int64) error
}
