package ports

import (
	"context"

	"github.com/farmapp/pharmacy-pos/internal/core/domain"
)

// CategoryRepository defines the persistence contract for product categories.
// Listed categories include their product counts.
type CategoryRepository interface {
	List(ctx context.Context) ([]domain.Category, error)
	FindByID(ctx context.Context, id int64) (*domain.Category, error)
	Create(ctx context.Context, category *domain.Category) (*domain.Category, error)
	Update(ctx context.Context, category *domain.Category) (*domain.Category, error)
	Delete(ctx context.Context, id int64) error
	ProductCount(ctx context.Context, id int64) (int64, error)
}
