package ports

import (
	"context"

	"github.com/farmapp/pharmacy-pos/internal/core/domain"
)

// CategoryInput carries the writable fields of a category.
type CategoryInput struct {
	Name        string
	Description string
}

type CategoryService interface {
	List(ctx context.Context) ([]domain.Category, error)
	Create(ctx context.Context, input CategoryInput) (*domain.Category, error)
	Update(ctx context.Context, id int64, input CategoryInput) (*domain.Category, error)
	Delete(ctx context.Context, id int64) error
}
