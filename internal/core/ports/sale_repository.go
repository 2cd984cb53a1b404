package ports

import (
	"context"

	"github.com/farmapp/pharmacy-pos/internal/core/domain"
)

// SaleRepository defines the persistence contract for sales. Create inserts
// the sale and all of its items atomically.
type SaleRepository interface {
	Create(ctx context.Context, sale *domain.Sale) (*domain.Sale, error)
	Recent(ctx context.Context, limit int) ([]domain.Sale, error)
}
