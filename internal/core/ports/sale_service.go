package ports

import (
	"context"

	"github.com/farmapp/pharmacy-pos/internal/core/domain"
)

// SaleItemInput is one line of a recorded sale.
type SaleItemInput struct {
	ProductID int64
	Quantity  int
	UnitPrice float64
}

// RecordSaleInput captures a completed transaction. UserID is taken from the
// authenticated identity, never from the request body.
type RecordSaleInput struct {
	UserID        int64
	PaymentMethod string
	Items         []SaleItemInput
}

type SaleService interface {
	Record(ctx context.Context, input RecordSaleInput) (*domain.Sale, error)
	Recent(ctx context.Context, limit int) ([]domain.Sale, error)
}
