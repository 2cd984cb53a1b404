package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/farmapp/pharmacy-pos/internal/core/domain"
	"github.com/farmapp/pharmacy-pos/internal/core/ports"
)

const defaultRecentLimit = 10

// SaleService records completed transactions and lists recent ones.
type SaleService struct {
	repo   ports.SaleRepository
	logger zerolog.Logger
}

func NewSaleService(repo ports.SaleRepository, logger zerolog.Logger) *SaleService {
	return &SaleService{repo: repo, logger: logger}
}

// Record persists a sale and its items in one transaction. The total is
// computed server-side from the line items.
func (s *SaleService) Record(ctx context.Context, input ports.RecordSaleInput) (*domain.Sale, error) {
	if len(input.Items) == 0 {
		return nil, domain.ErrEmptySale
	}

	sale := &domain.Sale{
		UserID:        input.UserID,
		PaymentMethod: input.PaymentMethod,
		CreatedAt:     time.Now().UTC(),
	}
	for _, item := range input.Items {
		subtotal := float64(item.Quantity) * item.UnitPrice
		sale.Items = append(sale.Items, domain.SaleItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			Subtotal:  subtotal,
		})
		sale.TotalAmount += subtotal
	}

	created, err := s.repo.Create(ctx, sale)
	if err != nil {
		s.logger.Error().Err(err).Int64("user_id", input.UserID).Msg("failed to record sale")
		return nil, err
	}

	s.logger.Info().
		Int64("sale_id", created.ID).
		Int64("user_id", created.UserID).
		Float64("total", created.TotalAmount).
		Msg("sale recorded")

	return created, nil
}

func (s *SaleService) Recent(ctx context.Context, limit int) ([]domain.Sale, error) {
	if limit <= 0 {
		limit = defaultRecentLimit
	}
	return s.repo.Recent(ctx, limit)
}
