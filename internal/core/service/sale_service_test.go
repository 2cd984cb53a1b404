package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/farmapp/pharmacy-pos/internal/core/domain"
	"github.com/farmapp/pharmacy-pos/internal/core/ports"
)

type stubSaleRepo struct {
	sales  []domain.Sale
	nextID int64
}

func (r *stubSaleRepo) Create(_ context.Context, sale *domain.Sale) (*domain.Sale, error) {
	r.nextID++
	clone := *sale
	clone.ID = r.nextID
	r.sales = append(r.sales, clone)
	out := clone
	return &out, nil
}

func (r *stubSaleRepo) Recent(_ context.Context, limit int) ([]domain.Sale, error) {
	if limit > len(r.sales) {
		limit = len(r.sales)
	}
	out := make([]domain.Sale, 0, limit)
	for i := len(r.sales) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, r.sales[i])
	}
	return out, nil
}

func TestSaleService_Record(t *testing.T) {
	repo := &stubSaleRepo{}
	svc := NewSaleService(repo, zerolog.Nop())

	sale, err := svc.Record(context.Background(), ports.RecordSaleInput{
		UserID:        2,
		PaymentMethod: domain.PaymentCash,
		Items: []ports.SaleItemInput{
			{ProductID: 1, Quantity: 2, UnitPrice: 5.99},
			{ProductID: 4, Quantity: 1, UnitPrice: 3.50},
		},
	})
	if err != nil {
		t.Fatalf("record failed: %v", err)
	}

	if sale.TotalAmount != 2*5.99+3.50 {
		t.Fatalf("total computed wrong: %v", sale.TotalAmount)
	}
	if len(sale.Items) != 2 || sale.Items[0].Subtotal != 11.98 {
		t.Fatalf("unexpected items: %+v", sale.Items)
	}
	if sale.UserID != 2 {
		t.Fatalf("cashier not recorded: %+v", sale)
	}
}

func TestSaleService_Record_EmptySale(t *testing.T) {
	svc := NewSaleService(&stubSaleRepo{}, zerolog.Nop())

	_, err := svc.Record(context.Background(), ports.RecordSaleInput{UserID: 1, PaymentMethod: domain.PaymentCash})
	if !errors.Is(err, domain.ErrEmptySale) {
		t.Fatalf("expected ErrEmptySale, got %v", err)
	}
}

func TestSaleService_Recent_DefaultLimit(t *testing.T) {
	repo := &stubSaleRepo{}
	svc := NewSaleService(repo, zerolog.Nop())

	for i := 0; i < 15; i++ {
		if _, err := svc.Record(context.Background(), ports.RecordSaleInput{
			UserID:        1,
			PaymentMethod: domain.PaymentCash,
			Items:         []ports.SaleItemInput{{ProductID: 1, Quantity: 1, UnitPrice: 1}},
		}); err != nil {
			t.Fatalf("record failed: %v", err)
		}
	}

	recent, err := svc.Recent(context.Background(), 0)
	if err != nil {
		t.Fatalf("recent failed: %v", err)
	}
	if len(recent) != defaultRecentLimit {
		t.Fatalf("expected %d sales, got %d", defaultRecentLimit, len(recent))
	}
	if recent[0].ID != 15 {
		t.Fatalf("expected newest first, got id %d", recent[0].ID)
	}
}
