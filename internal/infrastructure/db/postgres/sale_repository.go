package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/farmapp/pharmacy-pos/internal/core/domain"
)

// SaleRepository persists sales and their line items in PostgreSQL.
type SaleRepository struct {
	pool *pgxpool.Pool
}

func NewSaleRepository(pool *pgxpool.Pool) *SaleRepository {
	return &SaleRepository{pool: pool}
}

// Create inserts the sale header and every item in a single transaction so a
// partial sale can never be observed.
func (r *SaleRepository) Create(ctx context.Context, sale *domain.Sale) (*domain.Sale, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	err = tx.QueryRow(ctx,
		`INSERT INTO sales (user_id, total_amount, payment_method, created_at)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id`,
		sale.UserID, sale.TotalAmount, sale.PaymentMethod, sale.CreatedAt,
	).Scan(&sale.ID)
	if err != nil {
		return nil, fmt.Errorf("insert sale: %w", err)
	}

	for i := range sale.Items {
		item := &sale.Items[i]
		err = tx.QueryRow(ctx,
			`INSERT INTO sale_items (sale_id, product_id, quantity, unit_price, subtotal)
			 VALUES ($1, $2, $3, $4, $5)
			 RETURNING id`,
			sale.ID, item.ProductID, item.Quantity, item.UnitPrice, item.Subtotal,
		).Scan(&item.ID)
		if err != nil {
			return nil, fmt.Errorf("insert sale item: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit sale: %w", err)
	}
	return sale, nil
}

// Recent returns the newest sales with the cashier's username joined in.
// Items are not loaded for the listing.
func (r *SaleRepository) Recent(ctx context.Context, limit int) ([]domain.Sale, error) {
	const query = `
		SELECT s.id, s.user_id, u.username, s.total_amount, s.payment_method, s.created_at
		FROM sales s
		JOIN users u ON u.id = s.user_id
		ORDER BY s.created_at DESC
		LIMIT $1`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list recent sales: %w", err)
	}
	defer rows.Close()

	var sales []domain.Sale
	for rows.Next() {
		var s domain.Sale
		if err := rows.Scan(&s.ID, &s.UserID, &s.Cashier, &s.TotalAmount, &s.PaymentMethod, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		sales = append(sales, s)
	}
	return sales, rows.Err()
}
