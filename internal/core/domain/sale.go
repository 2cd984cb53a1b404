package domain

import (
	"errors"
	"time"
)

var (
	ErrSaleNotFound = errors.New("sale not found")
	ErrEmptySale    = errors.New("sale has no items")
)

// Payment methods accepted at the counter.
const (
	PaymentCash       = "cash"
	PaymentCreditCard = "credit_card"
	PaymentDebitCard  = "debit_card"
	PaymentTransfer   = "transfer"
)

// SaleItem is one line of a sale, priced at the moment of purchase.
type SaleItem struct {
	ID        int64   `json:"id"`
	ProductID int64   `json:"product_id"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
	Subtotal  float64 `json:"subtotal"`
}

// Sale is a completed transaction recorded by a cashier. The cashier user is
// referenced by user ID; the database restricts deleting users that still
// appear here.
type Sale struct {
	ID            int64      `json:"id"`
	UserID        int64      `json:"user_id"`
	Cashier       string     `json:"cashier,omitempty"`
	TotalAmount   float64    `json:"total_amount"`
	PaymentMethod string     `json:"payment_method"`
	Items         []SaleItem `json:"items,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}
