package domain

import (
	"errors"
	"time"
)

var (
	ErrCategoryNotFound = errors.New("category not found")
	ErrCategoryExists   = errors.New("category already exists")
	ErrCategoryInUse    = errors.New("category has associated products")
)

// Category groups products for the inventory views.
type Category struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	// ProductCount is derived at query time, never stored.
	ProductCount int64     `json:"product_count"`
	CreatedAt    time.Time `json:"created_at"`
}
