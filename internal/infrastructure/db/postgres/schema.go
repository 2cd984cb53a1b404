package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/farmapp/pharmacy-pos/internal/core/domain"
)

// schema creates the tables in dependency order. Users referenced by sales
// cannot be deleted (no cascade on sales.user_id); categories may be removed
// out from under products (SET NULL) but the service layer refuses that
// while products remain.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            BIGSERIAL PRIMARY KEY,
		username      TEXT NOT NULL UNIQUE,
		email         TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		full_name     TEXT NOT NULL,
		role          TEXT NOT NULL CHECK (role IN ('administrator', 'employee')),
		created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at    TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS categories (
		id          BIGSERIAL PRIMARY KEY,
		name        TEXT NOT NULL UNIQUE,
		description TEXT NOT NULL DEFAULT '',
		created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS products (
		id          BIGSERIAL PRIMARY KEY,
		name        TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		category_id BIGINT REFERENCES categories(id) ON DELETE SET NULL,
		barcode     TEXT UNIQUE,
		price       NUMERIC(10,2) NOT NULL,
		cost_price  NUMERIC(10,2) NOT NULL DEFAULT 0,
		stock       INTEGER NOT NULL DEFAULT 0,
		created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at  TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS sales (
		id             BIGSERIAL PRIMARY KEY,
		user_id        BIGINT NOT NULL REFERENCES users(id),
		total_amount   NUMERIC(10,2) NOT NULL,
		payment_method TEXT NOT NULL CHECK (payment_method IN ('cash', 'credit_card', 'debit_card', 'transfer')),
		created_at     TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS sale_items (
		id         BIGSERIAL PRIMARY KEY,
		sale_id    BIGINT NOT NULL REFERENCES sales(id) ON DELETE CASCADE,
		product_id BIGINT NOT NULL REFERENCES products(id),
		quantity   INTEGER NOT NULL CHECK (quantity > 0),
		unit_price NUMERIC(10,2) NOT NULL,
		subtotal   NUMERIC(10,2) NOT NULL
	)`,
}

// Bootstrap creates the tables if they do not exist and seeds the initial
// administrator account when the users table is empty.
func Bootstrap(ctx context.Context, pool *pgxpool.Pool, logger zerolog.Logger) error {
	for _, stmt := range schema {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("create table: %w", err)
		}
	}

	var count int64
	if err := pool.QueryRow(ctx, `SELECT count(*) FROM users`).Scan(&count); err != nil {
		return fmt.Errorf("count users: %w", err)
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash seed password: %w", err)
	}

	_, err = pool.Exec(ctx,
		`INSERT INTO users (username, email, password_hash, full_name, role) VALUES ($1, $2, $3, $4, $5)`,
		"admin", "admin@farmacia.com", string(hash), "Administrador", domain.RoleAdministrator,
	)
	if err != nil {
		return fmt.Errorf("seed admin user: %w", err)
	}

	logger.Warn().Msg("seeded default administrator account, change its password")
	return nil
}
