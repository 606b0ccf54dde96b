package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
)

const (
	defaultConnTimeout     = 5 * time.Second
	defaultMaxOpenConns    = 25
	defaultMaxIdleConns    = 25
	defaultConnMaxLifetime = 30 * time.Minute
	defaultConnMaxIdleTime = 5 * time.Minute
)

// Store оборачивает SQL-подключение к PostgreSQL.
type Store struct {
	db *sql.DB
}

// Open открывает подключение к PostgreSQL и проверяет доступность базы.
func Open(ctx context.Context, dsn string) (*Store, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres connection: %w", err)
	}
	db.SetMaxOpenConns(defaultMaxOpenConns)
	db.SetMaxIdleConns(defaultMaxIdleConns)
	db.SetConnMaxLifetime(defaultConnMaxLifetime)
	db.SetConnMaxIdleTime(defaultConnMaxIdleTime)

	pingCtx, cancel := context.WithTimeout(ctx, defaultConnTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	return &Store{db: db}, nil
}

// DB возвращает raw SQL DB, когда нужен низкоуровневый доступ.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Ping проверяет доступность подключения.
func (s *Store) Ping(ctx context.Context) error {
	if s == nil || s.db == nil {
		return fmt.Errorf("postgres store is not initialized")
	}

	pingCtx, cancel := context.WithTimeout(ctx, defaultConnTimeout)
	defer cancel()
	return s.db.PingContext(pingCtx)
}

// EnsureSchema идемпотентно создаёт таблицы заказов.
func (s *Store) EnsureSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS orders (
			id                     TEXT PRIMARY KEY,
			customer_id            TEXT NOT NULL,
			customer_name          TEXT NOT NULL DEFAULT '',
			customer_email         TEXT NOT NULL,
			shipping_address       TEXT NOT NULL,
			order_type             TEXT NOT NULL,
			status                 TEXT NOT NULL,
			subtotal               NUMERIC(18,6) NOT NULL DEFAULT 0,
			discount_amount        NUMERIC(18,6) NOT NULL DEFAULT 0,
			tax_amount             NUMERIC(18,6) NOT NULL DEFAULT 0,
			shipping_cost          NUMERIC(18,6) NOT NULL DEFAULT 0,
			total                  NUMERIC(18,6) NOT NULL DEFAULT 0,
			carrier                TEXT NOT NULL DEFAULT '',
			tracking_number        TEXT NOT NULL DEFAULT '',
			payment_method         TEXT,
			payment_transaction_id TEXT,
			payment_amount         NUMERIC(18,6),
			payment_processed      BOOLEAN,
			order_date             TIMESTAMPTZ NOT NULL,
			shipped_date           TIMESTAMPTZ,
			updated_at             TIMESTAMPTZ NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS order_items (
			order_id     TEXT NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
			position     INT NOT NULL,
			product_id   TEXT NOT NULL,
			product_name TEXT NOT NULL,
			quantity     INT NOT NULL,
			unit_price   NUMERIC(18,6) NOT NULL,
			PRIMARY KEY (order_id, position)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_orders_customer_id ON orders (customer_id)`,
	}

	for _, stmt := range statements {
		execCtx, cancel := context.WithTimeout(ctx, defaultConnTimeout)
		_, err := s.db.ExecContext(execCtx, stmt)
		cancel()
		if err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}

// Close закрывает подключение к БД.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
