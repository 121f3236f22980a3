package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rachelperfumes/storefront/internal/domain/order"
)

const (
	insertOrderSQL = `INSERT INTO orders (perfume, flavour, quantity, address, birthday, total)
	VALUES ($1, $2, $3, $4, $5, $6)
	RETURNING id, created_at`

	listRecentOrdersSQL = `SELECT id, perfume, flavour, quantity, address, birthday, total, created_at
	FROM orders ORDER BY created_at DESC, id DESC LIMIT $1`
)

var _ order.Store = (*OrderRepository)(nil)

// OrderRepository implements order.Store backed by PostgreSQL. Identifiers
// come from a BIGSERIAL column, so concurrent inserts get unique, increasing
// IDs without any application-level locking.
type OrderRepository struct {
	pool *pgxpool.Pool
}

// NewOrderRepository returns an OrderRepository that uses the given pool.
func NewOrderRepository(pool *pgxpool.Pool) *OrderRepository {
	return &OrderRepository{pool: pool}
}

// Insert persists a new order row and fills in the server-assigned ID and
// creation timestamp.
func (r *OrderRepository) Insert(ctx context.Context, o *order.Order) error {
	err := r.pool.QueryRow(ctx, insertOrderSQL,
		o.Perfume, o.Flavour, o.Quantity, o.Address, o.Birthday, o.Total,
	).Scan(&o.ID, &o.CreatedAt)
	if err != nil {
		return fmt.Errorf("inserting order: %w", err)
	}
	return nil
}

// ListRecent returns up to limit orders, newest first.
func (r *OrderRepository) ListRecent(ctx context.Context, limit int) ([]order.Order, error) {
	rows, err := r.pool.Query(ctx, listRecentOrdersSQL, limit)
	if err != nil {
		return nil, fmt.Errorf("listing orders: %w", err)
	}
	return pgx.CollectRows(rows, scanOrder)
}

func scanOrder(row pgx.CollectableRow) (order.Order, error) {
	var o order.Order
	err := row.Scan(&o.ID, &o.Perfume, &o.Flavour, &o.Quantity, &o.Address, &o.Birthday, &o.Total, &o.CreatedAt)
	return o, err
}
