package database

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

type CreateOrderParams struct {
	CustomerName    string
	CustomerPhone   string
	CustomerAddress string
	CustomerNotes   pgtype.Text
	ProductName     string
	ProductPrice    pgtype.Numeric
}

const createOrder = `
INSERT INTO orders (customer_name, customer_phone, customer_address, customer_notes, status, product_name, product_price)
VALUES ($1, $2, $3, $4, 'NEW', $5, $6)
RETURNING id, customer_name, customer_phone, customer_address, customer_notes, status, product_name, product_price, created_at, updated_at
`

// CreateOrder inserts a new order. Status is always forced to NEW; the
// caller stamps product name/price from the canonical active product.
func (q *Queries) CreateOrder(ctx context.Context, arg CreateOrderParams) (Order, error) {
	row := q.db.QueryRow(ctx, createOrder,
		arg.CustomerName,
		arg.CustomerPhone,
		arg.CustomerAddress,
		arg.CustomerNotes,
		arg.ProductName,
		arg.ProductPrice,
	)
	return scanOrder(row)
}

const listOrders = `
SELECT id, customer_name, customer_phone, customer_address, customer_notes, status, product_name, product_price, created_at, updated_at
FROM orders
ORDER BY created_at DESC
`

// ListOrders returns all orders, newest first.
func (q *Queries) ListOrders(ctx context.Context) ([]Order, error) {
	rows, err := q.db.Query(ctx, listOrders)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

const getOrder = `
SELECT id, customer_name, customer_phone, customer_address, customer_notes, status, product_name, product_price, created_at, updated_at
FROM orders
WHERE id = $1
`

func (q *Queries) GetOrder(ctx context.Context, id uuid.UUID) (Order, error) {
	return scanOrder(q.db.QueryRow(ctx, getOrder, id))
}

type UpdateOrderStatusParams struct {
	ID     uuid.UUID
	Status string
}

const updateOrderStatus = `
UPDATE orders
SET status = $2, updated_at = NOW()
WHERE id = $1
RETURNING id, customer_name, customer_phone, customer_address, customer_notes, status, product_name, product_price, created_at, updated_at
`

// UpdateOrderStatus sets the order status and stamps updated_at.
// Returns pgx.ErrNoRows when the id does not exist.
func (q *Queries) UpdateOrderStatus(ctx context.Context, arg UpdateOrderStatusParams) (Order, error) {
	return scanOrder(q.db.QueryRow(ctx, updateOrderStatus, arg.ID, arg.Status))
}

const deleteOrder = `
DELETE FROM orders WHERE id = $1
`

// DeleteOrder permanently removes an order (no soft delete).
// Returns pgx.ErrNoRows when the id does not exist.
func (q *Queries) DeleteOrder(ctx context.Context, id uuid.UUID) error {
	tag, err := q.db.Exec(ctx, deleteOrder, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func scanOrder(row pgx.Row) (Order, error) {
	var o Order
	err := row.Scan(
		&o.ID,
		&o.CustomerName,
		&o.CustomerPhone,
		&o.CustomerAddress,
		&o.CustomerNotes,
		&o.Status,
		&o.ProductName,
		&o.ProductPrice,
		&o.CreatedAt,
		&o.UpdatedAt,
	)
	return o, err
}
