package postgres

import (
	"context"
	"errors"
	"fmt"

	domain "github.com/cartella-shop/fulfillment/internal/domain/order"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type OrderRepository struct {
	db *pgxpool.Pool
}

func NewOrderRepository(db *pgxpool.Pool) *OrderRepository {
	return &OrderRepository{db: db}
}

// Insert persists the order together with its lines. Callers run it inside
// the checkout transaction so the order and its reservations commit together.
func (r *OrderRepository) Insert(ctx context.Context, o *domain.Order) error {
	q := from(ctx, r.db)

	_, err := q.Exec(ctx, `
		INSERT INTO orders (id, user_id, address_id, total_amount, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, o.ID, o.UserID, o.AddressID, o.TotalAmount, string(o.Status), o.CreatedAt, o.UpdatedAt)
	if err != nil {
		return fmt.Errorf("postgres: insert order: %w", err)
	}

	for _, l := range o.Lines {
		_, err := q.Exec(ctx, `
			INSERT INTO order_lines (id, order_id, product_id, quantity, price_at_time_of_order)
			VALUES ($1, $2, $3, $4, $5)
		`, l.ID, l.OrderID, l.ProductID, l.Quantity, l.PriceAtTimeOfOrder)
		if err != nil {
			return fmt.Errorf("postgres: insert order line: %w", err)
		}
	}
	return nil
}

// Update only touches the mutable columns; lines are immutable after creation.
func (r *OrderRepository) Update(ctx context.Context, o *domain.Order) error {
	tag, err := from(ctx, r.db).Exec(ctx, `
		UPDATE orders SET status = $2, updated_at = $3 WHERE id = $1
	`, o.ID, string(o.Status), o.UpdatedAt)
	if err != nil {
		return fmt.Errorf("postgres: update order: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *OrderRepository) FindByID(ctx context.Context, id string) (*domain.Order, error) {
	q := from(ctx, r.db)

	var (
		o      domain.Order
		status string
	)
	err := q.QueryRow(ctx, `
		SELECT id, user_id, address_id, total_amount, status, created_at, updated_at
		FROM orders WHERE id = $1
	`, id).Scan(&o.ID, &o.UserID, &o.AddressID, &o.TotalAmount, &status, &o.CreatedAt, &o.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("postgres: find order: %w", err)
	}
	o.Status = domain.Status(status)

	if err := r.attachLines(ctx, q, &o); err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *OrderRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Order, error) {
	return r.list(ctx, `
		SELECT id, user_id, address_id, total_amount, status, created_at, updated_at
		FROM orders WHERE user_id = $1 ORDER BY created_at
	`, userID)
}

// ListByVendor is the derived vendor view: orders with at least one line whose
// product belongs to the vendor.
func (r *OrderRepository) ListByVendor(ctx context.Context, vendorID string) ([]*domain.Order, error) {
	return r.list(ctx, `
		SELECT DISTINCT o.id, o.user_id, o.address_id, o.total_amount, o.status, o.created_at, o.updated_at
		FROM orders o
		JOIN order_lines ol ON ol.order_id = o.id
		JOIN products p ON p.id = ol.product_id
		WHERE p.vendor_id = $1
		ORDER BY o.created_at
	`, vendorID)
}

func (r *OrderRepository) list(ctx context.Context, sql string, arg any) ([]*domain.Order, error) {
	q := from(ctx, r.db)

	rows, err := q.Query(ctx, sql, arg)
	if err != nil {
		return nil, fmt.Errorf("postgres: list orders: %w", err)
	}
	defer rows.Close()

	var out []*domain.Order
	for rows.Next() {
		var (
			o      domain.Order
			status string
		)
		if err := rows.Scan(&o.ID, &o.UserID, &o.AddressID, &o.TotalAmount, &status, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, fmt.Errorf("postgres: scan order: %w", err)
		}
		o.Status = domain.Status(status)
		out = append(out, &o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, o := range out {
		if err := r.attachLines(ctx, q, o); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (r *OrderRepository) attachLines(ctx context.Context, q querier, o *domain.Order) error {
	rows, err := q.Query(ctx, `
		SELECT id, order_id, product_id, quantity, price_at_time_of_order
		FROM order_lines WHERE order_id = $1 ORDER BY id
	`, o.ID)
	if err != nil {
		return fmt.Errorf("postgres: list order lines: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var l domain.Line
		if err := rows.Scan(&l.ID, &l.OrderID, &l.ProductID, &l.Quantity, &l.PriceAtTimeOfOrder); err != nil {
			return fmt.Errorf("postgres: scan order line: %w", err)
		}
		o.Lines = append(o.Lines, &l)
	}
	return rows.Err()
}
