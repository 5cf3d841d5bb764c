package postgres

import (
	"context"
	"errors"
	"fmt"

	domain "github.com/cartella-shop/fulfillment/internal/domain/cart"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CartRepository struct {
	db *pgxpool.Pool
}

func NewCartRepository(db *pgxpool.Pool) *CartRepository {
	return &CartRepository{db: db}
}

func (r *CartRepository) Insert(ctx context.Context, c *domain.Cart) error {
	_, err := from(ctx, r.db).Exec(ctx, `
		INSERT INTO carts (id, user_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4)
	`, c.ID, c.UserID, c.CreatedAt, c.UpdatedAt)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation on user_id
		return domain.ErrAlreadyExists
	}
	if err != nil {
		return fmt.Errorf("postgres: insert cart: %w", err)
	}
	return nil
}

func (r *CartRepository) FindByUser(ctx context.Context, userID string) (*domain.Cart, error) {
	q := from(ctx, r.db)

	var c domain.Cart
	err := q.QueryRow(ctx, `
		SELECT id, user_id, created_at, updated_at FROM carts WHERE user_id = $1
	`, userID).Scan(&c.ID, &c.UserID, &c.CreatedAt, &c.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("postgres: find cart: %w", err)
	}

	rows, err := q.Query(ctx, `
		SELECT id, cart_id, product_id, quantity FROM cart_lines WHERE cart_id = $1 ORDER BY id
	`, c.ID)
	if err != nil {
		return nil, fmt.Errorf("postgres: list cart lines: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var l domain.Line
		if err := rows.Scan(&l.ID, &l.CartID, &l.ProductID, &l.Quantity); err != nil {
			return nil, fmt.Errorf("postgres: scan cart line: %w", err)
		}
		c.Lines = append(c.Lines, &l)
	}
	return &c, rows.Err()
}

func (r *CartRepository) FindLineByID(ctx context.Context, lineID string) (*domain.Line, error) {
	var l domain.Line
	err := from(ctx, r.db).QueryRow(ctx, `
		SELECT id, cart_id, product_id, quantity FROM cart_lines WHERE id = $1
	`, lineID).Scan(&l.ID, &l.CartID, &l.ProductID, &l.Quantity)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrLineNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("postgres: find cart line: %w", err)
	}
	return &l, nil
}

// UpsertLine relies on the (cart_id, product_id) unique constraint, so the
// merge-by-product rule holds even under concurrent adds.
func (r *CartRepository) UpsertLine(ctx context.Context, line *domain.Line) error {
	_, err := from(ctx, r.db).Exec(ctx, `
		INSERT INTO cart_lines (id, cart_id, product_id, quantity)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (cart_id, product_id) DO UPDATE SET quantity = EXCLUDED.quantity
	`, line.ID, line.CartID, line.ProductID, line.Quantity)
	if err != nil {
		return fmt.Errorf("postgres: upsert cart line: %w", err)
	}
	return nil
}

func (r *CartRepository) DeleteLine(ctx context.Context, lineID string) error {
	tag, err := from(ctx, r.db).Exec(ctx, `DELETE FROM cart_lines WHERE id = $1`, lineID)
	if err != nil {
		return fmt.Errorf("postgres: delete cart line: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrLineNotFound
	}
	return nil
}

func (r *CartRepository) Clear(ctx context.Context, userID string) error {
	_, err := from(ctx, r.db).Exec(ctx, `
		DELETE FROM cart_lines
		USING carts
		WHERE cart_lines.cart_id = carts.id AND carts.user_id = $1
	`, userID)
	if err != nil {
		return fmt.Errorf("postgres: clear cart: %w", err)
	}
	return nil
}
