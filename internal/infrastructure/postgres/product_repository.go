package postgres

import (
	"context"
	"errors"
	"fmt"

	domain "github.com/cartella-shop/fulfillment/internal/domain/product"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ProductRepository struct {
	db *pgxpool.Pool
}

func NewProductRepository(db *pgxpool.Pool) *ProductRepository {
	return &ProductRepository{db: db}
}

func (r *ProductRepository) FindByID(ctx context.Context, id string) (*domain.Product, error) {
	var p domain.Product
	err := from(ctx, r.db).QueryRow(ctx, `
		SELECT id, vendor_id, name, description, price, stock_quantity, updated_at
		FROM products WHERE id = $1
	`, id).Scan(&p.ID, &p.VendorID, &p.Name, &p.Description, &p.Price, &p.StockQuantity, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("postgres: find product: %w", err)
	}
	return &p, nil
}

// Reserve is a single conditional decrement, never read-then-compare-then-
// write: two concurrent checkouts cannot both slip past the floor check.
func (r *ProductRepository) Reserve(ctx context.Context, id string, quantity int) error {
	if quantity <= 0 {
		return domain.ErrInvalidQuantity
	}

	q := from(ctx, r.db)
	tag, err := q.Exec(ctx, `
		UPDATE products
		SET stock_quantity = stock_quantity - $2, updated_at = now()
		WHERE id = $1 AND stock_quantity >= $2
	`, id, quantity)
	if err != nil {
		return fmt.Errorf("postgres: reserve stock: %w", err)
	}
	if tag.RowsAffected() > 0 {
		return nil
	}

	// Distinguish an unknown product from an insufficient one.
	var (
		name      string
		available int
	)
	err = q.QueryRow(ctx, `SELECT name, stock_quantity FROM products WHERE id = $1`, id).
		Scan(&name, &available)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("postgres: reserve stock: %w", err)
	}
	return &domain.InsufficientStockError{ProductName: name, Available: available}
}

func (r *ProductRepository) Release(ctx context.Context, id string, quantity int) error {
	if quantity <= 0 {
		return domain.ErrInvalidQuantity
	}

	tag, err := from(ctx, r.db).Exec(ctx, `
		UPDATE products
		SET stock_quantity = stock_quantity + $2, updated_at = now()
		WHERE id = $1
	`, id, quantity)
	if err != nil {
		return fmt.Errorf("postgres: release stock: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
