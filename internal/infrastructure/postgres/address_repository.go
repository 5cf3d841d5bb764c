package postgres

import (
	"context"
	"errors"
	"fmt"

	domain "github.com/cartella-shop/fulfillment/internal/domain/address"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type AddressRepository struct {
	db *pgxpool.Pool
}

func NewAddressRepository(db *pgxpool.Pool) *AddressRepository {
	return &AddressRepository{db: db}
}

const addressColumns = `id, user_id, street, city, state, postal_code, country, is_default, created_at, updated_at`

func scanAddress(row pgx.Row) (*domain.Address, error) {
	var a domain.Address
	err := row.Scan(&a.ID, &a.UserID, &a.Street, &a.City, &a.State, &a.PostalCode,
		&a.Country, &a.IsDefault, &a.CreatedAt, &a.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("postgres: scan address: %w", err)
	}
	return &a, nil
}

func (r *AddressRepository) Insert(ctx context.Context, addr *domain.Address) error {
	_, err := from(ctx, r.db).Exec(ctx, `
		INSERT INTO addresses (`+addressColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`, addr.ID, addr.UserID, addr.Street, addr.City, addr.State, addr.PostalCode,
		addr.Country, addr.IsDefault, addr.CreatedAt, addr.UpdatedAt)
	if err != nil {
		return fmt.Errorf("postgres: insert address: %w", err)
	}
	return nil
}

func (r *AddressRepository) Update(ctx context.Context, addr *domain.Address) error {
	tag, err := from(ctx, r.db).Exec(ctx, `
		UPDATE addresses
		SET street = $2, city = $3, state = $4, postal_code = $5, country = $6, updated_at = $7
		WHERE id = $1
	`, addr.ID, addr.Street, addr.City, addr.State, addr.PostalCode, addr.Country, addr.UpdatedAt)
	if err != nil {
		return fmt.Errorf("postgres: update address: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *AddressRepository) Delete(ctx context.Context, id string) error {
	tag, err := from(ctx, r.db).Exec(ctx, `DELETE FROM addresses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("postgres: delete address: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *AddressRepository) FindByID(ctx context.Context, id string) (*domain.Address, error) {
	row := from(ctx, r.db).QueryRow(ctx, `SELECT `+addressColumns+` FROM addresses WHERE id = $1`, id)
	return scanAddress(row)
}

func (r *AddressRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Address, error) {
	rows, err := from(ctx, r.db).Query(ctx, `
		SELECT `+addressColumns+` FROM addresses WHERE user_id = $1 ORDER BY created_at
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("postgres: list addresses: %w", err)
	}
	defer rows.Close()

	var out []*domain.Address
	for rows.Next() {
		a, err := scanAddress(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *AddressRepository) FindDefault(ctx context.Context, userID string) (*domain.Address, error) {
	row := from(ctx, r.db).QueryRow(ctx, `
		SELECT `+addressColumns+` FROM addresses WHERE user_id = $1 AND is_default
	`, userID)
	a, err := scanAddress(row)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.ErrNoDefault
	}
	return a, err
}

// SetDefault demotes the old default and promotes the new one inside a single
// transaction, in that order: the partial unique index allows at most one
// default per user at any point. Runs in the ambient transaction when there is
// one, otherwise opens its own.
func (r *AddressRepository) SetDefault(ctx context.Context, userID, addressID string) error {
	if tx, ok := ctx.Value(txKey{}).(pgx.Tx); ok {
		return setDefault(ctx, tx, userID, addressID)
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("postgres: begin: %w", err)
	}
	if err := setDefault(ctx, tx, userID, addressID); err != nil {
		_ = tx.Rollback(ctx)
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("postgres: commit: %w", err)
	}
	return nil
}

func setDefault(ctx context.Context, q querier, userID, addressID string) error {
	_, err := q.Exec(ctx, `
		UPDATE addresses
		SET is_default = false, updated_at = now()
		WHERE user_id = $1 AND is_default AND id <> $2
	`, userID, addressID)
	if err != nil {
		return fmt.Errorf("postgres: clear default address: %w", err)
	}

	tag, err := q.Exec(ctx, `
		UPDATE addresses
		SET is_default = true, updated_at = now()
		WHERE id = $2 AND user_id = $1
	`, userID, addressID)
	if err != nil {
		return fmt.Errorf("postgres: set default address: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
