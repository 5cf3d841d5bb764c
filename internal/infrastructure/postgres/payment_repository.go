package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	domain "github.com/cartella-shop/fulfillment/internal/domain/payment"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PaymentRepository struct {
	db *pgxpool.Pool
}

func NewPaymentRepository(db *pgxpool.Pool) *PaymentRepository {
	return &PaymentRepository{db: db}
}

const paymentColumns = `id, user_id, order_id, amount, currency, session_id, status, created_at, updated_at`

func scanPayment(row pgx.Row) (*domain.Payment, error) {
	var (
		p       domain.Payment
		orderID sql.NullString
		status  string
	)
	err := row.Scan(&p.ID, &p.UserID, &orderID, &p.Amount, &p.Currency,
		&p.SessionID, &status, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("postgres: scan payment: %w", err)
	}
	p.OrderID = orderID.String
	p.Status = domain.Status(status)
	return &p, nil
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func (r *PaymentRepository) Insert(ctx context.Context, p *domain.Payment) error {
	_, err := from(ctx, r.db).Exec(ctx, `
		INSERT INTO payments (`+paymentColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, p.ID, p.UserID, nullable(p.OrderID), p.Amount, p.Currency,
		p.SessionID, string(p.Status), p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("postgres: insert payment: %w", err)
	}
	return nil
}

func (r *PaymentRepository) Update(ctx context.Context, p *domain.Payment) error {
	tag, err := from(ctx, r.db).Exec(ctx, `
		UPDATE payments SET order_id = $2, status = $3, updated_at = $4 WHERE id = $1
	`, p.ID, nullable(p.OrderID), string(p.Status), p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("postgres: update payment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PaymentRepository) FindByID(ctx context.Context, id string) (*domain.Payment, error) {
	row := from(ctx, r.db).QueryRow(ctx, `SELECT `+paymentColumns+` FROM payments WHERE id = $1`, id)
	return scanPayment(row)
}

func (r *PaymentRepository) FindBySessionID(ctx context.Context, sessionID string) (*domain.Payment, error) {
	row := from(ctx, r.db).QueryRow(ctx, `SELECT `+paymentColumns+` FROM payments WHERE session_id = $1`, sessionID)
	return scanPayment(row)
}

func (r *PaymentRepository) FindByOrderID(ctx context.Context, orderID string) (*domain.Payment, error) {
	row := from(ctx, r.db).QueryRow(ctx, `SELECT `+paymentColumns+` FROM payments WHERE order_id = $1`, orderID)
	return scanPayment(row)
}

func (r *PaymentRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Payment, error) {
	rows, err := from(ctx, r.db).Query(ctx, `
		SELECT `+paymentColumns+` FROM payments WHERE user_id = $1 ORDER BY created_at
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("postgres: list payments: %w", err)
	}
	defer rows.Close()

	var out []*domain.Payment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
