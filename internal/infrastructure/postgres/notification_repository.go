package postgres

import (
	"context"
	"errors"
	"fmt"

	domain "github.com/cartella-shop/fulfillment/internal/domain/notification"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type NotificationRepository struct {
	db *pgxpool.Pool
}

func NewNotificationRepository(db *pgxpool.Pool) *NotificationRepository {
	return &NotificationRepository{db: db}
}

func (r *NotificationRepository) Insert(ctx context.Context, n *domain.Notification) error {
	_, err := from(ctx, r.db).Exec(ctx, `
		INSERT INTO notifications (id, user_id, message, is_read, metadata, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, n.ID, n.UserID, n.Message, n.IsRead, n.Metadata, n.CreatedAt)
	if err != nil {
		return fmt.Errorf("postgres: insert notification: %w", err)
	}
	return nil
}

func (r *NotificationRepository) Update(ctx context.Context, n *domain.Notification) error {
	tag, err := from(ctx, r.db).Exec(ctx, `
		UPDATE notifications SET is_read = $2, metadata = $3 WHERE id = $1
	`, n.ID, n.IsRead, n.Metadata)
	if err != nil {
		return fmt.Errorf("postgres: update notification: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *NotificationRepository) Delete(ctx context.Context, id string) error {
	tag, err := from(ctx, r.db).Exec(ctx, `DELETE FROM notifications WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("postgres: delete notification: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *NotificationRepository) FindByID(ctx context.Context, id string) (*domain.Notification, error) {
	var n domain.Notification
	err := from(ctx, r.db).QueryRow(ctx, `
		SELECT id, user_id, message, is_read, metadata, created_at
		FROM notifications WHERE id = $1
	`, id).Scan(&n.ID, &n.UserID, &n.Message, &n.IsRead, &n.Metadata, &n.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("postgres: find notification: %w", err)
	}
	return &n, nil
}

func (r *NotificationRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Notification, error) {
	rows, err := from(ctx, r.db).Query(ctx, `
		SELECT id, user_id, message, is_read, metadata, created_at
		FROM notifications WHERE user_id = $1 ORDER BY created_at
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("postgres: list notifications: %w", err)
	}
	defer rows.Close()

	var out []*domain.Notification
	for rows.Next() {
		var n domain.Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.Message, &n.IsRead, &n.Metadata, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("postgres: scan notification: %w", err)
		}
		out = append(out, &n)
	}
	return out, rows.Err()
}
