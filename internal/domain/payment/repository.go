package payment

import "context"

type Repository interface {
	Insert(ctx context.Context, p *Payment) error
	Update(ctx context.Context, p *Payment) error
	FindByID(ctx context.Context, id string) (*Payment, error)
	FindBySessionID(ctx context.Context, sessionID string) (*Payment, error)
	// FindByOrderID returns at most one payment; ErrNotFound when the order
	// has no payment attached.
	FindByOrderID(ctx context.Context, orderID string) (*Payment, error)
	ListByUser(ctx context.Context, userID string) ([]*Payment, error)
}
