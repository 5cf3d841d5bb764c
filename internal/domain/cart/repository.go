package cart

import "context"

type Repository interface {
	Insert(ctx context.Context, c *Cart) error
	FindByUser(ctx context.Context, userID string) (*Cart, error)
	FindLineByID(ctx context.Context, lineID string) (*Line, error)
	// UpsertLine inserts the line or replaces the quantity of the existing
	// line for the same product.
	UpsertLine(ctx context.Context, line *Line) error
	DeleteLine(ctx context.Context, lineID string) error
	// Clear removes every line of the user's cart without deleting the cart.
	Clear(ctx context.Context, userID string) error
}
