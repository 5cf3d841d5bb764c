package order

import "context"

type Repository interface {
	// Insert persists the order together with its lines.
	Insert(ctx context.Context, o *Order) error
	Update(ctx context.Context, o *Order) error
	FindByID(ctx context.Context, id string) (*Order, error)
	ListByUser(ctx context.Context, userID string) ([]*Order, error)
	// ListByVendor returns orders containing at least one line whose product
	// belongs to the given vendor.
	ListByVendor(ctx context.Context, vendorID string) ([]*Order, error)
}
