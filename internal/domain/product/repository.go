package product

import "context"

// Repository is the inventory ledger port. Reserve and Release must be applied
// atomically with the order writes that accompany them, so implementations are
// expected to honor a transaction carried in the context.
type Repository interface {
	FindByID(ctx context.Context, id string) (*Product, error)
	// Reserve decrements stock by quantity, failing with ErrInsufficientStock
	// when quantity exceeds the current stock. The check and the decrement are
	// a single conditional update, never read-then-write.
	Reserve(ctx context.Context, id string, quantity int) error
	// Release increments stock by quantity. It fails only on unknown ids or
	// non-positive quantities.
	Release(ctx context.Context, id string, quantity int) error
}
