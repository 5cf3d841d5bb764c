package address

import "context"

type Repository interface {
	Insert(ctx context.Context, addr *Address) error
	Update(ctx context.Context, addr *Address) error
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*Address, error)
	ListByUser(ctx context.Context, userID string) ([]*Address, error)
	// FindDefault returns the user's default address or ErrNoDefault.
	FindDefault(ctx context.Context, userID string) (*Address, error)
	// SetDefault flips the default flag to the given address and clears it on
	// every other address of the same user as one atomic update. There is
	// never a window with zero or multiple defaults.
	SetDefault(ctx context.Context, userID, addressID string) error
}
