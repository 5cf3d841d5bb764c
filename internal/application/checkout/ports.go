package checkout

import "context"

type IDGenerator interface {
	NewID() string
}

// TxManager runs fn inside one atomic transaction against the durable store.
// Repositories called with the ctx passed to fn must participate in that
// transaction; an error from fn rolls everything back.
type TxManager interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}
