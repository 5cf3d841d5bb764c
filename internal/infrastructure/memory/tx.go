package memory

import (
	"context"
	"sync"
)

// TxManager serializes multi-aggregate operations with one mutex. The map
// repositories cannot roll back, so callers are expected to validate before
// mutating; exclusive execution makes that validation authoritative.
type TxManager struct {
	mu sync.Mutex
}

func NewTxManager() *TxManager {
	return &TxManager{}
}

func (m *TxManager) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}
	return fn(ctx)
}
