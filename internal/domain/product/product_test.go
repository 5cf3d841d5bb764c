package product

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReserve(t *testing.T) {
	p := &Product{ID: "p1", Name: "Keyboard", Price: decimal.NewFromInt(10), StockQuantity: 3}

	require.NoError(t, p.Reserve(2))
	assert.Equal(t, 1, p.StockQuantity)

	err := p.Reserve(2)
	require.ErrorIs(t, err, ErrInsufficientStock)
	assert.Equal(t, 1, p.StockQuantity, "failed reserve must not change stock")

	var stockErr *InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, "Keyboard", stockErr.ProductName)
	assert.Equal(t, 1, stockErr.Available)
}

func TestReserveInvalidQuantity(t *testing.T) {
	p := &Product{ID: "p1", StockQuantity: 3}

	assert.ErrorIs(t, p.Reserve(0), ErrInvalidQuantity)
	assert.ErrorIs(t, p.Reserve(-1), ErrInvalidQuantity)
	assert.Equal(t, 3, p.StockQuantity)
}

func TestRelease(t *testing.T) {
	p := &Product{ID: "p1", StockQuantity: 1}

	require.NoError(t, p.Release(2))
	assert.Equal(t, 3, p.StockQuantity)

	assert.ErrorIs(t, p.Release(0), ErrInvalidQuantity)
}
