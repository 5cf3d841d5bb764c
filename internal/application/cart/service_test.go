package cart_test

import (
	"context"
	"fmt"
	"testing"

	appcart "github.com/cartella-shop/fulfillment/internal/application/cart"
	domcart "github.com/cartella-shop/fulfillment/internal/domain/cart"
	domproduct "github.com/cartella-shop/fulfillment/internal/domain/product"
	"github.com/cartella-shop/fulfillment/internal/infrastructure/id"
	"github.com/cartella-shop/fulfillment/internal/infrastructure/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCartService(t *testing.T) (*appcart.Service, *memory.ProductRepository) {
	t.Helper()
	products := memory.NewProductRepository()
	svc := appcart.NewService(memory.NewCartRepository(), products, id.NewUUIDGenerator())
	return svc, products
}

func seed(products *memory.ProductRepository, productID string, stock int) {
	products.Seed(&domproduct.Product{
		ID:            productID,
		VendorID:      "v1",
		Name:          "Widget",
		Price:         decimal.NewFromInt(5),
		StockQuantity: stock,
	})
}

func TestGetOrCreate(t *testing.T) {
	ctx := context.Background()
	svc, _ := newCartService(t)

	first, err := svc.GetOrCreate(ctx, "u1")
	require.NoError(t, err)
	assert.True(t, first.IsEmpty())

	second, err := svc.GetOrCreate(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID, "repeat calls return the same cart")
}

// wrappingCartRepository reports sentinel errors wrapped with store context,
// the way a database adapter does.
type wrappingCartRepository struct {
	domcart.Repository
}

func (w wrappingCartRepository) FindByUser(ctx context.Context, userID string) (*domcart.Cart, error) {
	c, err := w.Repository.FindByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("store: %w", err)
	}
	return c, nil
}

func TestGetOrCreateWithWrappedErrors(t *testing.T) {
	ctx := context.Background()
	repo := wrappingCartRepository{Repository: memory.NewCartRepository()}
	svc := appcart.NewService(repo, memory.NewProductRepository(), id.NewUUIDGenerator())

	c, err := svc.GetOrCreate(ctx, "u1")
	require.NoError(t, err, "a wrapped not-found must still read as cart-missing")
	assert.True(t, c.IsEmpty())

	_, err = svc.Create(ctx, "u2")
	require.NoError(t, err)
	_, err = svc.Create(ctx, "u2")
	assert.ErrorIs(t, err, domcart.ErrAlreadyExists)
}

func TestCreateRejectsSecondCart(t *testing.T) {
	ctx := context.Background()
	svc, _ := newCartService(t)

	_, err := svc.Create(ctx, "u1")
	require.NoError(t, err)

	_, err = svc.Create(ctx, "u1")
	assert.ErrorIs(t, err, domcart.ErrAlreadyExists)
}

func TestAddLine(t *testing.T) {
	ctx := context.Background()

	t.Run("adds a new line", func(t *testing.T) {
		svc, products := newCartService(t)
		seed(products, "p1", 10)

		line, err := svc.AddLine(ctx, "u1", "p1", 2)
		require.NoError(t, err)
		assert.Equal(t, 2, line.Quantity)
	})

	t.Run("merges into an existing line", func(t *testing.T) {
		svc, products := newCartService(t)
		seed(products, "p1", 10)

		_, err := svc.AddLine(ctx, "u1", "p1", 2)
		require.NoError(t, err)
		line, err := svc.AddLine(ctx, "u1", "p1", 3)
		require.NoError(t, err)
		assert.Equal(t, 5, line.Quantity, "same product merges by summing quantities")

		lines, err := svc.Lines(ctx, "u1")
		require.NoError(t, err)
		assert.Len(t, lines, 1, "at most one line per product")
	})

	t.Run("merge is checked against stock", func(t *testing.T) {
		svc, products := newCartService(t)
		seed(products, "p1", 4)

		_, err := svc.AddLine(ctx, "u1", "p1", 3)
		require.NoError(t, err)

		_, err = svc.AddLine(ctx, "u1", "p1", 2)
		assert.ErrorIs(t, err, domproduct.ErrInsufficientStock)

		lines, err := svc.Lines(ctx, "u1")
		require.NoError(t, err)
		require.Len(t, lines, 1)
		assert.Equal(t, 3, lines[0].Quantity, "failed add leaves the line unchanged")
	})

	t.Run("rejects non-positive quantity", func(t *testing.T) {
		svc, products := newCartService(t)
		seed(products, "p1", 10)

		_, err := svc.AddLine(ctx, "u1", "p1", 0)
		assert.ErrorIs(t, err, domcart.ErrInvalidQuantity)
	})

	t.Run("rejects unknown product", func(t *testing.T) {
		svc, _ := newCartService(t)

		_, err := svc.AddLine(ctx, "u1", "ghost", 1)
		assert.ErrorIs(t, err, domproduct.ErrNotFound)
	})
}

func TestUpdateLineQuantity(t *testing.T) {
	ctx := context.Background()
	svc, products := newCartService(t)
	seed(products, "p1", 5)

	line, err := svc.AddLine(ctx, "u1", "p1", 1)
	require.NoError(t, err)

	updated, err := svc.UpdateLineQuantity(ctx, line.ID, 4)
	require.NoError(t, err)
	assert.Equal(t, 4, updated.Quantity)

	_, err = svc.UpdateLineQuantity(ctx, line.ID, 6)
	assert.ErrorIs(t, err, domproduct.ErrInsufficientStock)

	_, err = svc.UpdateLineQuantity(ctx, "ghost", 1)
	assert.ErrorIs(t, err, domcart.ErrLineNotFound)
}

func TestRemoveLineAndClear(t *testing.T) {
	ctx := context.Background()
	svc, products := newCartService(t)
	seed(products, "p1", 5)
	seed(products, "p2", 5)

	line, err := svc.AddLine(ctx, "u1", "p1", 1)
	require.NoError(t, err)
	_, err = svc.AddLine(ctx, "u1", "p2", 1)
	require.NoError(t, err)

	require.NoError(t, svc.RemoveLine(ctx, line.ID))
	assert.ErrorIs(t, svc.RemoveLine(ctx, line.ID), domcart.ErrLineNotFound)

	require.NoError(t, svc.Clear(ctx, "u1"))
	lines, err := svc.Lines(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, lines)

	assert.ErrorIs(t, svc.Clear(ctx, "nobody"), domcart.ErrNotFound)
}
