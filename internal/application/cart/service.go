package cart

import (
	"context"
	"errors"
	"fmt"

	domcart "github.com/cartella-shop/fulfillment/internal/domain/cart"
	domproduct "github.com/cartella-shop/fulfillment/internal/domain/product"
	"github.com/cartella-shop/fulfillment/internal/pkg/logging"
	"go.uber.org/zap"
)

type IDGenerator interface {
	NewID() string
}

// Service owns cart mutations. Stock checks here are pre-checks only; the
// authoritative check happens at checkout reservation time.
type Service struct {
	carts       domcart.Repository
	products    domproduct.Repository
	idGenerator IDGenerator
}

func NewService(carts domcart.Repository, products domproduct.Repository, idGen IDGenerator) *Service {
	return &Service{
		carts:       carts,
		products:    products,
		idGenerator: idGen,
	}
}

// GetOrCreate returns the user's cart, creating an empty one on first access.
func (s *Service) GetOrCreate(ctx context.Context, userID string) (*domcart.Cart, error) {
	c, err := s.carts.FindByUser(ctx, userID)
	if err == nil {
		return c, nil
	}
	if !errors.Is(err, domcart.ErrNotFound) {
		return nil, fmt.Errorf("cart: find: %w", err)
	}

	c = domcart.New(s.idGenerator.NewID(), userID)
	if err := s.carts.Insert(ctx, c); err != nil {
		// Lost a create race; the existing cart wins.
		if errors.Is(err, domcart.ErrAlreadyExists) {
			return s.carts.FindByUser(ctx, userID)
		}
		return nil, fmt.Errorf("cart: create: %w", err)
	}
	return c, nil
}

// Create is the explicit entry point; unlike GetOrCreate it surfaces an error
// when the user already has a cart.
func (s *Service) Create(ctx context.Context, userID string) (*domcart.Cart, error) {
	if _, err := s.carts.FindByUser(ctx, userID); err == nil {
		return nil, domcart.ErrAlreadyExists
	} else if !errors.Is(err, domcart.ErrNotFound) {
		return nil, fmt.Errorf("cart: find: %w", err)
	}

	c := domcart.New(s.idGenerator.NewID(), userID)
	if err := s.carts.Insert(ctx, c); err != nil {
		return nil, fmt.Errorf("cart: create: %w", err)
	}
	return c, nil
}

// AddLine merges into an existing line for the same product by summing
// quantities, re-validating the summed quantity against stock.
func (s *Service) AddLine(ctx context.Context, userID, productID string, quantity int) (*domcart.Line, error) {
	logger := logging.FromContext(ctx).With(zap.String("component", "cart_service"))

	if quantity <= 0 {
		return nil, domcart.ErrInvalidQuantity
	}

	c, err := s.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	p, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	line := c.FindLine(productID)
	wanted := quantity
	if line != nil {
		wanted += line.Quantity
	}
	if wanted > p.StockQuantity {
		return nil, &domproduct.InsufficientStockError{ProductName: p.Name, Available: p.StockQuantity}
	}

	if line == nil {
		line = &domcart.Line{
			ID:        s.idGenerator.NewID(),
			CartID:    c.ID,
			ProductID: productID,
		}
	}
	line.Quantity = wanted

	if err := s.carts.UpsertLine(ctx, line); err != nil {
		return nil, fmt.Errorf("cart: upsert line: %w", err)
	}

	logger.Info("cart_line_added",
		zap.String("user_id", userID),
		zap.String("product_id", productID),
		zap.Int("quantity", line.Quantity),
	)
	return line, nil
}

// UpdateLineQuantity replaces a line's quantity after a stock pre-check.
func (s *Service) UpdateLineQuantity(ctx context.Context, lineID string, quantity int) (*domcart.Line, error) {
	if quantity <= 0 {
		return nil, domcart.ErrInvalidQuantity
	}

	line, err := s.carts.FindLineByID(ctx, lineID)
	if err != nil {
		return nil, err
	}

	p, err := s.products.FindByID(ctx, line.ProductID)
	if err != nil {
		return nil, err
	}
	if quantity > p.StockQuantity {
		return nil, &domproduct.InsufficientStockError{ProductName: p.Name, Available: p.StockQuantity}
	}

	line.Quantity = quantity
	if err := s.carts.UpsertLine(ctx, line); err != nil {
		return nil, fmt.Errorf("cart: upsert line: %w", err)
	}
	return line, nil
}

func (s *Service) RemoveLine(ctx context.Context, lineID string) error {
	return s.carts.DeleteLine(ctx, lineID)
}

// Clear removes all lines without deleting the cart itself.
func (s *Service) Clear(ctx context.Context, userID string) error {
	if _, err := s.carts.FindByUser(ctx, userID); err != nil {
		return err
	}
	return s.carts.Clear(ctx, userID)
}

func (s *Service) Lines(ctx context.Context, userID string) ([]*domcart.Line, error) {
	c, err := s.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}
	return c.Lines, nil
}
