package cart

import (
	"errors"
	"time"
)

var (
	ErrNotFound        = errors.New("cart: not found")
	ErrLineNotFound    = errors.New("cart: line not found")
	ErrAlreadyExists   = errors.New("cart: user already has a cart")
	ErrInvalidQuantity = errors.New("cart: quantity must be greater than zero")
	ErrEmpty           = errors.New("cart: cart is empty")
)

// Cart is the per-user mutable collection of lines. It is created lazily and
// cleared, not deleted, after a successful checkout.
type Cart struct {
	ID        string
	UserID    string
	Lines     []*Line
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Line is owned by exactly one cart; at most one line per product.
type Line struct {
	ID        string
	CartID    string
	ProductID string
	Quantity  int
}

func New(id, userID string) *Cart {
	now := time.Now().UTC()
	return &Cart{
		ID:        id,
		UserID:    userID,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (c *Cart) IsEmpty() bool { return len(c.Lines) == 0 }

// FindLine returns the line for the given product, if any.
func (c *Cart) FindLine(productID string) *Line {
	for _, l := range c.Lines {
		if l.ProductID == productID {
			return l
		}
	}
	return nil
}

func (c *Cart) Clone() *Cart {
	if c == nil {
		return nil
	}
	clone := *c
	clone.Lines = make([]*Line, len(c.Lines))
	for i, l := range c.Lines {
		lc := *l
		clone.Lines[i] = &lc
	}
	return &clone
}
