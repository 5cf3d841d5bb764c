package memory

import (
	"context"
	"sync"

	domain "github.com/cartella-shop/fulfillment/internal/domain/cart"
)

type CartRepository struct {
	mu    sync.RWMutex
	carts map[string]*domain.Cart // keyed by user id; carts are 1:1 with users
}

func NewCartRepository() *CartRepository {
	return &CartRepository{
		carts: make(map[string]*domain.Cart),
	}
}

func (r *CartRepository) Insert(ctx context.Context, c *domain.Cart) error {
	_ = ctx

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.carts[c.UserID]; exists {
		return domain.ErrAlreadyExists
	}
	r.carts[c.UserID] = c.Clone()
	return nil
}

func (r *CartRepository) FindByUser(ctx context.Context, userID string) (*domain.Cart, error) {
	_ = ctx

	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.carts[userID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return c.Clone(), nil
}

func (r *CartRepository) FindLineByID(ctx context.Context, lineID string) (*domain.Line, error) {
	_ = ctx

	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, c := range r.carts {
		for _, l := range c.Lines {
			if l.ID == lineID {
				clone := *l
				return &clone, nil
			}
		}
	}
	return nil, domain.ErrLineNotFound
}

func (r *CartRepository) UpsertLine(ctx context.Context, line *domain.Line) error {
	_ = ctx

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, c := range r.carts {
		if c.ID != line.CartID {
			continue
		}
		for i, l := range c.Lines {
			if l.ProductID == line.ProductID {
				clone := *line
				clone.ID = l.ID
				c.Lines[i] = &clone
				return nil
			}
		}
		clone := *line
		c.Lines = append(c.Lines, &clone)
		return nil
	}
	return domain.ErrNotFound
}

func (r *CartRepository) DeleteLine(ctx context.Context, lineID string) error {
	_ = ctx

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, c := range r.carts {
		for i, l := range c.Lines {
			if l.ID == lineID {
				c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
				return nil
			}
		}
	}
	return domain.ErrLineNotFound
}

func (r *CartRepository) Clear(ctx context.Context, userID string) error {
	_ = ctx

	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.carts[userID]
	if !ok {
		return domain.ErrNotFound
	}
	c.Lines = nil
	return nil
}
